package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

// conditionTypes are the Magento filter conditions accepted as a ":cond"
// suffix on --filter values.
var conditionTypes = map[string]bool{
	"eq": true, "neq": true, "like": true, "nlike": true,
	"in": true, "nin": true, "gt": true, "lt": true,
	"gteq": true, "lteq": true, "from": true, "to": true,
	"null": true, "notnull": true, "finset": true,
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", what, arg)
	}
	return id, nil
}

// parseFilter parses field=value or field=value:cond. The suffix is only
// treated as a condition when it names one, so values may contain colons.
func parseFilter(s string) (magento.Filter, error) {
	field, value, ok := strings.Cut(s, "=")
	if !ok || field == "" || value == "" {
		return magento.Filter{}, fmt.Errorf("invalid filter %q: want field=value[:condition]", s)
	}

	f := magento.Filter{Field: field, Value: value}
	if i := strings.LastIndex(value, ":"); i >= 0 && conditionTypes[strings.ToLower(value[i+1:])] {
		f.Value = value[:i]
		f.ConditionType = strings.ToLower(value[i+1:])
	}
	return f, nil
}

// parseSort parses field or field:ASC|DESC.
func parseSort(s string) (magento.SortOrder, error) {
	field, dir, _ := strings.Cut(s, ":")
	if field == "" {
		return magento.SortOrder{}, fmt.Errorf("invalid sort %q: want field[:ASC|DESC]", s)
	}
	if dir == "" {
		dir = magento.SortAsc
	}
	dir = strings.ToUpper(dir)
	if dir != magento.SortAsc && dir != magento.SortDesc {
		return magento.SortOrder{}, fmt.Errorf("invalid sort direction %q: want ASC or DESC", dir)
	}
	return magento.SortOrder{Field: field, Direction: dir}, nil
}

// parseLineItem parses sku or sku:qty. Quantity defaults to 1.
func parseLineItem(s string) (magento.LineItem, error) {
	sku, qty := s, 1
	if i := strings.LastIndex(s, ":"); i >= 0 {
		n, err := strconv.Atoi(s[i+1:])
		if err != nil || n <= 0 {
			return magento.LineItem{}, fmt.Errorf("invalid item %q: want sku[:qty] with qty > 0", s)
		}
		sku, qty = s[:i], n
	}
	if sku == "" {
		return magento.LineItem{}, fmt.Errorf("invalid item %q: sku is required", s)
	}
	return magento.LineItem{SKU: sku, Qty: qty}, nil
}
