package magentotest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

var filterKey = regexp.MustCompile(
	`^searchCriteria\[filterGroups\]\[(\d+)\]\[filters\]\[(\d+)\]\[(field|value|conditionType)\]$`,
)

// ParseCriteria decodes the bracketed searchCriteria query parameters back
// into SearchCriteria. Groups and filters are ordered by their indexes.
func ParseCriteria(q url.Values) magento.SearchCriteria {
	type key struct{ group, filter int }
	filters := map[key]*magento.Filter{}

	for k, vals := range q {
		m := filterKey.FindStringSubmatch(k)
		if m == nil || len(vals) == 0 {
			continue
		}
		g, _ := strconv.Atoi(m[1]) //nolint:errcheck // regexp guarantees digits
		f, _ := strconv.Atoi(m[2]) //nolint:errcheck // regexp guarantees digits
		fl, ok := filters[key{g, f}]
		if !ok {
			fl = &magento.Filter{}
			filters[key{g, f}] = fl
		}
		switch m[3] {
		case "field":
			fl.Field = vals[0]
		case "value":
			fl.Value = vals[0]
		case "conditionType":
			fl.ConditionType = vals[0]
		}
	}

	keys := make([]key, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].group != keys[j].group {
			return keys[i].group < keys[j].group
		}
		return keys[i].filter < keys[j].filter
	})

	var sc magento.SearchCriteria
	lastGroup := -1
	for _, k := range keys {
		if k.group != lastGroup {
			sc.FilterGroups = append(sc.FilterGroups, magento.FilterGroup{})
			lastGroup = k.group
		}
		g := &sc.FilterGroups[len(sc.FilterGroups)-1]
		g.Filters = append(g.Filters, *filters[k])
	}

	for i := 0; ; i++ {
		prefix := fmt.Sprintf("searchCriteria[sortOrders][%d]", i)
		field := q.Get(prefix + "[field]")
		if field == "" {
			break
		}
		sc.SortOrders = append(sc.SortOrders, magento.SortOrder{
			Field:     field,
			Direction: q.Get(prefix + "[direction]"),
		})
	}

	sc.PageSize, _ = strconv.Atoi(q.Get("searchCriteria[pageSize]"))       //nolint:errcheck // zero when absent
	sc.CurrentPage, _ = strconv.Atoi(q.Get("searchCriteria[currentPage]")) //nolint:errcheck // zero when absent

	return sc
}

// search applies criteria to items and returns the requested page along with
// the total number of matches.
func search[T any](items []T, sc magento.SearchCriteria) ([]T, int) {
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, sc.FilterGroups) {
			matched = append(matched, item)
		}
	}

	if len(sc.SortOrders) > 0 {
		so := sc.SortOrders[0]
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := fieldValue(matched[i], so.Field), fieldValue(matched[j], so.Field)
			if strings.EqualFold(so.Direction, magento.SortDesc) {
				return compare(a, b) > 0
			}
			return compare(a, b) < 0
		})
	}

	total := len(matched)
	if sc.PageSize <= 0 {
		return matched, total
	}

	page := max(sc.CurrentPage, 1)
	start := (page - 1) * sc.PageSize
	if start >= total {
		return []T{}, total
	}
	end := min(start+sc.PageSize, total)
	return matched[start:end], total
}

func matches(item any, groups []magento.FilterGroup) bool {
	for _, g := range groups {
		hit := false
		for _, f := range g.Filters {
			if filterMatches(fieldValue(item, f.Field), f) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func filterMatches(actual string, f magento.Filter) bool {
	switch f.ConditionType {
	case "", "eq":
		return actual == f.Value
	case "neq":
		return actual != f.Value
	case "like":
		needle := strings.Trim(f.Value, "%")
		return strings.Contains(strings.ToLower(actual), strings.ToLower(needle))
	case "in":
		for _, v := range strings.Split(f.Value, ",") {
			if strings.TrimSpace(v) == actual {
				return true
			}
		}
		return false
	case "gt", "lt", "gteq", "lteq":
		c := compare(actual, f.Value)
		switch f.ConditionType {
		case "gt":
			return c > 0
		case "lt":
			return c < 0
		case "gteq":
			return c >= 0
		default:
			return c <= 0
		}
	default:
		return false
	}
}

// fieldValue reads a top-level JSON field of item as a string.
func fieldValue(item any, field string) string {
	data, err := json.Marshal(item)
	if err != nil {
		return ""
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return ""
	}
	v, ok := m[field]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func compare(a, b string) int {
	af, errA := strconv.ParseFloat(a, 64)
	bf, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
