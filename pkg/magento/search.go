package magento

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Sort directions accepted by Magento.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// Filter is a single field condition. ConditionType defaults to "eq" on the
// Magento side when empty (other values: like, neq, in, gt, lt, ...).
type Filter struct {
	Field         string `json:"field"                   validate:"required"`
	Value         string `json:"value"                   validate:"required"`
	ConditionType string `json:"condition_type,omitempty"`
}

// FilterGroup OR-joins its filters. Groups in a SearchCriteria are AND-joined.
type FilterGroup struct {
	Filters []Filter `json:"filters" validate:"min=1,dive"`
}

// SortOrder orders results by Field in Direction (ASC or DESC).
type SortOrder struct {
	Field     string `json:"field"     validate:"required"`
	Direction string `json:"direction" validate:"required,oneof=ASC DESC asc desc"`
}

// SearchCriteria is the query object accepted by Magento search endpoints.
type SearchCriteria struct {
	FilterGroups []FilterGroup `json:"filter_groups,omitempty" validate:"dive"`
	SortOrders   []SortOrder   `json:"sort_orders,omitempty"   validate:"dive"`
	PageSize     int           `json:"page_size,omitempty"     validate:"gte=0"`
	CurrentPage  int           `json:"current_page,omitempty"  validate:"gte=0"`
}

// SearchResult is the envelope returned by Magento search endpoints.
type SearchResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
}

// ValidationError reports which search criteria fields are malformed. It
// matches ErrValidation with errors.Is.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s %s", fe.Namespace(), msgForTag(fe)))
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

func validateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return &ValidationError{Errors: fieldErrs}
		}
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

// Validate checks that every filter has a field and value and every sort
// order has a field and a valid direction.
func (sc SearchCriteria) Validate() error {
	return validateStruct(sc)
}

// Values encodes the criteria in the bracketed query form Magento expects,
// e.g. searchCriteria[filterGroups][0][filters][0][field]=email.
func (sc SearchCriteria) Values() url.Values {
	v := url.Values{}

	for gi, g := range sc.FilterGroups {
		for fi, f := range g.Filters {
			prefix := fmt.Sprintf("searchCriteria[filterGroups][%d][filters][%d]", gi, fi)
			v.Set(prefix+"[field]", f.Field)
			v.Set(prefix+"[value]", f.Value)
			if f.ConditionType != "" {
				v.Set(prefix+"[conditionType]", f.ConditionType)
			}
		}
	}

	for i, s := range sc.SortOrders {
		prefix := fmt.Sprintf("searchCriteria[sortOrders][%d]", i)
		v.Set(prefix+"[field]", s.Field)
		v.Set(prefix+"[direction]", strings.ToUpper(s.Direction))
	}

	if sc.PageSize > 0 {
		v.Set("searchCriteria[pageSize]", strconv.Itoa(sc.PageSize))
	}
	if sc.CurrentPage > 0 {
		v.Set("searchCriteria[currentPage]", strconv.Itoa(sc.CurrentPage))
	}

	// Search endpoints reject requests without a searchCriteria parameter.
	if len(v) == 0 {
		v.Set("searchCriteria", "")
	}

	return v
}

// singleFilter builds criteria matching field == value.
func singleFilter(field, value string, pageSize int) SearchCriteria {
	return SearchCriteria{
		FilterGroups: []FilterGroup{{Filters: []Filter{{Field: field, Value: value}}}},
		PageSize:     pageSize,
	}
}

// page builds unfiltered criteria for one page of results.
func page(currentPage, pageSize int) SearchCriteria {
	return SearchCriteria{CurrentPage: currentPage, PageSize: pageSize}
}
