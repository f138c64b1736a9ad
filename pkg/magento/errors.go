package magento

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Sentinel errors returned by the client. Use errors.Is to test for them.
var (
	ErrNotFound        = errors.New("not found")
	ErrOrderNotFound   = fmt.Errorf("order %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)

	ErrValidation = errors.New("invalid input")

	ErrAddressNotFound         = errors.New("address not found for customer")
	ErrShippingAddressNotFound = fmt.Errorf("default shipping %w", ErrAddressNotFound)
	ErrBillingAddressNotFound  = fmt.Errorf("default billing %w", ErrAddressNotFound)
)

// ErrorKind classifies errors returned by the client.
type ErrorKind int

const (
	// KindTransport covers network failures and any non-2xx response that is
	// not translated into a more specific kind.
	KindTransport ErrorKind = iota
	KindNotFound
	KindValidation
	KindAddressResolution
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindAddressResolution:
		return "address_resolution"
	default:
		return "transport"
	}
}

// KindOf reports the kind of err. A nil error has no meaningful kind and is
// reported as KindTransport.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrAddressNotFound):
		return KindAddressResolution
	default:
		return KindTransport
	}
}

// APIError is returned for any non-2xx response from the Magento API.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	// Message is the Magento error message with its placeholders filled in,
	// empty when the body is not a Magento error document.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("magento API error (status %d) %s %s: %s", e.StatusCode, e.Method, e.URL, e.Message)
	}
	return fmt.Sprintf("magento API error (status %d) %s %s: %s", e.StatusCode, e.Method, e.URL, string(e.Body))
}

// StatusCode returns the HTTP status carried by err, or 0 when err does not
// wrap an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type errorDocument struct {
	Message    string          `json:"message"`
	Parameters json.RawMessage `json:"parameters"`
}

func newAPIError(method, url string, status int, body []byte) *APIError {
	return &APIError{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       body,
		Message:    renderErrorMessage(body),
	}
}

// renderErrorMessage substitutes Magento's %name or %1 placeholders with the
// values from the parameters field, which is either an object or a list.
func renderErrorMessage(body []byte) string {
	var doc errorDocument
	if err := json.Unmarshal(body, &doc); err != nil || doc.Message == "" {
		return ""
	}

	if len(doc.Parameters) == 0 {
		return doc.Message
	}

	replacements := map[string]string{}

	var named map[string]any
	if err := json.Unmarshal(doc.Parameters, &named); err == nil {
		for k, v := range named {
			replacements["%"+k] = fmt.Sprint(v)
		}
	}

	var positional []any
	if err := json.Unmarshal(doc.Parameters, &positional); err == nil {
		for i, v := range positional {
			replacements["%"+strconv.Itoa(i+1)] = fmt.Sprint(v)
		}
	}

	// Longest keys first so %10 is not clobbered by %1.
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	msg := doc.Message
	for _, k := range keys {
		msg = strings.ReplaceAll(msg, k, replacements[k])
	}
	return msg
}
