package magento_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want magento.ErrorKind
	}{
		{name: "order not found", err: fmt.Errorf("%w: id 9", magento.ErrOrderNotFound), want: magento.KindNotFound},
		{name: "product not found", err: magento.ErrProductNotFound, want: magento.KindNotFound},
		{name: "validation", err: fmt.Errorf("%w: comment is required", magento.ErrValidation), want: magento.KindValidation},
		{name: "shipping address", err: magento.ErrShippingAddressNotFound, want: magento.KindAddressResolution},
		{name: "billing address", err: magento.ErrBillingAddressNotFound, want: magento.KindAddressResolution},
		{name: "api error", err: &magento.APIError{StatusCode: 500}, want: magento.KindTransport},
		{name: "plain error", err: errors.New("connection refused"), want: magento.KindTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, magento.KindOf(tt.err))
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "transport", magento.KindTransport.String())
	assert.Equal(t, "not_found", magento.KindNotFound.String())
	assert.Equal(t, "validation", magento.KindValidation.String())
	assert.Equal(t, "address_resolution", magento.KindAddressResolution.String())
}

func TestSentinelHierarchy(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, magento.ErrOrderNotFound, magento.ErrNotFound)
	assert.ErrorIs(t, magento.ErrProductNotFound, magento.ErrNotFound)
	assert.ErrorIs(t, magento.ErrShippingAddressNotFound, magento.ErrAddressNotFound)
	assert.ErrorIs(t, magento.ErrBillingAddressNotFound, magento.ErrAddressNotFound)
	assert.NotErrorIs(t, magento.ErrShippingAddressNotFound, magento.ErrBillingAddressNotFound)
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	withMsg := &magento.APIError{
		Method:     "GET",
		URL:        "https://shop.test/rest/V1/orders/1",
		StatusCode: 404,
		Body:       []byte(`{"message":"raw"}`),
		Message:    "rendered",
	}
	assert.Equal(t,
		"magento API error (status 404) GET https://shop.test/rest/V1/orders/1: rendered",
		withMsg.Error())

	raw := &magento.APIError{Method: "GET", URL: "u", StatusCode: 502, Body: []byte("bad gateway")}
	assert.Equal(t, "magento API error (status 502) GET u: bad gateway", raw.Error())
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("listing: %w", &magento.APIError{StatusCode: 503})
	assert.Equal(t, 503, magento.StatusCode(wrapped))
	assert.Zero(t, magento.StatusCode(errors.New("other")))
	assert.Zero(t, magento.StatusCode(nil))
}
