package magento_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func TestFindDefaultShippingAddress(t *testing.T) {
	t.Parallel()

	home := magento.Address{
		Region:    &magento.Region{Region: "Texas", RegionCode: "TX", RegionID: 57},
		RegionID:  1,
		CountryID: "US",
		Street:    []string{"1 Main St", "Apt 2"},
		Company:   "Acme",
		Telephone: "555-0100",
		Postcode:  "78701",
		City:      "Austin",
		Firstname: "Jane",
		Lastname:  "Doe",
	}

	tests := []struct {
		name      string
		customer  *magento.Customer
		want      *magento.CartAddress
		wantErrIs error
	}{
		{
			name: "flagged address is projected",
			customer: &magento.Customer{
				Email: "jane@example.com",
				Addresses: []magento.Address{
					{CountryID: "NL", City: "Utrecht"},
					withFlags(home, true, false),
				},
			},
			want: &magento.CartAddress{
				Firstname:  "Jane",
				Lastname:   "Doe",
				Company:    "Acme",
				Postcode:   "78701",
				Email:      "jane@example.com",
				Street:     []string{"1 Main St", "Apt 2"},
				Telephone:  "555-0100",
				CountryID:  "US",
				City:       "Austin",
				Region:     "Texas",
				RegionCode: "TX",
				RegionID:   57,
			},
		},
		{
			name: "first flagged address wins",
			customer: &magento.Customer{
				Addresses: []magento.Address{
					{CountryID: "DE", City: "Berlin", DefaultShipping: true},
					withFlags(home, true, true),
				},
			},
			want: &magento.CartAddress{CountryID: "DE", City: "Berlin"},
		},
		{
			name: "region without id keeps address region id",
			customer: &magento.Customer{
				Addresses: []magento.Address{
					{RegionID: 12, Region: &magento.Region{Region: "Utrecht"}, DefaultShipping: true},
				},
			},
			want: &magento.CartAddress{Region: "Utrecht", RegionID: 12},
		},
		{
			name: "no flagged address",
			customer: &magento.Customer{
				Addresses: []magento.Address{withFlags(home, false, true)},
			},
			wantErrIs: magento.ErrShippingAddressNotFound,
		},
		{
			name:      "no addresses",
			customer:  &magento.Customer{},
			wantErrIs: magento.ErrShippingAddressNotFound,
		},
		{
			name:      "nil customer",
			wantErrIs: magento.ErrShippingAddressNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := magento.FindDefaultShippingAddress(tt.customer)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				assert.Equal(t, magento.KindAddressResolution, magento.KindOf(err))
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindDefaultBillingAddress(t *testing.T) {
	t.Parallel()

	customer := &magento.Customer{
		Email: "jane@example.com",
		Addresses: []magento.Address{
			{City: "Shipping City", CountryID: "US", DefaultShipping: true},
			{City: "Billing City", CountryID: "CA", DefaultBilling: true},
		},
	}

	got, err := magento.FindDefaultBillingAddress(customer)
	require.NoError(t, err)
	assert.Equal(t, "Billing City", got.City)
	assert.Equal(t, "CA", got.CountryID)
	assert.Equal(t, "jane@example.com", got.Email)

	_, err = magento.FindDefaultBillingAddress(&magento.Customer{
		Addresses: []magento.Address{{DefaultShipping: true}},
	})
	require.ErrorIs(t, err, magento.ErrBillingAddressNotFound)
	assert.NotErrorIs(t, err, magento.ErrShippingAddressNotFound)
}

func TestFindDefaultAddress_DoesNotAliasStreet(t *testing.T) {
	t.Parallel()

	customer := &magento.Customer{
		Addresses: []magento.Address{{Street: []string{"1 Main St"}, DefaultShipping: true}},
	}

	got, err := magento.FindDefaultShippingAddress(customer)
	require.NoError(t, err)
	got.Street[0] = "changed"
	assert.Equal(t, "1 Main St", customer.Addresses[0].Street[0])
}

func withFlags(a magento.Address, shipping, billing bool) magento.Address {
	a.DefaultShipping = shipping
	a.DefaultBilling = billing
	return a
}
