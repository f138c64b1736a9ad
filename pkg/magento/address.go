package magento

// FindDefaultShippingAddress returns the customer's first address flagged
// as default shipping, projected into the cart address shape. It returns
// ErrShippingAddressNotFound when no address carries the flag.
func FindDefaultShippingAddress(customer *Customer) (*CartAddress, error) {
	if customer == nil {
		return nil, ErrShippingAddressNotFound
	}
	for i := range customer.Addresses {
		if customer.Addresses[i].DefaultShipping {
			return toCartAddress(customer, &customer.Addresses[i]), nil
		}
	}
	return nil, ErrShippingAddressNotFound
}

// FindDefaultBillingAddress returns the customer's first address flagged as
// default billing. It returns ErrBillingAddressNotFound when none is.
func FindDefaultBillingAddress(customer *Customer) (*CartAddress, error) {
	if customer == nil {
		return nil, ErrBillingAddressNotFound
	}
	for i := range customer.Addresses {
		if customer.Addresses[i].DefaultBilling {
			return toCartAddress(customer, &customer.Addresses[i]), nil
		}
	}
	return nil, ErrBillingAddressNotFound
}

func toCartAddress(customer *Customer, a *Address) *CartAddress {
	ca := &CartAddress{
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		Company:   a.Company,
		Postcode:  a.Postcode,
		Email:     customer.Email,
		Street:    append([]string(nil), a.Street...),
		Telephone: a.Telephone,
		CountryID: a.CountryID,
		City:      a.City,
		RegionID:  a.RegionID,
	}
	if a.Region != nil {
		ca.Region = a.Region.Region
		ca.RegionCode = a.Region.RegionCode
		if a.Region.RegionID != 0 {
			ca.RegionID = a.Region.RegionID
		}
	}
	return ca
}
