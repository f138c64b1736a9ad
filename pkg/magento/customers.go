package magento

import (
	"context"
	"fmt"
)

type customerRequest struct {
	Customer *Customer `json:"customer"`
	Password string    `json:"password,omitempty"`
}

// CreateCustomer creates a customer account. Password may be empty, in which
// case Magento sends the customer a set-password email.
func (c *Client) CreateCustomer(ctx context.Context, customer *Customer, password string) (*Customer, error) {
	if customer == nil {
		return nil, fmt.Errorf("%w: customer is required", ErrValidation)
	}
	var created Customer
	if err := c.post(ctx, "customers", customerRequest{Customer: customer, Password: password}, &created); err != nil {
		return nil, fmt.Errorf("creating customer %s: %w", customer.Email, err)
	}
	return &created, nil
}

// UpdateCustomer replaces the customer identified by customer.ID.
func (c *Client) UpdateCustomer(ctx context.Context, customer *Customer) (*Customer, error) {
	if customer == nil {
		return nil, fmt.Errorf("%w: customer is required", ErrValidation)
	}
	var updated Customer
	path := fmt.Sprintf("customers/%d", customer.ID)
	if err := c.put(ctx, path, customerRequest{Customer: customer}, &updated); err != nil {
		return nil, fmt.Errorf("updating customer %d: %w", customer.ID, err)
	}
	return &updated, nil
}

// DeleteCustomer deletes a customer account.
func (c *Client) DeleteCustomer(ctx context.Context, customerID int) (bool, error) {
	var deleted bool
	if err := c.del(ctx, fmt.Sprintf("customers/%d", customerID), &deleted); err != nil {
		return false, fmt.Errorf("deleting customer %d: %w", customerID, err)
	}
	return deleted, nil
}

// GetCustomer fetches a customer with its addresses.
func (c *Client) GetCustomer(ctx context.Context, customerID int) (*Customer, error) {
	var customer Customer
	if err := c.get(ctx, fmt.Sprintf("customers/%d", customerID), nil, &customer); err != nil {
		return nil, fmt.Errorf("getting customer %d: %w", customerID, err)
	}
	return &customer, nil
}

// SearchCustomers runs a customer search with arbitrary criteria.
func (c *Client) SearchCustomers(ctx context.Context, criteria SearchCriteria) (*SearchResult[Customer], error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	var result SearchResult[Customer]
	if err := c.get(ctx, "customers/search", criteria.Values(), &result); err != nil {
		return nil, fmt.Errorf("searching customers: %w", err)
	}
	return &result, nil
}

// SearchCustomerByEmail looks a customer up by email address. The result
// holds at most one customer.
func (c *Client) SearchCustomerByEmail(ctx context.Context, email string) (*SearchResult[Customer], error) {
	return c.SearchCustomers(ctx, singleFilter("email", email, 1))
}

// ListCustomers returns one page of customers. Pages start at 1.
func (c *Client) ListCustomers(ctx context.Context, currentPage, pageSize int) (*SearchResult[Customer], error) {
	return c.SearchCustomers(ctx, page(currentPage, pageSize))
}
