package magento

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

const (
	defaultOrdersPage     = 1
	defaultOrdersPageSize = 12
)

// GetOrder fetches an order by entity id. A 404 from Magento is reported as
// ErrOrderNotFound; every other failure is returned unchanged.
func (c *Client) GetOrder(ctx context.Context, orderID int) (*Order, error) {
	var order Order
	if err := c.get(ctx, fmt.Sprintf("orders/%d", orderID), nil, &order); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
		}
		return nil, err
	}
	return &order, nil
}

// OrderSearch selects a page of orders. Each filter is applied as its own
// filter group, so all filters must match.
type OrderSearch struct {
	Page       int
	PageSize   int
	Filters    []Filter    `validate:"dive"`
	SortOrders []SortOrder `validate:"dive"`
}

func (s OrderSearch) criteria() SearchCriteria {
	sc := SearchCriteria{
		CurrentPage: s.Page,
		PageSize:    s.PageSize,
		SortOrders:  s.SortOrders,
	}
	if sc.CurrentPage <= 0 {
		sc.CurrentPage = defaultOrdersPage
	}
	if sc.PageSize <= 0 {
		sc.PageSize = defaultOrdersPageSize
	}
	for _, f := range s.Filters {
		sc.FilterGroups = append(sc.FilterGroups, FilterGroup{Filters: []Filter{f}})
	}
	return sc
}

// SearchOrders returns a page of orders matching the search. Filters missing
// a field or value and sort orders missing a field or direction fail with
// ErrValidation before any call is made.
func (c *Client) SearchOrders(ctx context.Context, search OrderSearch) (*SearchResult[Order], error) {
	if err := validateStruct(search); err != nil {
		return nil, err
	}
	return c.searchOrders(ctx, search.criteria())
}

// SearchOrdersByQuoteID finds the order placed from the given cart.
func (c *Client) SearchOrdersByQuoteID(ctx context.Context, quoteID int) (*SearchResult[Order], error) {
	return c.searchOrders(ctx, singleFilter("quote_id", strconv.Itoa(quoteID), 1))
}

func (c *Client) searchOrders(ctx context.Context, criteria SearchCriteria) (*SearchResult[Order], error) {
	var result SearchResult[Order]
	if err := c.get(ctx, "orders", criteria.Values(), &result); err != nil {
		return nil, fmt.Errorf("searching orders: %w", err)
	}
	return &result, nil
}

// CancelOrder cancels an order.
func (c *Client) CancelOrder(ctx context.Context, orderID int) (bool, error) {
	var ok bool
	if err := c.post(ctx, fmt.Sprintf("orders/%d/cancel", orderID), nil, &ok); err != nil {
		return false, fmt.Errorf("canceling order %d: %w", orderID, err)
	}
	return ok, nil
}

type invoiceRequest struct {
	Capture bool `json:"capture"`
	Notify  bool `json:"notify"`
}

// InvoiceOrder creates a full invoice for the order and returns the invoice
// id. When paid is true the payment is captured and the customer notified;
// otherwise the invoice is created without a body.
func (c *Client) InvoiceOrder(ctx context.Context, orderID int, paid bool) (int, error) {
	var body any
	if paid {
		body = invoiceRequest{Capture: true, Notify: true}
	}

	var invoiceID entityID
	if err := c.post(ctx, fmt.Sprintf("order/%d/invoice", orderID), body, &invoiceID); err != nil {
		return 0, fmt.Errorf("invoicing order %d: %w", orderID, err)
	}
	return int(invoiceID), nil
}

// ShipOrder creates a shipment for all items of the order and returns the
// shipment id.
func (c *Client) ShipOrder(ctx context.Context, orderID int) (int, error) {
	var shipmentID entityID
	if err := c.post(ctx, fmt.Sprintf("order/%d/ship", orderID), nil, &shipmentID); err != nil {
		return 0, fmt.Errorf("shipping order %d: %w", orderID, err)
	}
	return int(shipmentID), nil
}

type statusHistory struct {
	Comment            string `json:"comment"`
	Status             string `json:"status,omitempty"`
	IsCustomerNotified int    `json:"is_customer_notified"`
	IsVisibleOnFront   int    `json:"is_visible_on_front"`
	ParentID           int    `json:"parent_id"`
}

type statusHistoryRequest struct {
	StatusHistory statusHistory `json:"statusHistory"`
}

// AddOrderComment appends a status-history comment to the order.
func (c *Client) AddOrderComment(ctx context.Context, orderID int, comment OrderComment) (bool, error) {
	if comment.Comment == "" {
		return false, fmt.Errorf("%w: comment is required", ErrValidation)
	}

	body := statusHistoryRequest{StatusHistory: statusHistory{
		Comment:            comment.Comment,
		Status:             comment.Status,
		IsCustomerNotified: boolToInt(comment.NotifyCustomer),
		IsVisibleOnFront:   boolToInt(comment.VisibleOnFront),
		ParentID:           orderID,
	}}

	var ok bool
	if err := c.post(ctx, fmt.Sprintf("orders/%d/comments", orderID), body, &ok); err != nil {
		return false, fmt.Errorf("commenting on order %d: %w", orderID, err)
	}
	return ok, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
