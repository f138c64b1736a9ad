package magento

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// DefaultShippingCode is used for the carrier and method when none is given.
const DefaultShippingCode = "flatrate"

// CreateCart creates an empty quote for the customer and returns its id.
func (c *Client) CreateCart(ctx context.Context, customerID int) (int, error) {
	var quoteID entityID
	if err := c.post(ctx, fmt.Sprintf("customers/%d/carts", customerID), nil, &quoteID); err != nil {
		return 0, fmt.Errorf("creating cart for customer %d: %w", customerID, err)
	}
	return int(quoteID), nil
}

type cartItemRequest struct {
	CartItem CartItem `json:"cartItem"`
}

// AddProductToCart adds qty units of sku to the quote.
func (c *Client) AddProductToCart(ctx context.Context, quoteID int, sku string, qty int) (*CartItem, error) {
	body := cartItemRequest{CartItem: CartItem{
		SKU:     sku,
		Qty:     float64(qty),
		QuoteID: strconv.Itoa(quoteID),
	}}

	var item CartItem
	if err := c.post(ctx, fmt.Sprintf("carts/%d/items", quoteID), body, &item); err != nil {
		return nil, fmt.Errorf("adding %s to cart %d: %w", sku, quoteID, err)
	}
	return &item, nil
}

type estimateRequest struct {
	Address *CartAddress `json:"address"`
}

// EstimateShippingMethods quotes the shipping methods available for the cart
// when shipped to the customer's default shipping address. It fails with
// ErrShippingAddressNotFound before any call when the customer has none.
func (c *Client) EstimateShippingMethods(ctx context.Context, customer *Customer, quoteID int) ([]ShippingMethod, error) {
	shipping, err := FindDefaultShippingAddress(customer)
	if err != nil {
		return nil, err
	}

	var methods []ShippingMethod
	path := fmt.Sprintf("carts/%d/estimate-shipping-methods", quoteID)
	if err := c.post(ctx, path, estimateRequest{Address: shipping}, &methods); err != nil {
		return nil, fmt.Errorf("estimating shipping for cart %d: %w", quoteID, err)
	}
	return methods, nil
}

type addressInformation struct {
	ShippingAddress     *CartAddress `json:"shippingAddress"`
	BillingAddress      *CartAddress `json:"billingAddress"`
	ShippingMethodCode  string       `json:"shipping_method_code"`
	ShippingCarrierCode string       `json:"shipping_carrier_code"`
}

type shippingInformationRequest struct {
	AddressInformation addressInformation `json:"addressInformation"`
}

// AddShippingInformation sets the customer's default shipping and billing
// addresses and the chosen carrier/method on the cart. Empty codes default to
// flatrate. Both addresses are resolved before any call is made.
func (c *Client) AddShippingInformation(
	ctx context.Context,
	customer *Customer,
	quoteID int,
	carrierCode, methodCode string,
) (*PaymentDetails, error) {
	shipping, err := FindDefaultShippingAddress(customer)
	if err != nil {
		return nil, err
	}
	billing, err := FindDefaultBillingAddress(customer)
	if err != nil {
		return nil, err
	}

	if carrierCode == "" {
		carrierCode = DefaultShippingCode
	}
	if methodCode == "" {
		methodCode = DefaultShippingCode
	}

	body := shippingInformationRequest{AddressInformation: addressInformation{
		ShippingAddress:     shipping,
		BillingAddress:      billing,
		ShippingMethodCode:  methodCode,
		ShippingCarrierCode: carrierCode,
	}}

	var details PaymentDetails
	path := fmt.Sprintf("carts/%d/shipping-information", quoteID)
	if err := c.post(ctx, path, body, &details); err != nil {
		return nil, fmt.Errorf("setting shipping information on cart %d: %w", quoteID, err)
	}
	return &details, nil
}

// GetPaymentMethods lists the payment methods available for the cart.
func (c *Client) GetPaymentMethods(ctx context.Context, quoteID int) ([]PaymentMethod, error) {
	var methods []PaymentMethod
	if err := c.get(ctx, fmt.Sprintf("carts/%d/payment-methods", quoteID), nil, &methods); err != nil {
		return nil, fmt.Errorf("listing payment methods for cart %d: %w", quoteID, err)
	}
	return methods, nil
}

type paymentMethodInput struct {
	Method   string `json:"method"`
	PONumber string `json:"po_number,omitempty"`
}

type selectedPaymentRequest struct {
	Method paymentMethodInput `json:"method"`
}

// SetPaymentMethod selects the payment method for the cart. poNumber is only
// sent when non-empty, for purchase-order payments.
func (c *Client) SetPaymentMethod(ctx context.Context, quoteID int, method, poNumber string) (string, error) {
	body := selectedPaymentRequest{Method: paymentMethodInput{Method: method, PONumber: poNumber}}

	var id entityID
	path := fmt.Sprintf("carts/%d/selected-payment-method", quoteID)
	if err := c.put(ctx, path, body, &id); err != nil {
		return "", fmt.Errorf("setting payment method %s on cart %d: %w", method, quoteID, err)
	}
	return strconv.Itoa(int(id)), nil
}

// PlaceOrderOptions controls how a cart is turned into an order.
type PlaceOrderOptions struct {
	PaymentMethod string
	PONumber      string
	// Virtual marks the resulting order as containing no shippable goods.
	Virtual bool
}

type placeOrderRequest struct {
	PaymentMethod paymentMethodInput `json:"paymentMethod"`
}

type virtualOrderEntity struct {
	EntityID  int `json:"entity_id"`
	IsVirtual int `json:"is_virtual"`
}

type orderEntityRequest struct {
	Entity virtualOrderEntity `json:"entity"`
}

// PlaceOrder converts the cart into an order and returns the order id. When
// opts.Virtual is set, a second call flags the order as virtual.
func (c *Client) PlaceOrder(ctx context.Context, quoteID int, opts PlaceOrderOptions) (int, error) {
	if opts.PaymentMethod == "" {
		return 0, fmt.Errorf("%w: payment method is required", ErrValidation)
	}

	body := placeOrderRequest{PaymentMethod: paymentMethodInput{
		Method:   opts.PaymentMethod,
		PONumber: opts.PONumber,
	}}

	var orderID entityID
	if err := c.put(ctx, fmt.Sprintf("carts/%d/order", quoteID), body, &orderID); err != nil {
		return 0, fmt.Errorf("placing order for cart %d: %w", quoteID, err)
	}

	if !opts.Virtual {
		return int(orderID), nil
	}

	mark := orderEntityRequest{Entity: virtualOrderEntity{EntityID: int(orderID), IsVirtual: 1}}
	if err := c.post(ctx, "orders", mark, nil); err != nil {
		return int(orderID), fmt.Errorf("marking order %d virtual: %w", orderID, err)
	}
	return int(orderID), nil
}

// LineItem is a SKU and quantity to add to a cart.
type LineItem struct {
	SKU string
	Qty int
}

// CheckoutRequest describes a complete checkout for a customer.
type CheckoutRequest struct {
	Customer    *Customer
	Items       []LineItem
	CarrierCode string
	MethodCode  string
	// PaymentMethod is required, e.g. "checkmo".
	PaymentMethod string
	PONumber      string
	Virtual       bool
}

// CheckoutResult reports the ids produced by Checkout.
type CheckoutResult struct {
	QuoteID         int
	OrderID         int
	ShippingMethods []ShippingMethod
	PaymentDetails  *PaymentDetails
}

// Checkout runs the full cart flow: create a cart, add the items, estimate
// shipping, set shipping and billing information, select the payment method
// and place the order. Address resolution and input checks happen before the
// first call. Carrier and method are given together or not at all; when
// neither is given, the first available estimated method is used.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if req.Customer == nil {
		return nil, fmt.Errorf("%w: customer is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	if (req.CarrierCode == "") != (req.MethodCode == "") {
		return nil, fmt.Errorf("%w: carrier code and method code must be given together", ErrValidation)
	}
	if _, err := FindDefaultShippingAddress(req.Customer); err != nil {
		return nil, err
	}
	if _, err := FindDefaultBillingAddress(req.Customer); err != nil {
		return nil, err
	}

	quoteID, err := c.CreateCart(ctx, req.Customer.ID)
	if err != nil {
		return nil, err
	}
	result := &CheckoutResult{QuoteID: quoteID}

	for _, item := range req.Items {
		if _, err := c.AddProductToCart(ctx, quoteID, item.SKU, item.Qty); err != nil {
			return result, err
		}
	}

	result.ShippingMethods, err = c.EstimateShippingMethods(ctx, req.Customer, quoteID)
	if err != nil {
		return result, err
	}

	carrier, method := req.CarrierCode, req.MethodCode
	if carrier == "" && method == "" {
		chosen, err := firstAvailable(result.ShippingMethods)
		if err != nil {
			return result, fmt.Errorf("choosing shipping method for cart %d: %w", quoteID, err)
		}
		carrier, method = chosen.CarrierCode, chosen.MethodCode
	}

	result.PaymentDetails, err = c.AddShippingInformation(ctx, req.Customer, quoteID, carrier, method)
	if err != nil {
		return result, err
	}

	if _, err := c.SetPaymentMethod(ctx, quoteID, req.PaymentMethod, req.PONumber); err != nil {
		return result, err
	}

	result.OrderID, err = c.PlaceOrder(ctx, quoteID, PlaceOrderOptions{
		PaymentMethod: req.PaymentMethod,
		PONumber:      req.PONumber,
		Virtual:       req.Virtual,
	})
	if err != nil {
		return result, err
	}

	return result, nil
}

func firstAvailable(methods []ShippingMethod) (*ShippingMethod, error) {
	for i := range methods {
		if methods[i].Available {
			return &methods[i], nil
		}
	}
	return nil, errors.New("no shipping method available")
}
