package magentotest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

const flatRatePerItem = 5.0

var paymentMethods = []magento.PaymentMethod{
	{Code: "checkmo", Title: "Check / Money order"},
	{Code: "purchaseorder", Title: "Purchase Order"},
}

// cartLocked returns the cart for the request, writing a 404 when missing.
// Callers hold s.mu.
func (s *Server) cartLocked(w http.ResponseWriter, r *http.Request) (*cart, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}
	c, found := s.carts[id]
	if !found {
		notFound(w, "cartId", id)
		return nil, false
	}
	if c.orderID != 0 {
		writeError(w, http.StatusNotFound, "The quote is no longer active.", nil)
		return nil, false
	}
	return c, true
}

func (c *cart) qty() float64 {
	var n float64
	for _, it := range c.items {
		n += it.Qty
	}
	return n
}

func (c *cart) subtotal() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Price * it.Qty
	}
	return sum
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CartItem magento.CartItem `json:"cartItem"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cartLocked(w, r)
	if !ok {
		return
	}
	p, found := s.products[body.CartItem.SKU]
	if !found {
		writeError(w, http.StatusNotFound,
			"The product that was requested doesn't exist. Verify the product and try again.", nil)
		return
	}
	if body.CartItem.Qty <= 0 {
		writeError(w, http.StatusBadRequest, "The quantity must be greater than zero.", nil)
		return
	}

	for i := range c.items {
		if c.items[i].SKU == p.SKU {
			c.items[i].Qty += body.CartItem.Qty
			writeJSON(w, http.StatusOK, c.items[i])
			return
		}
	}

	item := magento.CartItem{
		ItemID:      s.allocID(),
		SKU:         p.SKU,
		Qty:         body.CartItem.Qty,
		Name:        p.Name,
		Price:       p.Price,
		ProductType: p.TypeID,
		QuoteID:     strconv.Itoa(c.id),
	}
	c.items = append(c.items, item)
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) shippingMethods(c *cart) []magento.ShippingMethod {
	amount := flatRatePerItem * c.qty()
	return []magento.ShippingMethod{
		{
			CarrierCode:  "flatrate",
			MethodCode:   "flatrate",
			CarrierTitle: "Flat Rate",
			MethodTitle:  "Fixed",
			Amount:       amount,
			BaseAmount:   amount,
			Available:    true,
			PriceExclTax: amount,
			PriceInclTax: amount,
		},
		{
			CarrierCode:  "freeshipping",
			MethodCode:   "freeshipping",
			CarrierTitle: "Free Shipping",
			MethodTitle:  "Free",
			Available:    false,
			ErrorMessage: "This shipping method is not available.",
		},
	}
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Address *magento.CartAddress `json:"address"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cartLocked(w, r)
	if !ok {
		return
	}
	if body.Address == nil || body.Address.CountryID == "" {
		writeError(w, http.StatusBadRequest, `"%fieldName" is required. Enter and try again.`,
			map[string]string{"fieldName": "country_id"})
		return
	}
	writeJSON(w, http.StatusOK, s.shippingMethods(c))
}

func (s *Server) handleShippingInformation(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AddressInformation struct {
			ShippingAddress     *magento.CartAddress `json:"shippingAddress"`
			BillingAddress      *magento.CartAddress `json:"billingAddress"`
			ShippingMethodCode  string               `json:"shipping_method_code"`
			ShippingCarrierCode string               `json:"shipping_carrier_code"`
		} `json:"addressInformation"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	info := body.AddressInformation

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cartLocked(w, r)
	if !ok {
		return
	}
	if info.ShippingAddress == nil || info.BillingAddress == nil {
		writeError(w, http.StatusBadRequest, "The shipping address is missing. Set the address and try again.", nil)
		return
	}

	var chosen *magento.ShippingMethod
	methods := s.shippingMethods(c)
	for i := range methods {
		if methods[i].CarrierCode == info.ShippingCarrierCode &&
			methods[i].MethodCode == info.ShippingMethodCode && methods[i].Available {
			chosen = &methods[i]
		}
	}
	if chosen == nil {
		writeError(w, http.StatusBadRequest,
			"Carrier with such method not found: %1, %2",
			[]string{info.ShippingCarrierCode, info.ShippingMethodCode})
		return
	}

	c.shipping = info.ShippingAddress
	c.billing = info.BillingAddress
	c.carrierCode = info.ShippingCarrierCode
	c.methodCode = info.ShippingMethodCode

	subtotal := c.subtotal()
	writeJSON(w, http.StatusOK, magento.PaymentDetails{
		PaymentMethods: paymentMethods,
		Totals: magento.CartTotals{
			GrandTotal:        subtotal + chosen.Amount,
			Subtotal:          subtotal,
			ShippingAmount:    chosen.Amount,
			ItemsQty:          c.qty(),
			QuoteCurrencyCode: "USD",
		},
	})
}

func (s *Server) handlePaymentMethods(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cartLocked(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, paymentMethods)
}

type paymentBody struct {
	Method   string `json:"method"`
	PONumber string `json:"po_number"`
}

func validPayment(w http.ResponseWriter, p paymentBody) bool {
	for _, m := range paymentMethods {
		if m.Code != p.Method {
			continue
		}
		if m.Code == "purchaseorder" && p.PONumber == "" {
			writeError(w, http.StatusBadRequest, "Purchase order number is a required field.", nil)
			return false
		}
		return true
	}
	writeError(w, http.StatusBadRequest, "The requested Payment Method is not available.", nil)
	return false
}

func (s *Server) handleSelectPayment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Method paymentBody `json:"method"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cartLocked(w, r)
	if !ok || !validPayment(w, body.Method) {
		return
	}
	c.paymentMethod = body.Method.Method
	writeJSON(w, http.StatusOK, strconv.Itoa(c.id))
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentMethod paymentBody `json:"paymentMethod"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cartLocked(w, r)
	if !ok || !validPayment(w, body.PaymentMethod) {
		return
	}
	if len(c.items) == 0 {
		writeError(w, http.StatusBadRequest, "Cannot place an order for an empty cart.", nil)
		return
	}
	if c.shipping == nil {
		writeError(w, http.StatusBadRequest,
			"The shipping method is missing. Select the shipping method and try again.", nil)
		return
	}

	customer := s.customers[c.customerID]
	now := time.Now().UTC().Format(time.DateTime)
	order := &magento.Order{
		EntityID:          s.allocID(),
		QuoteID:           c.id,
		State:             "new",
		Status:            "pending",
		CustomerID:        c.customerID,
		Subtotal:          c.subtotal(),
		GrandTotal:        c.subtotal() + flatRatePerItem*c.qty(),
		OrderCurrencyCode: "USD",
		TotalItemCount:    len(c.items),
		TotalQtyOrdered:   c.qty(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	order.IncrementID = strconv.Itoa(100000000 + order.EntityID)
	if customer != nil {
		order.CustomerEmail = customer.Email
		order.CustomerFirstname = customer.Firstname
		order.CustomerLastname = customer.Lastname
	}
	for _, it := range c.items {
		order.Items = append(order.Items, magento.OrderItem{
			ItemID:      it.ItemID,
			SKU:         it.SKU,
			Name:        it.Name,
			QtyOrdered:  it.Qty,
			Price:       it.Price,
			ProductType: it.ProductType,
		})
	}

	s.orders[order.EntityID] = order
	c.orderID = order.EntityID
	c.paymentMethod = body.PaymentMethod.Method

	writeJSON(w, http.StatusOK, strconv.Itoa(order.EntityID))
}
