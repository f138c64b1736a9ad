// Package magentotest implements an in-memory fake of the Magento 2 REST API
// covering the endpoints used by pkg/magento. It backs the client's
// end-to-end tests and the local mock server.
package magentotest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

// Default admin credentials accepted by a new Server.
const (
	DefaultUsername = "admin"
	DefaultPassword = "admin123"
)

type cart struct {
	id            int
	customerID    int
	items         []magento.CartItem
	shipping      *magento.CartAddress
	billing       *magento.CartAddress
	carrierCode   string
	methodCode    string
	paymentMethod string
	orderID       int
}

// Server is a fake Magento backend. The zero value is not usable; create
// one with New.
type Server struct {
	username string
	password string
	logger   *slog.Logger

	logins atomic.Int32

	mu         sync.Mutex
	nextID     int
	tokens     map[string]bool
	customers  map[int]*magento.Customer
	carts      map[int]*cart
	orders     map[int]*magento.Order
	comments   map[int][]string
	products   map[string]*magento.Product
	websites   []magento.Website
	storeViews []magento.StoreView
	groups     []magento.StoreGroup
}

// Option configures the Server.
type Option func(*Server)

// WithCredentials overrides the accepted admin credentials.
func WithCredentials(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// New creates a fake seeded with one website, the admin and default store
// views, one store group and the checkmo/flatrate setup a stock install has.
func New(opts ...Option) *Server {
	s := &Server{
		username:  DefaultUsername,
		password:  DefaultPassword,
		logger:    slog.New(slog.DiscardHandler),
		nextID:    1,
		tokens:    map[string]bool{},
		customers: map[int]*magento.Customer{},
		carts:     map[int]*cart{},
		orders:    map[int]*magento.Order{},
		comments:  map[int][]string{},
		products:  map[string]*magento.Product{},
		websites: []magento.Website{
			{ID: 0, Code: "admin", Name: "Admin", DefaultGroupID: 0},
			{ID: 1, Code: "base", Name: "Main Website", DefaultGroupID: 1},
		},
		storeViews: []magento.StoreView{
			{ID: 0, Code: "admin", Name: "Admin", WebsiteID: 0, StoreGroupID: 0, IsActive: 1},
			{ID: 1, Code: "default", Name: "Default Store View", WebsiteID: 1, StoreGroupID: 1, IsActive: 1},
		},
		groups: []magento.StoreGroup{
			{ID: 0, WebsiteID: 0, Name: "Default", Code: "default"},
			{ID: 1, WebsiteID: 1, RootCategoryID: 2, DefaultStoreID: 1, Name: "Main Website Store", Code: "main_website_store"},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoginCount returns how many successful admin logins were served.
func (s *Server) LoginCount() int {
	return int(s.logins.Load())
}

// AddCustomer stores a customer and returns its assigned id.
func (s *Server) AddCustomer(c magento.Customer) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.allocID()
	s.customers[c.ID] = &c
	return c.ID
}

// AddProduct stores a product, assigning an id when it has none.
func (s *Server) AddProduct(p magento.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.allocID()
	}
	s.products[p.SKU] = &p
}

// Product returns a copy of the stored product.
func (s *Server) Product(sku string) (magento.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[sku]
	if !ok {
		return magento.Product{}, false
	}
	return *p, true
}

// Order returns a copy of the stored order.
func (s *Server) Order(id int) (magento.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return magento.Order{}, false
	}
	return *o, true
}

// Comments returns the status-history comments recorded for an order.
func (s *Server) Comments(orderID int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.comments[orderID]...)
}

func (s *Server) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

// Handler returns the HTTP handler serving the fake API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /rest/V1/integration/admin/token", s.handleToken)

	api := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, s.requireToken(h))
	}

	api("GET /rest/V1/customers/search", s.handleSearchCustomers)
	api("POST /rest/V1/customers", s.handleCreateCustomer)
	api("GET /rest/V1/customers/{id}", s.handleGetCustomer)
	api("PUT /rest/V1/customers/{id}", s.handleUpdateCustomer)
	api("DELETE /rest/V1/customers/{id}", s.handleDeleteCustomer)
	api("POST /rest/V1/customers/{id}/carts", s.handleCreateCart)

	api("POST /rest/V1/carts/{id}/items", s.handleAddItem)
	api("POST /rest/V1/carts/{id}/estimate-shipping-methods", s.handleEstimate)
	api("POST /rest/V1/carts/{id}/shipping-information", s.handleShippingInformation)
	api("GET /rest/V1/carts/{id}/payment-methods", s.handlePaymentMethods)
	api("PUT /rest/V1/carts/{id}/selected-payment-method", s.handleSelectPayment)
	api("PUT /rest/V1/carts/{id}/order", s.handlePlaceOrder)

	api("GET /rest/V1/orders", s.handleSearchOrders)
	api("POST /rest/V1/orders", s.handleUpdateOrder)
	api("GET /rest/V1/orders/{id}", s.handleGetOrder)
	api("POST /rest/V1/orders/{id}/cancel", s.handleCancelOrder)
	api("POST /rest/V1/orders/{id}/comments", s.handleOrderComment)
	api("POST /rest/V1/order/{id}/invoice", s.handleInvoice)
	api("POST /rest/V1/order/{id}/ship", s.handleShip)

	api("GET /rest/V1/products", s.handleSearchProducts)
	api("POST /rest/all/V1/products/{sku}/media", s.handleCreateMedia)
	api("DELETE /rest/all/V1/products/{sku}/media/{entryID}", s.handleDeleteMedia)

	api("GET /rest/all/V1/store/websites", s.handleWebsites)
	api("GET /rest/all/V1/store/storeViews", s.handleStoreViews)
	api("GET /rest/all/V1/store/storeGroups", s.handleStoreGroups)

	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", r.Header.Get("X-Request-ID"),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) requireToken(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		valid := ok && s.tokens[token]
		s.mu.Unlock()
		if !valid {
			writeError(w, http.StatusUnauthorized,
				"The consumer isn't authorized to access %resources.",
				map[string]string{"resources": "Magento_Backend::admin"})
			return
		}
		next(w, r)
	})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if creds.Username != s.username || creds.Password != s.password {
		writeError(w, http.StatusUnauthorized,
			"The account sign-in was incorrect or your account is disabled temporarily. "+
				"Please wait and try again later.", nil)
		return
	}

	n := s.logins.Add(1)
	token := fmt.Sprintf("fake-admin-token-%d", n)

	s.mu.Lock()
	s.tokens[token] = true
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, token)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in fake server
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, params any) {
	body := map[string]any{"message": message}
	if params != nil {
		body["parameters"] = params
	}
	writeJSON(w, status, body)
}

func notFound(w http.ResponseWriter, field string, value any) {
	writeError(w, http.StatusNotFound,
		"No such entity with %fieldName = %fieldValue",
		map[string]any{"fieldName": field, "fieldValue": value})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid %1 value", []string{name})
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Decoding error: %1", []string{err.Error()})
		return false
	}
	return true
}
