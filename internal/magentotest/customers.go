package magentotest

import (
	"net/http"
	"sort"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

type customerBody struct {
	Customer magento.Customer `json:"customer"`
	Password string           `json:"password"`
}

func (s *Server) sortedCustomers() []magento.Customer {
	out := make([]magento.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) handleSearchCustomers(w http.ResponseWriter, r *http.Request) {
	sc := ParseCriteria(r.URL.Query())

	s.mu.Lock()
	items, total := search(s.sortedCustomers(), sc)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"items":           items,
		"search_criteria": sc,
		"total_count":     total,
	})
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body customerBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Customer.Email == "" {
		writeError(w, http.StatusBadRequest, `"%fieldName" is required. Enter and try again.`,
			map[string]string{"fieldName": "email"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Email == body.Customer.Email {
			writeError(w, http.StatusBadRequest,
				"A customer with the same email address already exists in an associated website.", nil)
			return
		}
	}

	c := body.Customer
	c.ID = s.allocID()
	if c.WebsiteID == 0 {
		c.WebsiteID = 1
	}
	if c.StoreID == 0 {
		c.StoreID = 1
	}
	s.customers[c.ID] = &c
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	c, found := s.customers[id]
	var out magento.Customer
	if found {
		out = *c
	}
	s.mu.Unlock()

	if !found {
		notFound(w, "customerId", id)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body customerBody
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.customers[id]; !found {
		notFound(w, "customerId", id)
		return
	}
	c := body.Customer
	c.ID = id
	s.customers[id] = &c
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.customers[id]; !found {
		notFound(w, "customerId", id)
		return
	}
	delete(s.customers, id)
	writeJSON(w, http.StatusOK, true)
}

func (s *Server) handleCreateCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, found := s.customers[id]; !found {
		notFound(w, "customerId", id)
		return
	}
	quoteID := s.allocID()
	s.carts[quoteID] = &cart{id: quoteID, customerID: id}
	writeJSON(w, http.StatusOK, quoteID)
}
