package magentotest

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func (s *Server) sortedOrders() []magento.Order {
	out := make([]magento.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })
	return out
}

// orderLocked returns the order for the request, writing a 404 when missing.
// Callers hold s.mu.
func (s *Server) orderLocked(w http.ResponseWriter, r *http.Request) (*magento.Order, bool) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, false
	}
	o, found := s.orders[id]
	if !found {
		writeError(w, http.StatusNotFound, "The entity that was requested doesn't exist. Verify the entity and try again.", nil)
		return nil, false
	}
	return o, true
}

func touch(o *magento.Order) {
	o.UpdatedAt = time.Now().UTC().Format(time.DateTime)
}

func (s *Server) handleSearchOrders(w http.ResponseWriter, r *http.Request) {
	sc := ParseCriteria(r.URL.Query())

	s.mu.Lock()
	items, total := search(s.sortedOrders(), sc)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"items":           items,
		"search_criteria": sc,
		"total_count":     total,
	})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orderLocked(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// handleUpdateOrder applies the subset of an order entity the client sends
// when flagging an order as virtual.
func (s *Server) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Entity struct {
			EntityID  int  `json:"entity_id"`
			IsVirtual *int `json:"is_virtual"`
		} `json:"entity"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, found := s.orders[body.Entity.EntityID]
	if !found {
		writeError(w, http.StatusNotFound, "The entity that was requested doesn't exist. Verify the entity and try again.", nil)
		return
	}
	if body.Entity.IsVirtual != nil {
		o.IsVirtual = *body.Entity.IsVirtual
		for i := range o.Items {
			o.Items[i].IsVirtual = o.IsVirtual
		}
	}
	touch(o)
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orderLocked(w, r)
	if !ok {
		return
	}
	if o.State == "complete" || o.State == "canceled" {
		writeJSON(w, http.StatusOK, false)
		return
	}
	o.State, o.Status = "canceled", "canceled"
	touch(o)
	writeJSON(w, http.StatusOK, true)
}

func (s *Server) handleOrderComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StatusHistory struct {
			Comment string `json:"comment"`
			Status  string `json:"status"`
		} `json:"statusHistory"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orderLocked(w, r)
	if !ok {
		return
	}
	s.comments[o.EntityID] = append(s.comments[o.EntityID], body.StatusHistory.Comment)
	if body.StatusHistory.Status != "" {
		o.Status = body.StatusHistory.Status
	}
	touch(o)
	writeJSON(w, http.StatusOK, true)
}

func (s *Server) handleInvoice(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orderLocked(w, r)
	if !ok {
		return
	}
	if o.State != "new" {
		writeError(w, http.StatusBadRequest, "The order does not allow an invoice to be created.", nil)
		return
	}
	o.State, o.Status = "processing", "processing"
	touch(o)
	writeJSON(w, http.StatusOK, strconv.Itoa(s.allocID()))
}

func (s *Server) handleShip(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orderLocked(w, r)
	if !ok {
		return
	}
	if o.State == "canceled" || o.State == "complete" {
		writeError(w, http.StatusBadRequest, "Shipment Document Validation Error(s):\nThe order does not allow a shipment to be created.", nil)
		return
	}
	if o.State == "processing" {
		o.State, o.Status = "complete", "complete"
	} else {
		o.State, o.Status = "processing", "processing"
	}
	touch(o)
	writeJSON(w, http.StatusOK, strconv.Itoa(s.allocID()))
}
