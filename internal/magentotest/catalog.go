package magentotest

import (
	"encoding/base64"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func (s *Server) sortedProducts() []magento.Product {
	out := make([]magento.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	sc := ParseCriteria(r.URL.Query())

	s.mu.Lock()
	items, total := search(s.sortedProducts(), sc)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"items":           items,
		"search_criteria": sc,
		"total_count":     total,
	})
}

func (s *Server) handleCreateMedia(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Entry magento.MediaGalleryEntry `json:"entry"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	entry := body.Entry
	if entry.Content == nil {
		writeError(w, http.StatusBadRequest, "The image content must be valid base64 encoded data.", nil)
		return
	}
	if _, err := base64.StdEncoding.DecodeString(entry.Content.Base64EncodedData); err != nil {
		writeError(w, http.StatusBadRequest, "The image content must be valid base64 encoded data.", nil)
		return
	}
	if !strings.HasPrefix(entry.Content.Type, "image/") {
		writeError(w, http.StatusBadRequest, "The image MIME type is not valid or not supported.", nil)
		return
	}

	sku := r.PathValue("sku")

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.products[sku]
	if !found {
		writeError(w, http.StatusNotFound,
			"The product that was requested doesn't exist. Verify the product and try again.", nil)
		return
	}

	entry.ID = s.allocID()
	entry.File = "/" + path.Base(entry.Content.Name)
	entry.Content = nil
	p.MediaGalleryEntries = append(p.MediaGalleryEntries, entry)

	writeJSON(w, http.StatusOK, strconv.Itoa(entry.ID))
}

func (s *Server) handleDeleteMedia(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")
	entryID, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, found := s.products[sku]
	if !found {
		writeError(w, http.StatusNotFound,
			"The product that was requested doesn't exist. Verify the product and try again.", nil)
		return
	}
	for i, e := range p.MediaGalleryEntries {
		if e.ID == entryID {
			p.MediaGalleryEntries = append(p.MediaGalleryEntries[:i], p.MediaGalleryEntries[i+1:]...)
			writeJSON(w, http.StatusOK, true)
			return
		}
	}
	writeError(w, http.StatusNotFound, "No image with the provided ID was found. Verify the ID and try again.", nil)
}

func (s *Server) handleWebsites(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.websites)
}

func (s *Server) handleStoreViews(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.storeViews)
}

func (s *Server) handleStoreGroups(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.groups)
}
