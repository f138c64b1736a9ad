package magentotest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

// Seed is fixture data loaded into a Server.
type Seed struct {
	Customers []magento.Customer `json:"customers"`
	Products  []magento.Product  `json:"products"`
}

// LoadSeed reads a JSON seed file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path) //nolint:gosec // seed path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading seed: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	return &seed, nil
}

// Apply adds the seed's customers and products. Customer ids are reassigned.
func (s *Server) Apply(seed *Seed) {
	for _, c := range seed.Customers {
		s.AddCustomer(c)
	}
	for _, p := range seed.Products {
		s.AddProduct(p)
	}
}
