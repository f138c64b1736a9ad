package magento_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ptchr/magento2-rest-client/internal/magentotest"
	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

const testToken = "test-token"

// newTestClient starts a server that issues testToken and passes every other
// request to h.
func newTestClient(t *testing.T, h http.HandlerFunc, opts ...magento.Option) *magento.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /rest/V1/integration/admin/token", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`"` + testToken + `"`))
	})
	mux.Handle("/", h)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return magento.New(srv.URL, "admin", "secret", opts...)
}

// newFakeClient starts the in-memory Magento fake and returns a client
// logged in with its default credentials.
func newFakeClient(t *testing.T, opts ...magento.Option) (*magento.Client, *magentotest.Server) {
	t.Helper()

	fake := magentotest.New()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	c := magento.New(srv.URL, magentotest.DefaultUsername, magentotest.DefaultPassword, opts...)
	return c, fake
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// testCustomer returns a customer with one address flagged as both default
// shipping and default billing.
func testCustomer() magento.Customer {
	return magento.Customer{
		Email:     "jane@example.com",
		Firstname: "Jane",
		Lastname:  "Doe",
		Addresses: []magento.Address{
			{
				Region:          &magento.Region{Region: "Texas", RegionCode: "TX", RegionID: 57},
				CountryID:       "US",
				Street:          []string{"1 Main St"},
				Telephone:       "555-0100",
				Postcode:        "78701",
				City:            "Austin",
				Firstname:       "Jane",
				Lastname:        "Doe",
				DefaultShipping: true,
				DefaultBilling:  true,
			},
		},
	}
}
