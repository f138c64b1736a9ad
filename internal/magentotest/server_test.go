package magentotest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func login(t *testing.T, h http.Handler, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/rest/V1/integration/admin/token", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		username   string
		password   string
		wantStatus int
		wantLogins int
	}{
		{
			name:       "valid credentials",
			username:   DefaultUsername,
			password:   DefaultPassword,
			wantStatus: http.StatusOK,
			wantLogins: 1,
		},
		{
			name:       "wrong password",
			username:   DefaultUsername,
			password:   "nope",
			wantStatus: http.StatusUnauthorized,
			wantLogins: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New()
			rec := login(t, s.Handler(), tt.username, tt.password)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLogins, s.LoginCount())
		})
	}
}

func TestServer_RequiresToken(t *testing.T) {
	t.Parallel()

	s := New()
	id := s.AddCustomer(magento.Customer{Email: "a@example.com"})
	h := s.Handler()

	req := httptest.NewRequest(http.MethodGet, "/rest/V1/customers/1", http.NoBody)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var token string
	require.NoError(t, json.NewDecoder(login(t, h, DefaultUsername, DefaultPassword).Body).Decode(&token))

	req = httptest.NewRequest(http.MethodGet, "/rest/V1/customers/1", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got magento.Customer
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "a@example.com", got.Email)
}

func TestLoadSeed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"customers": [{"id": 99, "email": "seeded@example.com"}],
		"products": [{"sku": "SKU-1", "name": "Seeded"}]
	}`), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)

	s := New()
	s.Apply(seed)

	p, ok := s.Product("SKU-1")
	require.True(t, ok)
	assert.Equal(t, "Seeded", p.Name)

	s.mu.Lock()
	defer s.mu.Unlock()
	require.Len(t, s.customers, 1)
	for id, c := range s.customers {
		assert.NotEqual(t, 99, id)
		assert.Equal(t, "seeded@example.com", c.Email)
	}
}

func TestLoadSeed_Errors(t *testing.T) {
	t.Parallel()

	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading seed")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
	_, err = LoadSeed(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing seed")
}
