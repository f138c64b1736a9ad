package magento_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

// tokenHandler serves the admin token endpoint, counting logins.
func tokenHandler(calls *atomic.Int32, token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/V1/integration/admin/token" {
			http.NotFound(w, r)
			return
		}
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, "%q", token)
	}
}

func TestAdminTokenProvider_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantToken  string
		wantStatus int
		errContain string
	}{
		{
			name: "successful login strips quotes",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`"abc123token"`))
			},
			wantToken: "abc123token",
		},
		{
			name: "trailing whitespace is trimmed",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("\"tok\"\n"))
			},
			wantToken: "tok",
		},
		{
			name: "bad credentials",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"The account sign-in was incorrect."}`))
			},
			wantErr:    true,
			wantStatus: http.StatusUnauthorized,
			errContain: "The account sign-in was incorrect.",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			wantStatus: http.StatusInternalServerError,
			errContain: "status 500",
		},
		{
			name: "empty token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`""`))
			},
			wantErr:    true,
			errContain: "empty token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			provider := magento.NewAdminTokenProvider(srv.URL, "admin", "secret")

			token, err := provider.Token(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				assert.Equal(t, tt.wantStatus, magento.StatusCode(err))
				assert.True(t, provider.IssuedAt().IsZero())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestAdminTokenProvider_SendsCredentials(t *testing.T) {
	t.Parallel()

	var got struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/V1/integration/admin/token", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`"tok"`))
	}))
	defer srv.Close()

	provider := magento.NewAdminTokenProvider(srv.URL+"/", "admin", "s3cret")
	_, err := provider.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, "s3cret", got.Password)
}

func TestAdminTokenProvider_TokenCaching(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(tokenHandler(&calls, "cached-token"))
	defer srv.Close()

	provider := magento.NewAdminTokenProvider(srv.URL, "admin", "secret")

	// Construction does not log in.
	assert.Equal(t, int32(0), calls.Load())

	token1, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached-token", token1)
	assert.Equal(t, int32(1), calls.Load())

	token2, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached-token", token2)
	assert.Equal(t, int32(1), calls.Load())
}

func TestAdminTokenProvider_Freshness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		elapsed   time.Duration
		wantCalls int32
	}{
		{name: "reused just before TTL", elapsed: 3*time.Hour + 59*time.Minute, wantCalls: 1},
		{name: "reused exactly at TTL", elapsed: 4 * time.Hour, wantCalls: 1},
		{name: "refreshed after TTL", elapsed: 4*time.Hour + time.Minute, wantCalls: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(tokenHandler(&calls, "tok"))
			defer srv.Close()

			start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
			var mu sync.Mutex
			current := start

			provider := magento.NewAdminTokenProvider(srv.URL, "admin", "secret",
				magento.WithNowFunc(func() time.Time {
					mu.Lock()
					defer mu.Unlock()
					return current
				}),
			)

			_, err := provider.Token(context.Background())
			require.NoError(t, err)
			assert.Equal(t, start, provider.IssuedAt())

			mu.Lock()
			current = start.Add(tt.elapsed)
			mu.Unlock()

			_, err = provider.Token(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestAdminTokenProvider_CustomTTL(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(tokenHandler(&calls, "tok"))
	defer srv.Close()

	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	current := start

	provider := magento.NewAdminTokenProvider(srv.URL, "admin", "secret",
		magento.WithTokenTTL(time.Minute),
		magento.WithNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return current
		}),
	)

	_, err := provider.Token(context.Background())
	require.NoError(t, err)

	mu.Lock()
	current = start.Add(2 * time.Minute)
	mu.Unlock()

	_, err = provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAdminTokenProvider_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		_, _ = w.Write([]byte(`"concurrent-token"`))
	}))
	defer srv.Close()

	provider := magento.NewAdminTokenProvider(srv.URL, "admin", "secret")

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := provider.Token(context.Background())
			if err != nil {
				errs <- err
				return
			}
			if token != "concurrent-token" {
				errs <- errors.New("unexpected token " + token)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestAdminTokenProvider_FailedRefreshKeepsNoToken(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	fail.Store(true)
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`"tok"`))
	}))
	defer srv.Close()

	provider := magento.NewAdminTokenProvider(srv.URL, "admin", "secret")

	_, err := provider.Token(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, magento.StatusCode(err))

	fail.Store(false)
	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
	assert.Equal(t, int32(2), calls.Load())
}
