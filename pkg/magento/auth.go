package magento

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ptchr/magento2-rest-client/internal/metrics"
)

const (
	adminTokenPath = "/rest/V1/integration/admin/token"

	// DefaultTokenTTL is how long an admin token is reused before the next
	// call requests a new one.
	DefaultTokenTTL = 4 * time.Hour
)

// AdminTokenProvider implements TokenProvider using the Magento admin
// integration token endpoint. The token is fetched lazily on first use and
// re-requested by the first call made after the TTL has elapsed. Safe for
// concurrent use: stale-check and refresh happen under a single mutex, so
// concurrent callers trigger at most one login.
type AdminTokenProvider struct {
	baseURL  string
	username string
	password string
	ttl      time.Duration
	client   *http.Client
	logger   *slog.Logger

	mu       sync.Mutex
	token    string
	issuedAt time.Time
	nowFunc  func() time.Time // for testing
}

// TokenOption configures the AdminTokenProvider.
type TokenOption func(*AdminTokenProvider)

// WithTokenTTL overrides the default token freshness window.
func WithTokenTTL(d time.Duration) TokenOption {
	return func(p *AdminTokenProvider) {
		if d > 0 {
			p.ttl = d
		}
	}
}

// WithTokenHTTPClient overrides the HTTP client used for login calls.
func WithTokenHTTPClient(c *http.Client) TokenOption {
	return func(p *AdminTokenProvider) {
		p.client = c
	}
}

// WithTokenLogger sets the logger.
func WithTokenLogger(l *slog.Logger) TokenOption {
	return func(p *AdminTokenProvider) {
		p.logger = l
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) TokenOption {
	return func(p *AdminTokenProvider) {
		p.nowFunc = f
	}
}

// NewAdminTokenProvider creates a token provider for the admin user on the
// Magento instance at baseURL. No network call is made until Token is called.
func NewAdminTokenProvider(
	baseURL, username, password string,
	opts ...TokenOption,
) *AdminTokenProvider {
	p := &AdminTokenProvider{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		ttl:      DefaultTokenTTL,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   discardLogger(),
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type adminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token returns the cached admin token, logging in again when no token is
// cached or the cached one is older than the TTL.
func (p *AdminTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && !p.nowFunc().After(p.issuedAt.Add(p.ttl)) {
		return p.token, nil
	}

	return p.refreshLocked(ctx)
}

// IssuedAt returns when the cached token was obtained. It is the zero time
// before the first successful login.
func (p *AdminTokenProvider) IssuedAt() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.issuedAt
}

func (p *AdminTokenProvider) refreshLocked(ctx context.Context) (string, error) {
	metrics.TokenRefreshesTotal.Inc()

	token, err := p.login(ctx)
	if err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", err
	}

	p.token = token
	p.issuedAt = p.nowFunc()
	p.logger.DebugContext(ctx, "obtained admin token",
		"username", p.username,
		"expires_at", p.issuedAt.Add(p.ttl),
	)

	return p.token, nil
}

func (p *AdminTokenProvider) login(ctx context.Context) (string, error) {
	payload, err := json.Marshal(adminCredentials{Username: p.username, Password: p.password})
	if err != nil {
		return "", fmt.Errorf("marshaling credentials: %w", err)
	}

	u := p.baseURL + adminTokenPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("token request failed: %w",
			newAPIError(http.MethodPost, u, resp.StatusCode, body))
	}

	token := strings.TrimSpace(strings.ReplaceAll(string(body), `"`, ""))
	if token == "" {
		return "", errors.New("token request returned an empty token")
	}

	return token, nil
}
