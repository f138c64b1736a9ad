// Package magento provides a typed client for the Magento 2 REST API covering
// customers, carts and checkout, orders, the product catalog and store
// structure. Calls authenticate with an admin integration token that is
// obtained lazily and renewed once it is older than its TTL.
package magento

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ptchr/magento2-rest-client/internal/metrics"
)

const tracerName = "github.com/ptchr/magento2-rest-client/pkg/magento"

//go:generate mockery --config ../../.mockery.yaml

// TokenProvider defines the interface for obtaining bearer tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Scope selects the REST path prefix a call is made under.
type Scope int

const (
	// ScopeDefault addresses the default store view: /rest/V1/.
	ScopeDefault Scope = iota
	// ScopeAllStoreViews addresses all store views at once: /rest/all/V1/.
	ScopeAllStoreViews
)

func (s Scope) prefix() string {
	if s == ScopeAllStoreViews {
		return "/rest/all/V1/"
	}
	return "/rest/V1/"
}

func (s Scope) String() string {
	if s == ScopeAllStoreViews {
		return "all"
	}
	return "default"
}

// RequestOptions carries the optional parts of a request.
type RequestOptions struct {
	Scope Scope
	Query url.Values
	// Body is marshaled to JSON when non-nil.
	Body any
}

// Client is a Magento 2 REST API client. It is safe for concurrent use.
type Client struct {
	baseURL     string
	tokens      TokenProvider
	client      *http.Client
	rateLimiter *RateLimiter
	logger      *slog.Logger
	tracer      trace.Tracer
	tokenOpts   []TokenOption
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. The client is shared
// with the default token provider.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTokenProvider replaces the admin token provider built from the
// credentials passed to New.
func WithTokenProvider(tp TokenProvider) Option {
	return func(c *Client) {
		c.tokens = tp
	}
}

// WithTokenOptions passes options through to the default admin token
// provider. Ignored when WithTokenProvider is used.
func WithTokenOptions(opts ...TokenOption) Option {
	return func(c *Client) {
		c.tokenOpts = append(c.tokenOpts, opts...)
	}
}

// WithRateLimiter injects a rate limiter. When set, every call goes through
// Wait() first.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets the logger. The client only logs at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// New creates a client for the Magento instance at baseURL, authenticating
// as the given admin user. No network call is made until the first operation.
func New(baseURL, username, password string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  discardLogger(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokens == nil {
		tokenOpts := append([]TokenOption{
			WithTokenHTTPClient(c.client),
			WithTokenLogger(c.logger),
		}, c.tokenOpts...)
		c.tokens = NewAdminTokenProvider(c.baseURL, username, password, tokenOpts...)
	}
	return c
}

// Authenticate obtains a token if none is cached or the cached one is stale.
// Operations do this implicitly; calling it up front verifies credentials.
func (c *Client) Authenticate(ctx context.Context) error {
	if _, err := c.tokens.Token(ctx); err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}
	return nil
}

// Do performs an authenticated call to path (relative to the scope prefix,
// e.g. "orders/42") and decodes a 2xx JSON response into dst when dst is
// non-nil. Any non-2xx response is returned as an *APIError.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions, dst any) error {
	ctx, span := c.tracer.Start(ctx, "magento "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("magento.path", path),
			attribute.String("magento.scope", opts.Scope.String()),
		),
	)
	defer span.End()

	err := c.do(ctx, span, method, path, opts, dst)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) do(
	ctx context.Context,
	span trace.Span,
	method, path string,
	opts RequestOptions,
	dst any,
) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}

	u := c.buildURL(opts.Scope, path, opts.Query)

	var bodyReader io.Reader = http.NoBody
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)
	scope := opts.Scope.String()
	metrics.APIRequestDuration.WithLabelValues(method, scope).Observe(elapsed.Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, scope, "error").Inc()
		return fmt.Errorf("executing %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	status := strconv.Itoa(resp.StatusCode)
	metrics.APIRequestsTotal.WithLabelValues(method, scope, status).Inc()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	c.logger.DebugContext(ctx, "magento request",
		"request_id", requestID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(method, u, resp.StatusCode, body)
	}

	if dst != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}

	return nil
}

func (c *Client) buildURL(scope Scope, path string, query url.Values) string {
	u := c.baseURL + scope.prefix() + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	return c.Do(ctx, http.MethodGet, path, RequestOptions{Query: query}, dst)
}

func (c *Client) post(ctx context.Context, path string, body, dst any) error {
	return c.Do(ctx, http.MethodPost, path, RequestOptions{Body: body}, dst)
}

func (c *Client) put(ctx context.Context, path string, body, dst any) error {
	return c.Do(ctx, http.MethodPut, path, RequestOptions{Body: body}, dst)
}

func (c *Client) del(ctx context.Context, path string, dst any) error {
	return c.Do(ctx, http.MethodDelete, path, RequestOptions{}, dst)
}

// entityID decodes identifiers that Magento returns either as a JSON number
// or as a quoted string, depending on the endpoint.
type entityID int

func (id *entityID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("parsing entity id %q: %w", s, err)
	}
	*id = entityID(n)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
