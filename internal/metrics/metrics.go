// Package metrics defines Prometheus metrics for the Magento REST client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "magento_client"

// API call metrics.
var (
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of Magento REST API calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "scope"})

	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of Magento REST API calls by response status.",
	}, []string{"method", "scope", "status"})
)

// Authentication metrics.
var (
	TokenRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of admin token requests issued.",
	})

	TokenRefreshFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_failures_total",
		Help:      "Total number of failed admin token requests.",
	})
)

// Throttling metrics.
var (
	RateLimitWaitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rate_limit_wait_seconds",
		Help:      "Time spent waiting on the client-side rate limiter.",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})
)
