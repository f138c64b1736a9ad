package main

import "errors"

// KnownMetrics is the set of metric names exported by the Magento client
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// API call metrics.
	"magento_client_api_requests_total":                  true,
	"magento_client_api_request_duration_seconds_bucket": true,
	"magento_client_api_request_duration_seconds_count":  true,
	"magento_client_api_request_duration_seconds_sum":    true,

	// Token metrics.
	"magento_client_token_refreshes_total":        true,
	"magento_client_token_refresh_failures_total": true,

	// Rate limiter metrics.
	"magento_client_rate_limit_wait_seconds_bucket": true,
	"magento_client_rate_limit_wait_seconds_count":  true,
	"magento_client_rate_limit_wait_seconds_sum":    true,

	// Recording rules.
	"magento_client:api_requests:rate5m":      true,
	"magento_client:api_errors:rate5m":        true,
	"magento_client:api_client_errors:rate5m": true,
	"magento_client:token_refreshes:rate5m":   true,

	// Standard Prometheus metrics referenced in dashboards.
	"up": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
