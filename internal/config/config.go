// Package config handles loading and validating the Magento client
// configuration from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

// Config is the top-level configuration.
type Config struct {
	Magento   MagentoConfig   `yaml:"magento"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MagentoConfig defines the instance and admin credentials to use.
type MagentoConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`   // default: 30s
	TokenTTL time.Duration `yaml:"token_ttl"` // default: 4h
}

// RateLimitConfig throttles outbound calls. A zero PerSecond disables it.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read parses a YAML config file with environment variable substitution but
// without defaults or validation, so callers can layer flags on top before
// calling Finalize.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	return cfg, nil
}

// Finalize applies defaults and validates the configuration. Load calls it;
// callers that assemble a Config from flags call it themselves.
func (c *Config) Finalize() error {
	applyDefaults(c)
	if err := validate(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyMagentoDefaults(&cfg.Magento)
	applyRateLimitDefaults(&cfg.RateLimit)
	applyLoggingDefaults(&cfg.Logging)
}

func applyMagentoDefaults(m *MagentoConfig) {
	if m.Timeout == 0 {
		m.Timeout = 30 * time.Second
	}
	if m.TokenTTL == 0 {
		m.TokenTTL = magento.DefaultTokenTTL
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond > 0 && r.Burst == 0 {
		r.Burst = 1
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Magento.BaseURL == "" {
		errs = append(errs, errors.New("magento.base_url is required"))
	} else if u, err := url.Parse(cfg.Magento.BaseURL); err != nil ||
		(u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf(
			"magento.base_url must be an absolute http(s) URL (got %q)", cfg.Magento.BaseURL))
	}
	if cfg.Magento.Username == "" {
		errs = append(errs, errors.New("magento.username is required"))
	}
	if cfg.Magento.Password == "" {
		errs = append(errs, errors.New("magento.password is required"))
	}
	if cfg.Magento.Timeout < 0 {
		errs = append(errs, errors.New("magento.timeout must not be negative"))
	}
	if cfg.Magento.TokenTTL < 0 {
		errs = append(errs, errors.New("magento.token_ttl must not be negative"))
	}
	if cfg.RateLimit.PerSecond < 0 {
		errs = append(errs, errors.New("rate_limit.per_second must not be negative"))
	}

	switch cfg.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json (got %q)", cfg.Logging.Format))
	}

	return errors.Join(errs...)
}

// ClientOptions translates the configuration into magento.Client options.
func (c *Config) ClientOptions(logger *slog.Logger) []magento.Option {
	opts := []magento.Option{
		magento.WithHTTPClient(&http.Client{Timeout: c.Magento.Timeout}),
		magento.WithTokenOptions(magento.WithTokenTTL(c.Magento.TokenTTL)),
	}
	if logger != nil {
		opts = append(opts, magento.WithLogger(logger))
	}
	if c.RateLimit.PerSecond > 0 {
		opts = append(opts, magento.WithRateLimiter(
			magento.NewRateLimiter(c.RateLimit.PerSecond, c.RateLimit.Burst)))
	}
	return opts
}

// NewClient builds a Magento client from the configuration.
func (c *Config) NewClient(logger *slog.Logger) *magento.Client {
	return magento.New(c.Magento.BaseURL, c.Magento.Username, c.Magento.Password,
		c.ClientOptions(logger)...)
}
