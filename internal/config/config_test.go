package config

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptchr/magento2-rest-client/internal/magentotest"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
magento:
  base_url: https://shop.example.com
  username: admin
  password: secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "https://shop.example.com", cfg.Magento.BaseURL)
				assert.Equal(t, "admin", cfg.Magento.Username)
				assert.Equal(t, "secret", cfg.Magento.Password)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
magento:
  base_url: http://localhost:8081
  username: admin
  password: secret
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 30*time.Second, cfg.Magento.Timeout)
				assert.Equal(t, 4*time.Hour, cfg.Magento.TokenTTL)
				assert.Zero(t, cfg.RateLimit.PerSecond)
				assert.Zero(t, cfg.RateLimit.Burst)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "explicit values kept",
			yaml: `
magento:
  base_url: https://shop.example.com
  username: admin
  password: secret
  timeout: 5s
  token_ttl: 1h
rate_limit:
  per_second: 2.5
logging:
  level: debug
  format: json
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 5*time.Second, cfg.Magento.Timeout)
				assert.Equal(t, time.Hour, cfg.Magento.TokenTTL)
				assert.InDelta(t, 2.5, cfg.RateLimit.PerSecond, 0.0001)
				assert.Equal(t, 1, cfg.RateLimit.Burst)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
magento:
  base_url: https://shop.example.com
  username: "${TEST_MAGENTO_USER}"
  password: "${TEST_MAGENTO_PASSWORD}"
`,
			envVars: map[string]string{
				"TEST_MAGENTO_USER":     "integration",
				"TEST_MAGENTO_PASSWORD": "secret123",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, "integration", cfg.Magento.Username)
				assert.Equal(t, "secret123", cfg.Magento.Password)
			},
		},
		{
			name: "missing required base_url",
			yaml: `
magento:
  username: admin
  password: secret
`,
			wantErr: "magento.base_url is required",
		},
		{
			name: "relative base_url",
			yaml: `
magento:
  base_url: shop.example.com
  username: admin
  password: secret
`,
			wantErr: "magento.base_url must be an absolute http(s) URL",
		},
		{
			name: "missing required username",
			yaml: `
magento:
  base_url: https://shop.example.com
  password: secret
`,
			wantErr: "magento.username is required",
		},
		{
			name: "missing required password",
			yaml: `
magento:
  base_url: https://shop.example.com
  username: admin
`,
			wantErr: "magento.password is required",
		},
		{
			name: "invalid log format",
			yaml: `
magento:
  base_url: https://shop.example.com
  username: admin
  password: secret
logging:
  format: xml
`,
			wantErr: "logging.format must be one of: text, json",
		},
		{
			name:    "invalid YAML",
			yaml:    "magento: [unterminated",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Only parallelize tests that don't modify env vars.
			if len(tt.envVars) == 0 {
				t.Parallel()
			}

			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	_, err := Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestRead_NoDefaultsOrValidation(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("magento:\n  username: admin\n"), 0o644))

	cfg, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.Magento.Username)
	assert.Empty(t, cfg.Magento.BaseURL)
	assert.Zero(t, cfg.Magento.Timeout)
	assert.Zero(t, cfg.Magento.TokenTTL)
}

func TestFinalize_JoinsErrors(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	err := cfg.Finalize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "magento.base_url is required")
	assert.Contains(t, err.Error(), "magento.username is required")
	assert.Contains(t, err.Error(), "magento.password is required")
}

func TestConfig_ClientOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{
			name: "without rate limit or logger",
			cfg:  Config{Magento: MagentoConfig{Timeout: time.Second, TokenTTL: time.Hour}},
			want: 2,
		},
		{
			name: "with rate limit",
			cfg: Config{
				Magento:   MagentoConfig{Timeout: time.Second, TokenTTL: time.Hour},
				RateLimit: RateLimitConfig{PerSecond: 10, Burst: 2},
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, tt.cfg.ClientOptions(nil), tt.want)
		})
	}
}

func TestConfig_NewClient(t *testing.T) {
	t.Parallel()

	fake := magentotest.New()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	cfg := &Config{Magento: MagentoConfig{
		BaseURL:  srv.URL,
		Username: magentotest.DefaultUsername,
		Password: magentotest.DefaultPassword,
	}, RateLimit: RateLimitConfig{PerSecond: 100}}
	require.NoError(t, cfg.Finalize())

	c := cfg.NewClient(nil)
	require.NoError(t, c.Authenticate(context.Background()))
	assert.Equal(t, 1, fake.LoginCount())
}
