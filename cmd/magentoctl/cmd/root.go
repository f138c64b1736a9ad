// Package cmd implements the magentoctl CLI commands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ptchr/magento2-rest-client/internal/config"
	"github.com/ptchr/magento2-rest-client/pkg/logger"
	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "magentoctl",
		Short: "CLI client for the Magento 2 REST API",
		Long: "magentoctl talks to a Magento 2 store through its REST API using an\n" +
			"admin integration token. It can look up customers, run a checkout,\n" +
			"manage orders, upload product images and inspect the store structure.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel in-flight calls.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.magentoctl.yaml)")
	pf.String("base-url", "", "Magento base URL, e.g. https://shop.example.com")
	pf.String("username", "", "admin user name")
	pf.String("password", "", "admin password")
	pf.Duration("timeout", 30*time.Second, "per-request timeout")
	pf.Duration("token-ttl", magento.DefaultTokenTTL, "how long an admin token is reused")
	pf.Float64("rate-limit", 0, "maximum requests per second (0 disables)")
	pf.Int("rate-burst", 0, "rate limiter burst size (default 1 when limited)")
	pf.String("output", "table", "output format (table, json)")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")
	pf.String("log-format", "text", "log format (text, json)")

	for key, flag := range map[string]string{
		"base_url":   "base-url",
		"username":   "username",
		"password":   "password",
		"timeout":    "timeout",
		"token_ttl":  "token-ttl",
		"rate_limit": "rate-limit",
		"rate_burst": "rate-burst",
		"output":     "output",
		"log_level":  "log-level",
		"log_format": "log-format",
	} {
		cobra.CheckErr(viper.BindPFlag(key, pf.Lookup(flag)))
	}

	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(customersCmd())
	rootCmd.AddCommand(cartsCmd())
	rootCmd.AddCommand(ordersCmd())
	rootCmd.AddCommand(productsCmd())
	rootCmd.AddCommand(storesCmd())
}

func initConfig() {
	viper.SetEnvPrefix("MAGENTO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// configPath returns the --config file, or $HOME/.magentoctl.yaml when it
// exists, or "" when there is no file to read.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, ".magentoctl.yaml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// loadConfig reads the config file in the internal/config format and
// applies flags and MAGENTO_* environment variables on top. Flag defaults
// only fill fields the file leaves empty.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if path := configPath(); path != "" {
		fromFile, err := config.Read(path)
		if err != nil {
			return nil, err
		}
		cfg = fromFile
	}

	overlay(&cfg.Magento.BaseURL, "base_url", viper.GetString)
	overlay(&cfg.Magento.Username, "username", viper.GetString)
	overlay(&cfg.Magento.Password, "password", viper.GetString)
	overlay(&cfg.Magento.Timeout, "timeout", viper.GetDuration)
	overlay(&cfg.Magento.TokenTTL, "token_ttl", viper.GetDuration)
	overlay(&cfg.RateLimit.PerSecond, "rate_limit", viper.GetFloat64)
	overlay(&cfg.RateLimit.Burst, "rate_burst", viper.GetInt)
	overlay(&cfg.Logging.Level, "log_level", viper.GetString)
	overlay(&cfg.Logging.Format, "log_format", viper.GetString)

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlay sets dst from viper when the key was set by a flag or the
// environment, or when dst is still empty.
func overlay[T comparable](dst *T, key string, get func(string) T) {
	var zero T
	if viper.IsSet(key) || *dst == zero {
		*dst = get(key)
	}
}

func newClient() (*magento.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	return cfg.NewClient(log), nil
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
