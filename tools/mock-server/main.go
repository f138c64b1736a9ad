// Package main runs the in-memory Magento 2 REST fake for local development.
// It accepts admin logins, issues tokens and serves customers, carts, orders,
// products and store endpoints so magentoctl can run without a real store.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ptchr/magento2-rest-client/internal/magentotest"
	"github.com/ptchr/magento2-rest-client/pkg/logger"
)

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	seedFile := flag.String("seed", "tools/mock-server/testdata/seed.json", "path to seed fixture (empty to start blank)")
	username := flag.String("username", magentotest.DefaultUsername, "accepted admin user name")
	password := flag.String("password", magentotest.DefaultPassword, "accepted admin password")
	logLevel := flag.String("log-level", "debug", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.NewWithWriter(os.Stdout, *logLevel, "text")

	fake, err := newFake(log, *seedFile, *username, *password)
	if err != nil {
		log.Error("failed to load seed", "path", *seedFile, "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", *port)
	log.Info("starting mock Magento server", "addr", addr, "username", *username)

	srv := &http.Server{
		Addr:         addr,
		Handler:      fake.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// newFake builds the fake server and applies the seed file when one is given.
func newFake(log *slog.Logger, seedFile, username, password string) (*magentotest.Server, error) {
	fake := magentotest.New(
		magentotest.WithLogger(log),
		magentotest.WithCredentials(username, password),
	)
	if seedFile == "" {
		return fake, nil
	}

	seed, err := magentotest.LoadSeed(seedFile)
	if err != nil {
		return nil, err
	}
	fake.Apply(seed)
	log.Info("loaded seed", "customers", len(seed.Customers), "products", len(seed.Products))
	return fake, nil
}
