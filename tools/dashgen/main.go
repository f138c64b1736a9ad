// Package main generates the Grafana dashboard and Prometheus rules for
// services that embed the Magento REST client and export its metrics.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ptchr/magento2-rest-client/tools/dashgen/dashboards"
	"github.com/ptchr/magento2-rest-client/tools/dashgen/rules"
	"github.com/ptchr/magento2-rest-client/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// artifact is a generated file relative to the output directory.
type artifact struct {
	path string
	data []byte
}

func run(cfg Config, validateOnly bool) error {
	artifacts, err := build(cfg)
	if err != nil {
		return err
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	for _, a := range artifacts {
		path := filepath.Join(cfg.OutputDir, a.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, a.data, 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("dashgen: wrote %s\n", path)
	}
	return nil
}

// build renders and validates every enabled artifact.
func build(cfg Config) ([]artifact, error) {
	var (
		artifacts []artifact
		problems  []string
	)

	if cfg.DashboardEnabled {
		dash, err := dashboards.BuildOverview().Build()
		if err != nil {
			return nil, fmt.Errorf("building dashboard: %w", err)
		}
		result := validate.Dashboard(dash, KnownMetrics)
		problems = append(problems, result.Errors...)

		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling dashboard: %w", err)
		}
		artifacts = append(artifacts, artifact{
			path: filepath.Join("grafana", "data", "magento-client.json"),
			data: append(data, '\n'),
		})
	}

	if cfg.RulesEnabled {
		for name, cr := range map[string]rules.PrometheusRule{
			"magento-client-recording-rules.yaml": rules.RecordingRules(),
			"magento-client-alerts.yaml":          rules.AlertRules(),
		} {
			problems = append(problems, validate.Rules(cr, KnownMetrics).Errors...)

			data, err := yaml.Marshal(cr)
			if err != nil {
				return nil, fmt.Errorf("marshaling %s: %w", name, err)
			}
			artifacts = append(artifacts, artifact{
				path: filepath.Join("prometheus", name),
				data: append([]byte(generatedHeader), data...),
			})
		}
	}

	if len(problems) > 0 {
		errs := make([]error, 0, len(problems))
		for _, p := range problems {
			errs = append(errs, errors.New(p))
		}
		return nil, fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return artifacts, nil
}
