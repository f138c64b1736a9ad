package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot() *cobra.Command {
	root := &cobra.Command{Use: "magentoctl", Short: "root"}
	root.AddCommand(&cobra.Command{Use: "orders", Short: "orders", Run: func(*cobra.Command, []string) {}})
	root.DisableAutoGenTag = true
	return root
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format   string
		wantFile string
	}{
		{"markdown", "magentoctl_orders.md"},
		{"md", "magentoctl.md"},
		{"man", "magentoctl-orders.1"},
		{"yaml", "magentoctl_orders.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			require.NoError(t, generate(testRoot(), tt.format, dir))

			_, err := os.Stat(filepath.Join(dir, tt.wantFile))
			assert.NoError(t, err)
		})
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := generate(testRoot(), "html", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "html"`)
}
