// Package main generates CLI reference documentation from the magentoctl
// command tree as markdown, man pages or YAML.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/ptchr/magento2-rest-client/cmd/magentoctl/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated docs")
	format := flag.String("format", "markdown", "output format: markdown, man or yaml")
	flag.Parse()

	if err := os.MkdirAll(*output, 0o750); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	if err := generate(root, *format, *output); err != nil {
		log.Fatalf("generating docs: %v", err)
	}

	fmt.Printf("CLI %s docs generated in %s/\n", *format, *output)
}

func generate(root *cobra.Command, format, dir string) error {
	switch format {
	case "markdown", "md":
		return doc.GenMarkdownTree(root, dir)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{
			Title:   "MAGENTOCTL",
			Section: "1",
			Source:  "magentoctl",
		}, dir)
	case "yaml":
		return doc.GenYamlTree(root, dir)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
