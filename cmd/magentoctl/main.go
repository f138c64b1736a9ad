// Package main is the entry point for the magentoctl CLI client.
package main

import (
	"github.com/ptchr/magento2-rest-client/cmd/magentoctl/cmd"
)

func main() {
	cmd.Execute()
}
