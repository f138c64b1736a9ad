package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func authCmd() *cobra.Command {
	authRoot := &cobra.Command{
		Use:   "auth",
		Short: "Check admin credentials",
	}

	authRoot.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Obtain an admin token to verify the configured credentials",
		Example: `  magentoctl auth check --base-url https://shop.example.com --username admin
  MAGENTO_PASSWORD=secret magentoctl auth check`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Authenticate(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Authenticated.")
			return err
		},
	})

	return authRoot
}
