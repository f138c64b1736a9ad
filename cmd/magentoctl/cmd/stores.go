package cmd

import (
	"github.com/spf13/cobra"
)

func storesCmd() *cobra.Command {
	storesRoot := &cobra.Command{
		Use:   "stores",
		Short: "Show websites, stores and store views",
	}

	storesRoot.AddCommand(
		&cobra.Command{
			Use:   "websites",
			Short: "List websites",
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				websites, err := c.ListWebsites(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), websites)
				}
				return printWebsitesTable(cmd.OutOrStdout(), websites)
			},
		},
		&cobra.Command{
			Use:   "views",
			Short: "List store views, excluding the admin view",
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				views, err := c.ListStoreViews(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), views)
				}
				return printStoreViewsTable(cmd.OutOrStdout(), views)
			},
		},
		&cobra.Command{
			Use:   "groups",
			Short: "List stores (store groups)",
			RunE: func(cmd *cobra.Command, _ []string) error {
				c, err := newClient()
				if err != nil {
					return err
				}
				groups, err := c.ListStoreGroups(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), groups)
				}
				return printStoreGroupsTable(cmd.OutOrStdout(), groups)
			},
		},
	)

	return storesRoot
}
