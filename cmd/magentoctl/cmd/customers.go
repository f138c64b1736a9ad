package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func customersCmd() *cobra.Command {
	customersRoot := &cobra.Command{
		Use:   "customers",
		Short: "Look up and manage customers",
	}

	customersRoot.AddCommand(
		customersSearchCmd(),
		customersListCmd(),
		customersGetCmd(),
		customersDeleteCmd(),
	)

	return customersRoot
}

func customersSearchCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:     "search",
		Short:   "Find a customer by email address",
		Example: `  magentoctl customers search --email jane@example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				return errors.New("--email is required")
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			result, err := c.SearchCustomerByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			return printCustomerResult(cmd, result)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "customer email address")

	return cmd
}

func customersListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers one page at a time",
		Example: `  magentoctl customers list
  magentoctl customers list --page 2 --page-size 50 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			result, err := c.ListCustomers(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			return printCustomerResult(cmd, result)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "customers per page")

	return cmd
}

func printCustomerResult(cmd *cobra.Command, result *magento.SearchResult[magento.Customer]) error {
	out := cmd.OutOrStdout()
	if jsonOutput() {
		return outputJSON(out, result)
	}
	if len(result.Items) == 0 {
		_, err := fmt.Fprintln(out, "No customers found.")
		return err
	}
	if _, err := fmt.Fprintf(out, "Showing %d of %d customers\n\n", len(result.Items), result.TotalCount); err != nil {
		return err
	}
	return printCustomersTable(out, result.Items)
}

func customersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <customer-id>",
		Short:   "Show a customer with addresses",
		Example: `  magentoctl customers get 7`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "customer id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			customer, err := c.GetCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), customer)
			}
			return printCustomerDetail(cmd.OutOrStdout(), customer)
		},
	}
}

func customersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <customer-id>",
		Short:   "Delete a customer account",
		Example: `  magentoctl customers delete 7`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "customer id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			deleted, err := c.DeleteCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("customer %d was not deleted", id)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Customer %d deleted.\n", id)
			return err
		},
	}
}
