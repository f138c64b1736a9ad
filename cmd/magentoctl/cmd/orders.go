package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func ordersCmd() *cobra.Command {
	ordersRoot := &cobra.Command{
		Use:   "orders",
		Short: "Search and process orders",
	}

	ordersRoot.AddCommand(
		ordersGetCmd(),
		ordersListCmd(),
		ordersByQuoteCmd(),
		ordersCancelCmd(),
		ordersInvoiceCmd(),
		ordersShipCmd(),
		ordersCommentCmd(),
	)

	return ordersRoot
}

func ordersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <order-id>",
		Short:   "Show order details",
		Example: `  magentoctl orders get 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			order, err := c.GetOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), order)
			}
			return printOrderDetail(cmd.OutOrStdout(), order)
		},
	}
}

func ordersListCmd() *cobra.Command {
	var (
		page     int
		pageSize int
		filters  []string
		sorts    []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search orders with filters and sorting",
		Long: "Search orders. Every --filter must match. A filter is field=value with an\n" +
			"optional :condition suffix (eq, neq, like, gt, lt, gteq, lteq, in, ...).",
		Example: `  magentoctl orders list
  magentoctl orders list --filter status=pending --sort created_at:DESC
  magentoctl orders list --filter grand_total=100:gteq --filter customer_email=%@example.com:like`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			search := magento.OrderSearch{Page: page, PageSize: pageSize}
			for _, s := range filters {
				f, err := parseFilter(s)
				if err != nil {
					return err
				}
				search.Filters = append(search.Filters, f)
			}
			for _, s := range sorts {
				so, err := parseSort(s)
				if err != nil {
					return err
				}
				search.SortOrders = append(search.SortOrders, so)
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			result, err := c.SearchOrders(cmd.Context(), search)
			if err != nil {
				return err
			}
			return printOrderResult(cmd, result)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", 12, "orders per page")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "filter as field=value[:condition], repeatable")
	cmd.Flags().StringArrayVar(&sorts, "sort", nil, "sort as field[:ASC|DESC], repeatable")

	return cmd
}

func ordersByQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "by-quote <quote-id>",
		Short:   "Find the order placed from a cart",
		Example: `  magentoctl orders by-quote 12`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quoteID, err := parseID(args[0], "quote id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			result, err := c.SearchOrdersByQuoteID(cmd.Context(), quoteID)
			if err != nil {
				return err
			}
			return printOrderResult(cmd, result)
		},
	}
}

func printOrderResult(cmd *cobra.Command, result *magento.SearchResult[magento.Order]) error {
	out := cmd.OutOrStdout()
	if jsonOutput() {
		return outputJSON(out, result)
	}
	if len(result.Items) == 0 {
		_, err := fmt.Fprintln(out, "No orders found.")
		return err
	}
	if _, err := fmt.Fprintf(out, "Showing %d of %d orders\n\n", len(result.Items), result.TotalCount); err != nil {
		return err
	}
	return printOrdersTable(out, result.Items)
}

func ordersCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cancel <order-id>",
		Short:   "Cancel an order",
		Example: `  magentoctl orders cancel 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			canceled, err := c.CancelOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !canceled {
				return fmt.Errorf("order %d cannot be canceled", id)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Order %d canceled.\n", id)
			return err
		},
	}
}

func ordersInvoiceCmd() *cobra.Command {
	var unpaid bool

	cmd := &cobra.Command{
		Use:   "invoice <order-id>",
		Short: "Invoice an order",
		Example: `  magentoctl orders invoice 42
  magentoctl orders invoice 42 --unpaid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			invoiceID, err := c.InvoiceOrder(cmd.Context(), id, !unpaid)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created invoice %d for order %d.\n", invoiceID, id)
			return err
		},
	}
	cmd.Flags().BoolVar(&unpaid, "unpaid", false, "invoice without capturing payment")

	return cmd
}

func ordersShipCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ship <order-id>",
		Short:   "Create a shipment for an order",
		Example: `  magentoctl orders ship 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			shipmentID, err := c.ShipOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created shipment %d for order %d.\n", shipmentID, id)
			return err
		},
	}
}

func ordersCommentCmd() *cobra.Command {
	var (
		status  string
		notify  bool
		visible bool
	)

	cmd := &cobra.Command{
		Use:   "comment <order-id> <text>...",
		Short: "Add a status history comment to an order",
		Example: `  magentoctl orders comment 42 "Packed and ready"
  magentoctl orders comment 42 Shipped today --status processing --notify`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "order id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			ok, err := c.AddOrderComment(cmd.Context(), id, magento.OrderComment{
				Comment:        strings.Join(args[1:], " "),
				Status:         status,
				NotifyCustomer: notify,
				VisibleOnFront: visible,
			})
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("comment on order %d was not saved", id)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Comment added to order %d.\n", id)
			return err
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "new order status")
	cmd.Flags().BoolVar(&notify, "notify", false, "email the customer")
	cmd.Flags().BoolVar(&visible, "visible", false, "show the comment on the storefront")

	return cmd
}
