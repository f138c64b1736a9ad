package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func cartsCmd() *cobra.Command {
	cartsRoot := &cobra.Command{
		Use:   "carts",
		Short: "Build carts and place orders for customers",
		Long: "Create quotes for customers, add products, inspect shipping and\n" +
			"payment options, or run the whole checkout in one step.",
	}

	cartsRoot.AddCommand(
		cartsCreateCmd(),
		cartsAddItemCmd(),
		cartsShippingCmd(),
		cartsPaymentMethodsCmd(),
		cartsCheckoutCmd(),
	)

	return cartsRoot
}

func cartsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "create <customer-id>",
		Short:   "Create an empty cart for a customer",
		Example: `  magentoctl carts create 7`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customerID, err := parseID(args[0], "customer id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			quoteID, err := c.CreateCart(cmd.Context(), customerID)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), map[string]int{"quote_id": quoteID})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created cart %d.\n", quoteID)
			return err
		},
	}
}

func cartsAddItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add-item <quote-id> <sku> [qty]",
		Short:   "Add a product to a cart",
		Example: `  magentoctl carts add-item 12 WT09-XS-Purple 2`,
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			quoteID, err := parseID(args[0], "quote id")
			if err != nil {
				return err
			}
			qty := 1
			if len(args) == 3 {
				if qty, err = parseID(args[2], "quantity"); err != nil {
					return err
				}
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			item, err := c.AddProductToCart(cmd.Context(), quoteID, args[1], qty)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), item)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s x%.0f to cart %d (item %d).\n",
				item.SKU, item.Qty, quoteID, item.ItemID)
			return err
		},
	}
}

func cartsShippingCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "shipping-methods <quote-id> <customer-id>",
		Short:   "Estimate shipping to the customer's default shipping address",
		Example: `  magentoctl carts shipping-methods 12 7`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quoteID, err := parseID(args[0], "quote id")
			if err != nil {
				return err
			}
			customerID, err := parseID(args[1], "customer id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			customer, err := c.GetCustomer(cmd.Context(), customerID)
			if err != nil {
				return err
			}
			methods, err := c.EstimateShippingMethods(cmd.Context(), customer, quoteID)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), methods)
			}
			return printShippingMethodsTable(cmd.OutOrStdout(), methods)
		},
	}
}

func cartsPaymentMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "payment-methods <quote-id>",
		Short:   "List payment methods available for a cart",
		Example: `  magentoctl carts payment-methods 12`,
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
			methods, err := c.GetPaymentMethods(cmd.Context(), quoteID)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), methods)
			}
			return printPaymentMethodsTable(cmd.OutOrStdout(), methods)
		},
	}
}

func cartsCheckoutCmd() *cobra.Command {
	var (
		customerID    int
		items         []string
		paymentMethod string
		poNumber      string
		carrierCode   string
		methodCode    string
		virtual       bool
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Create a cart, add items and place the order",
		Long: "Run a complete checkout for a customer: create a cart, add the items,\n" +
			"estimate shipping to the default shipping address, set shipping and\n" +
			"billing information, select the payment method and place the order.\n" +
			"Without --carrier/--method the first available shipping method is used.",
		Example: `  magentoctl carts checkout --customer 7 --item WT09-XS-Purple:2 --payment checkmo
  magentoctl carts checkout --customer 7 --item 24-MB01 --payment purchaseorder --po PO-1001 --virtual`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if customerID <= 0 {
				return errors.New("--customer is required")
			}
			if len(items) == 0 {
				return errors.New("at least one --item is required")
			}
			lineItems := make([]magento.LineItem, 0, len(items))
			for _, s := range items {
				li, err := parseLineItem(s)
				if err != nil {
					return err
				}
				lineItems = append(lineItems, li)
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			customer, err := c.GetCustomer(cmd.Context(), customerID)
			if err != nil {
				return err
			}

			result, err := c.Checkout(cmd.Context(), magento.CheckoutRequest{
				Customer:      customer,
				Items:         lineItems,
				CarrierCode:   carrierCode,
				MethodCode:    methodCode,
				PaymentMethod: paymentMethod,
				PONumber:      poNumber,
				Virtual:       virtual,
			})
			if err != nil {
				if result != nil && result.QuoteID != 0 {
					return fmt.Errorf("checkout of cart %d: %w", result.QuoteID, err)
				}
				return err
			}

			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), result)
			}
			tw := newTabWriter(cmd.OutOrStdout())
			tw.writef("Quote ID:\t%d\n", result.QuoteID)
			tw.writef("Order ID:\t%d\n", result.OrderID)
			if result.PaymentDetails != nil {
				t := result.PaymentDetails.Totals
				tw.writef("Grand Total:\t%s %s\n",
					strconv.FormatFloat(t.GrandTotal, 'f', 2, 64), t.QuoteCurrencyCode)
			}
			return tw.finish()
		},
	}
	cmd.Flags().IntVar(&customerID, "customer", 0, "customer id")
	cmd.Flags().StringArrayVar(&items, "item", nil, "item as sku[:qty], repeatable")
	cmd.Flags().StringVar(&paymentMethod, "payment", "checkmo", "payment method code")
	cmd.Flags().StringVar(&poNumber, "po", "", "purchase order number")
	cmd.Flags().StringVar(&carrierCode, "carrier", "", "shipping carrier code")
	cmd.Flags().StringVar(&methodCode, "method", "", "shipping method code")
	cmd.Flags().BoolVar(&virtual, "virtual", false, "mark the order as virtual")

	return cmd
}
