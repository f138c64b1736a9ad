package cmd

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Browse products and manage product images",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
		productsAddImageCmd(),
		productsRemoveImageCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	var page, pageSize int

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List products one page at a time",
		Example: `  magentoctl products list --page-size 50`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			result, err := c.ListProducts(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, result)
			}
			if len(result.Items) == 0 {
				_, err = fmt.Fprintln(out, "No products found.")
				return err
			}
			if _, err := fmt.Fprintf(out, "Showing %d of %d products\n\n", len(result.Items), result.TotalCount); err != nil {
				return err
			}
			return printProductsTable(out, result.Items)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "products per page")

	return cmd
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <sku>",
		Short:   "Show a product by SKU",
		Example: `  magentoctl products get WT09-XS-Purple`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			product, err := c.GetProductBySKU(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), product)
			}
			return printProductDetail(cmd.OutOrStdout(), product)
		},
	}
}

func productsAddImageCmd() *cobra.Command {
	var (
		label    string
		roles    []string
		position int
		mimeType string
		disabled bool
	)

	cmd := &cobra.Command{
		Use:   "add-image <sku> <file>",
		Short: "Upload an image to a product's media gallery",
		Example: `  magentoctl products add-image MH01 ./front.jpg --role image --role thumbnail
  magentoctl products add-image MH01 ./back.png --label "Back view" --position 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}
			if mimeType == "" {
				mimeType = http.DetectContentType(data)
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			entryID, err := c.CreateProductImage(cmd.Context(), args[0], magento.ProductImage{
				Content:  data,
				FileName: filepath.Base(args[1]),
				MimeType: mimeType,
				Label:    label,
				Position: position,
				Disabled: disabled,
				Types:    roles,
			})
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), map[string]int{"entry_id": entryID})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added image %d to %s.\n", entryID, args[0])
			return err
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "image label")
	cmd.Flags().StringArrayVar(&roles, "role", nil, "image role (image, small_image, thumbnail, swatch_image), repeatable")
	cmd.Flags().IntVar(&position, "position", 0, "gallery position")
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type (detected from content when empty)")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "hide the image on the storefront")

	return cmd
}

func productsRemoveImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove-image <sku> <entry-id>",
		Short:   "Remove an image from a product's media gallery",
		Example: `  magentoctl products remove-image MH01 17`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := parseID(args[1], "entry id")
			if err != nil {
				return err
			}
			c, err := newClient()
			if err != nil {
				return err
			}
			removed, err := c.DeleteProductImage(cmd.Context(), args[0], entryID)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("image %d was not removed from %s", entryID, args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed image %d from %s.\n", entryID, args[0])
			return err
		},
	}
}
