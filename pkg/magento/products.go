package magento

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
)

// ListProducts returns one page of catalog products. Pages start at 1.
func (c *Client) ListProducts(ctx context.Context, currentPage, pageSize int) (*SearchResult[Product], error) {
	return c.searchProducts(ctx, page(currentPage, pageSize))
}

// SearchProducts runs a product search with arbitrary criteria.
func (c *Client) SearchProducts(ctx context.Context, criteria SearchCriteria) (*SearchResult[Product], error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return c.searchProducts(ctx, criteria)
}

// GetProductBySKU looks a product up by SKU through the search endpoint. It
// returns ErrProductNotFound when nothing matches.
func (c *Client) GetProductBySKU(ctx context.Context, sku string) (*Product, error) {
	result, err := c.SearchProducts(ctx, singleFilter("sku", sku, 1))
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, fmt.Errorf("%w: sku %s", ErrProductNotFound, sku)
	}
	return &result.Items[0], nil
}

func (c *Client) searchProducts(ctx context.Context, criteria SearchCriteria) (*SearchResult[Product], error) {
	var result SearchResult[Product]
	if err := c.get(ctx, "products", criteria.Values(), &result); err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}
	return &result, nil
}

// Image roles a media gallery entry can fill.
const (
	ImageRoleBase      = "image"
	ImageRoleSmall     = "small_image"
	ImageRoleThumbnail = "thumbnail"
	ImageRoleSwatch    = "swatch_image"
)

// ProductImage is an image to upload to a product's media gallery.
type ProductImage struct {
	// Content is the raw image; it is base64-encoded for upload.
	Content  []byte
	FileName string
	// MimeType defaults to image/jpeg when empty.
	MimeType string
	Label    string
	Position int
	Disabled bool
	// Types lists the image roles, e.g. ImageRoleBase.
	Types []string
}

type mediaEntryRequest struct {
	Entry MediaGalleryEntry `json:"entry"`
}

// CreateProductImage uploads an image to the product's media gallery for all
// store views and returns the new entry id.
func (c *Client) CreateProductImage(ctx context.Context, sku string, img ProductImage) (int, error) {
	if len(img.Content) == 0 {
		return 0, fmt.Errorf("%w: image content is required", ErrValidation)
	}
	if img.FileName == "" {
		return 0, fmt.Errorf("%w: image file name is required", ErrValidation)
	}

	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	types := img.Types
	if types == nil {
		types = []string{}
	}

	body := mediaEntryRequest{Entry: MediaGalleryEntry{
		MediaType: "image",
		Label:     img.Label,
		Position:  img.Position,
		Disabled:  img.Disabled,
		Types:     types,
		Content: &ImageContent{
			Base64EncodedData: base64.StdEncoding.EncodeToString(img.Content),
			Type:              mimeType,
			Name:              img.FileName,
		},
	}}

	var entryID entityID
	path := fmt.Sprintf("products/%s/media", url.PathEscape(sku))
	opts := RequestOptions{Scope: ScopeAllStoreViews, Body: body}
	if err := c.Do(ctx, http.MethodPost, path, opts, &entryID); err != nil {
		return 0, fmt.Errorf("creating image for product %s: %w", sku, err)
	}
	return int(entryID), nil
}

// DeleteProductImage removes a media gallery entry from the product.
func (c *Client) DeleteProductImage(ctx context.Context, sku string, entryID int) (bool, error) {
	var ok bool
	path := fmt.Sprintf("products/%s/media/%d", url.PathEscape(sku), entryID)
	if err := c.Do(ctx, http.MethodDelete, path, RequestOptions{Scope: ScopeAllStoreViews}, &ok); err != nil {
		return false, fmt.Errorf("deleting image %d from product %s: %w", entryID, sku, err)
	}
	return ok, nil
}
