package magento

import (
	"context"
	"fmt"
	"net/http"
)

// adminStoreCode identifies the administrative store view, which is not a
// storefront and is left out of ListStoreViews.
const adminStoreCode = "admin"

func (c *Client) getAllStores(ctx context.Context, path string, dst any) error {
	return c.Do(ctx, http.MethodGet, path, RequestOptions{Scope: ScopeAllStoreViews}, dst)
}

// ListWebsites returns every website.
func (c *Client) ListWebsites(ctx context.Context) ([]Website, error) {
	var websites []Website
	if err := c.getAllStores(ctx, "store/websites", &websites); err != nil {
		return nil, fmt.Errorf("listing websites: %w", err)
	}
	return websites, nil
}

// ListStoreViews returns every storefront store view.
func (c *Client) ListStoreViews(ctx context.Context) ([]StoreView, error) {
	var views []StoreView
	if err := c.getAllStores(ctx, "store/storeViews", &views); err != nil {
		return nil, fmt.Errorf("listing store views: %w", err)
	}

	storefronts := make([]StoreView, 0, len(views))
	for i := range views {
		if views[i].Code == adminStoreCode {
			continue
		}
		storefronts = append(storefronts, views[i])
	}
	return storefronts, nil
}

// ListStoreGroups returns every store group.
func (c *Client) ListStoreGroups(ctx context.Context) ([]StoreGroup, error) {
	var groups []StoreGroup
	if err := c.getAllStores(ctx, "store/storeGroups", &groups); err != nil {
		return nil, fmt.Errorf("listing store groups: %w", err)
	}
	return groups, nil
}
