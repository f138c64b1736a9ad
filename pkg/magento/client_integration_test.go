//go:build integration

package magento_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

// TestClient_Integration requires a reachable Magento instance.
// Run with: go test -tags=integration -run TestClient_Integration ./pkg/magento/...
//
// Required environment variables:
//   - MAGENTO_BASE_URL: store base URL, e.g. https://shop.example.com
//   - MAGENTO_USERNAME: admin user name
//   - MAGENTO_PASSWORD: admin password
func TestClient_Integration(t *testing.T) {
	baseURL := os.Getenv("MAGENTO_BASE_URL")
	username := os.Getenv("MAGENTO_USERNAME")
	password := os.Getenv("MAGENTO_PASSWORD")

	if baseURL == "" || username == "" || password == "" {
		t.Skip("MAGENTO_BASE_URL, MAGENTO_USERNAME and MAGENTO_PASSWORD must be set for integration tests")
	}

	ctx := context.Background()
	client := magento.New(baseURL, username, password)

	require.NoError(t, client.Authenticate(ctx))

	views, err := client.ListStoreViews(ctx)
	require.NoError(t, err)
	for _, v := range views {
		assert.NotEqual(t, "admin", v.Code)
	}

	products, err := client.ListProducts(ctx, 1, 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(products.Items), 3)

	orders, err := client.SearchOrders(ctx, magento.OrderSearch{PageSize: 1})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(orders.Items), 1)

	_, err = client.GetOrder(ctx, 0)
	require.ErrorIs(t, err, magento.ErrOrderNotFound)
}
