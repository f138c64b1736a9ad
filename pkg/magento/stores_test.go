package magento_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListStoreViews_ExcludesAdmin(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/all/V1/store/storeViews", r.URL.Path)
		writeJSON(w, http.StatusOK, `[
			{"id":0,"code":"admin","name":"Admin","website_id":0,"store_group_id":0,"is_active":1},
			{"id":1,"code":"default","name":"Default Store View","website_id":1,"store_group_id":1,"is_active":1},
			{"id":2,"code":"nl","name":"Dutch","website_id":1,"store_group_id":1,"is_active":0}
		]`)
	})

	views, err := c.ListStoreViews(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "default", views[0].Code)
	assert.Equal(t, "nl", views[1].Code)
}

func TestClient_StoreStructure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, _ := newFakeClient(t)

	websites, err := c.ListWebsites(ctx)
	require.NoError(t, err)
	require.Len(t, websites, 2)
	assert.Equal(t, "base", websites[1].Code)

	views, err := c.ListStoreViews(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "default", views[0].Code)

	groups, err := c.ListStoreGroups(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "main_website_store", groups[1].Code)
}

func TestClient_ListWebsites_Error(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"message":"forbidden"}`)
	})

	_, err := c.ListWebsites(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing websites")
}
