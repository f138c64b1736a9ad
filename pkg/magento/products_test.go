package magento_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ptchr/magento2-rest-client/pkg/magento"
)

func TestClient_GetProductBySKU(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, fake := newFakeClient(t)
	seedCatalog(fake)

	p, err := c.GetProductBySKU(ctx, testSKU)
	require.NoError(t, err)
	assert.Equal(t, "Breathe-Easy Tank", p.Name)

	_, err = c.GetProductBySKU(ctx, "nope")
	require.ErrorIs(t, err, magento.ErrProductNotFound)
	assert.Equal(t, magento.KindNotFound, magento.KindOf(err))
}

func TestClient_ListProducts(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/V1/products", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("searchCriteria[pageSize]"))
		assert.Equal(t, "2", r.URL.Query().Get("searchCriteria[currentPage]"))
		writeJSON(w, http.StatusOK, `{"items":[{"id":1,"sku":"a"},{"id":2,"sku":"b"}],"total_count":22}`)
	})

	result, err := c.ListProducts(context.Background(), 2, 20)
	require.NoError(t, err)
	assert.Equal(t, 22, result.TotalCount)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "b", result.Items[1].SKU)
}

func TestClient_CreateProductImage_Body(t *testing.T) {
	t.Parallel()

	img := []byte{0xff, 0xd8, 0xff, 0xe0}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/all/V1/products/MH01%2FXS/media", r.URL.EscapedPath())

		var body struct {
			Entry magento.MediaGalleryEntry `json:"entry"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "image", body.Entry.MediaType)
		assert.Equal(t, []string{magento.ImageRoleBase, magento.ImageRoleThumbnail}, body.Entry.Types)
		if assert.NotNil(t, body.Entry.Content) {
			assert.Equal(t, base64.StdEncoding.EncodeToString(img), body.Entry.Content.Base64EncodedData)
			assert.Equal(t, "image/jpeg", body.Entry.Content.Type)
			assert.Equal(t, "front.jpg", body.Entry.Content.Name)
		}
		writeJSON(w, http.StatusOK, `"17"`)
	})

	id, err := c.CreateProductImage(context.Background(), "MH01/XS", magento.ProductImage{
		Content:  img,
		FileName: "front.jpg",
		Label:    "Front",
		Types:    []string{magento.ImageRoleBase, magento.ImageRoleThumbnail},
	})
	require.NoError(t, err)
	assert.Equal(t, 17, id)
}

func TestClient_CreateProductImage_Validation(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `"1"`)
	})

	_, err := c.CreateProductImage(context.Background(), "sku", magento.ProductImage{FileName: "a.jpg"})
	require.ErrorIs(t, err, magento.ErrValidation)

	_, err = c.CreateProductImage(context.Background(), "sku", magento.ProductImage{Content: []byte{1}})
	require.ErrorIs(t, err, magento.ErrValidation)
}

func TestClient_ProductImageLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c, fake := newFakeClient(t)
	seedCatalog(fake)

	entryID, err := c.CreateProductImage(ctx, testSKU, magento.ProductImage{
		Content:  []byte("png-bytes"),
		FileName: "tank.png",
		MimeType: "image/png",
		Types:    []string{magento.ImageRoleBase},
	})
	require.NoError(t, err)
	assert.Positive(t, entryID)

	p, ok := fake.Product(testSKU)
	require.True(t, ok)
	require.Len(t, p.MediaGalleryEntries, 1)
	assert.Equal(t, entryID, p.MediaGalleryEntries[0].ID)
	assert.Equal(t, "/tank.png", p.MediaGalleryEntries[0].File)

	deleted, err := c.DeleteProductImage(ctx, testSKU, entryID)
	require.NoError(t, err)
	assert.True(t, deleted)

	p, _ = fake.Product(testSKU)
	assert.Empty(t, p.MediaGalleryEntries)

	_, err = c.DeleteProductImage(ctx, testSKU, entryID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, magento.StatusCode(err))
}
