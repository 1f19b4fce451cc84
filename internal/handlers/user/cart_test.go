package user_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/storage"
)

func seedCatalog(t *testing.T) {
	t.Helper()
	require.NoError(t, storage.Products.Save([]models.Product{
		{ID: "p1", Title: "Crème", Price: 10, Stock: 5, Category: "Soin"},
		{ID: "p2", Title: "Sérum", Price: 30, Stock: 2, Category: "Soin"},
	}))
}

type cartResponse struct {
	Items []struct {
		ProductID string         `json:"productId"`
		Quantity  int            `json:"quantity"`
		Product   models.Product `json:"product"`
	} `json:"items"`
	TotalItems int `json:"totalItems"`
}

func getCart(t *testing.T, r *gin.Engine, cookie *http.Cookie) cartResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/cart", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	var resp cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCartRequiresSession(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddToCartAndGet(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)
	cookie := seedSession(t, "u1")

	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p1", "quantity": 2}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	resp := getCart(t, r, cookie)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p1", resp.Items[0].ProductID)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "Crème", resp.Items[0].Product.Title)
	assert.Equal(t, 2, resp.TotalItems)

	// un second ajout incrémente la ligne existante
	doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p1", "quantity": 1}, cookie)
	resp = getCart(t, r, cookie)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.Items[0].Quantity)
}

func TestAddToCartOutOfStock(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)
	cookie := seedSession(t, "u1")

	// quantité au-delà du stock courant
	w := doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p2", "quantity": 3}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// produit inexistant
	w = doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "inconnu", "quantity": 1}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := getCart(t, r, cookie)
	assert.Empty(t, resp.Items)
}

func TestAddThenRemoveRoundTrip(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)
	cookie := seedSession(t, "u1")

	doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p1", "quantity": 2}, cookie)
	before := getCart(t, r, cookie)

	doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p2", "quantity": 1}, cookie)
	w := doJSON(t, r, http.MethodDelete, "/cart/remove/p2", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	after := getCart(t, r, cookie)
	assert.Equal(t, before, after)
}

func TestUpdateCartItem(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)
	cookie := seedSession(t, "u1")
	doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p1", "quantity": 2}, cookie)

	w := doJSON(t, r, http.MethodPut, "/cart/update/p1", gin.H{"quantity": 4}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	resp := getCart(t, r, cookie)
	assert.Equal(t, 4, resp.Items[0].Quantity)

	// quantité négative refusée
	w = doJSON(t, r, http.MethodPut, "/cart/update/p1", gin.H{"quantity": -1}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// quantité au-delà du stock refusée
	w = doJSON(t, r, http.MethodPut, "/cart/update/p1", gin.H{"quantity": 99}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// article absent du panier
	w = doJSON(t, r, http.MethodPut, "/cart/update/p2", gin.H{"quantity": 1}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)
	cookie := seedSession(t, "u1")
	doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p1", "quantity": 2}, cookie)

	w := doJSON(t, r, http.MethodPut, "/cart/update/p1", gin.H{"quantity": 0}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	resp := getCart(t, r, cookie)
	assert.Empty(t, resp.Items)

	// la ligne doit avoir disparu du stockage, pas seulement de la réponse
	carts, _ := storage.Carts.Load()
	require.Len(t, carts, 1)
	assert.Empty(t, carts[0].Items)
}

func TestGetCartDropsVanishedProducts(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)
	cookie := seedSession(t, "u1")
	doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p1", "quantity": 1}, cookie)

	// le produit disparaît du catalogue après l'ajout
	require.NoError(t, storage.Products.Save([]models.Product{}))

	resp := getCart(t, r, cookie)
	assert.Empty(t, resp.Items)

	// mais la ligne reste en stockage
	carts, _ := storage.Carts.Load()
	require.Len(t, carts, 1)
	assert.Len(t, carts[0].Items, 1)
}
