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

func orderBody() gin.H {
	return gin.H{
		"deliveryAddress": "12 rue des Lilas, Paris",
		"deliveryPhone":   "+33600000000",
		"deliveryEmail":   "client@example.com",
		"paymentMethod":   "card",
	}
}

func TestCreateOrderMissingDeliveryFields(t *testing.T) {
	r := setupRouter(t)
	cookie := seedSession(t, "u1")

	w := doJSON(t, r, http.MethodPost, "/orders/create", gin.H{"paymentMethod": "card"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)
	cookie := seedSession(t, "u1")

	w := doJSON(t, r, http.MethodPost, "/orders/create", orderBody(), cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderSuccess(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)
	cookie := seedSession(t, "u1")
	doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p1", "quantity": 2}, cookie)

	w := doJSON(t, r, http.MethodPost, "/orders/create", orderBody(), cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Order struct {
			ID          string  `json:"id"`
			TotalAmount float64 `json:"totalAmount"`
			ItemsCount  int     `json:"itemsCount"`
		} `json:"order"`
		RemainingCartItems int `json:"remainingCartItems"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Order.ID)
	assert.Equal(t, 20.0, resp.Order.TotalAmount)
	assert.Equal(t, 1, resp.Order.ItemsCount)
	assert.Equal(t, 0, resp.RemainingCartItems)

	products, _ := storage.Products.Load()
	assert.Equal(t, 3, products[0].Stock)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	r := setupRouter(t)
	seedCatalog(t)
	cookie := seedSession(t, "u1")
	doJSON(t, r, http.MethodPost, "/cart/add", gin.H{"productId": "p2", "quantity": 2}, cookie)

	// le stock fond entre l'ajout au panier et la commande
	require.NoError(t, storage.Products.Mutate(func(products []models.Product) ([]models.Product, error) {
		for i := range products {
			if products[i].ID == "p2" {
				products[i].Stock = 1
			}
		}
		return products, nil
	}))

	w := doJSON(t, r, http.MethodPost, "/orders/create", orderBody(), cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// stock et panier inchangés
	products, _ := storage.Products.Load()
	for _, p := range products {
		if p.ID == "p2" {
			assert.Equal(t, 1, p.Stock)
		}
	}
	carts, _ := storage.Carts.Load()
	require.Len(t, carts, 1)
	assert.Len(t, carts[0].Items, 1)
}

func TestGetMyOrdersNewestFirst(t *testing.T) {
	r := setupRouter(t)
	cookie := seedSession(t, "u1")
	require.NoError(t, storage.Orders.Save([]models.Order{
		{ID: "o1", UserID: "u1", CreatedAt: 100},
		{ID: "o2", UserID: "autre", CreatedAt: 250},
		{ID: "o3", UserID: "u1", CreatedAt: 200},
	}))

	w := doJSON(t, r, http.MethodGet, "/orders", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, "o3", orders[0].ID)
	assert.Equal(t, "o1", orders[1].ID)
}
