package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/storage"
)

//
// 🟢 GET /cart
//
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")

	// Le panier est créé paresseusement au premier accès
	var cart models.Cart
	err := storage.Carts.Mutate(func(carts []models.Cart) ([]models.Cart, error) {
		for _, existing := range carts {
			if existing.UserID == userID {
				cart = existing
				return carts, nil
			}
		}
		cart = models.Cart{UserID: userID, Items: []models.CartItem{}}
		return append(carts, cart), nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture panier"})
		return
	}

	products, err := storage.Products.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture produits"})
		return
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	// Jointure avec le catalogue ; les lignes dont le produit a disparu sont
	// omises de la réponse (mais restent stockées)
	items := []gin.H{}
	totalItems := 0
	for _, item := range cart.Items {
		totalItems += item.Quantity
		if p, ok := byID[item.ProductID]; ok {
			items = append(items, gin.H{
				"productId": item.ProductID,
				"quantity":  item.Quantity,
				"product":   p,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "totalItems": totalItems})
}

//
// 🟢 POST /cart/add
//
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.ProductID == "" || input.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	// Vérifie le stock au moment de l'ajout ; rien n'est réservé, la commande
	// revalidera
	products, err := storage.Products.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture produits"})
		return
	}
	var product *models.Product
	for i := range products {
		if products[i].ID == input.ProductID {
			product = &products[i]
			break
		}
	}
	if product == nil || product.Stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Produit indisponible"})
		return
	}

	err = storage.Carts.Mutate(func(carts []models.Cart) ([]models.Cart, error) {
		for i := range carts {
			if carts[i].UserID != userID {
				continue
			}
			for j := range carts[i].Items {
				if carts[i].Items[j].ProductID == input.ProductID {
					carts[i].Items[j].Quantity += input.Quantity
					return carts, nil
				}
			}
			carts[i].Items = append(carts[i].Items, models.CartItem{
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
			})
			return carts, nil
		}
		return append(carts, models.Cart{
			UserID: userID,
			Items:  []models.CartItem{{ProductID: input.ProductID, Quantity: input.Quantity}},
		}), nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ajouté au panier"})
}

//
// 🟡 PUT /cart/update/:productId
//
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "La quantité ne peut pas être négative"})
		return
	}

	// Quantité exacte demandée : on la valide contre le stock courant
	if input.Quantity > 0 {
		products, err := storage.Products.Load()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture produits"})
			return
		}
		for _, p := range products {
			if p.ID == productID && p.Stock < input.Quantity {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Stock insuffisant"})
				return
			}
		}
	}

	status := http.StatusOK
	message := "Panier mis à jour"
	err := storage.Carts.Mutate(func(carts []models.Cart) ([]models.Cart, error) {
		for i := range carts {
			if carts[i].UserID != userID {
				continue
			}
			for j := range carts[i].Items {
				if carts[i].Items[j].ProductID != productID {
					continue
				}
				if input.Quantity == 0 {
					// quantité 0 = suppression de la ligne
					carts[i].Items = append(carts[i].Items[:j], carts[i].Items[j+1:]...)
				} else {
					carts[i].Items[j].Quantity = input.Quantity
				}
				return carts, nil
			}
			status, message = http.StatusNotFound, "Article absent du panier"
			return carts, nil
		}
		status, message = http.StatusNotFound, "Panier vide"
		return carts, nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(status, gin.H{"message": message})
}

//
// ❌ DELETE /cart/remove/:productId
//
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	productID := c.Param("productId")

	status := http.StatusOK
	message := "Article retiré du panier"
	err := storage.Carts.Mutate(func(carts []models.Cart) ([]models.Cart, error) {
		for i := range carts {
			if carts[i].UserID != userID {
				continue
			}
			kept := []models.CartItem{}
			for _, item := range carts[i].Items {
				if item.ProductID != productID {
					kept = append(kept, item)
				}
			}
			carts[i].Items = kept
			return carts, nil
		}
		status, message = http.StatusNotFound, "Panier vide"
		return carts, nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(status, gin.H{"message": message})
}
