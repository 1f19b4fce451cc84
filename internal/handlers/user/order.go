package user

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/services"
	"lumina_back_end/internal/utils"
)

//
// 🟢 POST /orders/create
//
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		DeliveryAddress string   `json:"deliveryAddress"`
		DeliveryPhone   string   `json:"deliveryPhone"`
		DeliveryEmail   string   `json:"deliveryEmail"`
		PaymentMethod   string   `json:"paymentMethod"`
		SelectedItems   []string `json:"selectedItems"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}
	if input.DeliveryAddress == "" || input.DeliveryPhone == "" ||
		input.DeliveryEmail == "" || input.PaymentMethod == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Remplissez tous les champs de livraison et de paiement"})
		return
	}

	placed, err := services.PlaceOrder(userID, services.OrderInput{
		DeliveryAddress: input.DeliveryAddress,
		DeliveryPhone:   input.DeliveryPhone,
		DeliveryEmail:   input.DeliveryEmail,
		PaymentMethod:   input.PaymentMethod,
		SelectedItems:   input.SelectedItems,
	})
	switch {
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrNoItemsSelected),
		errors.Is(err, services.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	case err != nil:
		log.Println("❌ Erreur création commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de la commande"})
		return
	}

	// Confirmation par e-mail, sans bloquer la réponse
	go func() {
		if err := utils.SendOrderConfirmation(placed.Order, placed.Lines); err != nil {
			log.Println("⚠️ Échec envoi e-mail de confirmation:", err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Commande enregistrée avec succès",
		"order": gin.H{
			"id":          placed.Order.ID,
			"totalAmount": placed.Order.TotalAmount,
			"itemsCount":  len(placed.Order.Items),
			"createdAt":   placed.Order.CreatedAt,
		},
		"remainingCartItems": placed.RemainingCartItems,
	})
}

//
// 🟢 GET /orders
//
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	orders, err := services.UserOrders(userID)
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
