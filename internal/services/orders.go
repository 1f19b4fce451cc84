package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/storage"
)

type OrderInput struct {
	DeliveryAddress string
	DeliveryPhone   string
	DeliveryEmail   string
	PaymentMethod   string
	// Sous-ensemble d'IDs produits à commander. Vide = tout le panier.
	SelectedItems []string
}

// ConfirmationLine porte le titre et le prix figé d'une ligne commandée,
// uniquement pour l'e-mail de confirmation.
type ConfirmationLine struct {
	Title    string
	Quantity int
	Price    float64
}

type PlacedOrder struct {
	Order              models.Order
	Lines              []ConfirmationLine
	RemainingCartItems int
}

// PlaceOrder exécute la transaction de commande : panier → validation stock →
// décrément stock → enregistrement commande → retrait des lignes commandées.
//
// La validation de TOUT le working set précède le moindre décrément, et les
// deux se font sous le verrou de la collection produits : pas de décrément
// partiel, et deux checkouts concurrents ne peuvent pas survendre.
// Un échec d'écriture entre la sauvegarde des produits et celle du panier
// laisse un état partiel, limite assumée du stockage fichier sans
// transactions.
func PlaceOrder(userID string, input OrderInput) (*PlacedOrder, error) {
	// 1. Charge le panier de l'utilisateur
	carts, err := storage.Carts.Load()
	if err != nil {
		return nil, err
	}
	var cart *models.Cart
	for i := range carts {
		if carts[i].UserID == userID {
			cart = &carts[i]
			break
		}
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// 2. Working set : la sélection si fournie, sinon tout le panier
	itemsToOrder := cart.Items
	if len(input.SelectedItems) > 0 {
		selected := make(map[string]bool, len(input.SelectedItems))
		for _, id := range input.SelectedItems {
			selected[id] = true
		}
		itemsToOrder = nil
		for _, item := range cart.Items {
			if selected[item.ProductID] {
				itemsToOrder = append(itemsToOrder, item)
			}
		}
	}
	if len(itemsToOrder) == 0 {
		return nil, ErrNoItemsSelected
	}

	// 3-5. Validation complète puis décrément, atomiques sur products.json
	var orderItems []models.OrderItem
	var lines []ConfirmationLine
	var totalAmount float64

	err = storage.Products.Mutate(func(products []models.Product) ([]models.Product, error) {
		index := make(map[string]int, len(products))
		for i, p := range products {
			index[p.ID] = i
		}

		// D'abord valider toutes les lignes
		for _, item := range itemsToOrder {
			i, ok := index[item.ProductID]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
			if products[i].Stock < item.Quantity {
				return nil, fmt.Errorf("%w: %q (disponible: %d, demandé: %d)",
					ErrInsufficientStock, products[i].Title, products[i].Stock, item.Quantity)
			}
		}

		// Puis seulement décrémenter, avec le prix lu à la validation
		for _, item := range itemsToOrder {
			i := index[item.ProductID]
			products[i].Stock -= item.Quantity
			orderItems = append(orderItems, models.OrderItem{
				ProductID:       item.ProductID,
				Quantity:        item.Quantity,
				PriceAtPurchase: products[i].Price,
			})
			lines = append(lines, ConfirmationLine{
				Title:    products[i].Title,
				Quantity: item.Quantity,
				Price:    products[i].Price,
			})
			totalAmount += products[i].Price * float64(item.Quantity)
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}

	// 6. Enregistre la commande
	order := models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           orderItems,
		TotalAmount:     totalAmount,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryPhone:   input.DeliveryPhone,
		DeliveryEmail:   input.DeliveryEmail,
		PaymentMethod:   input.PaymentMethod,
		CreatedAt:       time.Now().UnixMilli(),
		Status:          "new",
	}
	err = storage.Orders.Mutate(func(orders []models.Order) ([]models.Order, error) {
		return append(orders, order), nil
	})
	if err != nil {
		return nil, err
	}

	// 7. Retire exactement les lignes commandées du panier
	ordered := make(map[string]bool, len(itemsToOrder))
	for _, item := range itemsToOrder {
		ordered[item.ProductID] = true
	}
	remaining := 0
	err = storage.Carts.Mutate(func(carts []models.Cart) ([]models.Cart, error) {
		for i := range carts {
			if carts[i].UserID != userID {
				continue
			}
			kept := []models.CartItem{}
			for _, item := range carts[i].Items {
				if !ordered[item.ProductID] {
					kept = append(kept, item)
				}
			}
			carts[i].Items = kept
			remaining = len(kept)
			break
		}
		return carts, nil
	})
	if err != nil {
		return nil, err
	}

	return &PlacedOrder{Order: order, Lines: lines, RemainingCartItems: remaining}, nil
}

// UserOrders retourne les commandes d'un utilisateur, les plus récentes en tête.
func UserOrders(userID string) ([]models.Order, error) {
	orders, err := storage.Orders.Load()
	if err != nil {
		return nil, err
	}
	mine := []models.Order{}
	for _, o := range orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].CreatedAt > mine[j].CreatedAt
	})
	return mine, nil
}
