package models

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	DeliveryAddress string      `json:"deliveryAddress"`
	DeliveryPhone   string      `json:"deliveryPhone"`
	DeliveryEmail   string      `json:"deliveryEmail"`
	PaymentMethod   string      `json:"paymentMethod"`
	CreatedAt       int64       `json:"createdAt"` // timestamp en millisecondes
	Status          string      `json:"status"`    // "new", "processing", "delivered"
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	// Prix figé au moment de la commande, jamais recalculé depuis le catalogue
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}
