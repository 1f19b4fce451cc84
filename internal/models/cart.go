package models

type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
