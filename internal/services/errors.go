package services

import "errors"

// Erreurs métier de la transaction de commande. Les handlers les mappent vers
// les statuts HTTP avec errors.Is.
var (
	ErrEmptyCart         = errors.New("panier vide")
	ErrNoItemsSelected   = errors.New("aucun article sélectionné pour la commande")
	ErrProductNotFound   = errors.New("produit introuvable")
	ErrInsufficientStock = errors.New("stock insuffisant")
)
