package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"lumina_back_end/internal/models"
)

// --- Collections globales ---
var (
	Users    Store[models.User]
	Products Store[models.Product]
	Carts    Store[models.Cart]
	Orders   Store[models.Order]
)

// Init branche les collections sur les fichiers JSON du répertoire de données.
func Init(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("création répertoire données: %w", err)
	}

	Users = NewCollection[models.User](filepath.Join(dataDir, "users.json"))
	Products = NewCollection[models.Product](filepath.Join(dataDir, "products.json"))
	Carts = NewCollection[models.Cart](filepath.Join(dataDir, "carts.json"))
	Orders = NewCollection[models.Order](filepath.Join(dataDir, "orders.json"))

	log.Println("✅ Stockage JSON initialisé dans", dataDir)
	return nil
}

// UseMemory remplace toutes les collections par des fakes en mémoire (tests).
func UseMemory() {
	Users = NewMemory[models.User](nil)
	Products = NewMemory[models.Product](nil)
	Carts = NewMemory[models.Cart](nil)
	Orders = NewMemory[models.Order](nil)
}
