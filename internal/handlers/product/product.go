package product

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/storage"
)

//
// 🟢 GET /products?search&category&inStock&sort&page&limit
//
func GetProducts(c *gin.Context) {
	products, err := storage.Products.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture produits"})
		return
	}

	filtered := products

	// Recherche dans titre et description
	if search := strings.ToLower(c.Query("search")); search != "" {
		var out []models.Product
		for _, p := range filtered {
			if strings.Contains(strings.ToLower(p.Title), search) ||
				strings.Contains(strings.ToLower(p.Description), search) {
				out = append(out, p)
			}
		}
		filtered = out
	}

	// Filtre par catégorie
	if category := c.Query("category"); category != "" {
		var out []models.Product
		for _, p := range filtered {
			if p.Category == category {
				out = append(out, p)
			}
		}
		filtered = out
	}

	// Filtre par disponibilité
	switch c.Query("inStock") {
	case "true":
		var out []models.Product
		for _, p := range filtered {
			if p.Stock > 0 {
				out = append(out, p)
			}
		}
		filtered = out
	case "false":
		var out []models.Product
		for _, p := range filtered {
			if p.Stock == 0 {
				out = append(out, p)
			}
		}
		filtered = out
	}

	// Tri par prix
	switch c.Query("sort") {
	case "price_asc":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	case "price_desc":
		sort.Slice(filtered, func(i, j int) bool { return filtered[i].Price > filtered[j].Price })
	}

	// Pagination
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	paginated := filtered[start:end]
	if paginated == nil {
		paginated = []models.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"products": paginated,
		"total":    len(filtered),
		"page":     page,
		"limit":    limit,
	})
}

//
// 🟢 GET /products/:id
//
func GetProductByID(c *gin.Context) {
	products, err := storage.Products.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lecture produits"})
		return
	}

	id := c.Param("id")
	for _, p := range products {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Produit non trouvé"})
}
