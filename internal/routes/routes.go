package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/handlers/product"
	"lumina_back_end/internal/handlers/user"
	"lumina_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Backend is running!"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", user.Register)
		auth.POST("/login", user.Login)
		auth.GET("/me", middleware.AuthRequired(), user.Me)
		auth.POST("/logout", middleware.AuthRequired(), user.Logout)
	}

	products := r.Group("/products")
	{
		products.GET("", product.GetProducts)
		products.GET("/:id", product.GetProductByID)
	}

	cart := r.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/add", user.AddToCart)
		cart.PUT("/update/:productId", user.UpdateCartItem)
		cart.DELETE("/remove/:productId", user.RemoveFromCart)
	}

	orders := r.Group("/orders", middleware.AuthRequired())
	{
		orders.POST("/create", user.CreateOrder)
		orders.GET("", user.GetMyOrders)
	}
}
