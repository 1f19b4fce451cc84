package main

import (
	"log"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lumina_back_end/internal/config"
	"lumina_back_end/internal/routes"
	"lumina_back_end/internal/storage"
)

func main() {
	config.Load()

	if err := storage.Init(config.DataDir()); err != nil {
		log.Fatal("❌ Impossible d'initialiser le stockage:", err)
	}

	r := gin.Default()
	r.Use(cors.New(corsConfig()))
	routes.RegisterRoutes(r)

	port := config.Port()
	log.Println("🚀 Serveur Lumina lancé sur le port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Serveur arrêté:", err)
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowCredentials = true // le cookie de session doit passer

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}
	cfg.AllowOrigins = strings.Split(origins, ",")
	return cfg
}
