package main

import (
	"log"
	"net/http"
	"os"

	"restaurant-pos/config"
	"restaurant-pos/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Load settings (file path overridable via env)
	settingsPath := os.Getenv("POS_SETTINGS")
	if settingsPath == "" {
		settingsPath = "settings.yaml"
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		log.Fatal("Failed to load settings:", err)
	}

	// Initialize database
	config.InitDB(settings.DatabasePath)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": settings.RestaurantName + " POS",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to " + settings.RestaurantName,
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"customer", "waiter", "chef", "cashier", "delivery", "admin"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	log.Printf("Server running on http://localhost:%s", settings.Port)
	if err := r.Run(":" + settings.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
