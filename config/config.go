package config

import (
	"log"
	"os"

	"restaurant-pos/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "restaurant_pos_super_secret_2026"))

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB opens the database and migrates all models
func InitDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Supplier{},
		&models.IngredientCategory{},
		&models.Ingredient{},
		&models.MenuItem{},
		&models.RecipeLine{},
		&models.Promotion{},
		&models.RestaurantTable{},
		&models.Reservation{},
		&models.Order{},
		&models.OrderDetail{},
		&models.Shift{},
		&models.ShiftHistory{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}
