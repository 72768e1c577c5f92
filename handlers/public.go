package handlers

import (
	"net/http"
	"time"

	"restaurant-pos/config"
	"restaurant-pos/models"
	"restaurant-pos/statemachine"

	"github.com/gin-gonic/gin"
)

// GetRestaurantInfo returns the public restaurant profile and whether it is
// open right now
func GetRestaurantInfo(c *gin.Context) {
	s := config.Current
	c.JSON(http.StatusOK, gin.H{
		"restaurant": s,
		"open_now":   s.IsOpenAt(time.Now()),
	})
}

// ListMenu returns the active menu grouped with availability and the best
// current promotion per item
func ListMenu(c *gin.Context) {
	var items []models.MenuItem
	query := config.DB.Preload("Category").Preload("Promotions").
		Where("active = ?", true)

	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if err := query.Order("name").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load menu"})
		return
	}

	type menuEntry struct {
		models.MenuItem
		PromotionLabel string `json:"promotion_label,omitempty"`
		BestPrice      string `json:"best_price,omitempty"`
	}

	entries := make([]menuEntry, 0, len(items))
	for i := range items {
		e := menuEntry{MenuItem: items[i]}
		if promo := items[i].BestPromotion(); promo != nil {
			e.PromotionLabel = promo.DisplayLabel()
			e.BestPrice = items[i].PromotionalPrice(promo, 1).StringFixed(2)
		}
		entries = append(entries, e)
	}

	c.JSON(http.StatusOK, gin.H{"count": len(entries), "items": entries})
}

// ListCategories returns the active menu categories
func ListCategories(c *gin.Context) {
	var categories []models.Category
	config.DB.Where("active = ?", true).Order("name").Find(&categories)
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListActivePromotions returns all promotions valid today
func ListActivePromotions(c *gin.Context) {
	var promotions []models.Promotion
	config.DB.Preload("Items").Where("active = ?", true).
		Order("priority desc").Find(&promotions)

	valid := make([]models.Promotion, 0, len(promotions))
	for _, p := range promotions {
		if p.IsValidNow() {
			valid = append(valid, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(valid), "promotions": valid})
}

// GetStateMachineInfo documents the order status flow per order type
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"statuses": []models.OrderStatus{
			models.StatusPending, models.StatusInPreparation, models.StatusReady,
			models.StatusOnTheWay, models.StatusDelivered, models.StatusCancelled,
			models.StatusPaid,
		},
		"transitions": statemachine.AllTransitions(),
	})
}
