package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"restaurant-pos/models"
	"restaurant-pos/notifications"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Hub broadcasts order events to kitchen and waiter screens; wired in main
var Hub = notifications.NewHub()

var (
	errNoReadyItems     = errors.New("no ready items")
	errUnknownMenuItems = errors.New("unknown menu items")
)

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// OrderItemRequest is one requested line in an order submission
type OrderItemRequest struct {
	MenuItemID uint   `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Comments   string `json:"comments"`
}

// startOfDay returns midnight of t's calendar day in t's location. Order
// numbers are labelled with the local date, so the daily window must start at
// local midnight too, not at UTC midnight.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// nextOrderNumber allocates today's next sequential order number
func nextOrderNumber(tx *gorm.DB) string {
	start := startOfDay(time.Now())
	var count int64
	tx.Model(&models.Order{}).Where("created_at >= ?", start).Count(&count)
	return models.GenerateOrderNumber(int(count) + 1)
}

// buildOrderDetails validates the requested items, applies the best active
// promotion per item, deducts ingredient stock and refreshes item
// availability. Must run inside a transaction: any error rolls everything
// back, which also guards stock deductions against concurrent orders.
func buildOrderDetails(tx *gorm.DB, items []OrderItemRequest) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	for _, req := range items {
		var item models.MenuItem
		if err := tx.Preload("Recipe.Ingredient").Preload("Promotions").
			First(&item, req.MenuItemID).Error; err != nil {
			return nil, fmt.Errorf("menu item %d not found", req.MenuItemID)
		}
		if !item.Active || !item.Available {
			return nil, fmt.Errorf("menu item '%s' is not available", item.Name)
		}
		if !item.HasEnoughStock(req.Quantity) {
			return nil, fmt.Errorf("not enough stock to prepare %d x '%s'", req.Quantity, item.Name)
		}

		detail := models.OrderDetail{
			MenuItemID: item.ID,
			Quantity:   req.Quantity,
			UnitPrice:  item.Price,
			Comments:   req.Comments,
			ItemStatus: models.StatusPending,
		}
		// Ready-to-serve items skip the kitchen
		if !item.RequiresPreparation {
			detail.ItemStatus = models.StatusReady
		}

		if promo := item.BestPromotion(); promo != nil {
			total := item.PromotionalPrice(promo, req.Quantity)
			perUnit := total.DivRound(decimal.NewFromInt(int64(req.Quantity)), 2)
			promoID := promo.ID
			detail.PromotionPrice = &perUnit
			detail.AppliedPromotionID = &promoID
		}
		detail.CalculateSubtotal()
		if err := detail.Validate(); err != nil {
			return nil, err
		}

		if err := deductStockForItem(tx, &item, req.Quantity); err != nil {
			return nil, err
		}

		itemCopy := item
		detail.MenuItem = &itemCopy
		details = append(details, detail)
	}
	return details, nil
}

// deductStockForItem consumes the recipe quantities for n portions and
// persists the new stock levels plus the item's refreshed availability
func deductStockForItem(tx *gorm.DB, item *models.MenuItem, quantity int) error {
	for i := range item.Recipe {
		line := &item.Recipe[i]
		newStock, err := line.DeductFromStock(quantity)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Ingredient{}).Where("id = ?", line.IngredientID).
			Update("current_stock", newStock).Error; err != nil {
			return err
		}
	}
	item.UpdateAvailability()
	return tx.Model(item).Update("available", item.Available).Error
}

// returnStockForItem restores the recipe quantities for n portions
func returnStockForItem(tx *gorm.DB, item *models.MenuItem, quantity int) error {
	for i := range item.Recipe {
		line := &item.Recipe[i]
		newStock := line.ReturnToStock(quantity)
		if err := tx.Model(&models.Ingredient{}).Where("id = ?", line.IngredientID).
			Update("current_stock", newStock).Error; err != nil {
			return err
		}
	}
	item.UpdateAvailability()
	return tx.Model(item).Update("available", item.Available).Error
}

// returnStockForOrder restores stock for every line item of a cancelled order
func returnStockForOrder(tx *gorm.DB, order *models.Order) error {
	for _, d := range order.Details {
		var item models.MenuItem
		if err := tx.Preload("Recipe.Ingredient").First(&item, d.MenuItemID).Error; err != nil {
			return err
		}
		if err := returnStockForItem(tx, &item, d.Quantity); err != nil {
			return err
		}
	}
	return tx.Model(order).Update("stock_returned", true).Error
}

// loadOrder fetches an order with its line items and menu item flags, which
// the status aggregator needs in memory
func loadOrder(db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Details.MenuItem").Preload("Table").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// respondStockError maps stock failures to a 409 with the details the UI
// shows; other errors fall through as 400
func respondStockError(c *gin.Context, err error) {
	var stockErr *models.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":      "Insufficient stock",
			"ingredient": stockErr.IngredientName,
			"required":   stockErr.Required,
			"available":  stockErr.Available,
			"unit":       stockErr.Unit,
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// broadcastOrder pushes an order event to connected kitchen/waiter screens
func broadcastOrder(eventType string, order *models.Order) {
	Hub.Broadcast(notifications.Event{
		Type:        eventType,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
	})
}
