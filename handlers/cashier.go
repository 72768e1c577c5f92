package handlers

import (
	"net/http"
	"time"

	"restaurant-pos/config"
	"restaurant-pos/middleware"
	"restaurant-pos/models"
	"restaurant-pos/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListDeliveredOrders returns orders awaiting payment
func ListDeliveredOrders(c *gin.Context) {
	var orders []models.Order
	config.DB.Preload("Details.MenuItem").Preload("Table").
		Where("status = ?", models.StatusDelivered).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

type SettleOrderRequest struct {
	Tip string `json:"tip"`
}

// SettleOrder collects payment for a delivered order, recording the tip and
// freeing the table on dine-in orders
func SettleOrder(c *gin.Context) {
	cashierID := middleware.GetUserID(c)

	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req SettleOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tip := decimal.Zero
	if req.Tip != "" {
		tip, err = decimal.NewFromString(req.Tip)
		if err != nil || tip.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Tip must be a non-negative amount"})
			return
		}
		tip = tip.Round(2)
	}

	if err := statemachine.CanTransition(order.Status, models.StatusPaid, order.OrderType); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		order.Status = models.StatusPaid
		order.Tip = tip
		order.PaidByID = &cashierID
		order.UpdatedBy = middleware.GetUserName(c)
		if err := tx.Model(order).Updates(map[string]interface{}{
			"status":     models.StatusPaid,
			"tip":        tip,
			"paid_by_id": cashierID,
			"updated_by": order.UpdatedBy,
		}).Error; err != nil {
			return err
		}
		if order.OrderType == models.TypeDineIn && order.TableID != nil {
			return tx.Model(&models.RestaurantTable{}).Where("id = ?", *order.TableID).
				Update("status", models.TableAvailable).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle order"})
		return
	}

	broadcastOrder("status_changed", order)

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order paid",
		"order_id":       order.ID,
		"total":          order.Total,
		"tip":            order.Tip,
		"total_with_tip": order.TotalWithTip(),
	})
}

// ReturnCancelledOrderStock restores ingredient stock for an order that was
// cancelled after preparation had started. PENDING cancellations return stock
// automatically, so this action covers the rest and can run only once.
func ReturnCancelledOrderStock(c *gin.Context) {
	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Status != models.StatusCancelled {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Stock can only be returned for cancelled orders",
			"current_status": order.Status,
		})
		return
	}
	if order.StockReturned {
		c.JSON(http.StatusConflict, gin.H{"error": "Stock was already returned for this order"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := returnStockForOrder(tx, order); err != nil {
			return err
		}
		order.UpdatedBy = middleware.GetUserName(c)
		return tx.Model(order).Update("updated_by", order.UpdatedBy).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to return stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock returned", "order_id": order.ID})
}

// GetDailySales summarizes paid orders for today
func GetDailySales(c *gin.Context) {
	start := startOfDay(time.Now())

	var orders []models.Order
	config.DB.Where("status = ? AND updated_at >= ?", models.StatusPaid, start).
		Find(&orders)

	total := decimal.Zero
	tips := decimal.Zero
	byType := map[models.OrderType]int{}
	for _, o := range orders {
		total = total.Add(o.Total)
		tips = tips.Add(o.Tip)
		byType[o.OrderType]++
	}

	c.JSON(http.StatusOK, gin.H{
		"date":           start.Format("2006-01-02"),
		"orders_paid":    len(orders),
		"total_sales":    total,
		"total_tips":     tips,
		"orders_by_type": byType,
	})
}
