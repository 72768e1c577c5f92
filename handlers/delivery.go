package handlers

import (
	"net/http"

	"restaurant-pos/config"
	"restaurant-pos/middleware"
	"restaurant-pos/models"
	"restaurant-pos/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListReadyDeliveries returns delivery orders waiting for a courier
func ListReadyDeliveries(c *gin.Context) {
	var orders []models.Order
	config.DB.Preload("Details.MenuItem").
		Where("order_type = ? AND status = ?", models.TypeDelivery, models.StatusReady).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetMyDeliveries returns the courier's orders currently on the way
func GetMyDeliveries(c *gin.Context) {
	courierID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Details.MenuItem").
		Where("courier_id = ? AND status = ?", courierID, models.StatusOnTheWay).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// StartDelivery assigns a READY delivery order to the logged-in courier
func StartDelivery(c *gin.Context) {
	courierID := middleware.GetUserID(c)

	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err := statemachine.CanTransition(order.Status, models.StatusOnTheWay, order.OrderType); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if order.CourierID != nil && *order.CourierID != courierID {
		c.JSON(http.StatusConflict, gin.H{"error": "Order already taken by another courier"})
		return
	}

	order.Status = models.StatusOnTheWay
	order.CourierID = &courierID
	order.UpdatedBy = middleware.GetUserName(c)
	if err := config.DB.Model(order).Updates(map[string]interface{}{
		"status":     models.StatusOnTheWay,
		"courier_id": courierID,
		"updated_by": order.UpdatedBy,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start delivery"})
		return
	}

	broadcastOrder("status_changed", order)

	c.JSON(http.StatusOK, gin.H{"message": "Delivery started", "order": order})
}

// CompleteDelivery marks the courier's order as handed over to the customer
func CompleteDelivery(c *gin.Context) {
	courierID := middleware.GetUserID(c)

	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CourierID == nil || *order.CourierID != courierID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This delivery is not assigned to you"})
		return
	}
	if err := statemachine.CanTransition(order.Status, models.StatusDelivered, order.OrderType); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for i := range order.Details {
			if order.Details[i].ItemStatus == models.StatusDelivered {
				continue
			}
			order.Details[i].ItemStatus = models.StatusDelivered
			if err := tx.Model(&order.Details[i]).
				Update("item_status", models.StatusDelivered).Error; err != nil {
				return err
			}
		}
		order.Status = models.StatusDelivered
		order.UpdatedBy = middleware.GetUserName(c)
		return tx.Model(order).Updates(map[string]interface{}{
			"status":     models.StatusDelivered,
			"updated_by": order.UpdatedBy,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete delivery"})
		return
	}

	broadcastOrder("status_changed", order)

	c.JSON(http.StatusOK, gin.H{"message": "Delivery completed", "order": order})
}
