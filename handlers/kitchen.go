package handlers

import (
	"net/http"

	"restaurant-pos/config"
	"restaurant-pos/middleware"
	"restaurant-pos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPendingQueue returns orders waiting for a chef, oldest first
func GetPendingQueue(c *gin.Context) {
	var orders []models.Order
	config.DB.Preload("Details.MenuItem").Preload("Table").
		Where("status = ?", models.StatusPending).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetMyPreparations returns the orders currently owned by the logged-in chef
func GetMyPreparations(c *gin.Context) {
	chefID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Details.MenuItem").Preload("Table").
		Where("prepared_by_id = ? AND status = ?", chefID, models.StatusInPreparation).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// AcceptOrder assigns a pending order to the logged-in chef and moves every
// item that needs preparation into IN_PREPARATION. Ready-to-serve items keep
// their READY status.
func AcceptOrder(c *gin.Context) {
	chefID := middleware.GetUserID(c)
	chefName := middleware.GetUserName(c)

	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Status != models.StatusPending {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Only PENDING orders can be accepted",
			"current_status": order.Status,
		})
		return
	}
	if order.PreparedByID != nil && *order.PreparedByID != chefID {
		c.JSON(http.StatusConflict, gin.H{"error": "Order already taken by another chef"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for i := range order.Details {
			d := &order.Details[i]
			if d.ItemStatus != models.StatusPending {
				continue
			}
			if d.MenuItem != nil && !d.MenuItem.RequiresPreparation {
				continue
			}
			d.ItemStatus = models.StatusInPreparation
			d.PreparedBy = chefName
			if err := tx.Model(d).Updates(map[string]interface{}{
				"item_status": models.StatusInPreparation,
				"prepared_by": chefName,
			}).Error; err != nil {
				return err
			}
		}

		order.PreparedByID = &chefID
		order.UpdateStatusFromItems()
		order.UpdatedBy = chefName
		return tx.Model(order).Updates(map[string]interface{}{
			"prepared_by_id": chefID,
			"status":         order.Status,
			"updated_by":     chefName,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept order"})
		return
	}

	broadcastOrder("order_accepted", order)

	c.JSON(http.StatusOK, gin.H{"message": "Order accepted", "order": order})
}

// MarkItemReady finishes one line item. When it is the last one the order as a
// whole becomes READY.
func MarkItemReady(c *gin.Context) {
	chefID := middleware.GetUserID(c)

	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.PreparedByID == nil || *order.PreparedByID != chefID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not preparing this order"})
		return
	}

	var detail *models.OrderDetail
	detailID := c.Param("itemId")
	for i := range order.Details {
		if idString(order.Details[i].ID) == detailID {
			detail = &order.Details[i]
			break
		}
	}
	if detail == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in this order"})
		return
	}
	if detail.ItemStatus != models.StatusInPreparation {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "Only items in preparation can be marked ready",
			"item_status": detail.ItemStatus,
		})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		detail.ItemStatus = models.StatusReady
		if err := tx.Model(detail).Update("item_status", models.StatusReady).Error; err != nil {
			return err
		}
		order.UpdateStatusFromItems()
		order.UpdatedBy = middleware.GetUserName(c)
		return tx.Model(order).Updates(map[string]interface{}{
			"status":     order.Status,
			"updated_by": order.UpdatedBy,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	event := "item_ready"
	if order.Status == models.StatusReady {
		event = "order_ready"
	}
	broadcastOrder(event, order)

	c.JSON(http.StatusOK, gin.H{"message": "Item marked ready", "order": order})
}
