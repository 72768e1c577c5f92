package handlers

import (
	"net/http"

	"restaurant-pos/config"
	"restaurant-pos/middleware"
	"restaurant-pos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OpenTableOrderRequest struct {
	TableID      uint               `json:"table_id" binding:"required"`
	CustomerName string             `json:"customer_name"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OpenTableOrder starts a DINE_IN order on a table
func OpenTableOrder(c *gin.Context) {
	waiterID := middleware.GetUserID(c)

	var req OpenTableOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var table models.RestaurantTable
	if err := config.DB.First(&table, req.TableID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}
	if !table.Active || table.Status == models.TableOutOfService {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Table is out of service"})
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		details, err := buildOrderDetails(tx, req.Items)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:  nextOrderNumber(tx),
			OrderType:    models.TypeDineIn,
			TableID:      &table.ID,
			WaiterID:     &waiterID,
			CustomerName: req.CustomerName,
			Details:      details,
			TaxRate:      config.Current.TaxRateDecimal(),
			CreatedBy:    middleware.GetUserName(c),
		}
		order.RecalculateAmounts()
		order.UpdateStatusFromItems()

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Model(&table).Update("status", models.TableOccupied).Error
	})
	if err != nil {
		respondStockError(c, err)
		return
	}

	broadcastOrder("order_created", &order)

	c.JSON(http.StatusCreated, gin.H{"message": "Order opened", "order": order})
}

type AddItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AddItemsToOrder appends line items to an open order. Whether more items are
// accepted depends on the order type; newly added items are flagged so the
// kitchen can spot them, and if a chef already owns the order it stays
// IN_PREPARATION instead of dropping back into the pending queue.
func AddItemsToOrder(c *gin.Context) {
	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !order.CanAcceptNewItems() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Order can no longer accept new items",
			"order_type":     order.OrderType,
			"current_status": order.Status,
		})
		return
	}

	var req AddItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		details, err := buildOrderDetails(tx, req.Items)
		if err != nil {
			return err
		}
		for i := range details {
			details[i].OrderID = order.ID
			details[i].MarkAsNew()
			if err := tx.Create(&details[i]).Error; err != nil {
				return err
			}
			order.Details = append(order.Details, details[i])
		}

		order.RecalculateAmounts()
		order.UpdateStatusFromItems()
		order.UpdatedBy = middleware.GetUserName(c)
		return tx.Model(order).Updates(map[string]interface{}{
			"subtotal":   order.Subtotal,
			"tax_amount": order.TaxAmount,
			"total":      order.Total,
			"status":     order.Status,
			"updated_by": order.UpdatedBy,
		}).Error
	})
	if err != nil {
		respondStockError(c, err)
		return
	}

	broadcastOrder("items_added", order)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Items added",
		"order":     order,
		"new_items": order.NewItemsCount(),
	})
}

// ServeReadyItems marks READY items of a dine-in or takeout order as
// DELIVERED once the waiter brings them to the table or counter
func ServeReadyItems(c *gin.Context) {
	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.OrderType == models.TypeDelivery {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery orders are handed over by the courier"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		served := 0
		for i := range order.Details {
			if order.Details[i].IsReady() {
				order.Details[i].ItemStatus = models.StatusDelivered
				if err := tx.Model(&order.Details[i]).
					Update("item_status", models.StatusDelivered).Error; err != nil {
					return err
				}
				served++
			}
		}
		if served == 0 {
			return errNoReadyItems
		}
		order.UpdateStatusFromItems()
		order.UpdatedBy = middleware.GetUserName(c)
		return tx.Model(order).Updates(map[string]interface{}{
			"status":     order.Status,
			"updated_by": order.UpdatedBy,
		}).Error
	})
	if err == errNoReadyItems {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No READY items to serve"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serve items"})
		return
	}

	broadcastOrder("status_changed", order)

	c.JSON(http.StatusOK, gin.H{"message": "Items served", "order": order})
}

// CancelOrder lets staff cancel an order under the same policy as customers
func CancelOrder(c *gin.Context) {
	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	cancelOrder(c, order, middleware.GetUserName(c))
}

// ListTables returns all tables with their current status
func ListTables(c *gin.Context) {
	var tables []models.RestaurantTable
	config.DB.Where("active = ?", true).Order("table_number").Find(&tables)
	c.JSON(http.StatusOK, gin.H{"tables": tables})
}

type SetTableStatusRequest struct {
	Status models.TableStatus `json:"status" binding:"required"`
}

// SetTableStatus updates a table's occupancy state
func SetTableStatus(c *gin.Context) {
	var table models.RestaurantTable
	if err := config.DB.First(&table, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
		return
	}

	var req SetTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case models.TableAvailable, models.TableOccupied, models.TableReserved, models.TableOutOfService:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown table status"})
		return
	}

	config.DB.Model(&table).Update("status", req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Table updated", "table": table})
}
