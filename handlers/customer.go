package handlers

import (
	"net/http"
	"time"

	"restaurant-pos/config"
	"restaurant-pos/middleware"
	"restaurant-pos/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PlaceOrderRequest struct {
	OrderType       models.OrderType   `json:"order_type" binding:"required"`
	DeliveryAddress string             `json:"delivery_address"`
	DeliveryNotes   string             `json:"delivery_notes"`
	CustomerPhone   string             `json:"customer_phone"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates a TAKEOUT or DELIVERY order from the customer site.
// Dine-in orders are opened by waiters on a table.
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OrderType != models.TypeTakeout && req.OrderType != models.TypeDelivery {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Online orders must be TAKEOUT or DELIVERY"})
		return
	}
	if req.OrderType == models.TypeDelivery && req.DeliveryAddress == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery address is required for DELIVERY orders"})
		return
	}
	if !config.Current.IsOpenAt(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The restaurant is currently closed"})
		return
	}

	var customer models.User
	if err := config.DB.First(&customer, customerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		details, err := buildOrderDetails(tx, req.Items)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:     nextOrderNumber(tx),
			OrderType:       req.OrderType,
			CustomerID:      &customer.ID,
			CustomerName:    customer.Name,
			CustomerPhone:   firstNonEmpty(req.CustomerPhone, customer.Phone),
			DeliveryAddress: req.DeliveryAddress,
			DeliveryNotes:   req.DeliveryNotes,
			Details:         details,
			TaxRate:         config.Current.TaxRateDecimal(),
			CreatedBy:       customer.Email,
		}
		order.RecalculateAmounts()
		order.UpdateStatusFromItems()

		return tx.Create(&order).Error
	})
	if err != nil {
		respondStockError(c, err)
		return
	}

	broadcastOrder("order_created", &order)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Details.MenuItem").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// TrackOrder returns one order's full detail for the logged-in customer
func TrackOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID == nil || *order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":           order,
		"minutes_elapsed": int(time.Since(order.CreatedAt).Minutes()),
	})
}

// CancelMyOrder cancels a customer's own order. Stock returns automatically
// only while the order is still PENDING; later cancellations leave the stock
// return to the cashier's explicit action.
func CancelMyOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	order, err := loadOrder(config.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.CustomerID == nil || *order.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	cancelOrder(c, order, middleware.GetUserName(c))
}

// cancelOrder applies the cancellation policy shared by customer and staff
// cancellations
func cancelOrder(c *gin.Context, order *models.Order, cancelledBy string) {
	if !order.CanBeCancelled() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Order can no longer be cancelled",
			"current_status": order.Status,
		})
		return
	}

	autoReturn := order.ShouldReturnStockOnCancel()
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if autoReturn {
			if err := returnStockForOrder(tx, order); err != nil {
				return err
			}
		}
		order.Cancel()
		order.UpdatedBy = cancelledBy
		return tx.Model(order).Updates(map[string]interface{}{
			"status":       order.Status,
			"cancelled_at": order.CancelledAt,
			"updated_by":   order.UpdatedBy,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	broadcastOrder("status_changed", order)

	c.JSON(http.StatusOK, gin.H{
		"message":        "Order cancelled",
		"order_id":       order.ID,
		"stock_returned": autoReturn,
	})
}
