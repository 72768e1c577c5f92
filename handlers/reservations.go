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

type CreateReservationRequest struct {
	Name        string    `json:"name" binding:"required"`
	Phone       string    `json:"phone" binding:"required"`
	ReservedFor time.Time `json:"reserved_for" binding:"required"`
	PartySize   int       `json:"party_size" binding:"required,min=1"`
	Notes       string    `json:"notes"`
}

// CreateReservation books a table for the logged-in customer. A table with
// enough capacity is assigned when one is free at the requested time.
func CreateReservation(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation := models.Reservation{
		ConfirmationCode: models.NewConfirmationCode(),
		CustomerID:       &customerID,
		Name:             req.Name,
		Phone:            req.Phone,
		ReservedFor:      req.ReservedFor,
		PartySize:        req.PartySize,
		Notes:            req.Notes,
		Status:           models.ReservationPending,
	}
	if err := reservation.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !config.Current.IsOpenAt(req.ReservedFor) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The restaurant is closed at the requested time"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		table, err := findFreeTable(tx, req.ReservedFor, req.PartySize)
		if err != nil {
			return err
		}
		if table != nil {
			reservation.TableID = &table.ID
			reservation.Status = models.ReservationConfirmed
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reservation"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Reservation created",
		"reservation":       reservation,
		"confirmation_code": reservation.ConfirmationCode,
	})
}

// findFreeTable picks the smallest active table with enough capacity that has
// no overlapping reservation within two hours of the requested time
func findFreeTable(tx *gorm.DB, at time.Time, partySize int) (*models.RestaurantTable, error) {
	var tables []models.RestaurantTable
	err := tx.Where("active = ? AND capacity >= ? AND status <> ?",
		true, partySize, models.TableOutOfService).
		Order("capacity asc").Find(&tables).Error
	if err != nil {
		return nil, err
	}

	windowStart := at.Add(-2 * time.Hour)
	windowEnd := at.Add(2 * time.Hour)
	for i := range tables {
		var clashes int64
		err := tx.Model(&models.Reservation{}).
			Where("table_id = ? AND status IN ? AND reserved_for BETWEEN ? AND ?",
				tables[i].ID,
				[]models.ReservationStatus{models.ReservationPending, models.ReservationConfirmed},
				windowStart, windowEnd).
			Count(&clashes).Error
		if err != nil {
			return nil, err
		}
		if clashes == 0 {
			return &tables[i], nil
		}
	}
	return nil, nil
}

// GetMyReservations lists the customer's reservations, newest first
func GetMyReservations(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var reservations []models.Reservation
	config.DB.Preload("Table").
		Where("customer_id = ?", customerID).
		Order("reserved_for desc").
		Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

// CancelMyReservation cancels a reservation by confirmation code
func CancelMyReservation(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var reservation models.Reservation
	err := config.DB.Where("confirmation_code = ?", c.Param("code")).First(&reservation).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}
	if reservation.CustomerID == nil || *reservation.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This reservation does not belong to you"})
		return
	}
	if !reservation.CanBeCancelled() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Reservation can no longer be cancelled",
			"current_status": reservation.Status,
		})
		return
	}

	config.DB.Model(&reservation).Update("status", models.ReservationCancelled)
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled"})
}

// ListReservations shows upcoming reservations for the staff
func ListReservations(c *gin.Context) {
	query := config.DB.Preload("Table").Preload("Customer")
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date must be YYYY-MM-DD"})
			return
		}
		query = query.Where("reserved_for >= ? AND reserved_for < ?", day, day.AddDate(0, 0, 1))
	} else {
		query = query.Where("reserved_for >= ?", time.Now())
	}

	var reservations []models.Reservation
	query.Order("reserved_for asc").Find(&reservations)
	c.JSON(http.StatusOK, gin.H{"count": len(reservations), "reservations": reservations})
}

type SetReservationStatusRequest struct {
	Status models.ReservationStatus `json:"status" binding:"required"`
}

// SetReservationStatus lets staff confirm, complete or mark a no-show
func SetReservationStatus(c *gin.Context) {
	var reservation models.Reservation
	if err := config.DB.First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
		return
	}

	var req SetReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	switch req.Status {
	case models.ReservationConfirmed, models.ReservationCompleted,
		models.ReservationCancelled, models.ReservationNoShow:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown reservation status"})
		return
	}

	config.DB.Model(&reservation).Update("status", req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Reservation updated", "reservation": reservation})
}
