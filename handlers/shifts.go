package handlers

import (
	"net/http"
	"time"

	"restaurant-pos/config"
	"restaurant-pos/middleware"
	"restaurant-pos/models"

	"github.com/gin-gonic/gin"
)

type PunchRequest struct {
	Notes string `json:"notes"`
}

// ClockIn records the start of an employee's shift
func ClockIn(c *gin.Context) {
	punch(c, models.ShiftClockIn)
}

// ClockOut records the end of an employee's shift
func ClockOut(c *gin.Context) {
	punch(c, models.ShiftClockOut)
}

func punch(c *gin.Context, action models.ShiftAction) {
	employeeID := middleware.GetUserID(c)

	var req PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reject double punches of the same kind
	var last models.ShiftHistory
	err := config.DB.Where("employee_id = ?", employeeID).
		Order("timestamp desc").First(&last).Error
	if err == nil && last.Action == action {
		c.JSON(http.StatusConflict, gin.H{
			"error":       "Already punched",
			"last_action": last.Action,
			"at":          last.Timestamp,
		})
		return
	}
	if action == models.ShiftClockOut && err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot clock out before clocking in"})
		return
	}

	entry := models.ShiftHistory{
		EmployeeID: employeeID,
		Action:     action,
		Timestamp:  time.Now(),
		Notes:      req.Notes,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record punch"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Punch recorded", "entry": entry})
}

// GetMyShifts returns the logged-in employee's weekly schedule
func GetMyShifts(c *gin.Context) {
	employeeID := middleware.GetUserID(c)
	var shifts []models.Shift
	config.DB.Where("employee_id = ? AND active = ?", employeeID, true).
		Order("day_of_week, start_time").Find(&shifts)
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

// GetShiftHistory returns the punch clock trail, admin view of any employee
// or the employee's own when no id filter is given
func GetShiftHistory(c *gin.Context) {
	query := config.DB.Preload("Employee")
	if middleware.GetRole(c) == models.RoleAdmin {
		if employeeID := c.Query("employee_id"); employeeID != "" {
			query = query.Where("employee_id = ?", employeeID)
		}
	} else {
		query = query.Where("employee_id = ?", middleware.GetUserID(c))
	}

	var history []models.ShiftHistory
	query.Order("timestamp desc").Limit(100).Find(&history)
	c.JSON(http.StatusOK, gin.H{"history": history})
}
