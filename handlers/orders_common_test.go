package handlers

import (
	"testing"
	"time"

	"restaurant-pos/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.Promotion{},
		&models.Order{},
		&models.OrderDetail{},
	))
	return db
}

func TestStartOfDayIsLocalMidnightOfTheLabelledDay(t *testing.T) {
	east := time.FixedZone("EET", 2*60*60)
	// 01:00 local is still the previous day in UTC
	at := time.Date(2026, 9, 1, 1, 0, 0, 0, east)

	start := startOfDay(at)
	assert.Equal(t, "20260901", start.Format("20060102"))
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, at.Location(), start.Location())
	assert.True(t, start.Before(at))

	// A UTC-midnight window does not even lie on the day the order number is
	// labelled with
	utcWindow := at.Truncate(24 * time.Hour)
	assert.NotEqual(t, "20260901", utcWindow.In(east).Format("20060102"))
}

func TestStartOfDayAgreesWithOrderNumberDate(t *testing.T) {
	now := time.Now()
	assert.Equal(t, now.Format("20060102"), startOfDay(now).Format("20060102"))
}

func TestNextOrderNumberCountsFromLocalMidnight(t *testing.T) {
	db := openTestDB(t)

	// An order placed just after local midnight must be part of today's count
	early := models.Order{
		OrderNumber: models.GenerateOrderNumber(1),
		OrderType:   models.TypeTakeout,
		Status:      models.StatusPending,
		CreatedAt:   startOfDay(time.Now()).Add(time.Minute),
	}
	require.NoError(t, db.Create(&early).Error)

	next := nextOrderNumber(db)
	assert.Equal(t, models.GenerateOrderNumber(2), next)

	// The allocated number must not collide with the existing row
	second := models.Order{
		OrderNumber: next,
		OrderType:   models.TypeTakeout,
		Status:      models.StatusPending,
	}
	require.NoError(t, db.Create(&second).Error)
}
