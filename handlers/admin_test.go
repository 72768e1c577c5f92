package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant-pos/config"
	"restaurant-pos/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePromotionKeepsCreationTimestamp(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := openTestDB(t)
	orig := config.DB
	config.DB = db
	defer func() { config.DB = orig }()

	category := models.Category{Name: "Mains", Active: true}
	require.NoError(t, db.Create(&category).Error)
	item := models.MenuItem{
		Name:       "Burger",
		Price:      decimal.NewFromInt(10),
		CategoryID: category.ID,
		Active:     true,
	}
	require.NoError(t, db.Create(&item).Error)

	pct := decimal.NewFromInt(10)
	createdAt := time.Now().Add(-48 * time.Hour).Round(time.Second)
	promo := models.Promotion{
		Name:               "Launch week",
		PromotionType:      models.PromoPercentageDiscount,
		DiscountPercentage: &pct,
		StartDate:          time.Now().AddDate(0, 0, -7),
		EndDate:            time.Now().AddDate(0, 0, 7),
		ValidDays:          "MONDAY",
		Active:             true,
		Priority:           1,
		CreatedAt:          createdAt,
	}
	require.NoError(t, db.Create(&promo).Error)

	body := fmt.Sprintf(`{
		"name": "Launch month",
		"promotion_type": "PERCENTAGE_DISCOUNT",
		"discount_percentage": "25",
		"start_date": "2026-09-01T00:00:00Z",
		"end_date": "2026-10-01T00:00:00Z",
		"valid_days": "MONDAY,FRIDAY",
		"menu_item_ids": [%d]
	}`, item.ID)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(promo.ID)}}
	c.Request = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	UpdatePromotion(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Promotion
	require.NoError(t, db.First(&reloaded, promo.ID).Error)
	assert.Equal(t, "Launch month", reloaded.Name)
	assert.Equal(t, "MONDAY,FRIDAY", reloaded.ValidDays)
	// The update must not clobber when the promotion was created
	assert.WithinDuration(t, createdAt, reloaded.CreatedAt, time.Second)
}
