package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-pos/middleware"
	"restaurant-pos/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderBoardRequiresStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r)

	// No token at all
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Customers are not staff and must not see the live order feed
	token, err := middleware.GenerateToken(&models.User{
		ID: 1, Name: "Guest", Email: "guest@example.com", Role: models.RoleCustomer,
	})
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
