package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trimly-backend/services"
	"trimly-backend/storage"
)

func TestGetDashboardOverview(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := storage.Open(t.TempDir())
	notifications := services.NewNotificationService(store, nil)
	require.NoError(t, notifications.Init())
	bookings := services.NewBookingService(store)
	require.NoError(t, bookings.Load())

	dc := NewDashboardController(bookings, notifications)
	r := gin.New()
	r.GET("/api/dashboard", dc.GetDashboardOverview)

	w := doJSON(r, http.MethodGet, "/api/dashboard", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var overview struct {
		TotalBookings       int `json:"totalBookings"`
		TodayBookings       int `json:"todayBookings"`
		ConfirmedBookings   int `json:"confirmedBookings"`
		TotalRevenue        int `json:"totalRevenue"`
		UnreadNotifications int `json:"unreadNotifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overview))

	// Reflects the sample seed: five bookings, one unread notification.
	assert.Equal(t, 5, overview.TotalBookings)
	assert.Equal(t, 2, overview.TodayBookings)
	assert.Equal(t, 2, overview.ConfirmedBookings)
	assert.Equal(t, 32000, overview.TotalRevenue)
	assert.Equal(t, 1, overview.UnreadNotifications)
}
