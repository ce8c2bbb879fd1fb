package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trimly-backend/services"
)

type DashboardController struct {
	bookings      *services.BookingService
	notifications *services.NotificationService
}

func NewDashboardController(bookings *services.BookingService, notifications *services.NotificationService) *DashboardController {
	return &DashboardController{bookings: bookings, notifications: notifications}
}

// GetDashboardOverview summarizes the booking list and unread count for
// the dashboard cards.
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	stats := dc.bookings.Stats()
	c.JSON(http.StatusOK, gin.H{
		"totalBookings":       stats.Total,
		"todayBookings":       stats.Today,
		"confirmedBookings":   stats.Confirmed,
		"totalRevenue":        stats.Revenue,
		"unreadNotifications": dc.notifications.UnreadCount(),
	})
}
