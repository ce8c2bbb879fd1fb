package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"trimly-backend/config"
	"trimly-backend/controllers"
	"trimly-backend/websocket"
)

// Deps bundles everything the router serves.
type Deps struct {
	Bookings      *controllers.BookingController
	Notifications *controllers.NotificationController
	Settings      *controllers.SettingsController
	Dashboard     *controllers.DashboardController
	Hub           *websocket.Hub
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "trimly-backend"})
	})

	if deps.Hub != nil {
		r.GET("/ws", deps.Hub.Serve)
	}

	api := r.Group("/api")
	{
		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", deps.Bookings.CreateBooking)
			bookings.GET("", deps.Bookings.GetBookings)
			bookings.GET("/calendar", deps.Bookings.GetCalendar)
			bookings.GET("/slots", deps.Bookings.GetTimeSlots)
			bookings.GET("/export", deps.Bookings.ExportBookings)
			bookings.GET("/:id", deps.Bookings.GetBooking)
			bookings.PUT("/:id/status", deps.Bookings.UpdateBookingStatus)
			bookings.DELETE("/:id", deps.Bookings.DeleteBooking)
		}

		// Service routes
		api.GET("/services", deps.Bookings.GetServices)

		// Notification routes
		notifications := api.Group("/notifications")
		{
			notifications.GET("", deps.Notifications.GetNotifications)
			notifications.GET("/unread", deps.Notifications.GetUnreadNotifications)
			notifications.GET("/badge", deps.Notifications.GetBadge)
			notifications.POST("", deps.Notifications.CreateNotification)
			notifications.PUT("/read-all", deps.Notifications.MarkAllNotificationsRead)
			notifications.PUT("/:id/read", deps.Notifications.MarkNotificationRead)
			notifications.DELETE("", deps.Notifications.ClearAllNotifications)
		}

		// Settings routes
		api.GET("/settings/notifications", deps.Settings.GetNotificationSettings)
		api.PUT("/settings/notifications", deps.Settings.UpdateNotificationSettings)

		// Active conversation context (message notification suppression)
		api.PUT("/context", deps.Notifications.SetActiveThread)

		// Dashboard routes
		api.GET("/dashboard", deps.Dashboard.GetDashboardOverview)
	}

	return r
}
