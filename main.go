package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"trimly-backend/config"
	"trimly-backend/controllers"
	"trimly-backend/routes"
	"trimly-backend/services"
	"trimly-backend/websocket"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
}

func main() {
	store := config.OpenStore()

	hub := websocket.NewHub()
	go hub.Run()

	presenter := services.NewPresenter(hub)

	notifications := services.NewNotificationService(store, presenter)
	if err := notifications.Init(); err != nil {
		log.Printf("Notification store running from memory: %v", err)
	}

	bookings := services.NewBookingService(store)
	if err := bookings.Load(); err != nil {
		log.Printf("Booking store running from memory: %v", err)
	}

	reminders := services.NewReminderService(bookings, notifications, store)
	reminders.StartScheduler()
	defer reminders.Stop()

	r := routes.SetupRouter(routes.Deps{
		Bookings:      controllers.NewBookingController(bookings, notifications, presenter),
		Notifications: controllers.NewNotificationController(notifications),
		Settings:      controllers.NewSettingsController(notifications),
		Dashboard:     controllers.NewDashboardController(bookings, notifications),
		Hub:           hub,
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
