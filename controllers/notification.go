package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"trimly-backend/services"
	"trimly-backend/utils"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// CreateNotificationInput carries the payload for any of the typed
// notification creators; Type selects which one runs.
type CreateNotificationInput struct {
	Type       string `json:"type" binding:"required"`
	BookingID  int    `json:"bookingId"`
	BarberName string `json:"barberName"`
	BarberID   string `json:"barberId"`
	Amount     int    `json:"amount"`
	Status     string `json:"status"`
	Offer      string `json:"offer"`
	Time       string `json:"time"`
}

type ActiveThreadInput struct {
	BarberID string `json:"barberId"`
}

// GetNotifications returns the full notification history, newest first
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, nc.notifications.All())
}

// GetUnreadNotifications returns the unread list, newest first
func (nc *NotificationController) GetUnreadNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, nc.notifications.Unread())
}

// GetBadge reports the unread count the way the badge renders it
func (nc *NotificationController) GetBadge(c *gin.Context) {
	count := nc.notifications.UnreadCount()
	c.JSON(http.StatusOK, gin.H{
		"count":   count,
		"label":   services.BadgeLabel(count),
		"visible": count > 0,
	})
}

// CreateNotification dispatches to the typed creator for the given type
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	var input CreateNotificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var (
		n   interface{}
		err error
	)
	switch input.Type {
	case "booking":
		n, err = nc.notifications.NotifyBookingConfirmed(input.BookingID, input.BarberName)
	case "reminder":
		n, err = nc.notifications.NotifyBookingReminder(input.BarberName, input.Time)
	case "payment":
		n, err = nc.notifications.NotifyPaymentSuccess(input.Amount, input.BarberName)
	case "status":
		n, err = nc.notifications.NotifyBookingStatusChange(input.Status, input.BookingID)
	case "message":
		n, err = nc.notifications.NotifyNewMessage(input.BarberName, input.BarberID)
	case "promotion":
		n, err = nc.notifications.NotifyPromotion(input.Offer, input.BarberName)
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown notification type: "+input.Type)
		return
	}

	payload := gin.H{"notification": n}
	if errors.Is(err, services.ErrNotPersisted) {
		payload["warning"] = "Notification kept in memory but could not be saved"
	}
	c.JSON(http.StatusCreated, payload)
}

// MarkNotificationRead marks one notification read; the call is idempotent
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	payload := gin.H{"message": "Notification marked as read"}
	if errors.Is(nc.notifications.MarkRead(id), services.ErrNotPersisted) {
		payload["warning"] = "Change kept in memory but could not be saved"
	}
	c.JSON(http.StatusOK, payload)
}

// MarkAllNotificationsRead empties the unread list
func (nc *NotificationController) MarkAllNotificationsRead(c *gin.Context) {
	payload := gin.H{"message": "All notifications marked as read"}
	if errors.Is(nc.notifications.MarkAllRead(), services.ErrNotPersisted) {
		payload["warning"] = "Change kept in memory but could not be saved"
	}
	c.JSON(http.StatusOK, payload)
}

// ClearAllNotifications empties both lists
func (nc *NotificationController) ClearAllNotifications(c *gin.Context) {
	payload := gin.H{"message": "All notifications cleared"}
	if errors.Is(nc.notifications.ClearAll(), services.ErrNotPersisted) {
		payload["warning"] = "Change kept in memory but could not be saved"
	}
	c.JSON(http.StatusOK, payload)
}

// SetActiveThread records the conversation the user is viewing so message
// notifications for it are suppressed
func (nc *NotificationController) SetActiveThread(c *gin.Context) {
	var input ActiveThreadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	nc.notifications.SetActiveThread(input.BarberID)
	c.JSON(http.StatusOK, gin.H{"message": "Active thread updated"})
}
