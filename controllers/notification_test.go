package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trimly-backend/models"
	"trimly-backend/services"
	"trimly-backend/storage"
)

func newNotificationTestRouter(t *testing.T) (*gin.Engine, *services.NotificationService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.Open(t.TempDir())
	notifications := services.NewNotificationService(store, services.NewPresenter(nil))
	require.NoError(t, notifications.Init())

	nc := NewNotificationController(notifications)
	sc := NewSettingsController(notifications)

	r := gin.New()
	r.GET("/api/notifications", nc.GetNotifications)
	r.GET("/api/notifications/unread", nc.GetUnreadNotifications)
	r.GET("/api/notifications/badge", nc.GetBadge)
	r.POST("/api/notifications", nc.CreateNotification)
	r.PUT("/api/notifications/read-all", nc.MarkAllNotificationsRead)
	r.PUT("/api/notifications/:id/read", nc.MarkNotificationRead)
	r.DELETE("/api/notifications", nc.ClearAllNotifications)
	r.PUT("/api/context", nc.SetActiveThread)
	r.GET("/api/settings/notifications", sc.GetNotificationSettings)
	r.PUT("/api/settings/notifications", sc.UpdateNotificationSettings)
	return r, notifications
}

func TestGetNotifications(t *testing.T) {
	r, _ := newNotificationTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/notifications", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 4)

	w = doJSON(r, http.MethodGet, "/api/notifications/unread", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestGetBadge(t *testing.T) {
	r, _ := newNotificationTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/notifications/badge", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var badge struct {
		Count   int    `json:"count"`
		Label   string `json:"label"`
		Visible bool   `json:"visible"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &badge))
	assert.Equal(t, 1, badge.Count)
	assert.Equal(t, "1", badge.Label)
	assert.True(t, badge.Visible)
}

func TestCreateNotification_DispatchesByType(t *testing.T) {
	r, svc := newNotificationTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/notifications", gin.H{
		"type":       "payment",
		"amount":     45000,
		"barberName": "Elite Barbers",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Notification models.Notification `json:"notification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "✅ Payment Successful", resp.Notification.Title)
	assert.Equal(t, "₦45,000 paid to Elite Barbers.", resp.Notification.Message)
	assert.Len(t, svc.All(), 5)
}

func TestCreateNotification_UnknownType(t *testing.T) {
	r, _ := newNotificationTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/notifications", gin.H{"type": "carrier-pigeon"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown notification type")
}

func TestCreateNotification_SuppressedReturnsNull(t *testing.T) {
	r, _ := newNotificationTestRouter(t)

	w := doJSON(r, http.MethodPut, "/api/context", gin.H{"barberId": "barber-1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/notifications", gin.H{
		"type":       "message",
		"barberName": "John",
		"barberId":   "barber-1",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Notification *models.Notification `json:"notification"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Nil(t, resp.Notification, "viewing the thread suppresses the notification")
}

func TestMarkNotificationRead(t *testing.T) {
	r, svc := newNotificationTestRouter(t)
	id := svc.Unread()[0].ID

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.Unread())

	w = doJSON(r, http.MethodPut, "/api/notifications/abc/read", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	r, svc := newNotificationTestRouter(t)

	w := doJSON(r, http.MethodPut, "/api/notifications/read-all", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.Unread())
	assert.Equal(t, 0, svc.UnreadCount())
}

func TestClearAllNotifications(t *testing.T) {
	r, svc := newNotificationTestRouter(t)

	w := doJSON(r, http.MethodDelete, "/api/notifications", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.All())
	assert.Empty(t, svc.Unread())
}

func TestNotificationSettingsRoundTrip(t *testing.T) {
	r, svc := newNotificationTestRouter(t)

	w := doJSON(r, http.MethodPut, "/api/settings/notifications", gin.H{
		"bookingConfirm":  true,
		"bookingReminder": false,
		"promotions":      false,
		"messages":        true,
		"payments":        true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/settings/notifications", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var settings models.NotificationSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.False(t, settings.Promotions)
	assert.False(t, settings.BookingReminder)
	assert.True(t, settings.Messages)

	n, err := svc.NotifyPromotion("20% off", "Elite Barbers")
	require.NoError(t, err)
	assert.Nil(t, n, "disabled category no longer creates notifications")
}
