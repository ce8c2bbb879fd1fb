package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trimly-backend/models"
	"trimly-backend/services"
	"trimly-backend/utils"
)

type SettingsController struct {
	notifications *services.NotificationService
}

func NewSettingsController(notifications *services.NotificationService) *SettingsController {
	return &SettingsController{notifications: notifications}
}

func (sc *SettingsController) GetNotificationSettings(c *gin.Context) {
	c.JSON(http.StatusOK, sc.notifications.Settings())
}

func (sc *SettingsController) UpdateNotificationSettings(c *gin.Context) {
	var input models.NotificationSettings
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	payload := gin.H{"message": "Notification settings updated"}
	if errors.Is(sc.notifications.UpdateSettings(input), services.ErrNotPersisted) {
		payload["warning"] = "Settings kept in memory but could not be saved"
	}
	c.JSON(http.StatusOK, payload)
}
