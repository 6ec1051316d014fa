package controllers

import (
	"net/http"

	"detaildesk-backend/config"
	"detaildesk-backend/services"

	"github.com/gin-gonic/gin"
)

// RunReminders kicks off the daily follow-up run outside the 9 AM schedule.
func RunReminders(c *gin.Context) {
	reminderService := services.NewReminderService(config.DB, clientStore())
	go reminderService.SendDailyFollowups()

	c.JSON(http.StatusAccepted, gin.H{"message": "Follow-up run started"})
}
