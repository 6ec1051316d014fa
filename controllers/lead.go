package controllers

import (
	"errors"
	"net/http"

	"detaildesk-backend/config"
	"detaildesk-backend/models"
	"detaildesk-backend/services"
	"detaildesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetLeads lists quote-page leads, newest first. Pass status to filter.
func GetLeads(c *gin.Context) {
	query := config.DB.WithContext(c.Request.Context()).Order("created_at DESC")
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var leads []models.Lead
	if err := query.Find(&leads).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve leads")
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads, "total": len(leads)})
}

func GetLead(c *gin.Context) {
	leadUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid lead ID format")
		return
	}

	var lead models.Lead
	if err := config.DB.WithContext(c.Request.Context()).First(&lead, "id = ?", leadUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Lead not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, lead)
}

// ConvertLead merges a lead into a matching client record or creates a new
// one, then links the lead to the resulting client.
func ConvertLead(c *gin.Context) {
	leadUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid lead ID format")
		return
	}

	leadService := services.NewLeadService(config.DB, clientStore())
	client, action, err := leadService.ConvertLead(c.Request.Context(), leadUUID)
	if err != nil {
		if errors.Is(err, services.ErrLeadNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Lead not found")
			return
		}
		if client != nil {
			// The client write landed; only the lead back-link failed.
			c.JSON(http.StatusOK, gin.H{
				"client":  client,
				"action":  action,
				"warning": err.Error(),
			})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to convert lead")
		return
	}

	c.JSON(http.StatusOK, gin.H{"client": client, "action": action})
}
