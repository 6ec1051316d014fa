package controllers

import (
	"net/http"
	"time"

	"detaildesk-backend/services"
	"detaildesk-backend/utils"

	"github.com/gin-gonic/gin"
)

// ExportGoogleAdsCSV streams the ads-platform contact list for the current
// roster, honoring the same filters as the client list.
func ExportGoogleAdsCSV(c *gin.Context) {
	clients, err := clientStore().ListClients(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	now := time.Now()
	filtered := services.FilterClients(
		clients,
		c.Query("status"),
		c.Query("followup"),
		c.Query("search"),
		now,
	)

	csvBytes, count, err := services.BuildGoogleAdsCSV(filtered)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build export")
		return
	}
	if count == 0 {
		utils.RespondWithError(c, http.StatusUnprocessableEntity,
			"No exportable records. Add email, phone, or full name + country + ZIP.")
		return
	}

	filename := "google-ads-client-export-" + now.UTC().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvBytes)
}
