package controllers

import (
	"errors"
	"net/http"
	"time"

	"detaildesk-backend/config"
	"detaildesk-backend/models"
	"detaildesk-backend/services"
	"detaildesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientInput is the manual form payload. Every field is raw text; the
// normalize pipeline owns coercion, the controller never writes fields
// directly.
type ClientInput struct {
	FullName             string           `json:"full_name" binding:"required"`
	Phone                string           `json:"phone"`
	Email                string           `json:"email"`
	PreferredContact     string           `json:"preferred_contact"`
	Status               string           `json:"status"`
	Source               string           `json:"source"`
	Neighborhood         string           `json:"neighborhood"`
	Address              string           `json:"address"`
	City                 string           `json:"city"`
	State                string           `json:"state"`
	Zip                  string           `json:"zip"`
	Country              string           `json:"country"`
	RepeatIntervalMonths *int             `json:"repeat_interval_months"`
	LastServiceDate      string           `json:"last_service_date"`
	NextFollowupDate     string           `json:"next_followup_date"`
	LastContactedDate    string           `json:"last_contacted_date"`
	Tags                 []string         `json:"tags"`
	Notes                string           `json:"notes"`
	FollowupNote         string           `json:"followup_note"`
	Bookings             []models.Booking `json:"bookings"`
	SourceLeadID         string           `json:"source_lead_id"`
}

func clientStore() services.ClientStore {
	return services.NewGormClientStore(config.DB)
}

func draftFromInput(input ClientInput) models.Client {
	repeatMonths := services.DefaultRepeatMonths
	if input.RepeatIntervalMonths != nil {
		repeatMonths = utils.NormalizeNumber(*input.RepeatIntervalMonths, services.DefaultRepeatMonths, 0, 36)
	}

	lastService := utils.NormalizeDate(input.LastServiceDate)
	nextFollowup := utils.NormalizeDate(input.NextFollowupDate)
	if nextFollowup == "" && lastService != "" && repeatMonths > 0 {
		nextFollowup = utils.AddMonthsISO(lastService, repeatMonths)
	}

	return services.NewClientDraft(models.Client{
		FullName:             input.FullName,
		Phone:                input.Phone,
		Email:                input.Email,
		PreferredContact:     input.PreferredContact,
		Status:               input.Status,
		Source:               input.Source,
		Neighborhood:         input.Neighborhood,
		Address:              input.Address,
		City:                 input.City,
		State:                input.State,
		Zip:                  input.Zip,
		Country:              input.Country,
		RepeatIntervalMonths: repeatMonths,
		LastServiceDate:      lastService,
		NextFollowupDate:     nextFollowup,
		LastContactedDate:    input.LastContactedDate,
		Tags:                 input.Tags,
		Notes:                input.Notes,
		FollowupNote:         input.FollowupNote,
		Bookings:             services.MergeBookings(nil, input.Bookings),
		SourceLeadID:         input.SourceLeadID,
	})
}

// GetClients lists the roster with optional search/status/followup filters
// and sort order (followup | name | newest | oldest).
func GetClients(c *gin.Context) {
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
	sorted := services.SortClients(filtered, c.DefaultQuery("sort", "followup"), now)

	type clientWithBucket struct {
		models.Client
		FollowupBucket string `json:"followup_bucket"`
		FollowupLabel  string `json:"followup_label"`
	}
	out := make([]clientWithBucket, 0, len(sorted))
	for i := range sorted {
		out = append(out, clientWithBucket{
			Client:         sorted[i],
			FollowupBucket: string(services.FollowupBucket(&sorted[i], now)),
			FollowupLabel:  services.FollowupLabel(&sorted[i], now),
		})
	}

	c.JSON(http.StatusOK, gin.H{"clients": out, "total": len(clients)})
}

func GetClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	client, err := clientStore().GetClient(c.Request.Context(), clientUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// CreateClient runs form input through the normalize pipeline, validates,
// and persists a new record.
func CreateClient(c *gin.Context) {
	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	draft := draftFromInput(input)
	if errs := draft.Validate(); len(errs) > 0 {
		utils.RespondWithValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	if err := clientStore().CreateClient(c.Request.Context(), &draft); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// UpdateClient replaces a record with the normalized form payload. Manual
// edits are full-form saves; merge semantics apply only to imports and lead
// conversions.
func UpdateClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	store := clientStore()
	existing, err := store.GetClient(c.Request.Context(), clientUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	draft := draftFromInput(input)
	draft.ID = existing.ID
	draft.CreatedAt = existing.CreatedAt
	if draft.SourceLeadID == "" {
		draft.SourceLeadID = existing.SourceLeadID
	}
	draft.ImportSourceFile = existing.ImportSourceFile
	draft.ExternalCreatedDate = existing.ExternalCreatedDate
	draft.ExternalUpdatedDate = existing.ExternalUpdatedDate

	if errs := draft.Validate(); len(errs) > 0 {
		utils.RespondWithValidationErrors(c, http.StatusBadRequest, errs)
		return
	}

	if err := store.UpdateClient(c.Request.Context(), &draft); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, draft)
}

// DeleteClient permanently removes a client. There is no soft delete.
func DeleteClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if err := clientStore().DeleteClient(c.Request.Context(), clientUUID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
