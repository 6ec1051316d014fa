// services/lead_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"detaildesk-backend/models"
	"detaildesk-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// leadServiceLabels maps quote-wizard service codes onto display labels.
var leadServiceLabels = map[string]string{
	"quick":    "Quick Once Over",
	"full":     "Full Detail",
	"interior": "Interior Refresh",
	"other":    "Other",
}

// ServiceLabelFromLead resolves the booking service label for a lead.
func ServiceLabelFromLead(lead *models.Lead) string {
	if label, ok := leadServiceLabels[strings.ToLower(strings.TrimSpace(lead.Service))]; ok {
		return label
	}
	if text := utils.SanitizeText(lead.Service, 120); text != "" {
		return text
	}
	return "Quote lead"
}

// BuildClientDraftFromLead seeds a client draft from a lead record. A booked
// lead becomes an active client with one lead_quote booking carrying the
// quoted total; anything else becomes a prospect with no booking.
func BuildClientDraftFromLead(lead *models.Lead) models.Client {
	leadDate := lead.CreatedAt
	if leadDate.IsZero() {
		leadDate = time.Now()
	}
	leadDateISO := leadDate.UTC().Format("2006-01-02")

	booked := strings.ToLower(strings.TrimSpace(lead.Status)) == "booked"
	status := "prospect"
	if booked {
		status = "active"
	}

	var bookings []models.Booking
	if booked {
		booking, ok := NormalizeBooking(models.Booking{
			ID:      "lead_" + utils.SanitizeText(lead.ID.String(), 80),
			Date:    leadDateISO,
			Service: ServiceLabelFromLead(lead),
			Amount:  lead.QuotedTotal,
			Notes:   utils.SanitizeText(lead.Notes, 280),
			Source:  "lead_quote",
			LeadID:  lead.ID.String(),
		})
		if ok {
			bookings = append(bookings, booking)
		}
	}

	lastService := ""
	nextFollowup := ""
	if booked {
		lastService = leadDateISO
		nextFollowup = utils.AddMonthsISO(leadDateISO, DefaultRepeatMonths)
	}

	phone := lead.PhoneNormalized
	if phone == "" {
		phone = lead.Phone
	}

	return NewClientDraft(models.Client{
		FullName:             utils.SanitizeText(lead.Name, 140),
		Phone:                utils.FormatPhone(phone),
		PhoneE164:            utils.NormalizePhoneE164(phone),
		Status:               status,
		Source:               "quote_page",
		Zip:                  utils.NormalizeZip(lead.Zip),
		Country:              "US",
		RepeatIntervalMonths: DefaultRepeatMonths,
		LastServiceDate:      lastService,
		NextFollowupDate:     nextFollowup,
		Tags:                 []string{"quote/lead"},
		Notes:                utils.SanitizeText(lead.Notes, 4000),
		Bookings:             bookings,
		SourceLeadID:         lead.ID.String(),
	})
}

// LeadService converts leads into client records and keeps the back-link on
// the lead in sync.
type LeadService struct {
	db    *gorm.DB
	store ClientStore
}

func NewLeadService(db *gorm.DB, store ClientStore) *LeadService {
	return &LeadService{db: db, store: store}
}

var ErrLeadNotFound = errors.New("lead not found")

// ConvertLead builds a draft from the lead, merges it into a matching client
// or creates a new one, then writes the client back-reference onto the lead.
// Returns the resulting client and whether it was "created" or "updated".
func (s *LeadService) ConvertLead(ctx context.Context, leadID uuid.UUID) (*models.Client, string, error) {
	var lead models.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", leadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrLeadNotFound
		}
		return nil, "", err
	}

	draft := BuildClientDraftFromLead(&lead)

	roster, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load roster: %w", err)
	}
	index := BuildLookupIndex(roster)

	var client models.Client
	action := "created"
	if match := index.FindMatch(draft.LookupKeys); match != nil {
		client = MergeForImport(*match, draft)
		action = "updated"
		if err := s.store.UpdateClient(ctx, &client); err != nil {
			return nil, "", err
		}
	} else {
		client = draft
		if err := s.store.CreateClient(ctx, &client); err != nil {
			return nil, "", err
		}
	}

	if err := s.syncLeadLink(ctx, &lead, &client); err != nil {
		// Client write already succeeded; the stale back-link is reported,
		// not rolled back.
		return &client, action, fmt.Errorf("client saved, lead link sync failed: %w", err)
	}
	return &client, action, nil
}

func (s *LeadService) syncLeadLink(ctx context.Context, lead *models.Lead, client *models.Client) error {
	now := time.Now()
	updates := map[string]any{
		"client_id":        client.ID,
		"client_synced_at": now,
	}
	if strings.EqualFold(lead.Status, "booked") || client.Status == "active" {
		updates["status"] = "booked"
	}
	return s.db.WithContext(ctx).Model(lead).Updates(updates).Error
}
