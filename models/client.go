package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"detaildesk-backend/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Booking is one historical or scheduled service event on a client record.
// Dates are ISO "YYYY-MM-DD" strings; Amount is nil when unknown.
type Booking struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Service   string   `json:"service"`
	Amount    *float64 `json:"amount"`
	Notes     string   `json:"notes,omitempty"`
	Source    string   `json:"source"` // manual | lead_quote | markdown_import
	LeadID    string   `json:"lead_id,omitempty"`
	CreatedAt string   `json:"created_at"`
}

// BookingList is stored as a single JSONB column: bookings are merged and
// rewritten wholesale, never row-updated.
type BookingList []Booking

func (b BookingList) Value() (driver.Value, error) {
	if b == nil {
		b = BookingList{}
	}
	return json.Marshal(b)
}

func (b *BookingList) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, b)
	case string:
		return json.Unmarshal([]byte(v), b)
	case nil:
		*b = BookingList{}
		return nil
	}
	return errors.New("unsupported booking list column type")
}

// Client is the canonical, deduplicated contact record. All fields are kept
// in normalized form; mutation happens only through the normalize/merge
// pipeline in the services package.
type Client struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`

	FullName  string `gorm:"not null" json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	Phone            string `json:"phone"`
	PhoneE164        string `gorm:"index" json:"phone_e164"`
	Email            string `gorm:"index" json:"email"`
	PreferredContact string `json:"preferred_contact"` // text | call | email | ""

	Source       string `json:"source"`
	Neighborhood string `json:"neighborhood"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `gorm:"default:'US'" json:"country"`

	Status               string `gorm:"type:varchar(20);default:'prospect'" json:"status"`
	RepeatIntervalMonths int    `gorm:"default:6" json:"repeat_interval_months"`
	LastServiceDate      string `json:"last_service_date"`
	NextFollowupDate     string `json:"next_followup_date"`
	LastContactedDate    string `json:"last_contacted_date"`

	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Notes        string                      `gorm:"type:text" json:"notes"`
	FollowupNote string                      `gorm:"type:text" json:"followup_note"`

	Bookings BookingList `gorm:"type:jsonb;default:'[]'" json:"bookings"`

	SourceLeadID        string `json:"source_lead_id"`
	ImportSourceFile    string `json:"import_source_file"`
	ExternalCreatedDate string `json:"external_created_date"`
	ExternalUpdatedDate string `json:"external_updated_date"`

	// Derived from identity fields on every save; never hand-edited.
	LookupKeys datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"lookup_keys"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate returns human-readable problems with a draft. An empty slice
// means the record is safe to persist.
func (c *Client) Validate() []string {
	var errs []string
	if c.FullName == "" {
		errs = append(errs, "Client name is required.")
	}
	if c.PhoneE164 == "" && c.Email == "" {
		errs = append(errs, "At least one contact method (phone or email) is required.")
	}
	if c.Zip != "" && !utils.IsValidZip(c.Zip) {
		errs = append(errs, "ZIP code must be 5 digits.")
	}
	if c.Email != "" && !utils.IsValidEmail(c.Email) {
		errs = append(errs, "Email address is not valid.")
	}
	return errs
}
