package models

import (
	"time"

	"github.com/google/uuid"
)

// Lead is a quote-wizard submission. Conversion into a client goes through
// the lead service; once converted, ClientID points back at the record.
type Lead struct {
	ID uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`

	Name            string   `gorm:"not null" json:"name"`
	Phone           string   `json:"phone"`
	PhoneNormalized string   `gorm:"index" json:"phone_normalized"`
	Zip             string   `json:"zip"`
	Service         string   `json:"service"` // quick | full | interior | other
	Status          string   `gorm:"type:varchar(20);default:'new'" json:"status"`
	QuotedTotal     *float64 `gorm:"type:decimal(10,2)" json:"quoted_total"`
	Notes           string   `gorm:"type:text" json:"notes"`

	ClientID       *uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	ClientSyncedAt *time.Time `json:"client_synced_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
