package models

import (
	"time"

	"github.com/google/uuid"
)

// FollowupLog records each outbound follow-up message attempt.
type FollowupLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ClientID uuid.UUID `gorm:"type:uuid;index;not null"`

	Bucket       string `gorm:"type:varchar(20);not null"` // overdue | today
	Message      string `gorm:"type:text;not null"`
	Status       string `gorm:"type:varchar(20);not null"` // sent | failed
	ErrorMessage string
	Channel      string    `gorm:"type:varchar(20)"` // sms
	SentAt       time.Time `gorm:"not null"`

	CreatedAt time.Time
}
