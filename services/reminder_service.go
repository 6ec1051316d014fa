// services/reminder_service.go
package services

import (
	"context"
	"log"
	"os"
	"time"

	"detaildesk-backend/models"
	"detaildesk-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	store  ClientStore
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB, store ClientStore) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db:    db,
		store: store,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendDailyFollowups()
	})

	c.Start()
	log.Println("Follow-up reminder scheduler started")
}

// SendDailyFollowups texts every client whose follow-up is overdue or due
// today, provided they have a phone and have not opted for email-only
// contact. Skip-bucket clients are never contacted.
func (s *ReminderService) SendDailyFollowups() {
	log.Println("Starting daily follow-up processing...")

	ctx := context.Background()
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		log.Printf("Failed to fetch clients: %v", err)
		return
	}

	now := time.Now()
	sent := 0
	for i := range clients {
		client := &clients[i]
		bucket := FollowupBucket(client, now)
		if bucket != BucketOverdue && bucket != BucketToday {
			continue
		}
		if client.PhoneE164 == "" || client.PreferredContact == "email" {
			continue
		}
		if s.sendFollowupText(ctx, client, bucket) {
			sent++
		}
	}

	log.Printf("Daily follow-up processing completed, %d message(s) sent", sent)
}

func (s *ReminderService) sendFollowupText(ctx context.Context, client *models.Client, bucket Bucket) bool {
	message := client.FollowupNote
	if message == "" {
		message = "Hi " + client.FirstName + ", it's been a while since your last detail. Reply here to get on the schedule!"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(client.PhoneE164)
	params.SetBody(message)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send follow-up to %s: %v", client.PhoneE164, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Follow-up sent to %s, SID: %s", client.PhoneE164, *resp.Sid)
	} else {
		log.Printf("Follow-up sent to %s, but no SID returned", client.PhoneE164)
	}

	followupLog := models.FollowupLog{
		ClientID:     client.ID,
		Bucket:       string(bucket),
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      "sms",
		SentAt:       time.Now(),
	}
	if err := s.db.Create(&followupLog).Error; err != nil {
		log.Printf("Failed to log follow-up for client %s: %v", client.ID, err)
	}

	if status != "sent" {
		return false
	}

	updated := *client
	updated.LastContactedDate = utils.NormalizeDate(time.Now().UTC().Format("2006-01-02"))
	if err := s.store.UpdateClient(ctx, &updated); err != nil {
		log.Printf("Failed to record contact date for client %s: %v", client.ID, err)
	}
	return true
}
