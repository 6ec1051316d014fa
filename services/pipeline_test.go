package services

import (
	"reflect"
	"testing"

	"detaildesk-backend/models"

	"github.com/google/uuid"
)

func TestNormalizeClientCanonicalizes(t *testing.T) {
	client := NormalizeClient(models.Client{
		FullName:         "  Jane   Doe ",
		Phone:            "555.123.4567",
		Email:            " Jane@Example.COM ",
		PreferredContact: "Text message",
		Status:           "booked",
		State:            "tx",
		Zip:              "78704-1234",
		Country:          "",
		Tags:             []string{" vip ", "vip"},
	})

	if client.FullName != "Jane Doe" {
		t.Errorf("full name = %q", client.FullName)
	}
	if client.FirstName != "Jane" || client.LastName != "Doe" {
		t.Errorf("split name = %q %q", client.FirstName, client.LastName)
	}
	if client.Phone != "(555) 123-4567" || client.PhoneE164 != "+15551234567" {
		t.Errorf("phone = %q / %q", client.Phone, client.PhoneE164)
	}
	if client.Email != "jane@example.com" {
		t.Errorf("email = %q", client.Email)
	}
	if client.PreferredContact != "text" {
		t.Errorf("preferred contact = %q", client.PreferredContact)
	}
	if client.Status != "active" {
		t.Errorf("status = %q", client.Status)
	}
	if client.State != "TX" || client.Zip != "78704" || client.Country != "US" {
		t.Errorf("location = %q %q %q", client.State, client.Zip, client.Country)
	}
	if !reflect.DeepEqual([]string(client.Tags), []string{"vip"}) {
		t.Errorf("tags = %v", client.Tags)
	}
	if len(client.LookupKeys) == 0 {
		t.Error("lookup keys not computed")
	}
}

func TestNormalizeClientIdempotent(t *testing.T) {
	first := NormalizeClient(models.Client{
		FullName: "Jane Doe",
		Phone:    "(555) 123-4567",
		Email:    "jane@example.com",
		Status:   "new",
		Zip:      "78704",
		Bookings: models.BookingList{{Date: "2024-01-15", Service: "Full Detail", ID: "b1", CreatedAt: "2024-01-15T00:00:00Z"}},
	})
	second := NormalizeClient(first)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("normalize not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNewClientDraftDefaults(t *testing.T) {
	draft := NewClientDraft(models.Client{FullName: "Jane Doe"})
	if draft.Status != "prospect" {
		t.Errorf("status = %q", draft.Status)
	}
	if draft.Country != "US" {
		t.Errorf("country = %q", draft.Country)
	}
	if draft.RepeatIntervalMonths != DefaultRepeatMonths {
		t.Errorf("repeat interval = %d", draft.RepeatIntervalMonths)
	}
}

func TestMergeForImportIncomingWins(t *testing.T) {
	existingID := uuid.New()
	existing := models.Client{
		ID:       existingID,
		FullName: "Jane Doe",
		Email:    "old@example.com",
		Status:   "active",
		City:     "Austin",
	}
	incoming := models.Client{
		FullName: "Jane A. Doe",
		Email:    "new@example.com",
		Status:   "dormant",
	}

	merged := MergeForImport(existing, incoming)
	if merged.ID != existingID {
		t.Error("merge changed the record identity")
	}
	if merged.FullName != "Jane A. Doe" {
		t.Errorf("full name = %q", merged.FullName)
	}
	if merged.Email != "new@example.com" {
		t.Errorf("email = %q", merged.Email)
	}
	if merged.Status != "dormant" {
		t.Errorf("status = %q", merged.Status)
	}
	// Empty incoming field keeps the existing value.
	if merged.City != "Austin" {
		t.Errorf("city = %q", merged.City)
	}
}

func TestMergeForImportPreservesManualState(t *testing.T) {
	existing := models.Client{
		ID:                uuid.New(),
		FullName:          "Jane Doe",
		Email:             "jane@example.com",
		LastContactedDate: "2024-05-01",
		FollowupNote:      "left voicemail, call back Tuesday",
		Notes:             "long-time customer",
		SourceLeadID:      "lead-1",
	}
	incoming := models.Client{
		FullName:          "Jane Doe",
		LastContactedDate: "2024-06-01",
		FollowupNote:      "imported note",
		Notes:             "imported notes",
		SourceLeadID:      "lead-2",
	}

	merged := MergeForImport(existing, incoming)
	if merged.LastContactedDate != "2024-05-01" {
		t.Errorf("last contacted = %q", merged.LastContactedDate)
	}
	if merged.FollowupNote != "left voicemail, call back Tuesday" {
		t.Errorf("followup note = %q", merged.FollowupNote)
	}
	if merged.Notes != "long-time customer" {
		t.Errorf("notes = %q", merged.Notes)
	}
	if merged.SourceLeadID != "lead-1" {
		t.Errorf("source lead = %q", merged.SourceLeadID)
	}
}

func TestMergeForImportPhonePairMovesTogether(t *testing.T) {
	existing := models.Client{
		FullName: "Jane Doe", Phone: "(555) 123-4567", PhoneE164: "+15551234567",
	}

	// Incoming without a valid phone leaves both fields alone.
	merged := MergeForImport(existing, models.Client{FullName: "Jane Doe", Phone: "n/a"})
	if merged.PhoneE164 != "+15551234567" || merged.Phone != "(555) 123-4567" {
		t.Errorf("phone pair clobbered: %q / %q", merged.Phone, merged.PhoneE164)
	}

	// A valid incoming phone replaces both.
	merged = MergeForImport(existing, models.Client{FullName: "Jane Doe", Phone: "555-987-6543"})
	if merged.PhoneE164 != "+15559876543" || merged.Phone != "(555) 987-6543" {
		t.Errorf("phone pair not replaced: %q / %q", merged.Phone, merged.PhoneE164)
	}
}

func TestMergeForImportUnionsTagsAndBookings(t *testing.T) {
	existing := models.Client{
		FullName: "Jane Doe",
		Tags:     []string{"vip"},
		Bookings: models.BookingList{{ID: "a", Date: "2024-01-15", Service: "Full Detail"}},
	}
	incoming := models.Client{
		FullName: "Jane Doe",
		Tags:     []string{"fleet", "vip"},
		Bookings: models.BookingList{
			{ID: "b", Date: "2024-01-15", Service: "full detail"}, // duplicate fingerprint
			{ID: "c", Date: "2024-03-01", Service: "Interior Refresh"},
		},
	}

	merged := MergeForImport(existing, incoming)
	if !reflect.DeepEqual([]string(merged.Tags), []string{"vip", "fleet"}) {
		t.Errorf("tags = %v", merged.Tags)
	}
	if len(merged.Bookings) != 2 {
		t.Errorf("bookings = %d entries, want 2", len(merged.Bookings))
	}
}
