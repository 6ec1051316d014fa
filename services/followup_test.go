package services

import (
	"testing"
	"time"

	"detaildesk-backend/models"
)

var followupNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func clientDue(date string) *models.Client {
	return &models.Client{FullName: "Jane Doe", Status: "active", NextFollowupDate: date}
}

func TestFollowupBucketBoundaries(t *testing.T) {
	cases := []struct {
		date string
		want Bucket
	}{
		{"2024-06-14", BucketOverdue},
		{"2024-06-15", BucketToday},
		{"2024-06-16", BucketSoon},
		{"2024-06-22", BucketSoon},     // exactly DueSoonDays out
		{"2024-06-23", BucketUpcoming}, // one past the window
		{"2025-01-01", BucketUpcoming},
		{"", BucketUnscheduled},
	}
	for _, tc := range cases {
		if got := FollowupBucket(clientDue(tc.date), followupNow); got != tc.want {
			t.Errorf("bucket for %q = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestFollowupBucketSkipsExcludedStatuses(t *testing.T) {
	for _, status := range []string{"do_not_contact", "dnc", "archived", "spam"} {
		c := clientDue("2024-06-14")
		c.Status = status
		if got := FollowupBucket(c, followupNow); got != BucketSkip {
			t.Errorf("status %q bucket = %q, want skip", status, got)
		}
	}
}

func TestEffectiveFollowupDateDerived(t *testing.T) {
	c := &models.Client{
		Status:               "active",
		LastServiceDate:      "2024-01-31",
		RepeatIntervalMonths: 1,
	}
	if got := EffectiveFollowupDate(c); got != "2024-02-29" {
		t.Errorf("derived date = %q, want clamped 2024-02-29", got)
	}

	// Explicit date wins over the derived one.
	c.NextFollowupDate = "2024-06-01"
	if got := EffectiveFollowupDate(c); got != "2024-06-01" {
		t.Errorf("explicit date lost: %q", got)
	}
}

func TestEffectiveFollowupDateRepeatDisabled(t *testing.T) {
	c := &models.Client{Status: "active", LastServiceDate: "2024-01-15"}
	// Zero interval means "no repeat cadence".
	if got := EffectiveFollowupDate(c); got != "" {
		t.Errorf("zero interval derived %q", got)
	}
}

func TestFollowupLabel(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2024-06-10", "Overdue (Jun 10, 2024)"},
		{"2024-06-15", "Due today"},
		{"2024-06-18", "Due Jun 18, 2024"},
		{"2024-08-01", "Next Aug 1, 2024"},
		{"", "No follow-up date"},
	}
	for _, tc := range cases {
		if got := FollowupLabel(clientDue(tc.date), followupNow); got != tc.want {
			t.Errorf("label for %q = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestSortClientsFollowup(t *testing.T) {
	clients := []models.Client{
		*clientDue("2025-01-01"), // upcoming
		*clientDue("2024-06-14"), // overdue
		*clientDue(""),           // unscheduled
		*clientDue("2024-06-15"), // today
		*clientDue("2024-06-18"), // soon
	}
	sorted := SortClients(clients, "followup", followupNow)

	wantOrder := []string{"2024-06-14", "2024-06-15", "2024-06-18", "2025-01-01", ""}
	for i, want := range wantOrder {
		if sorted[i].NextFollowupDate != want {
			t.Errorf("sorted[%d] = %q, want %q", i, sorted[i].NextFollowupDate, want)
		}
	}
}

func TestSortClientsByName(t *testing.T) {
	clients := []models.Client{
		{FullName: "Zed Ortiz"},
		{FullName: "Amy Chen"},
	}
	sorted := SortClients(clients, "name", followupNow)
	if sorted[0].FullName != "Amy Chen" {
		t.Errorf("sorted[0] = %q", sorted[0].FullName)
	}
	// Input is untouched.
	if clients[0].FullName != "Zed Ortiz" {
		t.Error("SortClients mutated its input")
	}
}

func TestFilterClients(t *testing.T) {
	clients := []models.Client{
		{FullName: "Jane Doe", Status: "active", NextFollowupDate: "2024-06-14"},
		{FullName: "Sam Park", Status: "prospect", NextFollowupDate: "2024-08-01"},
		{FullName: "Ida Romero", Status: "dnc", NextFollowupDate: "2024-06-14"},
	}

	due := FilterClients(clients, "", "due", "", followupNow)
	if len(due) != 1 || due[0].FullName != "Jane Doe" {
		t.Errorf("due filter = %v", due)
	}

	active := FilterClients(clients, "active", "", "", followupNow)
	if len(active) != 1 || active[0].FullName != "Jane Doe" {
		t.Errorf("status filter = %v", active)
	}

	searched := FilterClients(clients, "", "", "park", followupNow)
	if len(searched) != 1 || searched[0].FullName != "Sam Park" {
		t.Errorf("search filter = %v", searched)
	}

	all := FilterClients(clients, "all", "all", "", followupNow)
	if len(all) != 3 {
		t.Errorf("all filter = %d entries", len(all))
	}
}

func TestClientMatchesSearchScansBookings(t *testing.T) {
	c := &models.Client{
		FullName: "Jane Doe",
		Bookings: models.BookingList{{Date: "2024-01-15", Service: "Ceramic Coat", Notes: "black SUV"}},
	}
	if !ClientMatchesSearch(c, "ceramic") {
		t.Error("booking service not searchable")
	}
	if !ClientMatchesSearch(c, "SUV") {
		t.Error("booking notes not searchable")
	}
	if ClientMatchesSearch(c, "motorcycle") {
		t.Error("false positive")
	}
}
