// services/booking_engine.go
package services

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"detaildesk-backend/models"
	"detaildesk-backend/utils"

	"github.com/google/uuid"
)

// MaxBookings caps a client's booking history.
const MaxBookings = 120

// NormalizeBooking canonicalizes one raw booking entry. The second return is
// false when the entry lacks a usable date or service name, which means
// "drop it", not "fail the operation".
func NormalizeBooking(raw models.Booking) (models.Booking, bool) {
	date := utils.NormalizeDate(raw.Date)
	service := utils.SanitizeText(raw.Service, 120)
	if date == "" || service == "" {
		return models.Booking{}, false
	}

	var amount *float64
	if raw.Amount != nil && *raw.Amount >= 0 && !math.IsInf(*raw.Amount, 0) && !math.IsNaN(*raw.Amount) {
		rounded := math.Round(*raw.Amount*100) / 100
		amount = &rounded
	}

	id := utils.SanitizeText(raw.ID, 80)
	if id == "" {
		id = uuid.NewString()
	}
	source := utils.SanitizeText(raw.Source, 40)
	if source == "" {
		source = "manual"
	}
	createdAt := utils.SanitizeText(raw.CreatedAt, 40)
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	return models.Booking{
		ID:        id,
		Date:      date,
		Service:   service,
		Amount:    amount,
		Notes:     utils.SanitizeText(raw.Notes, 280),
		Source:    source,
		LeadID:    utils.SanitizeText(raw.LeadID, 120),
		CreatedAt: createdAt,
	}, true
}

// BookingFingerprint identifies semantically identical bookings:
// "<date>|<service-lowercased>|<amount-or-empty>|<notes-lowercased-or-empty>".
func BookingFingerprint(b models.Booking) string {
	amount := ""
	if b.Amount != nil {
		amount = strconv.FormatFloat(*b.Amount, 'f', -1, 64)
	}
	return strings.Join([]string{
		b.Date,
		strings.ToLower(b.Service),
		amount,
		strings.ToLower(b.Notes),
	}, "|")
}

// SortBookings orders by date descending, ties broken by service ascending.
func SortBookings(bookings []models.Booking) []models.Booking {
	sorted := make([]models.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date == sorted[j].Date {
			return sorted[i].Service < sorted[j].Service
		}
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// MergeBookings unions two booking lists, deduplicating by fingerprint with
// first occurrence winning, then sorts and truncates. Merging a list with
// itself yields the list unchanged.
func MergeBookings(existing, incoming []models.Booking) []models.Booking {
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]models.Booking, 0, len(existing)+len(incoming))
	for _, raw := range append(append([]models.Booking{}, existing...), incoming...) {
		booking, ok := NormalizeBooking(raw)
		if !ok {
			continue
		}
		key := BookingFingerprint(booking)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, booking)
	}
	merged = SortBookings(merged)
	if len(merged) > MaxBookings {
		merged = merged[:MaxBookings]
	}
	return merged
}

// NormalizeBookings canonicalizes a list in place order-independently,
// dropping unusable entries.
func NormalizeBookings(raw []models.Booking) []models.Booking {
	normalized := make([]models.Booking, 0, len(raw))
	for _, entry := range raw {
		if booking, ok := NormalizeBooking(entry); ok {
			normalized = append(normalized, booking)
		}
	}
	return SortBookings(normalized)
}
