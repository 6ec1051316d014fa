package services

import (
	"fmt"
	"testing"

	"detaildesk-backend/models"
)

func amount(v float64) *float64 { return &v }

func TestNormalizeBookingDropsUnusableEntries(t *testing.T) {
	if _, ok := NormalizeBooking(models.Booking{Date: "junk", Service: "Full Detail"}); ok {
		t.Error("accepted booking without a parsable date")
	}
	if _, ok := NormalizeBooking(models.Booking{Date: "2024-01-15"}); ok {
		t.Error("accepted booking without a service")
	}

	booking, ok := NormalizeBooking(models.Booking{Date: "01/15/2024", Service: " Full  Detail "})
	if !ok {
		t.Fatal("rejected a usable booking")
	}
	if booking.Date != "2024-01-15" {
		t.Errorf("date = %q", booking.Date)
	}
	if booking.Service != "Full Detail" {
		t.Errorf("service = %q", booking.Service)
	}
	if booking.ID == "" {
		t.Error("no ID assigned")
	}
	if booking.Source != "manual" {
		t.Errorf("source = %q", booking.Source)
	}
}

func TestNormalizeBookingAmount(t *testing.T) {
	booking, _ := NormalizeBooking(models.Booking{
		Date: "2024-01-15", Service: "Full Detail", Amount: amount(199.999),
	})
	if booking.Amount == nil || *booking.Amount != 200 {
		t.Errorf("amount not rounded to cents: %v", booking.Amount)
	}

	negative, _ := NormalizeBooking(models.Booking{
		Date: "2024-01-15", Service: "Full Detail", Amount: amount(-5),
	})
	if negative.Amount != nil {
		t.Errorf("negative amount kept: %v", *negative.Amount)
	}
}

func TestBookingFingerprint(t *testing.T) {
	booking := models.Booking{
		Date: "2024-01-15", Service: "Full Detail", Amount: amount(180), Notes: "Black SUV",
	}
	want := "2024-01-15|full detail|180|black suv"
	if got := BookingFingerprint(booking); got != want {
		t.Errorf("fingerprint = %q, want %q", got, want)
	}

	noAmount := models.Booking{Date: "2024-01-15", Service: "Full Detail"}
	if got := BookingFingerprint(noAmount); got != "2024-01-15|full detail||" {
		t.Errorf("fingerprint without amount = %q", got)
	}
}

func TestMergeBookingsDeduplicates(t *testing.T) {
	existing := []models.Booking{
		{ID: "a", Date: "2024-01-15", Service: "Full Detail", Amount: amount(180)},
	}
	incoming := []models.Booking{
		{ID: "b", Date: "2024-01-15", Service: "full detail", Amount: amount(180)},
		{ID: "c", Date: "2024-03-01", Service: "Interior Refresh"},
	}

	merged := MergeBookings(existing, incoming)
	if len(merged) != 2 {
		t.Fatalf("merged %d bookings, want 2", len(merged))
	}
	// First occurrence wins the fingerprint.
	if merged[1].ID != "a" {
		t.Errorf("duplicate resolution kept %q, want existing entry", merged[1].ID)
	}
	// Sorted newest first.
	if merged[0].Date != "2024-03-01" {
		t.Errorf("merged[0].Date = %q, want newest first", merged[0].Date)
	}
}

func TestMergeBookingsIdempotent(t *testing.T) {
	list := []models.Booking{
		{ID: "a", Date: "2024-01-15", Service: "Full Detail", Amount: amount(180)},
		{ID: "b", Date: "2024-02-10", Service: "Quick Once Over"},
	}
	once := MergeBookings(nil, list)
	twice := MergeBookings(once, once)
	if len(twice) != len(once) {
		t.Fatalf("self-merge changed length: %d vs %d", len(twice), len(once))
	}
	for i := range once {
		if BookingFingerprint(once[i]) != BookingFingerprint(twice[i]) {
			t.Errorf("self-merge reordered entry %d", i)
		}
	}
}

func TestMergeBookingsAssociative(t *testing.T) {
	// Fingerprint-equal entries appear across the three lists under
	// different IDs and case variants.
	a := []models.Booking{
		{ID: "a1", Date: "2024-01-15", Service: "Full Detail", Amount: amount(180), Notes: "Black SUV"},
		{ID: "a2", Date: "2024-02-10", Service: "Quick Once Over"},
	}
	b := []models.Booking{
		{ID: "b1", Date: "2024-01-15", Service: "FULL DETAIL", Amount: amount(180), Notes: "black suv"},
		{ID: "b2", Date: "2024-03-01", Service: "Interior Refresh"},
	}
	c := []models.Booking{
		{ID: "c1", Date: "2024-03-01", Service: "interior refresh"},
		{ID: "c2", Date: "2024-04-20", Service: "Ceramic Coat", Amount: amount(450)},
	}

	left := MergeBookings(MergeBookings(a, b), c)
	right := MergeBookings(a, MergeBookings(b, c))

	if len(left) != len(right) {
		t.Fatalf("groupings disagree on length: %d vs %d", len(left), len(right))
	}
	for i := range left {
		if BookingFingerprint(left[i]) != BookingFingerprint(right[i]) {
			t.Errorf("entry %d differs: %q vs %q",
				i, BookingFingerprint(left[i]), BookingFingerprint(right[i]))
		}
		// The earliest occurrence keeps the entry either way.
		if left[i].ID != right[i].ID {
			t.Errorf("entry %d kept different representatives: %q vs %q",
				i, left[i].ID, right[i].ID)
		}
	}
}

func TestMergeBookingsCap(t *testing.T) {
	var many []models.Booking
	for i := 0; i < MaxBookings+30; i++ {
		many = append(many, models.Booking{
			Date:    fmt.Sprintf("2024-01-%02d", i%28+1),
			Service: fmt.Sprintf("Service %d", i),
		})
	}
	merged := MergeBookings(nil, many)
	if len(merged) != MaxBookings {
		t.Errorf("merged %d bookings, want cap of %d", len(merged), MaxBookings)
	}
}

func TestSortBookingsTieBreak(t *testing.T) {
	sorted := SortBookings([]models.Booking{
		{Date: "2024-01-15", Service: "Wax"},
		{Date: "2024-01-15", Service: "Detail"},
		{Date: "2024-02-01", Service: "Wash"},
	})
	if sorted[0].Service != "Wash" {
		t.Errorf("sorted[0] = %q", sorted[0].Service)
	}
	if sorted[1].Service != "Detail" || sorted[2].Service != "Wax" {
		t.Errorf("same-date tie not broken by service: %q, %q", sorted[1].Service, sorted[2].Service)
	}
}
