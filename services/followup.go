// services/followup.go
package services

import (
	"sort"
	"strings"
	"time"

	"detaildesk-backend/models"
	"detaildesk-backend/utils"
)

const (
	DefaultRepeatMonths = 6
	DueSoonDays         = 7
)

// Bucket is a follow-up urgency classification. Every client maps to exactly
// one bucket; buckets are recomputed on demand, never stored.
type Bucket string

const (
	BucketOverdue     Bucket = "overdue"
	BucketToday       Bucket = "today"
	BucketSoon        Bucket = "soon"
	BucketUpcoming    Bucket = "upcoming"
	BucketUnscheduled Bucket = "unscheduled"
	BucketSkip        Bucket = "skip"
)

var bucketPriority = map[Bucket]int{
	BucketOverdue:     0,
	BucketToday:       1,
	BucketSoon:        2,
	BucketUpcoming:    3,
	BucketUnscheduled: 4,
	BucketSkip:        5,
}

// EffectiveFollowupDate is the explicit next follow-up date when set,
// otherwise last service date plus the repeat interval. Empty when neither
// exists.
func EffectiveFollowupDate(c *models.Client) string {
	if explicit := utils.NormalizeDate(c.NextFollowupDate); explicit != "" {
		return explicit
	}
	lastService := utils.NormalizeDate(c.LastServiceDate)
	months := utils.NormalizeNumber(c.RepeatIntervalMonths, DefaultRepeatMonths, 0, 36)
	if lastService == "" || months <= 0 {
		return ""
	}
	return utils.AddMonthsISO(lastService, months)
}

// FollowupBucket classifies a client relative to "now" (UTC midnight).
func FollowupBucket(c *models.Client, now time.Time) Bucket {
	status := utils.NormalizeClientStatus(c.Status)
	if status == "do_not_contact" || status == "archived" {
		return BucketSkip
	}

	date := EffectiveFollowupDate(c)
	if date == "" {
		return BucketUnscheduled
	}
	days, ok := utils.DaysFromToday(date, now)
	if !ok {
		return BucketUnscheduled
	}
	switch {
	case days < 0:
		return BucketOverdue
	case days == 0:
		return BucketToday
	case days <= DueSoonDays:
		return BucketSoon
	}
	return BucketUpcoming
}

// FollowupLabel renders the human label shown on worklists.
func FollowupLabel(c *models.Client, now time.Time) string {
	date := EffectiveFollowupDate(c)
	switch FollowupBucket(c, now) {
	case BucketOverdue:
		return "Overdue (" + formatDateLabel(date) + ")"
	case BucketToday:
		return "Due today"
	case BucketSoon:
		return "Due " + formatDateLabel(date)
	case BucketUpcoming:
		return "Next " + formatDateLabel(date)
	case BucketSkip:
		return "Not in follow-up queue"
	}
	return "No follow-up date"
}

func formatDateLabel(dateISO string) string {
	date, ok := utils.ParseISODateUTC(dateISO)
	if !ok {
		return "Not scheduled"
	}
	return date.Format("Jan 2, 2006")
}

// SortClients orders a roster copy by the given sort key. The default
// "followup" key orders by bucket priority, then ascending effective date,
// then name.
func SortClients(clients []models.Client, sortKey string, now time.Time) []models.Client {
	sorted := make([]models.Client, len(clients))
	copy(sorted, clients)

	switch sortKey {
	case "name":
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].FullName < sorted[j].FullName
		})
	case "oldest":
		sort.SliceStable(sorted, func(i, j int) bool {
			return clientUpdated(&sorted[i]).Before(clientUpdated(&sorted[j]))
		})
	case "newest":
		sort.SliceStable(sorted, func(i, j int) bool {
			return clientUpdated(&sorted[j]).Before(clientUpdated(&sorted[i]))
		})
	default: // followup
		sort.SliceStable(sorted, func(i, j int) bool {
			a, b := &sorted[i], &sorted[j]
			ap, bp := bucketPriority[FollowupBucket(a, now)], bucketPriority[FollowupBucket(b, now)]
			if ap != bp {
				return ap < bp
			}
			ad, bd := EffectiveFollowupDate(a), EffectiveFollowupDate(b)
			if ad == "" {
				ad = "9999-12-31"
			}
			if bd == "" {
				bd = "9999-12-31"
			}
			if ad != bd {
				return ad < bd
			}
			return a.FullName < b.FullName
		})
	}
	return sorted
}

func clientUpdated(c *models.Client) time.Time {
	if !c.UpdatedAt.IsZero() {
		return c.UpdatedAt
	}
	return c.CreatedAt
}

// ClientMatchesSearch does a case-insensitive substring scan across identity,
// contact, location, tag, note and booking text.
func ClientMatchesSearch(c *models.Client, search string) bool {
	if search == "" {
		return true
	}
	parts := []string{
		c.ID.String(),
		c.FullName,
		c.Phone,
		c.PhoneE164,
		c.Email,
		c.Source,
		c.Neighborhood,
		c.Address,
		c.City,
		c.State,
		c.Zip,
		c.Country,
		strings.Join(c.Tags, " "),
		c.Notes,
		c.FollowupNote,
		c.SourceLeadID,
	}
	for _, booking := range c.Bookings {
		parts = append(parts, booking.Date+" "+booking.Service+" "+booking.Notes)
	}
	haystack := strings.ToLower(strings.Join(parts, " "))
	return strings.Contains(haystack, strings.ToLower(search))
}

// FilterClients applies status and follow-up bucket filters. The composite
// "due" filter keeps overdue, today and soon.
func FilterClients(clients []models.Client, statusFilter, followupFilter, search string, now time.Time) []models.Client {
	filtered := make([]models.Client, 0, len(clients))
	for i := range clients {
		c := &clients[i]
		if statusFilter != "" && statusFilter != "all" &&
			utils.NormalizeClientStatus(c.Status) != statusFilter {
			continue
		}
		if followupFilter != "" && followupFilter != "all" {
			bucket := FollowupBucket(c, now)
			if followupFilter == "due" {
				if bucket != BucketOverdue && bucket != BucketToday && bucket != BucketSoon {
					continue
				}
			} else if string(bucket) != followupFilter {
				continue
			}
		}
		if !ClientMatchesSearch(c, strings.TrimSpace(search)) {
			continue
		}
		filtered = append(filtered, *c)
	}
	return filtered
}
