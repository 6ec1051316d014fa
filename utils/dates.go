// utils/dates.go
package utils

import (
	"regexp"
	"strings"
	"time"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// genericDateLayouts are tried in order when input is not already ISO.
var genericDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// NormalizeDate coerces arbitrary date text to "YYYY-MM-DD". ISO input is
// kept as-is; anything else goes through a generic parse; unparsable input
// yields an empty string, never an error.
func NormalizeDate(value string) string {
	text := strings.TrimSpace(value)
	if text == "" {
		return ""
	}
	if isoDatePattern.MatchString(text) {
		return text
	}
	for _, layout := range genericDateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed.UTC().Format("2006-01-02")
		}
	}
	return ""
}

// ParseISODateUTC parses a strict "YYYY-MM-DD" string as UTC midnight.
func ParseISODateUTC(dateISO string) (time.Time, bool) {
	if !isoDatePattern.MatchString(dateISO) {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// DaysFromToday returns the whole-day offset from UTC-midnight "now" to the
// given ISO date. The second return is false for unparsable input.
func DaysFromToday(dateISO string, now time.Time) (int, bool) {
	date, ok := ParseISODateUTC(dateISO)
	if !ok {
		return 0, false
	}
	return DaysBetween(BeginningOfDay(now.UTC()), date), true
}

// AddMonthsISO adds whole months to an ISO date, clamping the day to the last
// valid day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonthsISO(dateISO string, months int) string {
	base, ok := ParseISODateUTC(dateISO)
	if !ok || months <= 0 {
		return ""
	}
	year, month, day := base.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
