// utils/normalize.go
package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	countryPattern    = regexp.MustCompile(`^[A-Z]{2}$`)
	nonAlnumPattern   = regexp.MustCompile(`[^a-z0-9]+`)
)

// SanitizeText strips HTML tags, collapses whitespace and caps the result.
// Never fails: anything unusable comes back as an empty string.
func SanitizeText(value string, maxLength int) string {
	text := htmlTagPattern.ReplaceAllString(value, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return text
}

// NormalizePhoneDigits reduces input to at most 10 US digits, accepting a
// leading country code "1" on 11-digit numbers.
func NormalizePhoneDigits(value string) string {
	digits := nonDigitPattern.ReplaceAllString(value, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		return digits[1:]
	}
	if len(digits) > 10 {
		return digits[:10]
	}
	return digits
}

// NormalizePhoneE164 returns "+1XXXXXXXXXX" for valid 10-digit US numbers,
// empty string otherwise.
func NormalizePhoneE164(value string) string {
	digits := NormalizePhoneDigits(value)
	if len(digits) == 10 {
		return "+1" + digits
	}
	return ""
}

// FormatPhone renders a valid US number as "(XXX) XXX-XXXX"; invalid input is
// passed through as sanitized text so the raw entry is not lost.
func FormatPhone(value string) string {
	digits := NormalizePhoneDigits(value)
	if len(digits) != 10 {
		return SanitizeText(value, 24)
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

func NormalizeEmail(value string) string {
	text := strings.ToLower(strings.TrimSpace(value))
	if emailPattern.MatchString(text) {
		return text
	}
	return ""
}

func NormalizeZip(value string) string {
	digits := nonDigitPattern.ReplaceAllString(value, "")
	if len(digits) > 5 {
		digits = digits[:5]
	}
	return digits
}

func NormalizeCountry(value string) string {
	country := strings.ToUpper(strings.TrimSpace(value))
	if country == "" {
		return "US"
	}
	if len(country) > 2 {
		country = country[:2]
	}
	if countryPattern.MatchString(country) {
		return country
	}
	return "US"
}

// statusSynonyms maps raw status spellings onto the closed status set.
var statusSynonyms = map[string]string{
	"prospect":       "prospect",
	"new":            "prospect",
	"contacted":      "prospect",
	"active":         "active",
	"booked":         "active",
	"dormant":        "dormant",
	"do_not_contact": "do_not_contact",
	"do-not-contact": "do_not_contact",
	"dnc":            "do_not_contact",
	"archived":       "archived",
	"spam":           "archived",
}

// NormalizeClientStatus maps any synonym onto one of the five canonical
// statuses; unknown input becomes "prospect".
func NormalizeClientStatus(value string) string {
	key := strings.TrimSpace(strings.ToLower(value))
	if status, ok := statusSynonyms[key]; ok {
		return status
	}
	return "prospect"
}

func NormalizePreferredContact(value string) string {
	key := strings.TrimSpace(strings.ToLower(value))
	switch {
	case strings.Contains(key, "text") || strings.Contains(key, "sms"):
		return "text"
	case strings.Contains(key, "call") || strings.Contains(key, "phone"):
		return "call"
	case strings.Contains(key, "email"):
		return "email"
	}
	return ""
}

const (
	maxTags      = 20
	maxTagLength = 50
)

// NormalizeTags deduplicates case-sensitively after sanitizing each entry,
// dropping empties and capping the list.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		clean := SanitizeText(tag, maxTagLength)
		if clean == "" || seen[clean] {
			continue
		}
		seen[clean] = true
		out = append(out, clean)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

// ParseTagList splits a comma-separated tag string and normalizes it.
func ParseTagList(value string) []string {
	return NormalizeTags(strings.Split(value, ","))
}

// NormalizeNumber rounds to the nearest integer and clamps into [min, max].
// Accepts the loose value shapes produced by forms and frontmatter; anything
// that is not a finite number yields the fallback.
func NormalizeNumber(raw any, fallback, min, max int) int {
	var num float64
	switch v := raw.(type) {
	case nil:
		return fallback
	case int:
		num = float64(v)
	case int64:
		num = float64(v)
	case float64:
		num = v
	case bool:
		return fallback
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fallback
		}
		num = parsed
	default:
		return fallback
	}
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return fallback
	}
	rounded := int(math.Round(num))
	if rounded < min {
		return min
	}
	if rounded > max {
		return max
	}
	return rounded
}

// SplitName splits a full name into first and last on the first space.
func SplitName(fullName string) (string, string) {
	name := SanitizeText(fullName, 140)
	if name == "" {
		return "", ""
	}
	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// NameSlug lowercases a name and collapses non-alphanumeric runs to single
// hyphens for use in lookup keys.
func NameSlug(fullName string) string {
	slug := nonAlnumPattern.ReplaceAllString(strings.ToLower(fullName), "-")
	return strings.Trim(slug, "-")
}
