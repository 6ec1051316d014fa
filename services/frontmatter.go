// services/frontmatter.go
package services

import (
	"regexp"
	"strconv"
	"strings"

	"detaildesk-backend/models"
	"detaildesk-backend/utils"
)

// Frontmatter is the parsed result of an imported text file: a flat
// attribute map from the optional "---" header block, plus the remaining
// body text.
type Frontmatter struct {
	Attributes map[string]any
	Body       string
}

var (
	frontmatterBlockPattern = regexp.MustCompile(`(?s)\A---[ \t]*\r?\n(.*?)\r?\n---[ \t]*(?:\r?\n|\z)`)
	attributeKeyPattern     = regexp.MustCompile(`^([A-Za-z0-9_-]+)\s*:\s*(.*)$`)
	numberPattern           = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	headingPattern          = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	summaryPattern          = regexp.MustCompile(`(?is)##\s+Summary\s*(.*?)(?:\n##\s+|\z)`)
	bookingLinePattern      = regexp.MustCompile(`(?im)^-\s*\*\*(\d{4}-\d{2}-\d{2})\*\*\s*:\s*(.+)$`)
	packageLinePattern      = regexp.MustCompile(`(?im)-\s*Package\s*:\s*(.+)$`)
)

// coerceFrontmatterScalar applies the constrained scalar rules: surrounding
// quotes stripped, null/~ empties, true/false booleans, number-looking
// strings to float64, everything else string.
func coerceFrontmatterScalar(value string) any {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return ""
	}
	unquoted := strings.Trim(raw, `'"`)
	lower := strings.ToLower(unquoted)
	if lower == "null" || unquoted == "~" {
		return ""
	}
	if lower == "true" || lower == "false" {
		return lower == "true"
	}
	if numberPattern.MatchString(unquoted) {
		if num, err := strconv.ParseFloat(unquoted, 64); err == nil {
			return num
		}
	}
	return unquoted
}

// ParseFrontmatter splits an imported file into header attributes and body.
// Without a well-formed block at the very start, the whole input is body.
func ParseFrontmatter(text string) Frontmatter {
	match := frontmatterBlockPattern.FindStringSubmatch(text)
	if match == nil {
		return Frontmatter{Attributes: map[string]any{}, Body: text}
	}

	lines := strings.Split(match[1], "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	attributes := map[string]any{}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		keyMatch := attributeKeyPattern.FindStringSubmatch(line)
		if keyMatch == nil {
			continue
		}
		key, value := keyMatch[1], keyMatch[2]

		if strings.TrimSpace(value) != "" {
			attributes[key] = coerceFrontmatterScalar(value)
			continue
		}

		// Empty scalar: collect the indented block that follows. It is
		// either a bullet list or a set of nested key: value lines.
		var block []string
		j := i + 1
		for j < len(lines) {
			next := lines[j]
			if attributeKeyPattern.MatchString(next) {
				break
			}
			if strings.TrimSpace(next) == "" || strings.HasPrefix(next, "  ") || strings.HasPrefix(next, "\t") {
				block = append(block, strings.TrimPrefix(next, "  "))
				j++
				continue
			}
			break
		}

		var entries []string
		for _, entry := range block {
			if trimmed := strings.TrimSpace(entry); trimmed != "" {
				entries = append(entries, trimmed)
			}
		}

		listItems := make([]string, 0, len(entries))
		for _, entry := range entries {
			if strings.HasPrefix(entry, "- ") {
				listItems = append(listItems, entry)
			}
		}

		if len(listItems) > 0 && len(listItems) == len(entries) {
			values := make([]any, 0, len(listItems))
			for _, item := range listItems {
				values = append(values, coerceFrontmatterScalar(item[2:]))
			}
			attributes[key] = values
		} else {
			nested := map[string]any{}
			for _, entry := range entries {
				if nestedMatch := attributeKeyPattern.FindStringSubmatch(entry); nestedMatch != nil {
					nested[nestedMatch[1]] = coerceFrontmatterScalar(nestedMatch[2])
				}
			}
			if len(nested) > 0 {
				attributes[key] = nested
			} else {
				attributes[key] = ""
			}
		}

		i = j - 1
	}

	return Frontmatter{Attributes: attributes, Body: text[len(match[0]):]}
}

// ExtractHeadingName pulls the first H1 heading out of a body as a name
// fallback.
func ExtractHeadingName(body string) string {
	match := headingPattern.FindStringSubmatch(body)
	if match == nil {
		return ""
	}
	return utils.SanitizeText(match[1], 140)
}

// ExtractSummary condenses the bullet lines of a "## Summary" section into
// one pipe-separated string.
func ExtractSummary(body string) string {
	match := summaryPattern.FindStringSubmatch(body)
	if match == nil {
		return ""
	}
	var lines []string
	for _, line := range strings.Split(match[1], "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-* ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return utils.SanitizeText(strings.Join(lines, " | "), 1200)
}

// ExtractServiceBookings collects "- **YYYY-MM-DD**: note" bullet lines as
// booking entries under the given service label.
func ExtractServiceBookings(body, fallbackService string) []models.Booking {
	service := utils.SanitizeText(fallbackService, 120)
	if service == "" {
		service = "Imported service"
	}

	var bookings []models.Booking
	for _, match := range bookingLinePattern.FindAllStringSubmatch(body, -1) {
		booking, ok := NormalizeBooking(models.Booking{
			Date:    match[1],
			Service: service,
			Notes:   utils.SanitizeText(match[2], 280),
			Source:  "markdown_import",
		})
		if ok {
			bookings = append(bookings, booking)
		}
	}
	return SortBookings(bookings)
}

// ExtractPackageLine finds a "- Package: <name>" line used as the service
// label for extracted bookings.
func ExtractPackageLine(body string) string {
	match := packageLinePattern.FindStringSubmatch(body)
	if match == nil {
		return ""
	}
	return utils.SanitizeText(match[1], 120)
}
