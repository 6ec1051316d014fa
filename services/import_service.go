// services/import_service.go
package services

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"detaildesk-backend/models"
	"detaildesk-backend/utils"

	"github.com/google/uuid"
)

// ImportFile is one user-supplied markdown file.
type ImportFile struct {
	Name    string
	Content []byte
}

// ImportItem records the outcome for a single file.
type ImportItem struct {
	File       string `json:"file"`
	Action     string `json:"action"` // created | updated | skipped | failed
	ClientID   string `json:"client_id,omitempty"`
	ClientName string `json:"client_name,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// BatchReport summarizes an import run. One file's failure never blocks or
// rolls back its siblings.
type BatchReport struct {
	Parsed  int          `json:"parsed"`
	Created int          `json:"created"`
	Updated int          `json:"updated"`
	Skipped int          `json:"skipped"`
	Failed  int          `json:"failed"`
	DryRun  bool         `json:"dry_run"`
	Items   []ImportItem `json:"items"`
}

type ImportService struct {
	store ClientStore
}

func NewImportService(store ClientStore) *ImportService {
	return &ImportService{store: store}
}

var (
	fileStemPrefixPattern = regexp.MustCompile(`(?i)^client\s*[-\x{2013}\x{2014}]\s*`)
	markdownExtPattern    = regexp.MustCompile(`(?i)\.md$`)
)

// ParseMarkdownClient turns one markdown file into a normalized client
// draft. The name falls back from the "client" attribute to the first H1
// heading to the file name stem.
func ParseMarkdownClient(name string, content []byte) models.Client {
	fm := ParseFrontmatter(string(content))
	attrs := fm.Attributes

	stem := strings.TrimSpace(fileStemPrefixPattern.ReplaceAllString(
		markdownExtPattern.ReplaceAllString(name, ""), ""))
	fullName := utils.SanitizeText(attrString(attrs, "client"), 140)
	if fullName == "" {
		fullName = ExtractHeadingName(fm.Body)
	}
	if fullName == "" {
		fullName = utils.SanitizeText(stem, 140)
	}

	repeatMonths := utils.NormalizeNumber(attrs["repeat_interval_months"], DefaultRepeatMonths, 0, 36)
	lastService := utils.NormalizeDate(attrString(attrs, "last_service"))
	nextFollowup := utils.NormalizeDate(attrString(attrs, "next_due"))
	if nextFollowup == "" {
		nextFollowup = utils.NormalizeDate(attrString(attrs, "next_due_date"))
	}

	fallbackService := ExtractPackageLine(fm.Body)
	bookings := ExtractServiceBookings(fm.Body, fallbackService)

	// No explicit last service date: take the first extracted booking date
	// (the list is already sorted newest first).
	if lastService == "" && len(bookings) > 0 {
		lastService = bookings[0].Date
	}
	if nextFollowup == "" && lastService != "" && repeatMonths > 0 {
		nextFollowup = utils.AddMonthsISO(lastService, repeatMonths)
	}

	notes := ExtractSummary(fm.Body)
	if notes == "" {
		notes = fm.Body
	}

	return NewClientDraft(models.Client{
		FullName:             fullName,
		Phone:                attrString(attrs, "phone"),
		Email:                attrString(attrs, "email"),
		PreferredContact:     attrString(attrs, "preferred_contact"),
		Status:               attrString(attrs, "status"),
		Source:               attrString(attrs, "source"),
		Neighborhood:         attrString(attrs, "neighborhood"),
		Address:              attrString(attrs, "address"),
		City:                 attrString(attrs, "city"),
		State:                attrString(attrs, "state"),
		Zip:                  attrString(attrs, "zip"),
		Country:              attrString(attrs, "country"),
		RepeatIntervalMonths: repeatMonths,
		LastServiceDate:      lastService,
		NextFollowupDate:     nextFollowup,
		Tags:                 attrStrings(attrs, "tags"),
		Notes:                utils.SanitizeText(notes, 4000),
		Bookings:             bookings,
		ImportSourceFile:     utils.SanitizeText(name, 220),
		ExternalCreatedDate:  utils.NormalizeDate(attrString(attrs, "created")),
		ExternalUpdatedDate:  utils.NormalizeDate(attrString(attrs, "updated")),
	})
}

// ApplyBatch parses every file, matches each draft against the roster and
// creates or merge-updates records. Files are processed one at a time so a
// record created by an earlier file is matchable by a later one. With
// dryRun set, outcomes are classified but nothing is written.
func (s *ImportService) ApplyBatch(ctx context.Context, files []ImportFile, dryRun bool) (*BatchReport, error) {
	roster, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	index := BuildLookupIndex(roster)

	report := &BatchReport{DryRun: dryRun}
	for _, file := range files {
		draft := ParseMarkdownClient(file.Name, file.Content)
		if draft.FullName == "" {
			report.Skipped++
			report.Items = append(report.Items, ImportItem{
				File:   file.Name,
				Action: "skipped",
				Reason: "no client name found",
			})
			continue
		}
		report.Parsed++

		match := index.FindMatch(draft.LookupKeys)
		if match != nil {
			merged := MergeForImport(*match, draft)
			if !dryRun {
				if err := s.store.UpdateClient(ctx, &merged); err != nil {
					report.Failed++
					report.Items = append(report.Items, ImportItem{
						File:   file.Name,
						Action: "failed",
						Reason: err.Error(),
					})
					continue
				}
			}
			index.Put(&merged)
			report.Updated++
			report.Items = append(report.Items, ImportItem{
				File:       file.Name,
				Action:     "updated",
				ClientID:   clientIDString(&merged),
				ClientName: merged.FullName,
			})
			continue
		}

		created := draft
		if !dryRun {
			if err := s.store.CreateClient(ctx, &created); err != nil {
				report.Failed++
				report.Items = append(report.Items, ImportItem{
					File:   file.Name,
					Action: "failed",
					Reason: err.Error(),
				})
				continue
			}
		}
		index.Put(&created)
		report.Created++
		report.Items = append(report.Items, ImportItem{
			File:       file.Name,
			Action:     "created",
			ClientID:   clientIDString(&created),
			ClientName: created.FullName,
		})
	}

	return report, nil
}

// clientIDString hides the zero UUID a dry run leaves on unpersisted drafts.
func clientIDString(c *models.Client) string {
	if c.ID == uuid.Nil {
		return ""
	}
	return c.ID.String()
}

func attrString(attrs map[string]any, key string) string {
	switch v := attrs[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func attrStrings(attrs map[string]any, key string) []string {
	switch v := attrs[key].(type) {
	case string:
		return utils.ParseTagList(v)
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return utils.NormalizeTags(tags)
	}
	return nil
}
