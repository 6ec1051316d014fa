// services/pipeline.go
package services

import (
	"strings"

	"detaildesk-backend/models"
	"detaildesk-backend/utils"
)

// NormalizeClient runs the full canonicalization pass over a record: every
// field is coerced into its canonical shape and the lookup keys are
// recomputed from the result. Idempotent: normalizing twice changes nothing.
func NormalizeClient(record models.Client) models.Client {
	fullName := utils.SanitizeText(record.FullName, 140)
	if fullName == "" {
		fullName = utils.SanitizeText(strings.TrimSpace(
			utils.SanitizeText(record.FirstName, 70)+" "+utils.SanitizeText(record.LastName, 100)), 140)
	}
	firstName, lastName := utils.SplitName(fullName)

	phoneE164 := utils.NormalizePhoneE164(record.PhoneE164)
	if phoneE164 == "" {
		phoneE164 = utils.NormalizePhoneE164(record.Phone)
	}
	phone := utils.SanitizeText(record.Phone, 24)
	if phoneE164 != "" {
		phone = utils.FormatPhone(phoneE164)
	}

	normalized := models.Client{
		ID:                   record.ID,
		FullName:             fullName,
		FirstName:            firstName,
		LastName:             lastName,
		Phone:                phone,
		PhoneE164:            phoneE164,
		Email:                utils.NormalizeEmail(record.Email),
		PreferredContact:     utils.NormalizePreferredContact(record.PreferredContact),
		Source:               utils.SanitizeText(record.Source, 80),
		Neighborhood:         utils.SanitizeText(record.Neighborhood, 120),
		Address:              utils.SanitizeText(record.Address, 180),
		City:                 utils.SanitizeText(record.City, 80),
		State:                strings.ToUpper(utils.SanitizeText(record.State, 40)),
		Zip:                  utils.NormalizeZip(record.Zip),
		Country:              utils.NormalizeCountry(record.Country),
		Status:               utils.NormalizeClientStatus(record.Status),
		RepeatIntervalMonths: utils.NormalizeNumber(record.RepeatIntervalMonths, DefaultRepeatMonths, 0, 36),
		LastServiceDate:      utils.NormalizeDate(record.LastServiceDate),
		NextFollowupDate:     utils.NormalizeDate(record.NextFollowupDate),
		LastContactedDate:    utils.NormalizeDate(record.LastContactedDate),
		Tags:                 utils.NormalizeTags(record.Tags),
		Notes:                utils.SanitizeText(record.Notes, 4000),
		FollowupNote:         utils.SanitizeText(record.FollowupNote, 4000),
		Bookings:             NormalizeBookings(record.Bookings),
		SourceLeadID:         utils.SanitizeText(record.SourceLeadID, 120),
		ImportSourceFile:     utils.SanitizeText(record.ImportSourceFile, 220),
		ExternalCreatedDate:  utils.NormalizeDate(record.ExternalCreatedDate),
		ExternalUpdatedDate:  utils.NormalizeDate(record.ExternalUpdatedDate),
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
	}
	normalized.LookupKeys = ComputeLookupKeys(&normalized)
	return normalized
}

// NewClientDraft builds a normalized draft from a seed, applying record
// defaults where the seed is silent.
func NewClientDraft(seed models.Client) models.Client {
	if seed.Status == "" {
		seed.Status = "prospect"
	}
	if seed.Country == "" {
		seed.Country = "US"
	}
	if seed.RepeatIntervalMonths == 0 {
		seed.RepeatIntervalMonths = DefaultRepeatMonths
	}
	return NormalizeClient(seed)
}

// MergeForImport folds an incoming (imported or lead-derived) draft into an
// existing record. Scalars: incoming wins when non-empty. Tags: union.
// Bookings: fingerprint-deduplicated merge. Fields carrying manual
// annotation (last contacted date, follow-up note, lead back-reference,
// notes) keep the existing value so bulk imports never clobber hand-entered
// relationship state.
func MergeForImport(existingRaw, incomingRaw models.Client) models.Client {
	existing := NormalizeClient(existingRaw)
	incoming := NormalizeClient(incomingRaw)

	merged := models.Client{
		ID:                   existing.ID,
		FullName:             pick(incoming.FullName, existing.FullName),
		PreferredContact:     pick(incoming.PreferredContact, existing.PreferredContact),
		Status:               incoming.Status,
		Source:               pick(incoming.Source, existing.Source),
		Neighborhood:         pick(incoming.Neighborhood, existing.Neighborhood),
		Address:              pick(incoming.Address, existing.Address),
		City:                 pick(incoming.City, existing.City),
		State:                pick(incoming.State, existing.State),
		Zip:                  pick(incoming.Zip, existing.Zip),
		Country:              pick(incoming.Country, existing.Country),
		Email:                pick(incoming.Email, existing.Email),
		LastServiceDate:      pick(incoming.LastServiceDate, existing.LastServiceDate),
		NextFollowupDate:     pick(incoming.NextFollowupDate, existing.NextFollowupDate),
		LastContactedDate:    existing.LastContactedDate,
		Tags:                 utils.NormalizeTags(append(append([]string{}, existing.Tags...), incoming.Tags...)),
		FollowupNote:         existing.FollowupNote,
		Notes:                pick(existing.Notes, incoming.Notes),
		Bookings:             models.BookingList(MergeBookings(existing.Bookings, incoming.Bookings)),
		SourceLeadID:         pick(existing.SourceLeadID, incoming.SourceLeadID),
		ImportSourceFile:     pick(incoming.ImportSourceFile, existing.ImportSourceFile),
		ExternalCreatedDate:  pick(incoming.ExternalCreatedDate, existing.ExternalCreatedDate),
		ExternalUpdatedDate:  pick(incoming.ExternalUpdatedDate, existing.ExternalUpdatedDate),
		CreatedAt:            existing.CreatedAt,
	}

	if incoming.PhoneE164 != "" {
		merged.Phone = incoming.Phone
		merged.PhoneE164 = incoming.PhoneE164
	} else {
		merged.Phone = existing.Phone
		merged.PhoneE164 = existing.PhoneE164
	}
	if incoming.RepeatIntervalMonths != 0 {
		merged.RepeatIntervalMonths = incoming.RepeatIntervalMonths
	} else {
		merged.RepeatIntervalMonths = existing.RepeatIntervalMonths
	}

	return NormalizeClient(merged)
}

func pick(incoming, existing string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}
