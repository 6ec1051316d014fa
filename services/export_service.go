// services/export_service.go
package services

import (
	"bytes"
	"encoding/csv"

	"detaildesk-backend/models"
)

// googleAdsHeaders is the mandated customer-match column order.
var googleAdsHeaders = []string{"Email", "Phone", "First Name", "Last Name", "Country", "Zip"}

// googleAdsRow holds one export row in header order.
type googleAdsRow struct {
	Email     string
	Phone     string
	FirstName string
	LastName  string
	Country   string
	Zip       string
}

func buildGoogleAdsRow(client models.Client) googleAdsRow {
	normalized := NormalizeClient(client)
	return googleAdsRow{
		Email:     normalized.Email,
		Phone:     normalized.PhoneE164,
		FirstName: normalized.FirstName,
		LastName:  normalized.LastName,
		Country:   normalized.Country,
		Zip:       normalized.Zip,
	}
}

// exportable admits a row with an email or phone, or a complete
// name+country+zip identity.
func (r googleAdsRow) exportable() bool {
	hasNameAddress := r.FirstName != "" && r.LastName != "" && r.Country != "" && r.Zip != ""
	return r.Email != "" || r.Phone != "" || hasNameAddress
}

// BuildGoogleAdsCSV renders the ads-platform contact list: UTF-8 with BOM,
// CRLF line endings, RFC 4180 quoting. Returns the bytes and the number of
// exported rows.
func BuildGoogleAdsCSV(clients []models.Client) ([]byte, int, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	writer := csv.NewWriter(&buf)
	writer.UseCRLF = true

	if err := writer.Write(googleAdsHeaders); err != nil {
		return nil, 0, err
	}

	count := 0
	for _, client := range clients {
		row := buildGoogleAdsRow(client)
		if !row.exportable() {
			continue
		}
		record := []string{row.Email, row.Phone, row.FirstName, row.LastName, row.Country, row.Zip}
		if err := writer.Write(record); err != nil {
			return nil, 0, err
		}
		count++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), count, nil
}
