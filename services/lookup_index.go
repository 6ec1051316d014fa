// services/lookup_index.go
package services

import (
	"detaildesk-backend/models"
	"detaildesk-backend/utils"
)

// maxLookupKeys bounds the derived key list on a record.
const maxLookupKeys = 12

// ComputeLookupKeys derives deterministic match keys from a client's current
// identity fields. A key is only emitted when every component it needs is
// present.
func ComputeLookupKeys(c *models.Client) []string {
	keys := make([]string, 0, 4)
	seen := make(map[string]bool, 4)
	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	slug := utils.NameSlug(c.FullName)

	if c.PhoneE164 != "" {
		add("phone:" + c.PhoneE164)
	}
	if c.Email != "" {
		add("email:" + c.Email)
	}
	if slug != "" {
		add("name:" + slug)
	}
	if slug != "" && c.Zip != "" {
		add("namezip:" + slug + "|" + c.Zip)
	}

	if len(keys) > maxLookupKeys {
		keys = keys[:maxLookupKeys]
	}
	return keys
}

// LookupIndex maps lookup keys onto roster entries for O(1) candidate-match
// lookup. Matching is exact-string only.
type LookupIndex map[string]*models.Client

// BuildLookupIndex indexes a roster snapshot. On key collisions the first
// client keeps the mapping; a later collision already means "matches this
// client".
func BuildLookupIndex(roster []models.Client) LookupIndex {
	index := make(LookupIndex)
	for i := range roster {
		client := &roster[i]
		for _, key := range ComputeLookupKeys(client) {
			if _, exists := index[key]; !exists {
				index[key] = client
			}
		}
	}
	return index
}

// FindMatch returns the first indexed client found by checking keys in
// order; nil means "treat as a new client".
func (idx LookupIndex) FindMatch(keys []string) *models.Client {
	for _, key := range keys {
		if client, ok := idx[key]; ok {
			return client
		}
	}
	return nil
}

// Put points a client's keys at the record, overwriting prior mappings. Used
// after a write so later units of work in the same batch match it.
func (idx LookupIndex) Put(c *models.Client) {
	for _, key := range ComputeLookupKeys(c) {
		idx[key] = c
	}
}
