// utils/validation.go
package utils

import "regexp"

var zipPattern = regexp.MustCompile(`^\d{5}$`)

// IsValidZip reports whether a value is a 5-digit US ZIP code.
func IsValidZip(zip string) bool {
	return zipPattern.MatchString(zip)
}

// IsValidEmail reports whether a value already has the canonical
// local@domain.tld shape produced by NormalizeEmail.
func IsValidEmail(email string) bool {
	return email != "" && NormalizeEmail(email) == email
}
