// Package pii normalizes and hashes customer identifiers the way the
// Conversions API matching expects: lowercase, trimmed, SHA-256, hex.
package pii

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/Porto7/dev-pixel/internal/domain"
)

const minPhoneDigits = 10

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Hash returns the lowercase hex SHA-256 of the lowercased, trimmed value
func Hash(value string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(value))))
	return hex.EncodeToString(sum[:])
}

// IsValidEmail reports whether the trimmed value has a local@domain.tld shape
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// DigitsOnly strips every non-digit character
func DigitsOnly(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

// NormalizePhone returns the digits of phone and whether enough remain
func NormalizePhone(phone string) (string, bool) {
	digits := DigitsOnly(phone)
	return digits, len(digits) >= minPhoneDigits
}

// HashUserData hashes every usable identifier in raw. Malformed emails and
// phones are dropped rather than rejected.
func HashUserData(raw domain.RawUserData) domain.UserData {
	var out domain.UserData

	if raw.Email != "" && IsValidEmail(raw.Email) {
		out.Email = hashed(raw.Email)
	}

	if digits, ok := NormalizePhone(raw.Phone); ok {
		out.Phone = hashed(digits)
	}

	out.FirstName = hashedIfPresent(raw.FirstName)
	out.LastName = hashedIfPresent(raw.LastName)
	out.City = hashedIfPresent(raw.City)
	out.State = hashedIfPresent(raw.State)
	out.ZipCode = hashedIfPresent(DigitsOnly(raw.ZipCode))
	out.Country = hashedIfPresent(raw.Country)

	return out
}

func hashed(value string) []string {
	return []string{Hash(value)}
}

func hashedIfPresent(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return hashed(value)
}
