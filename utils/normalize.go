// utils/normalize.go
package utils

import (
	"regexp"
	"strings"
	"unicode"
)

// MinPhoneDigits is the minimum digit count for a phone number to be
// considered a usable duplicate-detection key. Shorter strings are partial
// or invalid numbers and must never group contacts together.
const MinPhoneDigits = 10

// NormalizeEmail lower-cases and trims an email for duplicate matching.
// Returns "" when the input is unusable as a key.
func NormalizeEmail(email *string) string {
	if email == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*email))
}

// StripNonDigits removes every non-digit rune from a phone string.
func StripNonDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone reduces a phone number to its digits for duplicate
// matching. Returns "" when fewer than MinPhoneDigits digits remain.
func NormalizePhone(phone *string) string {
	if phone == nil {
		return ""
	}
	digits := StripNonDigits(*phone)
	if len(digits) < MinPhoneDigits {
		return ""
	}
	return digits
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}
