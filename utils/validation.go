package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	htmlTagRegex = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeString escapes HTML special characters and strips any remaining tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(strings.TrimSpace(input))
	return htmlTagRegex.ReplaceAllString(sanitized, "")
}

// ValidateEmail checks if the email is valid
func ValidateEmail(email string) (bool, string) {
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format. Please enter a valid email address"
	}
	return true, ""
}

// ValidateAmount checks that the amount is a positive integer in the
// smallest currency unit (paise for INR)
func ValidateAmount(amount int64) (bool, string) {
	if amount <= 0 {
		return false, "Invalid amount"
	}
	return true, ""
}
