package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for admin form fields.
const (
	maxTitleLen = 300
	maxBodyLen  = 100_000
)

// validateTitle checks a required title field and returns the first
// error found, or "" when valid.
func validateTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

// validateBody checks an HTML body field.
func validateBody(body string) string {
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Body is too long (max 100,000 characters)."
	}
	return ""
}
