// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug normalization and the reserved
// slug table for dynamic pages, which share the root URL namespace with
// the fixed routes.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// reserved lists slugs a dynamic page must not claim: every fixed route
// plus the api/admin/static subtrees mounted at the root.
var reserved = map[string]bool{
	"admin":            true,
	"api":              true,
	"blog":             true,
	"citizenship":      true,
	"culture":          true,
	"editable-element": true,
	"executive-orders": true,
	"health":           true,
	"static":           true,
}

// Normalize creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Normalize(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Reserved reports whether a slug collides with a fixed route.
func Reserved(s string) bool {
	return reserved[s]
}
