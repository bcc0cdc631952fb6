// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PressRelease represents an executive order / blog post. Releases are
// ordered pinned-first, then newest-first, on every public listing.
type PressRelease struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Header      string    `json:"header"`
	Body        string    `json:"body"`
	Footer      string    `json:"footer"`
	ImageURL    *string   `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	IsPublished bool      `json:"is_published"`
	IsPinned    bool      `json:"is_pinned"`
	Highlight   bool      `json:"highlight"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
