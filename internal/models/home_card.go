// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// HomeCard is a call-to-action card rendered on the homepage. Cards are
// ordered by Position ascending; only active cards are shown publicly.
type HomeCard struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle"`
	Body       string    `json:"body"`
	ButtonText string    `json:"button_text"`
	ButtonURL  string    `json:"button_url"`
	Position   int       `json:"position"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// HasButton returns true if the card has both a button label and target.
func (c *HomeCard) HasButton() bool {
	return c.ButtonText != "" && c.ButtonURL != ""
}
