// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// TabSettings holds per-page browser tab metadata: the tab title and the
// generated favicon's text and colors. One row per page slug; dynamic
// pages use a "page:<slug>" key so they never collide with fixed routes.
type TabSettings struct {
	ID            uuid.UUID `json:"id"`
	Slug          string    `json:"slug"`
	TabTitle      string    `json:"tab_title"`
	IconText      string    `json:"icon_text"`
	IconBgColor   string    `json:"icon_bg_color"`
	IconTextColor string    `json:"icon_text_color"`
	UpdatedAt     time.Time `json:"updated_at"`
}
