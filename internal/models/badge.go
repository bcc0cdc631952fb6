// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CitizenshipBadge is a per-user generated identity card tied to a chosen
// origin faction. Usernames are unique case-insensitively (enforced by a
// unique index on LOWER(username)); rows are immutable after creation.
// Data duplicates the scalar fields at creation time as an audit snapshot.
type CitizenshipBadge struct {
	ID        uuid.UUID       `json:"id"`
	Username  string          `json:"username"`
	Origin    string          `json:"origin"`
	Color1Hex string          `json:"color1_hex"`
	Color2Hex string          `json:"color2_hex"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// ImagePath returns the public URL path of the rendered badge PNG.
func (b *CitizenshipBadge) ImagePath() string {
	return "/citizenship/badge/" + b.ID.String() + "/image/"
}
