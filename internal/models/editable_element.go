// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// EditableElement stores an editable HTML snippet keyed by an element ID.
// It backs the inline visual editor: staff users can toggle edit mode and
// change any element that carries a matching data-edit-id in a template.
// Rows are created on first save and updated in place afterwards.
type EditableElement struct {
	ID          uuid.UUID `json:"id"`
	Key         string    `json:"key"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updated_at"`
}
