// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"

	"github.com/google/uuid"

	"nationpress/internal/store"
)

// ErrUnknownField is returned when the editor asks to mutate a
// (model, field) pair that is not registered as editable.
var ErrUnknownField = errors.New("unknown editable field")

// fieldSetter applies a single field update to a row identified by UUID.
type fieldSetter func(id uuid.UUID, content string) error

// FieldRegistry maps the (model, field) pairs the inline editor may
// mutate to typed store setters. Anything not listed here is rejected,
// no matter what the request claims.
type FieldRegistry struct {
	setters map[string]map[string]fieldSetter
}

// NewFieldRegistry builds the registry over the given stores.
func NewFieldRegistry(
	pressReleases *store.PressReleaseStore,
	homeCards *store.HomeCardStore,
	pages *store.DynamicPageStore,
) *FieldRegistry {
	column := func(set func(uuid.UUID, string, string) error, col string) fieldSetter {
		return func(id uuid.UUID, content string) error {
			return set(id, col, content)
		}
	}

	return &FieldRegistry{
		setters: map[string]map[string]fieldSetter{
			"pressrelease": {
				"title":  column(pressReleases.SetField, "title"),
				"header": column(pressReleases.SetField, "header"),
				"body":   column(pressReleases.SetField, "body"),
				"footer": column(pressReleases.SetField, "footer"),
			},
			"homecard": {
				"title":       column(homeCards.SetField, "title"),
				"subtitle":    column(homeCards.SetField, "subtitle"),
				"body":        column(homeCards.SetField, "body"),
				"button_text": column(homeCards.SetField, "button_text"),
				"button_url":  column(homeCards.SetField, "button_url"),
			},
			"dynamicpage": {
				"title": pages.SetTitle,
			},
		},
	}
}

// Allowed reports whether the (model, field) pair is editable.
func (fr *FieldRegistry) Allowed(model, field string) bool {
	fields, ok := fr.setters[model]
	if !ok {
		return false
	}
	_, ok = fields[field]
	return ok
}

// Set applies a field update. Returns ErrUnknownField for unregistered
// pairs and sql.ErrNoRows (wrapped by the store) when the row is gone.
func (fr *FieldRegistry) Set(model, field string, id uuid.UUID, content string) error {
	fields, ok := fr.setters[model]
	if !ok {
		return ErrUnknownField
	}
	setter, ok := fields[field]
	if !ok {
		return ErrUnknownField
	}
	return setter(id, content)
}
