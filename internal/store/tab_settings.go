// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"nationpress/internal/models"
)

// TabSettingsStore manages per-page tab metadata rows.
type TabSettingsStore struct {
	db *sql.DB
}

// NewTabSettingsStore returns a new TabSettingsStore backed by the given
// database.
func NewTabSettingsStore(db *sql.DB) *TabSettingsStore {
	return &TabSettingsStore{db: db}
}

const tabSettingsColumns = `id, slug, tab_title, icon_text, icon_bg_color, icon_text_color, updated_at`

func scanTabSettings(row interface{ Scan(...any) error }, t *models.TabSettings) error {
	return row.Scan(&t.ID, &t.Slug, &t.TabTitle, &t.IconText, &t.IconBgColor, &t.IconTextColor, &t.UpdatedAt)
}

// FindBySlug retrieves the settings row for a page slug. Returns nil if
// no row exists; callers fall back to defaults.
func (s *TabSettingsStore) FindBySlug(slug string) (*models.TabSettings, error) {
	t := &models.TabSettings{}
	err := scanTabSettings(s.db.QueryRow(`
		SELECT `+tabSettingsColumns+`
		FROM tab_settings WHERE slug = $1
	`, slug), t)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tab settings by slug: %w", err)
	}
	return t, nil
}

// List returns all settings rows ordered by slug for the admin list.
func (s *TabSettingsStore) List() ([]models.TabSettings, error) {
	rows, err := s.db.Query(`
		SELECT ` + tabSettingsColumns + `
		FROM tab_settings ORDER BY slug ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tab settings: %w", err)
	}
	defer rows.Close()

	var items []models.TabSettings
	for rows.Next() {
		var t models.TabSettings
		if err := scanTabSettings(rows, &t); err != nil {
			return nil, fmt.Errorf("scan tab settings: %w", err)
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// Upsert creates or replaces the settings row for a slug.
func (s *TabSettingsStore) Upsert(t *models.TabSettings) (*models.TabSettings, error) {
	result := &models.TabSettings{}
	err := scanTabSettings(s.db.QueryRow(`
		INSERT INTO tab_settings (slug, tab_title, icon_text, icon_bg_color, icon_text_color)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug)
		DO UPDATE SET tab_title = EXCLUDED.tab_title,
		              icon_text = EXCLUDED.icon_text,
		              icon_bg_color = EXCLUDED.icon_bg_color,
		              icon_text_color = EXCLUDED.icon_text_color,
		              updated_at = NOW()
		RETURNING `+tabSettingsColumns+`
	`, t.Slug, t.TabTitle, t.IconText, t.IconBgColor, t.IconTextColor), result)
	if err != nil {
		return nil, fmt.Errorf("upsert tab settings: %w", err)
	}
	return result, nil
}

// Delete removes the settings row for a slug.
func (s *TabSettingsStore) Delete(slug string) error {
	_, err := s.db.Exec(`DELETE FROM tab_settings WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("delete tab settings: %w", err)
	}
	return nil
}
