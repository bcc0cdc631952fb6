// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"nationpress/internal/models"
)

// EditableElementStore manages the editable HTML snippets behind the
// inline visual editor.
type EditableElementStore struct {
	db *sql.DB
}

// NewEditableElementStore returns a new EditableElementStore backed by
// the given database.
func NewEditableElementStore(db *sql.DB) *EditableElementStore {
	return &EditableElementStore{db: db}
}

// AllContent returns every element as a key → content map. Rendered into
// each page as JSON so the front-end editor can hydrate edited elements.
func (s *EditableElementStore) AllContent() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, content FROM editable_elements ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list editable elements: %w", err)
	}
	defer rows.Close()

	elements := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan editable element: %w", err)
		}
		elements[k] = v
	}
	return elements, rows.Err()
}

// FindByKey retrieves a single element. Returns nil if not found.
func (s *EditableElementStore) FindByKey(key string) (*models.EditableElement, error) {
	e := &models.EditableElement{}
	err := s.db.QueryRow(`
		SELECT id, key, content, description, updated_at
		FROM editable_elements WHERE key = $1
	`, key).Scan(&e.ID, &e.Key, &e.Content, &e.Description, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find editable element: %w", err)
	}
	return e, nil
}

// Upsert creates the element on first save and replaces its content
// wholesale afterwards.
func (s *EditableElementStore) Upsert(key, content string) error {
	_, err := s.db.Exec(`
		INSERT INTO editable_elements (key, content)
		VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
	`, key, content)
	if err != nil {
		return fmt.Errorf("upsert editable element: %w", err)
	}
	return nil
}
