// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"nationpress/internal/models"
)

// DynamicPageStore manages runtime-created pages.
type DynamicPageStore struct {
	db *sql.DB
}

// NewDynamicPageStore returns a new DynamicPageStore backed by the given
// database.
func NewDynamicPageStore(db *sql.DB) *DynamicPageStore {
	return &DynamicPageStore{db: db}
}

const dynamicPageColumns = `id, slug, title, is_published, created_at`

func scanDynamicPage(row interface{ Scan(...any) error }, p *models.DynamicPage) error {
	return row.Scan(&p.ID, &p.Slug, &p.Title, &p.IsPublished, &p.CreatedAt)
}

// FindPublishedBySlug retrieves a published page by its slug. Returns nil
// if the page does not exist or is unpublished.
func (s *DynamicPageStore) FindPublishedBySlug(slug string) (*models.DynamicPage, error) {
	p := &models.DynamicPage{}
	err := scanDynamicPage(s.db.QueryRow(`
		SELECT `+dynamicPageColumns+`
		FROM dynamic_pages WHERE slug = $1 AND is_published
	`, slug), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find dynamic page by slug: %w", err)
	}
	return p, nil
}

// ExistsBySlug reports whether any page (published or not) holds the slug.
// Used as a UX pre-check; the unique constraint is the source of truth.
func (s *DynamicPageStore) ExistsBySlug(slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM dynamic_pages WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("dynamic page exists: %w", err)
	}
	return exists, nil
}

// List returns all pages, newest first.
func (s *DynamicPageStore) List() ([]models.DynamicPage, error) {
	rows, err := s.db.Query(`
		SELECT ` + dynamicPageColumns + `
		FROM dynamic_pages ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list dynamic pages: %w", err)
	}
	defer rows.Close()

	var items []models.DynamicPage
	for rows.Next() {
		var p models.DynamicPage
		if err := scanDynamicPage(rows, &p); err != nil {
			return nil, fmt.Errorf("scan dynamic page: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// Create inserts a new published page. Returns ErrSlugTaken if the slug
// unique constraint rejects the insert.
func (s *DynamicPageStore) Create(slug, title string) (*models.DynamicPage, error) {
	p := &models.DynamicPage{}
	err := scanDynamicPage(s.db.QueryRow(`
		INSERT INTO dynamic_pages (slug, title)
		VALUES ($1, $2)
		RETURNING `+dynamicPageColumns+`
	`, slug, title), p)
	if isUniqueViolation(err) {
		return nil, ErrSlugTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create dynamic page: %w", err)
	}
	return p, nil
}

// SetTitle updates the page title. Only the title is editor-writable.
func (s *DynamicPageStore) SetTitle(id uuid.UUID, title string) error {
	res, err := s.db.Exec(`UPDATE dynamic_pages SET title = $1 WHERE id = $2`, title, id)
	if err != nil {
		return fmt.Errorf("set dynamic page title: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
