// Package store provides database access methods for all NationPress
// entities. Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"nationpress/internal/models"
)

// PressReleaseStore handles all press release database operations.
type PressReleaseStore struct {
	db *sql.DB
}

// NewPressReleaseStore creates a new PressReleaseStore with the given
// database connection.
func NewPressReleaseStore(db *sql.DB) *PressReleaseStore {
	return &PressReleaseStore{db: db}
}

const pressReleaseColumns = `id, title, header, body, footer, image_url,
       published_at, is_published, is_pinned, highlight, created_at, updated_at`

func scanPressRelease(row interface{ Scan(...any) error }, p *models.PressRelease) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Header, &p.Body, &p.Footer, &p.ImageURL,
		&p.PublishedAt, &p.IsPublished, &p.IsPinned, &p.Highlight,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

// ListPublished returns all published releases, pinned first, then newest.
// This is the ordering used by every public listing.
func (s *PressReleaseStore) ListPublished() ([]models.PressRelease, error) {
	return s.list(`
		SELECT ` + pressReleaseColumns + `
		FROM press_releases
		WHERE is_published
		ORDER BY is_pinned DESC, published_at DESC
	`)
}

// List returns every release for the admin list, same ordering as public.
func (s *PressReleaseStore) List() ([]models.PressRelease, error) {
	return s.list(`
		SELECT ` + pressReleaseColumns + `
		FROM press_releases
		ORDER BY is_pinned DESC, published_at DESC
	`)
}

func (s *PressReleaseStore) list(query string) ([]models.PressRelease, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list press releases: %w", err)
	}
	defer rows.Close()

	var items []models.PressRelease
	for rows.Next() {
		var p models.PressRelease
		if err := scanPressRelease(rows, &p); err != nil {
			return nil, fmt.Errorf("scan press release: %w", err)
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// FindByID retrieves a release by its UUID. Returns nil if not found.
func (s *PressReleaseStore) FindByID(id uuid.UUID) (*models.PressRelease, error) {
	p := &models.PressRelease{}
	err := scanPressRelease(s.db.QueryRow(`
		SELECT `+pressReleaseColumns+`
		FROM press_releases WHERE id = $1
	`, id), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find press release by id: %w", err)
	}
	return p, nil
}

// Create inserts a new release and returns it with generated fields.
func (s *PressReleaseStore) Create(p *models.PressRelease) (*models.PressRelease, error) {
	result := &models.PressRelease{}
	err := scanPressRelease(s.db.QueryRow(`
		INSERT INTO press_releases (title, header, body, footer, image_url,
		                            is_published, is_pinned, highlight)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+pressReleaseColumns+`
	`, p.Title, p.Header, p.Body, p.Footer, p.ImageURL,
		p.IsPublished, p.IsPinned, p.Highlight), result)
	if err != nil {
		return nil, fmt.Errorf("create press release: %w", err)
	}
	return result, nil
}

// Update modifies an existing release.
func (s *PressReleaseStore) Update(p *models.PressRelease) error {
	_, err := s.db.Exec(`
		UPDATE press_releases SET
			title = $1, header = $2, body = $3, footer = $4, image_url = $5,
			published_at = $6, is_published = $7, is_pinned = $8, highlight = $9,
			updated_at = NOW()
		WHERE id = $10
	`, p.Title, p.Header, p.Body, p.Footer, p.ImageURL,
		p.PublishedAt, p.IsPublished, p.IsPinned, p.Highlight, p.ID)
	if err != nil {
		return fmt.Errorf("update press release: %w", err)
	}
	return nil
}

// SetField updates a single text column on a release. Only columns
// registered with the editor field registry reach this method.
func (s *PressReleaseStore) SetField(id uuid.UUID, column, content string) error {
	query := fmt.Sprintf(`UPDATE press_releases SET %s = $1, updated_at = NOW() WHERE id = $2`, column)
	res, err := s.db.Exec(query, content, id)
	if err != nil {
		return fmt.Errorf("set press release %s: %w", column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a release by ID. Returns the deleted row, or nil if no
// row matched.
func (s *PressReleaseStore) Delete(id uuid.UUID) (*models.PressRelease, error) {
	p := &models.PressRelease{}
	err := scanPressRelease(s.db.QueryRow(`
		DELETE FROM press_releases WHERE id = $1
		RETURNING `+pressReleaseColumns+`
	`, id), p)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete press release: %w", err)
	}
	return p, nil
}

// Count returns the number of releases.
func (s *PressReleaseStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM press_releases`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count press releases: %w", err)
	}
	return count, nil
}
