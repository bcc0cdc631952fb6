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

// HomeCardStore handles all home card database operations.
type HomeCardStore struct {
	db *sql.DB
}

// NewHomeCardStore creates a new HomeCardStore with the given database
// connection.
func NewHomeCardStore(db *sql.DB) *HomeCardStore {
	return &HomeCardStore{db: db}
}

const homeCardColumns = `id, title, subtitle, body, button_text, button_url,
       position, is_active, created_at, updated_at`

func scanHomeCard(row interface{ Scan(...any) error }, c *models.HomeCard) error {
	return row.Scan(
		&c.ID, &c.Title, &c.Subtitle, &c.Body, &c.ButtonText, &c.ButtonURL,
		&c.Position, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
}

// ListActive returns the active cards in display order.
func (s *HomeCardStore) ListActive() ([]models.HomeCard, error) {
	return s.list(`
		SELECT ` + homeCardColumns + `
		FROM home_cards
		WHERE is_active
		ORDER BY position ASC
	`)
}

// List returns all cards in display order for the admin list.
func (s *HomeCardStore) List() ([]models.HomeCard, error) {
	return s.list(`
		SELECT ` + homeCardColumns + `
		FROM home_cards
		ORDER BY position ASC
	`)
}

func (s *HomeCardStore) list(query string) ([]models.HomeCard, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list home cards: %w", err)
	}
	defer rows.Close()

	var items []models.HomeCard
	for rows.Next() {
		var c models.HomeCard
		if err := scanHomeCard(rows, &c); err != nil {
			return nil, fmt.Errorf("scan home card: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// FindByID retrieves a card by its UUID. Returns nil if not found.
func (s *HomeCardStore) FindByID(id uuid.UUID) (*models.HomeCard, error) {
	c := &models.HomeCard{}
	err := scanHomeCard(s.db.QueryRow(`
		SELECT `+homeCardColumns+`
		FROM home_cards WHERE id = $1
	`, id), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find home card by id: %w", err)
	}
	return c, nil
}

// Create inserts a new card and returns it with generated fields.
func (s *HomeCardStore) Create(c *models.HomeCard) (*models.HomeCard, error) {
	result := &models.HomeCard{}
	err := scanHomeCard(s.db.QueryRow(`
		INSERT INTO home_cards (title, subtitle, body, button_text, button_url, position, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+homeCardColumns+`
	`, c.Title, c.Subtitle, c.Body, c.ButtonText, c.ButtonURL, c.Position, c.IsActive), result)
	if err != nil {
		return nil, fmt.Errorf("create home card: %w", err)
	}
	return result, nil
}

// Update modifies an existing card.
func (s *HomeCardStore) Update(c *models.HomeCard) error {
	_, err := s.db.Exec(`
		UPDATE home_cards SET
			title = $1, subtitle = $2, body = $3, button_text = $4,
			button_url = $5, position = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
	`, c.Title, c.Subtitle, c.Body, c.ButtonText, c.ButtonURL, c.Position, c.IsActive, c.ID)
	if err != nil {
		return fmt.Errorf("update home card: %w", err)
	}
	return nil
}

// SetField updates a single text column on a card. Only columns registered
// with the editor field registry reach this method.
func (s *HomeCardStore) SetField(id uuid.UUID, column, content string) error {
	query := fmt.Sprintf(`UPDATE home_cards SET %s = $1, updated_at = NOW() WHERE id = $2`, column)
	res, err := s.db.Exec(query, content, id)
	if err != nil {
		return fmt.Errorf("set home card %s: %w", column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a card by ID.
func (s *HomeCardStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM home_cards WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete home card: %w", err)
	}
	return nil
}
