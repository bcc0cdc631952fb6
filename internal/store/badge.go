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

// BadgeStore handles citizenship badge database operations. Badges are
// immutable after creation; there is no update or delete path.
type BadgeStore struct {
	db *sql.DB
}

// NewBadgeStore creates a new BadgeStore with the given database connection.
func NewBadgeStore(db *sql.DB) *BadgeStore {
	return &BadgeStore{db: db}
}

const badgeColumns = `id, username, origin, color1_hex, color2_hex, data, created_at`

func scanBadge(row interface{ Scan(...any) error }, b *models.CitizenshipBadge) error {
	return row.Scan(&b.ID, &b.Username, &b.Origin, &b.Color1Hex, &b.Color2Hex, &b.Data, &b.CreatedAt)
}

// FindByID retrieves a badge by its UUID. Returns nil if not found.
func (s *BadgeStore) FindByID(id uuid.UUID) (*models.CitizenshipBadge, error) {
	b := &models.CitizenshipBadge{}
	err := scanBadge(s.db.QueryRow(`
		SELECT `+badgeColumns+`
		FROM citizenship_badges WHERE id = $1
	`, id), b)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find badge by id: %w", err)
	}
	return b, nil
}

// FindByUsername retrieves a badge by username, matched case-insensitively.
// Returns nil if not found.
func (s *BadgeStore) FindByUsername(username string) (*models.CitizenshipBadge, error) {
	b := &models.CitizenshipBadge{}
	err := scanBadge(s.db.QueryRow(`
		SELECT `+badgeColumns+`
		FROM citizenship_badges WHERE LOWER(username) = LOWER($1)
	`, username), b)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find badge by username: %w", err)
	}
	return b, nil
}

// Create inserts a new badge. Returns ErrUsernameTaken if the insert hits
// the case-insensitive unique index on username.
func (s *BadgeStore) Create(b *models.CitizenshipBadge) (*models.CitizenshipBadge, error) {
	result := &models.CitizenshipBadge{}
	err := scanBadge(s.db.QueryRow(`
		INSERT INTO citizenship_badges (username, origin, color1_hex, color2_hex, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+badgeColumns+`
	`, b.Username, b.Origin, b.Color1Hex, b.Color2Hex, b.Data), result)
	if isUniqueViolation(err) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("create badge: %w", err)
	}
	return result, nil
}

// List returns all badges, newest first. Used by the admin dashboard.
func (s *BadgeStore) List() ([]models.CitizenshipBadge, error) {
	rows, err := s.db.Query(`
		SELECT ` + badgeColumns + `
		FROM citizenship_badges ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	var items []models.CitizenshipBadge
	for rows.Next() {
		var b models.CitizenshipBadge
		if err := scanBadge(rows, &b); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// Count returns the number of badges.
func (s *BadgeStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM citizenship_badges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count badges: %w", err)
	}
	return count, nil
}
