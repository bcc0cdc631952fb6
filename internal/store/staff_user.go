// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"nationpress/internal/models"
)

// StaffUserStore handles all staff account database operations.
type StaffUserStore struct {
	db *sql.DB
}

// NewStaffUserStore creates a new StaffUserStore with the given database
// connection.
func NewStaffUserStore(db *sql.DB) *StaffUserStore {
	return &StaffUserStore{db: db}
}

const staffUserColumns = `id, email, password_hash, display_name, totp_secret, totp_enabled, created_at, updated_at`

func scanStaffUser(row interface{ Scan(...any) error }, u *models.StaffUser) error {
	return row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName,
		&u.TOTPSecret, &u.TOTPEnabled, &u.CreatedAt, &u.UpdatedAt,
	)
}

// FindByEmail retrieves a staff user by email. Returns nil if not found.
func (s *StaffUserStore) FindByEmail(email string) (*models.StaffUser, error) {
	u := &models.StaffUser{}
	err := scanStaffUser(s.db.QueryRow(`
		SELECT `+staffUserColumns+`
		FROM staff_users WHERE email = $1
	`, email), u)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find staff user by email: %w", err)
	}
	return u, nil
}

// FindByID retrieves a staff user by UUID. Returns nil if not found.
func (s *StaffUserStore) FindByID(id uuid.UUID) (*models.StaffUser, error) {
	u := &models.StaffUser{}
	err := scanStaffUser(s.db.QueryRow(`
		SELECT `+staffUserColumns+`
		FROM staff_users WHERE id = $1
	`, id), u)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find staff user by id: %w", err)
	}
	return u, nil
}

// List returns all staff users ordered by creation date.
func (s *StaffUserStore) List() ([]models.StaffUser, error) {
	rows, err := s.db.Query(`
		SELECT ` + staffUserColumns + `
		FROM staff_users ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list staff users: %w", err)
	}
	defer rows.Close()

	var users []models.StaffUser
	for rows.Next() {
		var u models.StaffUser
		if err := scanStaffUser(rows, &u); err != nil {
			return nil, fmt.Errorf("scan staff user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts a new staff user with a bcrypt-hashed password.
func (s *StaffUserStore) Create(email, password, displayName string) (*models.StaffUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.StaffUser{}
	err = scanStaffUser(s.db.QueryRow(`
		INSERT INTO staff_users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING `+staffUserColumns+`
	`, email, string(hash), displayName), u)
	if err != nil {
		return nil, fmt.Errorf("create staff user: %w", err)
	}
	return u, nil
}

// SetTOTPSecret saves the TOTP secret for a user (during 2FA setup).
func (s *StaffUserStore) SetTOTPSecret(userID uuid.UUID, secret string) error {
	_, err := s.db.Exec(`
		UPDATE staff_users SET totp_secret = $1, updated_at = NOW() WHERE id = $2
	`, secret, userID)
	if err != nil {
		return fmt.Errorf("set totp secret: %w", err)
	}
	return nil
}

// EnableTOTP marks 2FA as active for a user (after successful code verification).
func (s *StaffUserStore) EnableTOTP(userID uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE staff_users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	return nil
}

// ResetTOTP clears the TOTP secret and disables 2FA for a user.
// The user will be forced to set up 2FA again on their next login.
func (s *StaffUserStore) ResetTOTP(userID uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE staff_users SET totp_secret = NULL, totp_enabled = FALSE, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("reset totp: %w", err)
	}
	return nil
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *StaffUserStore) CheckPassword(user *models.StaffUser, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
