// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// StaffUser represents a staff member who can sign in to the admin area
// and use the inline visual editor. All staff must enroll in TOTP 2FA on
// their first login.
type StaffUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	TOTPSecret   *string   `json:"-"` // Nullable; set during 2FA setup
	TOTPEnabled  bool      `json:"totp_enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NeedsTwoFASetup returns true if the user has not completed 2FA enrollment.
func (u *StaffUser) NeedsTwoFASetup() bool {
	return !u.TOTPEnabled
}
