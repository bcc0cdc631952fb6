package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// staff user and a starter set of home cards. No-op if staff already exist.
// The staff user is prompted to set up 2FA on first login.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM staff_users").Scan(&count); err != nil {
		return fmt.Errorf("seed check staff: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO staff_users (email, password_hash, display_name, totp_enabled)
		VALUES ($1, $2, $3, $4)
	`, "admin@nationpress.local", string(hash), "Admin", false)
	if err != nil {
		return fmt.Errorf("seed insert staff user: %w", err)
	}

	// Starter home cards so the homepage isn't empty on a fresh install.
	cards := []struct {
		title, subtitle, body, buttonText, buttonURL string
		position                                     int
	}{
		{"Executive Orders", "Official decrees", "Read the latest executive orders and press releases.", "Browse", "/executive-orders/", 0},
		{"Citizenship", "Join a nation", "Claim your citizenship badge and pick your origin.", "Get yours", "/citizenship/", 1},
		{"Culture", "Heritage and customs", "Learn about the cultures of the four nations.", "Explore", "/culture/", 2},
	}
	for _, c := range cards {
		_, err := db.Exec(`
			INSERT INTO home_cards (title, subtitle, body, button_text, button_url, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, c.title, c.subtitle, c.body, c.buttonText, c.buttonURL, c.position)
		if err != nil {
			return fmt.Errorf("seed insert home card: %w", err)
		}
	}

	slog.Info("database seeded with default staff user",
		"email", "admin@nationpress.local",
		"password", "admin",
	)

	return nil
}
