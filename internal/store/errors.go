// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Domain conflict errors surfaced to handlers as user-visible messages.
var (
	// ErrUsernameTaken is returned when a citizenship badge insert hits
	// the case-insensitive username unique index.
	ErrUsernameTaken = errors.New("username taken")

	// ErrSlugTaken is returned when a dynamic page insert hits the slug
	// unique constraint.
	ErrSlugTaken = errors.New("slug already exists")
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
