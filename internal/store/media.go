// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"nationpress/internal/models"
)

// MediaStore handles editor media metadata. Files themselves live in
// object storage; the app never deletes media rows.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// Create inserts a new media row and returns it with generated fields.
func (s *MediaStore) Create(m *models.EditorMedia) (*models.EditorMedia, error) {
	result := &models.EditorMedia{}
	err := s.db.QueryRow(`
		INSERT INTO editor_media (s3_key, content_type, size_bytes, uploader_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, s3_key, content_type, size_bytes, uploader_id, created_at
	`, m.S3Key, m.ContentType, m.SizeBytes, m.UploaderID).Scan(
		&result.ID, &result.S3Key, &result.ContentType, &result.SizeBytes,
		&result.UploaderID, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create editor media: %w", err)
	}
	return result, nil
}

// List returns all media rows, newest first.
func (s *MediaStore) List() ([]models.EditorMedia, error) {
	rows, err := s.db.Query(`
		SELECT id, s3_key, content_type, size_bytes, uploader_id, created_at
		FROM editor_media
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list editor media: %w", err)
	}
	defer rows.Close()

	var items []models.EditorMedia
	for rows.Next() {
		var m models.EditorMedia
		if err := rows.Scan(&m.ID, &m.S3Key, &m.ContentType, &m.SizeBytes, &m.UploaderID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan editor media: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// Count returns the number of media rows.
func (s *MediaStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM editor_media`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count editor media: %w", err)
	}
	return count, nil
}
