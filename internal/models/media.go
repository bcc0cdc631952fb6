// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EditorMedia is a file uploaded through the visual editor. Metadata is
// stored in PostgreSQL; the file itself lives in the S3 bucket. The app
// never deletes media rows.
type EditorMedia struct {
	ID          uuid.UUID `json:"id"`
	S3Key       string    `json:"s3_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploaderID  uuid.UUID `json:"uploader_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Name returns the final path segment of the stored key, used as the
// display name in the editor's media library.
func (m *EditorMedia) Name() string {
	if idx := strings.LastIndexByte(m.S3Key, '/'); idx != -1 {
		return m.S3Key[idx+1:]
	}
	return m.S3Key
}

// UploadDate returns the upload date formatted as YYYY-MM-DD.
func (m *EditorMedia) UploadDate() string {
	return m.CreatedAt.Format("2006-01-02")
}
