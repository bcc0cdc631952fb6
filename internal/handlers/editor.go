// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"nationpress/internal/cache"
	"nationpress/internal/middleware"
	"nationpress/internal/models"
	"nationpress/internal/slug"
	"nationpress/internal/storage"
	"nationpress/internal/store"
)

// maxUploadBytes caps editor uploads at 20 MB.
const maxUploadBytes = 20 << 20

// allowedEditorTypes lists the content types the editor may upload.
var allowedEditorTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// editorExtensions maps sniffed content types to a file extension for
// uploads whose original filename has none.
var editorExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// Editor groups the JSON endpoints behind the inline visual editor:
// element saves, direct field saves, page creation, media upload and
// the blog shortcuts. All routes are staff-only; the router applies
// the auth gate before these handlers run.
type Editor struct {
	fields        *FieldRegistry
	elements      *store.EditableElementStore
	pages         *store.DynamicPageStore
	pressReleases *store.PressReleaseStore
	media         *store.MediaStore
	storageClient *storage.Client
	pageCache     *cache.PageCache
}

// NewEditor creates a new Editor handler group. storageClient may be
// nil if S3 is not configured; uploads then fail with a clear error.
func NewEditor(
	fields *FieldRegistry,
	elements *store.EditableElementStore,
	pages *store.DynamicPageStore,
	pressReleases *store.PressReleaseStore,
	media *store.MediaStore,
	storageClient *storage.Client,
	pageCache *cache.PageCache,
) *Editor {
	return &Editor{
		fields:        fields,
		elements:      elements,
		pages:         pages,
		pressReleases: pressReleases,
		media:         media,
		storageClient: storageClient,
		pageCache:     pageCache,
	}
}

// elementUpdateRequest is the JSON body for ElementUpdate. The two
// shapes share a struct: the element path uses Key, the field path
// uses Model/ModelID/Field.
type elementUpdateRequest struct {
	Key     string `json:"key"`
	Content string `json:"content"`
	Model   string `json:"model"`
	ModelID string `json:"model_id"`
	Field   string `json:"field"`
}

// ElementUpdate saves inline edits. The body is either an element-keyed
// update {key, content} or a direct field update {model, model_id,
// field, content} resolved through the field registry.
func (e *Editor) ElementUpdate(w http.ResponseWriter, r *http.Request) {
	var req elementUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// Direct field update path.
	if req.Model != "" {
		model := strings.ToLower(req.Model)
		field := strings.ToLower(req.Field)
		if !e.fields.Allowed(model, field) {
			writeJSONError(w, http.StatusBadRequest, "Unknown model or field")
			return
		}

		id, err := uuid.Parse(req.ModelID)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid model_id")
			return
		}

		if err := e.fields.Set(model, field, id, req.Content); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJSONError(w, http.StatusNotFound, "Object not found")
				return
			}
			slog.Error("field update failed", "model", model, "field", field, "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Save failed")
			return
		}

		e.pageCache.InvalidateAll(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "type": "field"})
		return
	}

	// Element-keyed update path.
	if strings.TrimSpace(req.Key) == "" {
		writeJSONError(w, http.StatusBadRequest, "Missing element key")
		return
	}

	if err := e.elements.Upsert(req.Key, req.Content); err != nil {
		slog.Error("element upsert failed", "key", req.Key, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Save failed")
		return
	}

	e.pageCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "key": req.Key})
}

// pageCreateRequest is the JSON body for PageCreate.
type pageCreateRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// PageCreate creates a dynamic page from the editor's new-page dialog.
func (e *Editor) PageCreate(w http.ResponseWriter, r *http.Request) {
	var req pageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	title := strings.TrimSpace(req.Title)
	pageSlug := slug.Normalize(req.Slug)
	if title == "" || pageSlug == "" {
		writeJSONError(w, http.StatusBadRequest, "Title and slug are required")
		return
	}
	if slug.Reserved(pageSlug) {
		writeJSONError(w, http.StatusBadRequest, "Slug already exists")
		return
	}

	page, err := e.pages.Create(pageSlug, title)
	if errors.Is(err, store.ErrSlugTaken) {
		writeJSONError(w, http.StatusBadRequest, "Slug already exists")
		return
	}
	if err != nil {
		slog.Error("page create failed", "slug", pageSlug, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Save failed")
		return
	}

	slog.Info("dynamic page created", "slug", page.Slug, "title", page.Title)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "url": page.URL()})
}

// Upload stores a single multipart file in S3 and records a media row.
// The response shape {location} matches what rich-text editors expect
// from an image upload endpoint.
func (e *Editor) Upload(w http.ResponseWriter, r *http.Request) {
	if e.storageClient == nil {
		writeJSONError(w, http.StatusInternalServerError, "Storage is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+1024)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file provided.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "No file provided.")
		return
	}
	defer file.Close()

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeJSONError(w, http.StatusInternalServerError, "Upload failed")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType returns text/xml or plain text for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedEditorTypes[contentType] {
		writeJSONError(w, http.StatusBadRequest,
			fmt.Sprintf("File type %q is not allowed.", contentType))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	// Key layout: editor/<year>/<month>/<uuid><ext>
	now := time.Now()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = editorExtensions[contentType]
	}
	key := fmt.Sprintf("editor/%d/%02d/%s%s",
		now.Year(), now.Month(), uuid.New().String(), ext)

	if err := e.storageClient.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("editor upload failed", "key", key, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	media := &models.EditorMedia{
		S3Key:       key,
		ContentType: contentType,
		SizeBytes:   header.Size,
		UploaderID:  sess.UserID,
	}
	if _, err := e.media.Create(media); err != nil {
		slog.Error("media row create failed", "key", key, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	slog.Info("editor upload stored", "key", key, "size", header.Size)
	writeJSON(w, http.StatusOK, map[string]any{"location": e.storageClient.FileURL(key)})
}

// Library returns all stored media as {id, url, name, date} rows,
// newest first, for the editor's media picker.
func (e *Editor) Library(w http.ResponseWriter, r *http.Request) {
	items, err := e.media.List()
	if err != nil {
		slog.Error("media list failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Listing failed")
		return
	}

	files := make([]map[string]any, 0, len(items))
	for _, m := range items {
		url := m.S3Key
		if e.storageClient != nil {
			url = e.storageClient.FileURL(m.S3Key)
		}
		files = append(files, map[string]any{
			"id":   m.ID,
			"url":  url,
			"name": m.Name(),
			"date": m.UploadDate(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "files": files})
}

// blogCreateRequest is the JSON body for BlogCreate.
type blogCreateRequest struct {
	Title string `json:"title"`
}

// BlogCreate makes a new published press release straight from the
// editor toolbar. Title defaults to "Untitled Post".
func (e *Editor) BlogCreate(w http.ResponseWriter, r *http.Request) {
	var req blogCreateRequest
	if r.Body != nil {
		// An empty body is fine; everything defaults.
		json.NewDecoder(r.Body).Decode(&req)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Untitled Post"
	}

	created, err := e.pressReleases.Create(&models.PressRelease{
		Title:       title,
		PublishedAt: time.Now(),
		IsPublished: true,
	})
	if err != nil {
		slog.Error("blog create failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Save failed")
		return
	}

	e.pageCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": created.ID})
}

// blogDeleteRequest is the JSON body for BlogDelete.
type blogDeleteRequest struct {
	ID string `json:"id"`
}

// BlogDelete removes a press release by id. Unknown ids 404.
func (e *Editor) BlogDelete(w http.ResponseWriter, r *http.Request) {
	var req blogDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "Post not found")
		return
	}

	deleted, err := e.pressReleases.Delete(id)
	if err != nil {
		slog.Error("blog delete failed", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Delete failed")
		return
	}
	if deleted == nil {
		writeJSONError(w, http.StatusNotFound, "Post not found")
		return
	}

	e.pageCache.InvalidateAll(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
