// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nationpress/internal/models"
	"nationpress/internal/storage"
)

// decodeJSON decodes a recorded JSON response body into a generic map.
func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestElementUpdateByKey(t *testing.T) {
	env := newTestEnv(t)
	key := "__test:hero:title"
	cleanElements(t, env.DB, key)
	t.Cleanup(func() { cleanElements(t, env.DB, key) })

	payload := `{"key": "` + key + `", "content": "<h1>Welcome</h1>"}`
	req := httptest.NewRequest(http.MethodPost, "/editable-element/update/", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Editor.ElementUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	if body["ok"] != true {
		t.Errorf("ok: got %v, want true", body["ok"])
	}
	if body["key"] != key {
		t.Errorf("key: got %v, want %q", body["key"], key)
	}

	el, err := env.Elements.FindByKey(key)
	if err != nil {
		t.Fatalf("find element: %v", err)
	}
	if el == nil || el.Content != "<h1>Welcome</h1>" {
		t.Errorf("stored content: got %+v, want <h1>Welcome</h1>", el)
	}
}

func TestElementUpdateByKeyUpsertsExisting(t *testing.T) {
	env := newTestEnv(t)
	key := "__test:footer"
	cleanElements(t, env.DB, key)
	t.Cleanup(func() { cleanElements(t, env.DB, key) })

	if err := env.Elements.Upsert(key, "old"); err != nil {
		t.Fatalf("seed element: %v", err)
	}

	payload := `{"key": "` + key + `", "content": "new"}`
	req := httptest.NewRequest(http.MethodPost, "/editable-element/update/", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Editor.ElementUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	el, err := env.Elements.FindByKey(key)
	if err != nil {
		t.Fatalf("find element: %v", err)
	}
	if el == nil || el.Content != "new" {
		t.Errorf("stored content: got %+v, want new", el)
	}
}

func TestElementUpdateMissingKey(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/editable-element/update/",
		strings.NewReader(`{"content": "orphan"}`))
	rec := httptest.NewRecorder()

	env.Editor.ElementUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "Missing element key" {
		t.Errorf("error: got %v, want %q", body["error"], "Missing element key")
	}
}

func TestElementUpdateModelField(t *testing.T) {
	env := newTestEnv(t)
	title := "__test editor field update"
	cleanPressReleases(t, env.DB, title, "Edited Title")
	t.Cleanup(func() { cleanPressReleases(t, env.DB, title, "Edited Title") })

	pr, err := env.PressReleases.Create(&models.PressRelease{
		Title:       title,
		PublishedAt: time.Now(),
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create press release: %v", err)
	}

	// Model names arrive in mixed case from the editor script.
	payload := `{"model": "PressRelease", "model_id": "` + pr.ID.String() + `", "field": "title", "content": "Edited Title"}`
	req := httptest.NewRequest(http.MethodPost, "/editable-element/update/", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Editor.ElementUpdate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	if body["type"] != "field" {
		t.Errorf("type: got %v, want field", body["type"])
	}

	got, err := env.PressReleases.FindByID(pr.ID)
	if err != nil {
		t.Fatalf("find press release: %v", err)
	}
	if got.Title != "Edited Title" {
		t.Errorf("title: got %q, want %q", got.Title, "Edited Title")
	}
}

func TestElementUpdateUnknownField(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"model": "pressrelease", "model_id": "ignored", "field": "password_hash", "content": "x"}`
	req := httptest.NewRequest(http.MethodPost, "/editable-element/update/", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Editor.ElementUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "Unknown model or field" {
		t.Errorf("error: got %v, want %q", body["error"], "Unknown model or field")
	}
}

func TestElementUpdateInvalidModelID(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"model": "homecard", "model_id": "not-a-uuid", "field": "title", "content": "x"}`
	req := httptest.NewRequest(http.MethodPost, "/editable-element/update/", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Editor.ElementUpdate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "Invalid model_id" {
		t.Errorf("error: got %v, want %q", body["error"], "Invalid model_id")
	}
}

func TestElementUpdateMissingRow(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"model": "pressrelease", "model_id": "00000000-0000-0000-0000-000000000000", "field": "title", "content": "x"}`
	req := httptest.NewRequest(http.MethodPost, "/editable-element/update/", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Editor.ElementUpdate(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "Object not found" {
		t.Errorf("error: got %v, want %q", body["error"], "Object not found")
	}
}

func TestPageCreate(t *testing.T) {
	env := newTestEnv(t)
	slug := "test-editor-page"
	cleanPages(t, env.DB, slug)
	t.Cleanup(func() { cleanPages(t, env.DB, slug) })

	payload := `{"title": "Editor Page", "slug": "Test Editor Page"}`
	req := httptest.NewRequest(http.MethodPost, "/api/pages/create/", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Editor.PageCreate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	if body["url"] != "/"+slug+"/" {
		t.Errorf("url: got %v, want %q", body["url"], "/"+slug+"/")
	}

	page, err := env.Pages.FindPublishedBySlug(slug)
	if err != nil {
		t.Fatalf("find page: %v", err)
	}
	if page == nil || page.Title != "Editor Page" {
		t.Errorf("stored page: got %+v, want title Editor Page", page)
	}
}

func TestPageCreateMissingTitle(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/pages/create/",
		strings.NewReader(`{"title": "", "slug": "something"}`))
	rec := httptest.NewRecorder()

	env.Editor.PageCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "Title and slug are required" {
		t.Errorf("error: got %v, want %q", body["error"], "Title and slug are required")
	}
}

func TestPageCreateDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	slug := "test-duplicate-page"
	cleanPages(t, env.DB, slug)
	t.Cleanup(func() { cleanPages(t, env.DB, slug) })

	if _, err := env.Pages.Create(slug, "First"); err != nil {
		t.Fatalf("seed page: %v", err)
	}

	payload := `{"title": "Second", "slug": "` + slug + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/pages/create/", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Editor.PageCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "Slug already exists" {
		t.Errorf("error: got %v, want %q", body["error"], "Slug already exists")
	}
}

func TestPageCreateReservedSlug(t *testing.T) {
	env := newTestEnv(t)

	// "admin" collides with a fixed route and must be rejected before
	// the insert is even attempted.
	req := httptest.NewRequest(http.MethodPost, "/api/pages/create/",
		strings.NewReader(`{"title": "Admin", "slug": "admin"}`))
	rec := httptest.NewRecorder()

	env.Editor.PageCreate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "Slug already exists" {
		t.Errorf("error: got %v, want %q", body["error"], "Slug already exists")
	}
}

func TestBlogCreateDefaultTitle(t *testing.T) {
	env := newTestEnv(t)
	cleanPressReleases(t, env.DB, "Untitled Post")
	t.Cleanup(func() { cleanPressReleases(t, env.DB, "Untitled Post") })

	req := httptest.NewRequest(http.MethodPost, "/api/blog/create/", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	env.Editor.BlogCreate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	if body["ok"] != true {
		t.Errorf("ok: got %v, want true", body["ok"])
	}

	// The new post is published immediately and should show up in the
	// public listing.
	releases, err := env.PressReleases.ListPublished()
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	found := false
	for _, r := range releases {
		if r.Title == "Untitled Post" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected an Untitled Post in the published listing")
	}
}

func TestBlogDelete(t *testing.T) {
	env := newTestEnv(t)
	title := "__test blog delete"
	cleanPressReleases(t, env.DB, title)
	t.Cleanup(func() { cleanPressReleases(t, env.DB, title) })

	pr, err := env.PressReleases.Create(&models.PressRelease{
		Title:       title,
		PublishedAt: time.Now(),
		IsPublished: true,
	})
	if err != nil {
		t.Fatalf("create press release: %v", err)
	}

	payload := `{"id": "` + pr.ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/blog/delete/", strings.NewReader(payload))
	rec := httptest.NewRecorder()

	env.Editor.BlogDelete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	got, err := env.PressReleases.FindByID(pr.ID)
	if err != nil {
		t.Fatalf("find press release: %v", err)
	}
	if got != nil {
		t.Errorf("press release still exists after delete: %+v", got)
	}
}

func TestBlogDeleteNotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{"not-a-uuid", "00000000-0000-0000-0000-000000000000"} {
		req := httptest.NewRequest(http.MethodPost, "/api/blog/delete/",
			strings.NewReader(`{"id": "`+id+`"}`))
		rec := httptest.NewRecorder()

		env.Editor.BlogDelete(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("id %q: status: got %d, want 404", id, rec.Code)
		}
		body := decodeJSON(t, rec)
		if body["ok"] != false {
			t.Errorf("id %q: ok: got %v, want false", id, body["ok"])
		}
		if body["error"] != "Post not found" {
			t.Errorf("id %q: error: got %v, want %q", id, body["error"], "Post not found")
		}
	}
}

func TestLibraryShape(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/editor/library/", nil)
	rec := httptest.NewRecorder()

	env.Editor.Library(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["ok"] != true {
		t.Errorf("ok: got %v, want true", body["ok"])
	}
	// files must always be a JSON array, even when the library is empty.
	if _, isArray := body["files"].([]any); !isArray {
		t.Errorf("files: got %T, want array", body["files"])
	}
}

func TestUploadWithoutStorage(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/editor/upload/", nil)
	rec := httptest.NewRecorder()

	env.Editor.Upload(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "Storage is not configured" {
		t.Errorf("error: got %v, want %q", body["error"], "Storage is not configured")
	}
}

func TestUploadNoFile(t *testing.T) {
	env := newTestEnv(t)

	// Wire a non-nil storage client so the handler reaches form parsing.
	sc, err := storage.New("http://localhost:9", "us-east-1", "test", "test", "test-bucket", "")
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	editor := NewEditor(nil, env.Elements, env.Pages, env.PressReleases, env.Media, sc, env.PageCache)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("unrelated", "value")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/editor/upload/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	editor.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	body := decodeJSON(t, rec)
	if body["error"] != "No file provided." {
		t.Errorf("error: got %v, want %q", body["error"], "No file provided.")
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	env := newTestEnv(t)

	sc, err := storage.New("http://localhost:9", "us-east-1", "test", "test", "test-bucket", "")
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	editor := NewEditor(nil, env.Elements, env.Pages, env.PressReleases, env.Media, sc, env.PageCache)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "payload.exe")
	fw.Write([]byte{0x4D, 0x5A, 0x90, 0x00, 0x03, 0x00, 0x00, 0x00})
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/editor/upload/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	editor.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400 (body: %s)", rec.Code, rec.Body.String())
	}
	body := decodeJSON(t, rec)
	errMsg, _ := body["error"].(string)
	if !strings.Contains(errMsg, "is not allowed") {
		t.Errorf("error: got %q, want a type-not-allowed message", errMsg)
	}
}
