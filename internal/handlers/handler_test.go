// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"nationpress/internal/cache"
	"nationpress/internal/database"
	"nationpress/internal/middleware"
	"nationpress/internal/render"
	"nationpress/internal/session"
	"nationpress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "nationpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "nationpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB            *sql.DB
	Valkey        *redis.Client
	Renderer      *render.Renderer
	Sessions      *session.Store
	StaffUsers    *store.StaffUserStore
	PressReleases *store.PressReleaseStore
	HomeCards     *store.HomeCardStore
	TabSettings   *store.TabSettingsStore
	Elements      *store.EditableElementStore
	Pages         *store.DynamicPageStore
	Badges        *store.BadgeStore
	Media         *store.MediaStore
	PageCache     *cache.PageCache
	Admin         *Admin
	Auth          *Auth
	Public        *Public
	Editor        *Editor
}

// newTestEnv creates a complete test environment with all handler dependencies.
// The editor is wired without S3 storage, matching a server with no object
// store configured.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk)
	staffUsers := store.NewStaffUserStore(db)
	pressReleases := store.NewPressReleaseStore(db)
	homeCards := store.NewHomeCardStore(db)
	tabSettings := store.NewTabSettingsStore(db)
	elements := store.NewEditableElementStore(db)
	pages := store.NewDynamicPageStore(db)
	badges := store.NewBadgeStore(db)
	media := store.NewMediaStore(db)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	fields := NewFieldRegistry(pressReleases, homeCards, pages)
	admin := NewAdmin(renderer, pressReleases, homeCards, tabSettings, badges,
		pages, media, pageCache)
	auth := NewAuth(renderer, sessions, staffUsers)
	public := NewPublic(renderer, pressReleases, homeCards, tabSettings,
		elements, pages, badges, pageCache)
	editor := NewEditor(fields, elements, pages, pressReleases, media, nil, pageCache)

	return &testEnv{
		DB:            db,
		Valkey:        vk,
		Renderer:      renderer,
		Sessions:      sessions,
		StaffUsers:    staffUsers,
		PressReleases: pressReleases,
		HomeCards:     homeCards,
		TabSettings:   tabSettings,
		Elements:      elements,
		Pages:         pages,
		Badges:        badges,
		Media:         media,
		PageCache:     pageCache,
		Admin:         admin,
		Auth:          auth,
		Public:        public,
		Editor:        editor,
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for a staff user in tests.
func testSession(userID uuid.UUID, email string, twoFADone bool) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test Staff",
		TwoFADone:   twoFADone,
	}
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanBadges removes test badges by username. Call in t.Cleanup().
func cleanBadges(t *testing.T, db *sql.DB, usernames ...string) {
	t.Helper()
	for _, u := range usernames {
		db.Exec("DELETE FROM citizenship_badges WHERE username = $1", u)
	}
}

// cleanPages removes test dynamic pages by slug. Call in t.Cleanup().
func cleanPages(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM dynamic_pages WHERE slug = $1", s)
	}
}

// cleanElements removes test editable elements by key. Call in t.Cleanup().
func cleanElements(t *testing.T, db *sql.DB, keys ...string) {
	t.Helper()
	for _, k := range keys {
		db.Exec("DELETE FROM editable_elements WHERE key = $1", k)
	}
}

// cleanPressReleases removes test press releases by title. Call in t.Cleanup().
func cleanPressReleases(t *testing.T, db *sql.DB, titles ...string) {
	t.Helper()
	for _, title := range titles {
		db.Exec("DELETE FROM press_releases WHERE title = $1", title)
	}
}
