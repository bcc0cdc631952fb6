// Package router sets up all HTTP routes and middleware chains for the
// NationPress server. It organizes routes into public, editor API, and
// admin groups with appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nationpress/internal/handlers"
	"nationpress/internal/middleware"
	"nationpress/internal/session"
	"nationpress/web"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. badgeLimit is the per-IP per-minute cap on
// badge creation submissions.
func New(
	sessionStore *session.Store,
	admin *handlers.Admin,
	auth *handlers.Auth,
	public *handlers.Public,
	editor *handlers.Editor,
	badgeLimit int,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check, no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets (site CSS + editor script).
	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Admin routes: CSRF-protected, auth enforced per group.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth pages, accessible without a session.
		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// 2FA: requires a session but NOT completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireStaff)
			r.Get("/2fa/setup", auth.TwoFASetupPage)
			r.Post("/2fa/setup", auth.TwoFAVerifySubmit)
			r.Get("/2fa/verify", auth.TwoFAVerifyPage)
			r.Post("/2fa/verify", auth.TwoFAVerifySubmit)
		})

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireStaff)
			r.Use(middleware.Require2FA)

			r.Get("/", admin.Dashboard)
			r.Get("/dashboard", admin.Dashboard)

			r.Route("/press-releases", func(r chi.Router) {
				r.Get("/", admin.PressReleasesList)
				r.Get("/new", admin.PressReleaseNew)
				r.Post("/new", admin.PressReleaseCreate)
				r.Get("/{id}", admin.PressReleaseEdit)
				r.Post("/{id}", admin.PressReleaseUpdate)
				r.Post("/{id}/delete", admin.PressReleaseDelete)
			})

			r.Route("/home-cards", func(r chi.Router) {
				r.Get("/", admin.HomeCardsList)
				r.Get("/new", admin.HomeCardNew)
				r.Post("/new", admin.HomeCardCreate)
				r.Get("/{id}", admin.HomeCardEdit)
				r.Post("/{id}", admin.HomeCardUpdate)
				r.Post("/{id}/delete", admin.HomeCardDelete)
			})

			r.Route("/tab-settings", func(r chi.Router) {
				r.Get("/", admin.TabSettingsList)
				r.Get("/new", admin.TabSettingsNew)
				r.Post("/new", admin.TabSettingsSave)
				r.Get("/{slug}", admin.TabSettingsEdit)
				r.Post("/{slug}", admin.TabSettingsSave)
				r.Post("/{slug}/delete", admin.TabSettingsDelete)
			})

			r.Get("/badges", admin.BadgesList)
		})
	})

	// Editor API: staff-only JSON endpoints behind CSRF.
	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireStaff)
		r.Use(middleware.Require2FA)

		r.Post("/editable-element/update/", editor.ElementUpdate)
		r.Post("/api/pages/create/", editor.PageCreate)
		r.Post("/api/editor/upload/", editor.Upload)
		r.Get("/api/editor/library/", editor.Library)
		r.Post("/api/blog/create/", editor.BlogCreate)
		r.Post("/api/blog/delete/", editor.BlogDelete)
	})

	// Public site.
	r.Get("/", public.Home)
	r.Get("/culture/", public.Culture)
	r.Get("/executive-orders/", public.ExecutiveOrders)
	r.Get("/blog/", public.ExecutiveOrders)

	r.Group(func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Get("/citizenship/", public.CitizenshipForm)

		badgeLimiter := middleware.NewRateLimiter(badgeLimit, time.Minute)
		r.With(badgeLimiter.Middleware).Post("/citizenship/", public.CitizenshipCreate)
	})

	r.Get("/citizenship/badge/{id}/image/", public.BadgeImage)

	// Dynamic pages resolve last so fixed routes win.
	r.Get("/{slug}/", public.DynamicPage)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
