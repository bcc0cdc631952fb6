// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for NationPress.
// Handlers are grouped by concern (admin, public, auth, editor) and
// receive their dependencies through the handler struct.
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"nationpress/internal/cache"
	"nationpress/internal/middleware"
	"nationpress/internal/models"
	"nationpress/internal/render"
	"nationpress/internal/store"
)

// Admin groups all admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer      *render.Renderer
	pressReleases *store.PressReleaseStore
	homeCards     *store.HomeCardStore
	tabSettings   *store.TabSettingsStore
	badges        *store.BadgeStore
	pages         *store.DynamicPageStore
	media         *store.MediaStore
	pageCache     *cache.PageCache
}

// NewAdmin creates a new Admin handler group with the given dependencies.
func NewAdmin(
	renderer *render.Renderer,
	pressReleases *store.PressReleaseStore,
	homeCards *store.HomeCardStore,
	tabSettings *store.TabSettingsStore,
	badges *store.BadgeStore,
	pages *store.DynamicPageStore,
	media *store.MediaStore,
	pageCache *cache.PageCache,
) *Admin {
	return &Admin{
		renderer:      renderer,
		pressReleases: pressReleases,
		homeCards:     homeCards,
		tabSettings:   tabSettings,
		badges:        badges,
		pages:         pages,
		media:         media,
		pageCache:     pageCache,
	}
}

// page renders an admin template with session and CSRF token injected.
func (a *Admin) page(w http.ResponseWriter, r *http.Request, name, title, section string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	a.renderer.Page(w, r, name, &render.PageData{
		Title:     title,
		Section:   section,
		Session:   middleware.SessionFromCtx(r.Context()),
		CSRFToken: middleware.GetCSRFToken(r),
		Data:      data,
	})
}

// Dashboard renders the admin dashboard page with real stats.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	releaseCount, _ := a.pressReleases.Count()
	cards, _ := a.homeCards.List()
	badgeCount, _ := a.badges.Count()
	pages, _ := a.pages.List()
	mediaCount, _ := a.media.Count()

	a.page(w, r, "admin/dashboard", "Dashboard", "dashboard", map[string]any{
		"PressReleaseCount": releaseCount,
		"HomeCardCount":     len(cards),
		"BadgeCount":        badgeCount,
		"PageCount":         len(pages),
		"MediaCount":        mediaCount,
	})
}

// ---------- Press releases ----------

// PressReleasesList renders the press release listing.
func (a *Admin) PressReleasesList(w http.ResponseWriter, r *http.Request) {
	releases, err := a.pressReleases.List()
	if err != nil {
		slog.Error("list press releases failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.page(w, r, "admin/press_releases", "Press Releases", "press-releases", map[string]any{
		"Releases": releases,
	})
}

// PressReleaseNew renders an empty press release form.
func (a *Admin) PressReleaseNew(w http.ResponseWriter, r *http.Request) {
	a.page(w, r, "admin/press_release_form", "New Press Release", "press-releases", map[string]any{
		"Action": "/admin/press-releases/new",
	})
}

// PressReleaseCreate handles the new press release form submission.
func (a *Admin) PressReleaseCreate(w http.ResponseWriter, r *http.Request) {
	release, errMsg := pressReleaseFromForm(r)
	if errMsg != "" {
		a.page(w, r, "admin/press_release_form", "New Press Release", "press-releases", map[string]any{
			"Action": "/admin/press-releases/new",
			"Error":  errMsg,
		})
		return
	}

	created, err := a.pressReleases.Create(release)
	if err != nil {
		slog.Error("press release create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("press release created", "id", created.ID, "title", created.Title)
	a.invalidateListings(r)
	http.Redirect(w, r, "/admin/press-releases", http.StatusSeeOther)
}

// PressReleaseEdit renders the edit form for an existing press release.
func (a *Admin) PressReleaseEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	release, err := a.pressReleases.FindByID(id)
	if err != nil {
		slog.Error("find press release failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if release == nil {
		http.NotFound(w, r)
		return
	}
	a.page(w, r, "admin/press_release_form", "Edit Press Release", "press-releases", map[string]any{
		"Action":  "/admin/press-releases/" + id.String(),
		"Release": release,
	})
}

// PressReleaseUpdate handles the edit form submission.
func (a *Admin) PressReleaseUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	release, errMsg := pressReleaseFromForm(r)
	if errMsg != "" {
		a.page(w, r, "admin/press_release_form", "Edit Press Release", "press-releases", map[string]any{
			"Action": "/admin/press-releases/" + id.String(),
			"Error":  errMsg,
		})
		return
	}
	release.ID = id

	if err := a.pressReleases.Update(release); err != nil {
		slog.Error("press release update failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidateListings(r)
	http.Redirect(w, r, "/admin/press-releases", http.StatusSeeOther)
}

// PressReleaseDelete removes a press release.
func (a *Admin) PressReleaseDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if _, err := a.pressReleases.Delete(id); err != nil {
		slog.Error("press release delete failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.invalidateListings(r)
	http.Redirect(w, r, "/admin/press-releases", http.StatusSeeOther)
}

// pressReleaseFromForm parses and validates the press release form.
// Returns the populated model or a user-visible error message.
func pressReleaseFromForm(r *http.Request) (*models.PressRelease, string) {
	if err := r.ParseForm(); err != nil {
		return nil, "Invalid form submission."
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if msg := validateTitle(title); msg != "" {
		return nil, msg
	}
	if msg := validateBody(r.FormValue("body")); msg != "" {
		return nil, msg
	}

	publishedAt := time.Now()
	if raw := r.FormValue("published_at"); raw != "" {
		if t, err := time.ParseInLocation("2006-01-02T15:04", raw, time.Local); err == nil {
			publishedAt = t
		}
	}

	var imageURL *string
	if raw := strings.TrimSpace(r.FormValue("image_url")); raw != "" {
		imageURL = &raw
	}

	return &models.PressRelease{
		Title:       title,
		Header:      strings.TrimSpace(r.FormValue("header")),
		Body:        r.FormValue("body"),
		Footer:      strings.TrimSpace(r.FormValue("footer")),
		ImageURL:    imageURL,
		PublishedAt: publishedAt,
		IsPublished: r.FormValue("is_published") != "",
		IsPinned:    r.FormValue("is_pinned") != "",
		Highlight:   r.FormValue("highlight") != "",
	}, ""
}

// ---------- Home cards ----------

// HomeCardsList renders the home card listing.
func (a *Admin) HomeCardsList(w http.ResponseWriter, r *http.Request) {
	cards, err := a.homeCards.List()
	if err != nil {
		slog.Error("list home cards failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.page(w, r, "admin/home_cards", "Home Cards", "home-cards", map[string]any{
		"Cards": cards,
	})
}

// HomeCardNew renders an empty home card form.
func (a *Admin) HomeCardNew(w http.ResponseWriter, r *http.Request) {
	a.page(w, r, "admin/home_card_form", "New Home Card", "home-cards", map[string]any{
		"Action": "/admin/home-cards/new",
	})
}

// HomeCardCreate handles the new card form submission.
func (a *Admin) HomeCardCreate(w http.ResponseWriter, r *http.Request) {
	card, errMsg := homeCardFromForm(r)
	if errMsg != "" {
		a.page(w, r, "admin/home_card_form", "New Home Card", "home-cards", map[string]any{
			"Action": "/admin/home-cards/new",
			"Error":  errMsg,
		})
		return
	}

	if _, err := a.homeCards.Create(card); err != nil {
		slog.Error("home card create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidateListings(r)
	http.Redirect(w, r, "/admin/home-cards", http.StatusSeeOther)
}

// HomeCardEdit renders the edit form for an existing card.
func (a *Admin) HomeCardEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	card, err := a.homeCards.FindByID(id)
	if err != nil {
		slog.Error("find home card failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if card == nil {
		http.NotFound(w, r)
		return
	}
	a.page(w, r, "admin/home_card_form", "Edit Home Card", "home-cards", map[string]any{
		"Action": "/admin/home-cards/" + id.String(),
		"Card":   card,
	})
}

// HomeCardUpdate handles the edit form submission.
func (a *Admin) HomeCardUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	card, errMsg := homeCardFromForm(r)
	if errMsg != "" {
		a.page(w, r, "admin/home_card_form", "Edit Home Card", "home-cards", map[string]any{
			"Action": "/admin/home-cards/" + id.String(),
			"Error":  errMsg,
		})
		return
	}
	card.ID = id

	if err := a.homeCards.Update(card); err != nil {
		slog.Error("home card update failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.invalidateListings(r)
	http.Redirect(w, r, "/admin/home-cards", http.StatusSeeOther)
}

// HomeCardDelete removes a home card.
func (a *Admin) HomeCardDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := a.homeCards.Delete(id); err != nil {
		slog.Error("home card delete failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.invalidateListings(r)
	http.Redirect(w, r, "/admin/home-cards", http.StatusSeeOther)
}

// homeCardFromForm parses and validates the home card form.
func homeCardFromForm(r *http.Request) (*models.HomeCard, string) {
	if err := r.ParseForm(); err != nil {
		return nil, "Invalid form submission."
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if msg := validateTitle(title); msg != "" {
		return nil, msg
	}
	if msg := validateBody(r.FormValue("body")); msg != "" {
		return nil, msg
	}

	position, _ := strconv.Atoi(r.FormValue("position"))

	return &models.HomeCard{
		Title:      title,
		Subtitle:   strings.TrimSpace(r.FormValue("subtitle")),
		Body:       r.FormValue("body"),
		ButtonText: strings.TrimSpace(r.FormValue("button_text")),
		ButtonURL:  strings.TrimSpace(r.FormValue("button_url")),
		Position:   position,
		IsActive:   r.FormValue("is_active") != "",
	}, ""
}

// ---------- Tab settings ----------

// TabSettingsList renders the tab settings listing.
func (a *Admin) TabSettingsList(w http.ResponseWriter, r *http.Request) {
	settings, err := a.tabSettings.List()
	if err != nil {
		slog.Error("list tab settings failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.page(w, r, "admin/tab_settings", "Tab Settings", "tab-settings", map[string]any{
		"Settings": settings,
	})
}

// TabSettingsNew renders an empty tab settings form.
func (a *Admin) TabSettingsNew(w http.ResponseWriter, r *http.Request) {
	a.page(w, r, "admin/tab_settings_form", "New Tab Settings", "tab-settings", map[string]any{
		"Action": "/admin/tab-settings/new",
	})
}

// TabSettingsEdit renders the edit form for a slug's settings.
func (a *Admin) TabSettingsEdit(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	settings, err := a.tabSettings.FindBySlug(slugParam)
	if err != nil {
		slog.Error("find tab settings failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if settings == nil {
		http.NotFound(w, r)
		return
	}
	a.page(w, r, "admin/tab_settings_form", "Edit Tab Settings", "tab-settings", map[string]any{
		"Action":   "/admin/tab-settings/" + slugParam,
		"Settings": settings,
	})
}

// TabSettingsSave upserts the settings row from either form.
func (a *Admin) TabSettingsSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	slugParam := chi.URLParam(r, "slug")
	if slugParam == "" {
		slugParam = strings.TrimSpace(r.FormValue("slug"))
	}
	if slugParam == "" {
		a.page(w, r, "admin/tab_settings_form", "New Tab Settings", "tab-settings", map[string]any{
			"Action": "/admin/tab-settings/new",
			"Error":  "Page slug is required.",
		})
		return
	}

	_, err := a.tabSettings.Upsert(&models.TabSettings{
		Slug:          slugParam,
		TabTitle:      strings.TrimSpace(r.FormValue("tab_title")),
		IconText:      strings.TrimSpace(r.FormValue("icon_text")),
		IconBgColor:   strings.TrimSpace(r.FormValue("icon_bg_color")),
		IconTextColor: strings.TrimSpace(r.FormValue("icon_text_color")),
	})
	if err != nil {
		slog.Error("tab settings upsert failed", "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/tab-settings", http.StatusSeeOther)
}

// TabSettingsDelete removes a slug's settings, restoring defaults.
func (a *Admin) TabSettingsDelete(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	if err := a.tabSettings.Delete(slugParam); err != nil {
		slog.Error("tab settings delete failed", "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.pageCache.InvalidateAll(r.Context())
	http.Redirect(w, r, "/admin/tab-settings", http.StatusSeeOther)
}

// ---------- Badges ----------

// BadgesList renders the read-only badge listing.
func (a *Admin) BadgesList(w http.ResponseWriter, r *http.Request) {
	badges, err := a.badges.List()
	if err != nil {
		slog.Error("list badges failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.page(w, r, "admin/badges", "Citizenship Badges", "badges", map[string]any{
		"Badges": badges,
	})
}

// invalidateListings clears cached public pages after content changes.
// Press releases and cards appear on multiple pages, so clear them all.
func (a *Admin) invalidateListings(r *http.Request) {
	a.pageCache.InvalidateAll(r.Context())
}
