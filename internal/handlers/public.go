// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"nationpress/internal/badge"
	"nationpress/internal/cache"
	"nationpress/internal/middleware"
	"nationpress/internal/models"
	"nationpress/internal/render"
	"nationpress/internal/store"
	"nationpress/internal/tabmeta"
)

// usernameTakenMessage is shown on the citizenship form when the chosen
// username already has a badge.
const usernameTakenMessage = "Username taken! Please choose another username."

// Public groups handlers for the visitor-facing site. Anonymous page
// loads are served from the Valkey page cache when possible; staff
// requests bypass the cache so the inline editor always sees fresh
// content.
type Public struct {
	renderer      *render.Renderer
	pressReleases *store.PressReleaseStore
	homeCards     *store.HomeCardStore
	tabSettings   *store.TabSettingsStore
	elements      *store.EditableElementStore
	pages         *store.DynamicPageStore
	badges        *store.BadgeStore
	pageCache     *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(
	renderer *render.Renderer,
	pressReleases *store.PressReleaseStore,
	homeCards *store.HomeCardStore,
	tabSettings *store.TabSettingsStore,
	elements *store.EditableElementStore,
	pages *store.DynamicPageStore,
	badges *store.BadgeStore,
	pageCache *cache.PageCache,
) *Public {
	return &Public{
		renderer:      renderer,
		pressReleases: pressReleases,
		homeCards:     homeCards,
		tabSettings:   tabSettings,
		elements:      elements,
		pages:         pages,
		badges:        badges,
		pageCache:     pageCache,
	}
}

// pageData assembles the common template payload for a public page:
// resolved tab metadata, the editable element map, and the editor flag
// for staff sessions.
func (p *Public) pageData(r *http.Request, tabSlug, defaultTitle, section string) (*render.PageData, error) {
	settings, err := p.tabSettings.FindBySlug(tabSlug)
	if err != nil {
		return nil, err
	}
	meta := tabmeta.Resolve(settings, defaultTitle)

	elements, err := p.elements.AllContent()
	if err != nil {
		return nil, err
	}

	sess := middleware.SessionFromCtx(r.Context())

	data := &render.PageData{
		Title:     defaultTitle,
		Section:   section,
		Meta:      &meta,
		Session:   sess,
		CSRFToken: middleware.GetCSRFToken(r),
		EditorOn:  sess != nil,
		Data:      map[string]any{"Elements": elements},
	}
	if err := data.SetElements(elements); err != nil {
		return nil, err
	}
	return data, nil
}

// serveCached writes a cached page if one exists and the visitor is
// anonymous. Returns true when the response has been written.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if middleware.SessionFromCtx(r.Context()) != nil {
		return false
	}
	cached, ok := p.pageCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

// writePage renders a page, caches it for anonymous visitors, and writes it.
func (p *Public) writePage(w http.ResponseWriter, r *http.Request, cacheKey, template string, data *render.PageData) {
	html, err := p.renderer.HTML(template, data)
	if err != nil {
		slog.Error("render page failed", "template", template, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if cacheKey != "" && middleware.SessionFromCtx(r.Context()) == nil {
		p.pageCache.Set(r.Context(), cacheKey, html)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// Home renders the home page with active cards and the published press
// release listing (pinned first).
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.HomeKey()) {
		return
	}

	data, err := p.pageData(r, "home", "Home", "home")
	if err != nil {
		slog.Error("home page data failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	cards, err := p.homeCards.ListActive()
	if err != nil {
		slog.Error("list active home cards failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	releases, err := p.pressReleases.ListPublished()
	if err != nil {
		slog.Error("list published releases failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if len(releases) > 5 {
		releases = releases[:5]
	}

	data.Data["Cards"] = cards
	data.Data["Releases"] = releases

	p.writePage(w, r, cache.HomeKey(), "public/home", data)
}

// Culture renders the culture page, which is built entirely from
// editable elements.
func (p *Public) Culture(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, "culture") {
		return
	}

	data, err := p.pageData(r, "culture", "Culture", "culture")
	if err != nil {
		slog.Error("culture page data failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.writePage(w, r, "culture", "public/culture", data)
}

// ExecutiveOrders renders the published press release listing.
func (p *Public) ExecutiveOrders(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, "executive-orders") {
		return
	}

	data, err := p.pageData(r, "executive-orders", "Executive Orders", "executive-orders")
	if err != nil {
		slog.Error("executive orders page data failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	releases, err := p.pressReleases.ListPublished()
	if err != nil {
		slog.Error("list published releases failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data.Data["Releases"] = releases

	p.writePage(w, r, "executive-orders", "public/executive_orders", data)
}

// CitizenshipForm renders the badge creation form. Never cached: the
// form carries a per-visitor CSRF token.
func (p *Public) CitizenshipForm(w http.ResponseWriter, r *http.Request) {
	data, err := p.pageData(r, "citizenship", "Citizenship", "citizenship")
	if err != nil {
		slog.Error("citizenship page data failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data.Data["Origins"] = badge.Origins

	p.writePage(w, r, "", "public/citizenship", data)
}

// CitizenshipCreate handles the badge form submission. On success it
// re-renders the page showing the freshly generated badge.
func (p *Public) CitizenshipCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	origin := strings.TrimSpace(r.FormValue("origin"))

	renderError := func(msg string) {
		data, err := p.pageData(r, "citizenship", "Citizenship", "citizenship")
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		data.Data["Origins"] = badge.Origins
		data.Data["Error"] = msg
		data.Data["Username"] = username
		data.Data["Origin"] = origin
		p.writePage(w, r, "", "public/citizenship", data)
	}

	if username == "" || len(username) > 64 {
		renderError("Please enter a username of at most 64 characters.")
		return
	}
	if !badge.ValidOrigin(origin) {
		renderError("Please pick a valid origin.")
		return
	}

	// UX pre-check only; the unique index is the real guard.
	existing, err := p.badges.FindByUsername(username)
	if err != nil {
		slog.Error("badge lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if existing != nil {
		renderError(usernameTakenMessage)
		return
	}

	color1, color2, err := badge.PickColors(username, origin)
	if err != nil {
		renderError("Please pick a valid origin.")
		return
	}

	payload, _ := json.Marshal(map[string]string{
		"username":   username,
		"origin":     origin,
		"color1":     color1,
		"color2":     color2,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})

	created, err := p.badges.Create(&models.CitizenshipBadge{
		Username:  username,
		Origin:    origin,
		Color1Hex: color1,
		Color2Hex: color2,
		Data:      payload,
	})
	if err == store.ErrUsernameTaken {
		renderError(usernameTakenMessage)
		return
	}
	if err != nil {
		slog.Error("badge create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("badge created", "username", created.Username, "origin", created.Origin)

	data, err := p.pageData(r, "citizenship", "Citizenship", "citizenship")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data.Data["Origins"] = badge.Origins
	data.Data["Badge"] = created
	p.writePage(w, r, "", "public/citizenship", data)
}

// BadgeImage renders a badge PNG on the fly from its stored colors.
func (p *Public) BadgeImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	b, err := p.badges.FindByID(id)
	if err != nil {
		slog.Error("badge lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if b == nil {
		http.NotFound(w, r)
		return
	}

	png, err := badge.Render(b.Username, b.Origin, b.Color1Hex, b.Color2Hex)
	if err != nil {
		slog.Error("badge render failed", "error", err, "username", b.Username)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(png)
}

// DynamicPage renders a runtime-created page by its slug. Unknown or
// unpublished slugs 404.
func (p *Public) DynamicPage(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	if p.serveCached(w, r, slugParam) {
		return
	}

	page, err := p.pages.FindPublishedBySlug(slugParam)
	if err != nil {
		slog.Error("find dynamic page failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if page == nil {
		http.NotFound(w, r)
		return
	}

	data, err := p.pageData(r, page.TabKey(), page.Title, "")
	if err != nil {
		slog.Error("dynamic page data failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data.Data["Page"] = page
	data.Data["BodyKey"] = "page:" + page.Slug + ":body"

	p.writePage(w, r, page.Slug, "public/dynamic_page", data)
}
