// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site
// and the admin interface. Public pages render to a byte slice so the
// resulting HTML can be stored in the page cache for anonymous visitors.
package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"path"

	"nationpress/internal/session"
	"nationpress/internal/tabmeta"
)

//go:embed templates/public/*.html templates/admin/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title       string         // Page title for the <title> tag
	Section     string         // Active nav section (e.g., "home", "culture")
	Meta        *tabmeta.Meta  // Resolved tab title and favicon
	Session     *session.Data  // Current staff session (nil if unauthenticated)
	CSRFToken   string         // CSRF token for forms and editor fetches
	ElementsJS  template.JS    // Editable element key -> content map as JSON
	EditorOn    bool           // True for staff requests; loads the editor script
	Data        map[string]any // Page-specific data
}

// SetElements serializes the editable element map into the JSON blob the
// front-end editor hydrates from.
func (d *PageData) SetElements(elements map[string]string) error {
	if elements == nil {
		elements = map[string]string{}
	}
	b, err := json.Marshal(elements)
	if err != nil {
		return fmt.Errorf("marshal editable elements: %w", err)
	}
	d.ElementsJS = template.JS(b)
	return nil
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without a layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"admin/login":      true,
	"admin/2fa_setup":  true,
	"admin/2fa_verify": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Public pages pair with the public base layout, admin pages
// with the admin base layout.
func New() (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			// raw marks store-managed HTML (press release bodies, card
			// bodies) as safe for direct rendering.
			"raw": func(s string) template.HTML {
				return template.HTML(s)
			},
			// element returns the stored content for an editable element
			// key, or the given default when nothing has been saved yet.
			"element": func(elements map[string]string, key, fallback string) template.HTML {
				if v, ok := elements[key]; ok && v != "" {
					return template.HTML(v)
				}
				return template.HTML(fallback)
			},
		},
	}

	for _, dir := range []string{"public", "admin"} {
		entries, err := templateFS.ReadDir("templates/" + dir)
		if err != nil {
			return nil, fmt.Errorf("read embedded templates: %w", err)
		}

		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || name == "base.html" {
				continue
			}

			tmplName := dir + "/" + name[:len(name)-len(".html")]

			var tmpl *template.Template
			var parseErr error

			if standaloneTemplates[tmplName] {
				tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
					templateFS, path.Join("templates", dir, name),
				)
			} else {
				tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
					templateFS,
					path.Join("templates", dir, "base.html"),
					path.Join("templates", dir, name),
				)
			}

			if parseErr != nil {
				return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
			}

			r.templates[tmplName] = tmpl
		}
	}

	return r, nil
}

// HTML renders a page to a byte slice. Public handlers use this so the
// output can be stored in the page cache before being written.
func (rn *Renderer) HTML(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = path.Base(name) + ".html"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a page and writes it to the response. Template errors
// become a 500 without leaking details to the client.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	html, err := rn.HTML(name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}
