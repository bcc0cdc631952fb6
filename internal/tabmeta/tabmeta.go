// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tabmeta resolves per-page browser tab metadata: the tab title
// and a generated favicon. The favicon is a small inline SVG encoded as a
// data URL, so no filesystem asset is required.
package tabmeta

import (
	"encoding/base64"
	"fmt"
	"html"

	"nationpress/internal/models"
)

// Defaults applied when a page has no tab settings row or the row leaves
// a field blank.
const (
	DefaultIconText      = "N"
	DefaultIconBgColor   = "#2F2F2F"
	DefaultIconTextColor = "#FFFFFF"
)

// Meta is the resolved tab metadata for one rendered page.
type Meta struct {
	Title      string
	FaviconURL string
}

// Resolve produces tab metadata from an optional settings row. st may be
// nil (no row for the slug); blank fields fall back to the defaults, and
// a blank tab title falls back to defaultTitle.
func Resolve(st *models.TabSettings, defaultTitle string) Meta {
	title := defaultTitle
	iconText := DefaultIconText
	bgColor := DefaultIconBgColor
	textColor := DefaultIconTextColor

	if st != nil {
		if st.TabTitle != "" {
			title = st.TabTitle
		}
		if st.IconText != "" {
			iconText = st.IconText
		}
		if st.IconBgColor != "" {
			bgColor = st.IconBgColor
		}
		if st.IconTextColor != "" {
			textColor = st.IconTextColor
		}
	}

	return Meta{
		Title:      title,
		FaviconURL: FaviconDataURL(iconText, bgColor, textColor),
	}
}

// FaviconDataURL builds a rounded-rect SVG icon with the text centered in
// the foreground color, returned as a base64 data URL.
func FaviconDataURL(iconText, bgColor, textColor string) string {
	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">`+
			`<rect width="64" height="64" rx="12" fill="%s"/>`+
			`<text x="32" y="42" font-family="sans-serif" font-size="28" font-weight="bold" text-anchor="middle" fill="%s">%s</text>`+
			`</svg>`,
		html.EscapeString(bgColor), html.EscapeString(textColor), html.EscapeString(iconText),
	)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}
