// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DynamicPage is a page created at runtime through the editor API rather
// than defined in code. It is addressable at /<slug>/.
type DynamicPage struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// TabKey returns the tab settings key for this page. Dynamic pages live
// under a "page:" namespace so their tab metadata is independent of any
// fixed route with the same slug.
func (p *DynamicPage) TabKey() string {
	return "page:" + p.Slug
}

// URL returns the public path of the page.
func (p *DynamicPage) URL() string {
	return "/" + p.Slug + "/"
}
