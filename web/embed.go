// Package web provides embedded static assets (CSS, JS) for the site
// and the inline editor. The files are compiled into the binary so the
// server has no filesystem dependency at runtime.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree: the site stylesheet
// and the inline editor script served at /static/.
//
//go:embed all:static
var StaticFS embed.FS
