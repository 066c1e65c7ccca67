// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

//go:build dev

// Package assets provides static asset serving for development mode.
// In development, assets are served directly from the filesystem without hashing.
package assets

import (
	"net/http"
)

// HTMXURL is where the htmx script is loaded from.
const HTMXURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.js"

// CSSPath returns the path to the main CSS file (unhashed in dev mode).
func CSSPath() string {
	return "/static/css/styles.css"
}

// JSPath returns the URL of the unminified htmx script.
func JSPath() string {
	return HTMXURL
}

// FileServer returns an http.Handler that serves static files from the filesystem.
func FileServer() http.Handler {
	return http.FileServer(http.Dir("internal/assets/static"))
}
