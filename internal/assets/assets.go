// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

//go:build !dev

// Package assets provides embedded static assets with content-hashed filenames.
package assets

import (
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

// HTMXURL is where the htmx script is loaded from unless the bundle provides one.
const HTMXURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

//go:embed esbuild-meta.json
var metaData []byte

//go:embed static
var staticFS embed.FS

// esbuildMeta represents the esbuild metafile format.
type esbuildMeta struct {
	Outputs map[string]struct{} `json:"outputs"`
}

var (
	cssPath string
	jsPath  string
)

func init() {
	cssPath, jsPath = resolvePaths(metaData)
	slog.Debug("loaded asset paths", "css", cssPath, "js", jsPath)
}

// resolvePaths extracts the hashed bundle paths from an esbuild metafile,
// falling back to the unhashed stylesheet and the htmx CDN build.
func resolvePaths(meta []byte) (css, js string) {
	css, js = "/static/css/styles.css", HTMXURL
	if len(meta) == 0 {
		return css, js
	}

	var m esbuildMeta
	if err := json.Unmarshal(meta, &m); err != nil {
		slog.Error("failed to parse esbuild meta", "error", err)
		return css, js
	}

	// internal/assets/static/dist/app.abc12345.js → /static/dist/app.abc12345.js
	for outputPath := range m.Outputs {
		idx := strings.Index(outputPath, "/static/")
		if idx < 0 {
			continue
		}
		urlPath := outputPath[idx:]
		switch {
		case strings.HasSuffix(urlPath, ".css"):
			css = urlPath
		case strings.HasSuffix(urlPath, ".js"):
			js = urlPath
		}
	}
	return css, js
}

// CSSPath returns the path to the main CSS file.
func CSSPath() string {
	return cssPath
}

// JSPath returns the path or URL of the htmx script.
func JSPath() string {
	return jsPath
}

// FileServer returns an http.Handler that serves embedded static files.
func FileServer() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("failed to create sub filesystem: " + err.Error())
	}
	return http.FileServer(http.FS(sub))
}
