// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"log/slog"

	"codeberg.org/oliverandrich/account-confirm/internal/assets"
)

// Assets holds paths to static assets referenced by the layout.
type Assets struct {
	CSSPath string
	JSPath  string
}

// findAssets returns asset paths from the embedded manifest.
func findAssets() *Assets {
	a := &Assets{
		CSSPath: assets.CSSPath(),
		JSPath:  assets.JSPath(),
	}
	slog.Debug("assets loaded", "css", a.CSSPath, "js", a.JSPath)
	return a
}
