// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

//go:build !dev

package assets

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePaths_Empty(t *testing.T) {
	css, js := resolvePaths(nil)

	assert.Equal(t, "/static/css/styles.css", css)
	assert.Equal(t, HTMXURL, js)
}

func TestResolvePaths_HashedOutputs(t *testing.T) {
	meta := []byte(`{"outputs": {
		"internal/assets/static/dist/styles.abc12345.css": {},
		"internal/assets/static/dist/app.def67890.js": {}
	}}`)

	css, js := resolvePaths(meta)

	assert.Equal(t, "/static/dist/styles.abc12345.css", css)
	assert.Equal(t, "/static/dist/app.def67890.js", js)
}

func TestResolvePaths_CSSOnly(t *testing.T) {
	css, js := resolvePaths([]byte(`{"outputs": {"internal/assets/static/dist/styles.abc12345.css": {}}}`))

	assert.Equal(t, "/static/dist/styles.abc12345.css", css)
	assert.Equal(t, HTMXURL, js)
}

func TestResolvePaths_InvalidJSON(t *testing.T) {
	css, js := resolvePaths([]byte(`not json`))

	assert.Equal(t, "/static/css/styles.css", css)
	assert.Equal(t, HTMXURL, js)
}

func TestFileServer_ServesStylesheet(t *testing.T) {
	rec := httptest.NewRecorder()
	FileServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/css/styles.css", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".container")
}
