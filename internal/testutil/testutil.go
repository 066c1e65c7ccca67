// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"codeberg.org/oliverandrich/account-confirm/internal/activation"
	"codeberg.org/oliverandrich/account-confirm/internal/config"
	"codeberg.org/oliverandrich/account-confirm/internal/flash"
	"codeberg.org/oliverandrich/account-confirm/internal/i18n"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// FlashHashKey is a valid 32-byte hex-encoded key for flash stores in tests.
const FlashHashKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// FakeActivator records activation calls and answers with queued results.
// Once the queue is empty it keeps answering with the last result.
type FakeActivator struct {
	results []activation.Result
	tokens  []string
	mu      sync.Mutex
}

// NewFakeActivator creates a FakeActivator answering with results in order.
func NewFakeActivator(results ...activation.Result) *FakeActivator {
	return &FakeActivator{results: results}
}

// Activate implements activation.Activator.
func (f *FakeActivator) Activate(_ context.Context, token string) activation.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
	if len(f.results) == 0 {
		return activation.Result{Outcome: activation.Succeeded, StatusCode: http.StatusNoContent}
	}
	res := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return res
}

// Tokens returns the tokens passed to Activate so far.
func (f *FakeActivator) Tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.tokens...)
}

// Succeeded is a successful activation result.
func Succeeded() activation.Result {
	return activation.Result{Outcome: activation.Succeeded, StatusCode: http.StatusNoContent}
}

// StatusFailed is a failed activation result for code.
func StatusFailed(code int) activation.Result {
	return activation.Result{
		Outcome:    activation.StatusFailed,
		StatusCode: code,
		Err:        &activation.StatusError{Code: code},
	}
}

// TransportFailed is an activation result for a request that never got a response.
func TransportFailed(err error) activation.Result {
	return activation.Result{Outcome: activation.TransportFailed, Err: err}
}

// NewFlashStore creates a flash store with a fixed key.
func NewFlashStore(t *testing.T) *flash.Store {
	t.Helper()
	store, err := flash.NewStore(&config.FlashConfig{CookieName: "_flash", HashKey: FlashHashKey}, false)
	require.NoError(t, err)
	return store
}

// NewEchoContext creates an Echo context for handler tests with an English locale.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	return NewEchoContextWithHeaders(e, method, path, body, nil)
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req = req.WithContext(i18n.WithLocale(req.Context(), language.English))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// CarryCookies copies the cookies set on rec onto req, as a browser would
// on the next request.
func CarryCookies(rec *httptest.ResponseRecorder, req *http.Request) {
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			continue
		}
		req.AddCookie(ck)
	}
}
