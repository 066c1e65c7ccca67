// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package htmx provides types and helpers for htmx integration.
package htmx

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Request headers sent by htmx.
const (
	HeaderRequest    = "HX-Request"
	HeaderBoosted    = "HX-Boosted"
	HeaderCurrentURL = "HX-Current-URL"
	HeaderTarget     = "HX-Target"
	HeaderTrigger    = "HX-Trigger"
)

// Response headers understood by htmx.
const (
	HeaderRedirect = "HX-Redirect"
	HeaderReswap   = "HX-Reswap"
	HeaderRetarget = "HX-Retarget"
)

// Request contains information about an htmx request.
type Request struct {
	CurrentURL string
	Target     string
	Trigger    string
	IsHtmx     bool
	IsBoosted  bool
}

// ParseRequest extracts htmx information from request headers.
func ParseRequest(r *http.Request) *Request {
	return &Request{
		IsHtmx:     r.Header.Get(HeaderRequest) == "true",
		IsBoosted:  r.Header.Get(HeaderBoosted) == "true",
		CurrentURL: r.Header.Get(HeaderCurrentURL),
		Target:     r.Header.Get(HeaderTarget),
		Trigger:    r.Header.Get(HeaderTrigger),
	}
}

// IsPartial reports whether the response should be a fragment rather than a page.
// Boosted requests expect full pages.
func IsPartial(r *http.Request) bool {
	req := ParseRequest(r)
	return req.IsHtmx && !req.IsBoosted
}

// Redirect sends the client to url. htmx requests get an HX-Redirect header so
// the browser navigates; everything else gets a 303 See Other.
func Redirect(c echo.Context, url string) error {
	if ParseRequest(c.Request()).IsHtmx {
		c.Response().Header().Set(HeaderRedirect, url)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, url)
}

// Retarget points the swap of the current response at selector.
func Retarget(c echo.Context, selector, swap string) {
	h := c.Response().Header()
	h.Set(HeaderRetarget, selector)
	if swap != "" {
		h.Set(HeaderReswap, swap)
	}
}
