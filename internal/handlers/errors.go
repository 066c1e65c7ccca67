// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/account-confirm/internal/htmx"
	"codeberg.org/oliverandrich/account-confirm/internal/templates"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders handler errors as localized error pages. htmx requests
// get the alert fragment retargeted into the notice slot instead, since htmx
// does not swap error responses.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}

	messageID := "error_generic"
	if code == http.StatusNotFound {
		messageID = "error_not_found"
	}

	req := c.Request()
	level := slog.LevelWarn
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(req.Context(), level, "request failed",
		"code", code,
		"method", req.Method,
		"path", req.URL.Path,
		"error", err,
	)

	var renderErr error
	switch {
	case req.Method == http.MethodHead:
		renderErr = c.NoContent(code)
	case htmx.IsPartial(req):
		htmx.Retarget(c, "#"+templates.NoticeID, "innerHTML")
		renderErr = Render(c, http.StatusOK, templates.Alert(messageID))
	default:
		renderErr = Render(c, code, templates.ErrorPage(code, messageID))
	}
	if renderErr != nil {
		slog.Error("failed to render error response", "error", renderErr)
	}
}
