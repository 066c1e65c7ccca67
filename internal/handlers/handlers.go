// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"codeberg.org/oliverandrich/account-confirm/internal/activation"
	"codeberg.org/oliverandrich/account-confirm/internal/flash"
	"codeberg.org/oliverandrich/account-confirm/internal/htmx"
	"codeberg.org/oliverandrich/account-confirm/internal/templates"
	"github.com/labstack/echo/v4"
)

// Message IDs for the notices produced by the confirm flow.
const (
	msgConfirmFailed  = "confirm_failed"
	msgConfirmSuccess = "confirm_success"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	activator activation.Activator
	flash     *flash.Store
}

// New creates a new Handlers instance.
func New(activator activation.Activator, flashStore *flash.Store) *Handlers {
	return &Handlers{activator: activator, flash: flashStore}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home renders the root view the confirm flow lands on.
func (h *Handlers) Home(c echo.Context) error {
	var noticeID string
	if n, ok := h.flash.Pop(c, flash.KindSuccess); ok {
		noticeID = n.Key
	}
	return Render(c, http.StatusOK, templates.Home(noticeID))
}

// ConfirmPage renders the confirmation view for the route token.
func (h *Handlers) ConfirmPage(c echo.Context) error {
	var alertID string
	if n, ok := h.flash.Pop(c, flash.KindError); ok {
		alertID = n.Key
	}
	return Render(c, http.StatusOK, templates.Confirmation(tokenParam(c), alertID))
}

// Confirm activates the account for the route token. On success the client
// is sent to "/"; on any failure it is shown the failure alert and stays on
// the confirmation view.
func (h *Handlers) Confirm(c echo.Context) error {
	token := tokenParam(c)
	res := h.activator.Activate(c.Request().Context(), token)

	if res.OK() {
		h.setFlash(c, flash.Success(msgConfirmSuccess))
		return htmx.Redirect(c, "/")
	}

	if htmx.IsPartial(c.Request()) {
		return Render(c, http.StatusOK, templates.Alert(msgConfirmFailed))
	}
	h.setFlash(c, flash.Error(msgConfirmFailed))
	return c.Redirect(http.StatusSeeOther, templates.ConfirmPath(token))
}

func (h *Handlers) setFlash(c echo.Context, n flash.Notice) {
	if err := h.flash.Set(c, n); err != nil {
		slog.WarnContext(c.Request().Context(), "failed to set flash", "error", err)
	}
}

// tokenParam returns the decoded :token path parameter, or "" when the route
// has none. Echo matches on the raw path, so escaped segments arrive escaped.
func tokenParam(c echo.Context) string {
	token := c.Param("token")
	if c.Request().URL.RawPath == "" {
		return token
	}
	if unescaped, err := url.PathUnescape(token); err == nil {
		return unescaped
	}
	return token
}
