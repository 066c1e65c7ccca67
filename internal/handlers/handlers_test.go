// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/account-confirm/internal/activation"
	"codeberg.org/oliverandrich/account-confirm/internal/handlers"
	"codeberg.org/oliverandrich/account-confirm/internal/i18n"
	"codeberg.org/oliverandrich/account-confirm/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func init() {
	// Initialize i18n for template rendering
	_ = i18n.Init()
}

var htmxHeaders = map[string]string{"HX-Request": "true"}

func newConfirmContext(e *echo.Echo, method, token string, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	path := "/confirm"
	if token != "" {
		path += "/" + token
	}
	c, rec := testutil.NewEchoContextWithHeaders(e, method, path, nil, headers)
	if token != "" {
		c.SetPath("/confirm/:token")
		c.SetParamNames("token")
		c.SetParamValues(token)
	} else {
		c.SetPath("/confirm")
	}
	return c, rec
}

func TestHealth(t *testing.T) {
	h := handlers.New(nil, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Health(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHome(t *testing.T) {
	h := handlers.New(testutil.NewFakeActivator(), testutil.NewFlashStore(t))

	e := echo.New()
	c, rec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)

	err := h.Home(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<!doctype html>")
	assert.NotContains(t, rec.Body.String(), `role="status"`)
}

func TestConfirmPage(t *testing.T) {
	activator := testutil.NewFakeActivator()
	h := handlers.New(activator, testutil.NewFlashStore(t))

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodGet, "abc123", nil)

	err := h.ConfirmPage(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h2>Confirmation</h2>")
	assert.Contains(t, body, "Click to confirm")
	assert.Contains(t, body, `action="/confirm/abc123"`)
	assert.NotContains(t, body, "Failed to confirm")
	assert.Empty(t, activator.Tokens(), "rendering must not activate")
}

func TestConfirmPage_German(t *testing.T) {
	h := handlers.New(testutil.NewFakeActivator(), testutil.NewFlashStore(t))

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodGet, "abc123", nil)
	req := c.Request()
	c.SetRequest(req.WithContext(i18n.WithLocale(req.Context(), language.German)))

	require.NoError(t, h.ConfirmPage(c))

	assert.Contains(t, rec.Body.String(), "Zum Bestätigen klicken")
}

func TestConfirm_SendsRouteToken(t *testing.T) {
	activator := testutil.NewFakeActivator(testutil.Succeeded())
	h := handlers.New(activator, testutil.NewFlashStore(t))

	e := echo.New()
	c, _ := newConfirmContext(e, http.MethodPost, "abc123", nil)

	require.NoError(t, h.Confirm(c))

	assert.Equal(t, []string{"abc123"}, activator.Tokens())
}

func TestConfirm_EmptyToken(t *testing.T) {
	activator := testutil.NewFakeActivator(testutil.Succeeded())
	h := handlers.New(activator, testutil.NewFlashStore(t))

	e := echo.New()
	c, _ := newConfirmContext(e, http.MethodPost, "", nil)

	require.NoError(t, h.Confirm(c))

	assert.Equal(t, []string{""}, activator.Tokens())
}

func TestConfirm_SuccessHtmx(t *testing.T) {
	h := handlers.New(testutil.NewFakeActivator(testutil.Succeeded()), testutil.NewFlashStore(t))

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodPost, "abc123", htmxHeaders)

	require.NoError(t, h.Confirm(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))
	assert.NotContains(t, rec.Body.String(), "Failed to confirm")
}

func TestConfirm_SuccessPlain(t *testing.T) {
	h := handlers.New(testutil.NewFakeActivator(testutil.Succeeded()), testutil.NewFlashStore(t))

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodPost, "abc123", nil)

	require.NoError(t, h.Confirm(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestConfirm_SuccessNoticeOnHome(t *testing.T) {
	store := testutil.NewFlashStore(t)
	h := handlers.New(testutil.NewFakeActivator(testutil.Succeeded()), store)

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodPost, "abc123", nil)
	require.NoError(t, h.Confirm(c))

	homeCtx, homeRec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)
	testutil.CarryCookies(rec, homeCtx.Request())
	require.NoError(t, h.Home(homeCtx))

	assert.Contains(t, homeRec.Body.String(), "Your account has been confirmed.")
}

func TestConfirmPage_KeepsPendingSuccessNotice(t *testing.T) {
	store := testutil.NewFlashStore(t)
	h := handlers.New(testutil.NewFakeActivator(testutil.Succeeded()), store)

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodPost, "abc123", nil)
	require.NoError(t, h.Confirm(c))

	pageCtx, pageRec := newConfirmContext(e, http.MethodGet, "other", nil)
	testutil.CarryCookies(rec, pageCtx.Request())
	require.NoError(t, h.ConfirmPage(pageCtx))
	assert.NotContains(t, pageRec.Body.String(), `role="alertdialog"`)
	assert.Empty(t, pageRec.Result().Cookies())

	homeCtx, homeRec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)
	testutil.CarryCookies(rec, homeCtx.Request())
	require.NoError(t, h.Home(homeCtx))

	assert.Contains(t, homeRec.Body.String(), "Your account has been confirmed.")
}

func TestHome_KeepsPendingFailureNotice(t *testing.T) {
	store := testutil.NewFlashStore(t)
	h := handlers.New(testutil.NewFakeActivator(testutil.StatusFailed(http.StatusBadRequest)), store)

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodPost, "abc123", nil)
	require.NoError(t, h.Confirm(c))

	homeCtx, homeRec := testutil.NewEchoContext(e, http.MethodGet, "/", nil)
	testutil.CarryCookies(rec, homeCtx.Request())
	require.NoError(t, h.Home(homeCtx))
	assert.NotContains(t, homeRec.Body.String(), `role="status"`)

	pageCtx, pageRec := newConfirmContext(e, http.MethodGet, "abc123", nil)
	testutil.CarryCookies(rec, pageCtx.Request())
	require.NoError(t, h.ConfirmPage(pageCtx))

	assert.Contains(t, pageRec.Body.String(), "Failed to confirm")
}

func TestConfirm_FailureStatuses(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			h := handlers.New(testutil.NewFakeActivator(testutil.StatusFailed(code)), testutil.NewFlashStore(t))

			e := echo.New()
			c, rec := newConfirmContext(e, http.MethodPost, "abc123", htmxHeaders)

			require.NoError(t, h.Confirm(c))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("HX-Redirect"))
			assert.Empty(t, rec.Header().Get("Location"))
			assert.Contains(t, rec.Body.String(), "Failed to confirm")
			assert.NotContains(t, rec.Body.String(), "<html")
		})
	}
}

func TestConfirm_TransportFailureIsFailure(t *testing.T) {
	failed := testutil.TransportFailed(errors.New("dial tcp: connection refused"))
	h := handlers.New(testutil.NewFakeActivator(failed), testutil.NewFlashStore(t))

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodPost, "abc123", htmxHeaders)

	require.NoError(t, h.Confirm(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Redirect"))
	assert.Contains(t, rec.Body.String(), "Failed to confirm")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestConfirm_FailurePlainRedirectsBackWithAlert(t *testing.T) {
	store := testutil.NewFlashStore(t)
	h := handlers.New(testutil.NewFakeActivator(testutil.StatusFailed(http.StatusBadRequest)), store)

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodPost, "abc123", nil)
	require.NoError(t, h.Confirm(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/confirm/abc123", rec.Header().Get("Location"))

	pageCtx, pageRec := newConfirmContext(e, http.MethodGet, "abc123", nil)
	testutil.CarryCookies(rec, pageCtx.Request())
	require.NoError(t, h.ConfirmPage(pageCtx))

	assert.Contains(t, pageRec.Body.String(), "Failed to confirm")

	// The alert is one-time
	againCtx, againRec := newConfirmContext(e, http.MethodGet, "abc123", nil)
	require.NoError(t, h.ConfirmPage(againCtx))
	assert.NotContains(t, againRec.Body.String(), "Failed to confirm")
}

func TestConfirm_FailurePlainEmptyToken(t *testing.T) {
	h := handlers.New(testutil.NewFakeActivator(testutil.StatusFailed(http.StatusBadRequest)), testutil.NewFlashStore(t))

	e := echo.New()
	c, rec := newConfirmContext(e, http.MethodPost, "", nil)
	require.NoError(t, h.Confirm(c))

	assert.Equal(t, "/confirm", rec.Header().Get("Location"))
}

func TestConfirm_RepeatedFailuresProduceIndependentAlerts(t *testing.T) {
	activator := testutil.NewFakeActivator(
		testutil.StatusFailed(http.StatusBadRequest),
		testutil.StatusFailed(http.StatusInternalServerError),
	)
	h := handlers.New(activator, testutil.NewFlashStore(t))
	e := echo.New()

	for i := 0; i < 2; i++ {
		c, rec := newConfirmContext(e, http.MethodPost, "abc123", htmxHeaders)
		require.NoError(t, h.Confirm(c))

		assert.Contains(t, rec.Body.String(), "Failed to confirm")
		assert.Empty(t, rec.Header().Get("HX-Redirect"))
	}
	assert.Len(t, activator.Tokens(), 2)
}

func TestConfirm_RetryAfterFailureSucceeds(t *testing.T) {
	activator := testutil.NewFakeActivator(
		testutil.StatusFailed(http.StatusInternalServerError),
		testutil.Succeeded(),
	)
	h := handlers.New(activator, testutil.NewFlashStore(t))
	e := echo.New()

	c, rec := newConfirmContext(e, http.MethodPost, "abc123", htmxHeaders)
	require.NoError(t, h.Confirm(c))
	assert.Empty(t, rec.Header().Get("HX-Redirect"))

	c, rec = newConfirmContext(e, http.MethodPost, "abc123", htmxHeaders)
	require.NoError(t, h.Confirm(c))
	assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))
}

func TestConfirm_AgainstActivationServer(t *testing.T) {
	var gotMethod, gotPath string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		if r.URL.Path == "/users/activate/abc123" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer api.Close()

	h := handlers.New(activation.New(api.URL, activation.DefaultTimeout), testutil.NewFlashStore(t))
	e := echo.New()

	c, rec := newConfirmContext(e, http.MethodPost, "abc123", htmxHeaders)
	require.NoError(t, h.Confirm(c))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/users/activate/abc123", gotPath)
	assert.Equal(t, "/", rec.Header().Get("HX-Redirect"))

	c, rec = newConfirmContext(e, http.MethodPost, "unknown", htmxHeaders)
	require.NoError(t, h.Confirm(c))
	assert.Empty(t, rec.Header().Get("HX-Redirect"))
	assert.Contains(t, rec.Body.String(), "Failed to confirm")
}
