// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/account-confirm/internal/activation"
	"codeberg.org/oliverandrich/account-confirm/internal/assets"
	"codeberg.org/oliverandrich/account-confirm/internal/config"
	"codeberg.org/oliverandrich/account-confirm/internal/flash"
	"codeberg.org/oliverandrich/account-confirm/internal/handlers"
	"codeberg.org/oliverandrich/account-confirm/internal/i18n"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
		"api_url", cfg.API.URL,
	)

	// i18n
	if err := i18n.Init(); err != nil {
		return fmt.Errorf("failed to init i18n: %w", err)
	}

	// Flash notices
	flashStore, err := flash.NewStore(&cfg.Flash, cfg.SecureCookies())
	if err != nil {
		return fmt.Errorf("failed to create flash store: %w", err)
	}

	// Activation API
	activator := activation.New(cfg.API.URL, cfg.API.Timeout)

	e := New(cfg, activator, flashStore)

	return startWithGracefulShutdown(ctx, e, cfg)
}

// New builds the Echo instance with middleware, routes and error handling.
func New(cfg *config.Config, activator activation.Activator, flashStore *flash.Store) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.ErrorHandler

	setupMiddleware(e, cfg, findAssets())
	setupRoutes(e, handlers.New(activator, flashStore))

	return e
}

func setupRoutes(e *echo.Echo, h *handlers.Handlers) {
	// Static files
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", assets.FileServer())))

	e.GET("/health", h.Health)
	e.GET("/", h.Home)

	// A missing token segment confirms the empty token.
	e.GET("/confirm", h.ConfirmPage)
	e.POST("/confirm", h.Confirm)
	e.GET("/confirm/:token", h.ConfirmPage)
	e.POST("/confirm/:token", h.Confirm)
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	tlsResult, err := SetupTLS(cfg)
	if err != nil {
		return fmt.Errorf("TLS setup failed: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 2)
	serve := func(name string, fn func() error) {
		go func() {
			if err := fn(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("%s: %w", name, err)
			}
		}()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	// HTTP-01 challenge and redirect server in ACME mode
	var httpServer *http.Server

	switch tlsResult.Mode {
	case TLSModeOff:
		serve("http", func() error { return e.Start(addr) })

	case TLSModeACME:
		serve("https", func() error { return startTLSServer(e, ":443", tlsResult.TLSConfig) })

		httpServer = &http.Server{
			Addr:              ":80",
			Handler:           tlsResult.HTTPHandler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		slog.Info("HTTP to HTTPS redirect active", "addr", ":80")
		serve("http redirect", httpServer.ListenAndServe)

	case TLSModeManual:
		serve("https", func() error { return startTLSServer(e, addr, tlsResult.TLSConfig) })
	}
	slog.Info("server running", "url", cfg.Server.BaseURL)

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown main server", "error", err)
	}
	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown HTTP redirect server", "error", err)
		}
	}

	slog.Info("server stopped")
	return nil
}

// startTLSServer starts the Echo server with a custom TLS configuration.
func startTLSServer(e *echo.Echo, addr string, tlsConfig *tls.Config) error {
	lc := &net.ListenConfig{}
	ln, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return err
	}
	e.TLSListener = tls.NewListener(ln, tlsConfig)
	e.TLSServer.TLSConfig = tlsConfig
	return e.TLSServer.Serve(e.TLSListener)
}
