// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package flash carries one-time notices across a redirect in a signed cookie.
package flash

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"

	"codeberg.org/oliverandrich/account-confirm/internal/config"
	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

// Kind classifies how a notice is presented.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice references a translated message.
type Notice struct {
	Kind Kind   `json:"kind"`
	Key  string `json:"key"`
}

// Success creates a success notice for the given message ID.
func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// Error creates an error notice for the given message ID.
func Error(key string) Notice {
	return Notice{Kind: KindError, Key: key}
}

// Store reads and writes flash cookies.
type Store struct {
	codec  *securecookie.SecureCookie
	name   string
	secure bool
}

// NewStore creates a Store from configuration. An empty hash key is replaced
// by a random one, which invalidates pending notices on restart.
func NewStore(cfg *config.FlashConfig, secure bool) (*Store, error) {
	hashKey, err := decodeKey(cfg.HashKey, "hash")
	if err != nil {
		return nil, err
	}
	if hashKey == nil {
		slog.Warn("flash hash key not configured, generating a random key")
		hashKey = securecookie.GenerateRandomKey(32)
	}

	blockKey, err := decodeKey(cfg.BlockKey, "block")
	if err != nil {
		return nil, err
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(300)

	return &Store{codec: codec, name: cfg.CookieName, secure: secure}, nil
}

func decodeKey(s, kind string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid flash %s key: %w", kind, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid flash %s key: must be 32 bytes, got %d", kind, len(key))
	}
	return key, nil
}

// Set stores n for the next page render.
func (s *Store) Set(c echo.Context, n Notice) error {
	value, err := s.codec.Encode(s.name, n)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}
	c.SetCookie(s.cookie(value, 0))
	return nil
}

// Pop returns the pending notice of the given kind, if any, and clears it.
// A notice of another kind stays in place for the view that renders it.
// Tampered or expired cookies are dropped silently.
func (s *Store) Pop(c echo.Context, kind Kind) (Notice, bool) {
	cookie, err := c.Cookie(s.name)
	if err != nil || cookie.Value == "" {
		return Notice{}, false
	}

	n, ok := s.decode(cookie.Value)
	if !ok {
		c.SetCookie(s.cookie("", -1))
		return Notice{}, false
	}
	if n.Kind != kind {
		return Notice{}, false
	}
	c.SetCookie(s.cookie("", -1))
	return n, true
}

func (s *Store) decode(value string) (Notice, bool) {
	var n Notice
	if err := s.codec.Decode(s.name, value, &n); err != nil {
		slog.Debug("discarding invalid flash cookie", "error", err)
		return Notice{}, false
	}
	switch n.Kind {
	case KindSuccess, KindError:
	default:
		return Notice{}, false
	}
	if n.Key == "" {
		return Notice{}, false
	}
	return n, true
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
