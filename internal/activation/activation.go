// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package activation talks to the external account activation API.
package activation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// activatePath is appended to the configured API base URL.
const activatePath = "/users/activate/"

// DefaultTimeout applies when New is given a non-positive timeout.
const DefaultTimeout = 10 * time.Second

// maxDrain bounds how much of an ignored response body is read before closing.
const maxDrain = 64 << 10

// Outcome classifies a single activation attempt.
type Outcome int

const (
	// Succeeded means the API answered with a 2xx status.
	Succeeded Outcome = iota
	// StatusFailed means the API answered with any other status.
	StatusFailed
	// TransportFailed means no response was received.
	TransportFailed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case StatusFailed:
		return "status_failed"
	case TransportFailed:
		return "transport_failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// StatusError is the error carried by a StatusFailed result.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("activation rejected: %d %s", e.Code, http.StatusText(e.Code))
}

// Result is the outcome of one activation attempt.
type Result struct {
	Err        error // nil on success
	StatusCode int   // 0 when no response was received
	Outcome    Outcome
}

// OK reports whether the account was activated.
func (r Result) OK() bool {
	return r.Outcome == Succeeded
}

// Activator activates accounts by token.
type Activator interface {
	Activate(ctx context.Context, token string) Result
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls PUT {baseURL}/users/activate/{token}.
type Client struct {
	client  Doer
	baseURL string
	group   singleflight.Group
	joined  func(token string) // called once a caller is attached to the in-flight request
}

// Option configures a Client.
type Option func(*Client)

// WithDoer replaces the HTTP client used for requests. The Doer must bound
// its own requests in time; Activate does not cancel them.
func WithDoer(d Doer) Option {
	return func(c *Client) {
		c.client = d
	}
}

// New creates a Client for the given API base URL. Requests time out after timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint builds the activation URL for token. An empty token yields a URL
// ending in the bare activation path.
func Endpoint(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + activatePath + url.PathEscape(token)
}

// Activate performs one activation attempt. Calls for the same token that
// overlap in time share a single outbound request. The shared request is not
// tied to any single caller's context; a caller whose context ends stops
// waiting and gets a TransportFailed result, the others keep waiting.
func (c *Client) Activate(ctx context.Context, token string) Result {
	ch := c.group.DoChan(token, func() (any, error) {
		return c.do(context.WithoutCancel(ctx), token), nil
	})
	if c.joined != nil {
		c.joined(token)
	}

	var (
		res    Result
		shared bool
	)
	select {
	case r := <-ch:
		res, shared = r.Val.(Result), r.Shared
	case <-ctx.Done():
		res = Result{Outcome: TransportFailed, Err: fmt.Errorf("activation abandoned: %w", ctx.Err())}
	}

	attrs := []any{
		"token", Fingerprint(token),
		"outcome", res.Outcome.String(),
		"status", res.StatusCode,
		"shared", shared,
	}
	switch res.Outcome {
	case Succeeded:
		slog.InfoContext(ctx, "account activated", attrs...)
	case StatusFailed:
		slog.WarnContext(ctx, "activation rejected", attrs...)
	default:
		slog.ErrorContext(ctx, "activation request failed", append(attrs, "error", res.Err)...)
	}
	return res
}

func (c *Client) do(ctx context.Context, token string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, Endpoint(c.baseURL, token), http.NoBody)
	if err != nil {
		return Result{Outcome: TransportFailed, Err: fmt.Errorf("build activation request: %w", err)}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{Outcome: TransportFailed, Err: fmt.Errorf("send activation request: %w", err)}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{
			Outcome:    StatusFailed,
			StatusCode: resp.StatusCode,
			Err:        &StatusError{Code: resp.StatusCode},
		}
	}
	return Result{Outcome: Succeeded, StatusCode: resp.StatusCode}
}

// Fingerprint returns a short, log-safe identifier for a token.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:4])
}

