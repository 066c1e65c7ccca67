// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Home renders the root view, optionally with a one-time success notice.
func Home(noticeID string) templ.Component {
	return Layout("home_title", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw(`<section class="home">`)
		if noticeID != "" {
			out.raw(`<p class="notice notice-success" role="status">`)
			out.text(T(ctx, noticeID))
			out.raw(`</p>`)
		}
		out.raw(`<h2>`)
		out.text(T(ctx, "home_title"))
		out.raw(`</h2><p>`)
		out.text(T(ctx, "home_body"))
		out.raw(`</p></section>`)
		return out.err
	}))
}
