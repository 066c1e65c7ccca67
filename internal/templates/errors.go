// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
)

// ErrorPage renders a full error page for status code.
func ErrorPage(code int, messageID string) templ.Component {
	return Layout("app_name", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := http.StatusText(code)
		if title == "" {
			title = "Error"
		}

		out := &htmlWriter{w: w}
		out.raw(`<section class="error"><h1>`)
		out.text(strconv.Itoa(code))
		out.raw(`</h1><h2>`)
		out.text(title)
		out.raw(`</h2><p>`)
		out.text(T(ctx, messageID))
		out.raw(`</p><a href="/">`)
		out.text(T(ctx, "home_title"))
		out.raw(`</a></section>`)
		return out.err
	}))
}
