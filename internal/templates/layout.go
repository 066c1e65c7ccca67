// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Layout wraps body in the HTML document shell.
func Layout(titleID string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw(`<!doctype html><html lang="`)
		out.text(Locale(ctx))
		out.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		out.text(T(ctx, titleID))
		out.raw(` | `)
		out.text(T(ctx, "app_name"))
		out.raw(`</title><link rel="stylesheet" href="`)
		out.text(CSSPath(ctx))
		out.raw(`">`)
		if js := JSPath(ctx); js != "" {
			out.raw(`<script src="`)
			out.text(js)
			out.raw(`" defer></script>`)
		}
		out.raw(`</head><body><main class="container">`)
		out.component(ctx, body)
		out.raw(`</main></body></html>`)
		return out.err
	})
}
