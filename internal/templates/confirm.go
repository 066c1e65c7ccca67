// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// NoticeID is the element the confirm form swaps its failure alerts into.
const NoticeID = "notice"

// Confirmation renders the confirmation view for token. A non-empty alertID
// renders the failure alert above the form.
func Confirmation(token, alertID string) templ.Component {
	return Layout("confirm_title", confirmationBody(token, alertID))
}

func confirmationBody(token, alertID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		action := ConfirmPath(token)

		out := &htmlWriter{w: w}
		out.raw(`<section class="confirmation"><h2>`)
		out.text(T(ctx, "confirm_title"))
		out.raw(`</h2><div id="` + NoticeID + `" aria-live="assertive">`)
		if alertID != "" {
			out.component(ctx, Alert(alertID))
		}
		out.raw(`</div><form id="confirm-form" method="post" action="`)
		out.text(action)
		out.raw(`" hx-post="`)
		out.text(action)
		out.raw(`" hx-target="#` + NoticeID + `" hx-swap="innerHTML" hx-disabled-elt="find button">`)
		out.raw(`<input type="hidden" name="csrf_token" value="`)
		out.text(CSRFToken(ctx))
		out.raw(`"><button type="submit">`)
		out.text(T(ctx, "confirm_button"))
		out.raw(`</button></form></section>`)
		return out.err
	})
}

// Alert is the blocking failure notification. It stays open until dismissed.
func Alert(messageID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw(`<dialog open class="alert alert-error" role="alertdialog" aria-modal="true"><p>`)
		out.text(T(ctx, messageID))
		out.raw(`</p><form method="dialog"><button type="submit">`)
		out.text(T(ctx, "alert_dismiss"))
		out.raw(`</button></form></dialog>`)
		return out.err
	})
}
