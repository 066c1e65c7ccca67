// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package activation

// WithJoinHook registers f to run after each caller attaches to an activation.
func WithJoinHook(f func(token string)) Option {
	return func(c *Client) {
		c.joined = f
	}
}
