// ABOUTME: Composition helper for the per-route middleware stacks
// ABOUTME: Wraps a handler so the first listed middleware runs first

package middleware

import "net/http"

// Middleware wraps a handler with cross-cutting behavior.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// Chain wraps h in the given middleware, outermost first, so
// Chain(h, LogRequest, cors, csrf) logs every request, including the
// ones CORS or CSRF reject before h runs.
func Chain(h http.HandlerFunc, stack ...Middleware) http.HandlerFunc {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}
