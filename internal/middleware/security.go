// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard hardening headers on every response.  The CSP is
// stricter than a page-serving app would use because this service only
// emits JSON; nothing it returns should ever execute or frame.
//
// Headers are added after next.ServeHTTP so handlers may set
// Content-Type first; the middleware never overwrites an existing
// value.
package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		hsts  = "max-age=63072000; includeSubDomains; preload"
		csp   = "default-src 'none'; frame-ancestors 'none'"
		xfo   = "DENY"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		h := w.Header()
		if h.Get("Strict-Transport-Security") == "" {
			h.Add("Strict-Transport-Security", hsts)
		}
		if h.Get("Content-Security-Policy") == "" {
			h.Add("Content-Security-Policy", csp)
		}
		if h.Get("X-Frame-Options") == "" {
			h.Add("X-Frame-Options", xfo)
		}
		if h.Get("X-Content-Type-Options") == "" {
			h.Add("X-Content-Type-Options", nosn)
		}
		if h.Get("Referrer-Policy") == "" {
			h.Add("Referrer-Policy", refer)
		}
	})
}
