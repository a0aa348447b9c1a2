// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard headers on every response:
//
//   - X-Content-Type-Options  –  MIME-sniffing defence
//   - Referrer-Policy         –  drops path/query from Referer
//
// Rendered tenant documents pull Tailwind from a CDN and inline their
// own scripts, so no Content-Security-Policy is set here; a self-only
// policy would break every page we serve.
//
// Notes
// -----
//   - Headers are set *before* next.ServeHTTP; once a handler writes
//     the response the header map is sealed.
//   - Oxford commas, two spaces after periods.

package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", nosn)
		w.Header().Set("Referrer-Policy", refer)

		next.ServeHTTP(w, r)
	})
}
