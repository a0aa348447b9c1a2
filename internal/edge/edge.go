// internal/edge/edge.go
//
// Edge aggregate and router.
//
// Context
// -------
// Edge owns the request-serving dependencies: the rendered-HTML cache,
// the site directory, and the platform routing constants.  Both are
// injected interfaces, so tests run against an in-memory cache and a
// stub directory, and production wires Redis plus the hosted REST
// directory without touching this package.
//
// Route precedence is explicit and total: well-known ACME probes first,
// then the purge endpoint, then host-based dispatch for everything
// else.  Host dispatch itself is the ordered classification in
// internal/hostname.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package edge

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sitegrove/edge/internal/directory"
	"github.com/sitegrove/edge/internal/htmlcache"
	"github.com/sitegrove/edge/internal/middleware"
	"github.com/sitegrove/edge/internal/requestinfo"
)

// Edge serves tenant sites and the purge gateway.
type Edge struct {
	cache       htmlcache.Store
	dir         directory.Lookup
	platform    string // bare platform apex, e.g. "sitegrove.site"
	mainAppURL  string
	ttl         time.Duration
	purgeSecret string
}

// New wires an Edge.  ttl is the uniform cache lifetime for rendered
// documents; it also drives the public Cache-Control window.
func New(cache htmlcache.Store, dir directory.Lookup, platformDomain, mainAppURL string, ttl time.Duration, purgeSecret string) *Edge {
	return &Edge{
		cache:       cache,
		dir:         dir,
		platform:    platformDomain,
		mainAppURL:  mainAppURL,
		ttl:         ttl,
		purgeSecret: purgeSecret,
	}
}

// Router builds the http.Handler for the edge.
func (e *Edge) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestinfo.Enrich)
	r.Use(middleware.Security)

	// ACME challenge probes must succeed on any hostname so certificate
	// issuance for freshly connected custom domains never 404s.
	r.Handle("/.well-known/*", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r.Post("/api/purge-cache", e.handlePurge)

	// Everything else is host-based dispatch, whatever the method or
	// path.  chi's NotFound and MethodNotAllowed both funnel here so a
	// GET of /api/purge-cache serves the tenant page like any other.
	r.NotFound(e.serveSite)
	r.MethodNotAllowed(e.serveSite)

	return r
}
