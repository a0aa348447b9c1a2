// internal/edge/handler.go
//
// Host-based dispatch: classify → cache → directory → render → respond.
//
// Context
// -------
// The serving path is a small state machine.  A cache hit short-circuits
// everything; a miss falls through to directory lookup and render, and
// the freshly rendered document is written back to the cache without
// blocking the response.  Concurrent misses for the same key may each
// render and each write; that race is accepted because renders are pure
// and last-writer-wins leaves identical bytes either way, so coalescing
// would buy coordination cost for nothing.
//
// Error mapping follows a strict taxonomy: no record is a branded 404,
// a directory transport failure is a 502, and a render failure is a 500
// logged with the site id.  None of those outcomes is ever cached, and
// a cache-backend failure on read only ever degrades to a miss.

package edge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sitegrove/edge/internal/directory"
	"github.com/sitegrove/edge/internal/hostname"
	"github.com/sitegrove/edge/internal/htmlcache"
	"github.com/sitegrove/edge/internal/metrics"
	"github.com/sitegrove/edge/internal/render"
	"github.com/sitegrove/edge/internal/requestinfo"
)

// cachePutTimeout bounds the fire-and-forget cache write so an ailing
// backend cannot pile up goroutines.
const cachePutTimeout = 5 * time.Second

func (e *Edge) serveSite(w http.ResponseWriter, r *http.Request) {
	res := hostname.Classify(r.Host, e.platform)

	if res.Kind == hostname.KindApex {
		http.Redirect(w, r, e.mainAppURL, http.StatusMovedPermanently)
		return
	}

	var cacheKey string
	var lookup func(context.Context, string) (*directory.Record, error)
	switch res.Kind {
	case hostname.KindSubdomain:
		cacheKey = htmlcache.SubdomainKey(res.Key)
		lookup = e.dir.BySubdomain
	default:
		cacheKey = htmlcache.CustomDomainKey(res.Key)
		lookup = e.dir.ByCustomDomain
	}

	ctx := r.Context()

	// Cache lookup.  Backend failures degrade to a miss; the cache is
	// advisory and must never turn into a user-visible error.
	html, err := e.cache.Get(ctx, cacheKey)
	if err == nil {
		metrics.CacheHitTotal.Inc()
		e.respondHTML(w, html, "HIT")
		return
	}
	if !errors.Is(err, htmlcache.ErrMiss) {
		metrics.CacheErrorTotal.Inc()
		zap.L().Warn("cache read failed, serving as miss",
			zap.String("request_id", requestinfo.RequestID(ctx)),
			zap.String("key", cacheKey), zap.Error(err))
	}
	metrics.CacheMissTotal.Inc()

	// Directory lookup, one strategy per kind, no cross-kind fallback.
	rec, err := lookup(ctx, res.Key)
	if errors.Is(err, directory.ErrNotFound) {
		metrics.LookupNotFoundTotal.Inc()
		e.respondNotFound(w)
		return
	}
	if err != nil {
		metrics.LookupErrorTotal.Inc()
		zap.L().Error("directory lookup failed",
			zap.String("request_id", requestinfo.RequestID(ctx)),
			zap.String("kind", res.Kind.String()),
			zap.String("key", res.Key), zap.Error(err))
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}

	html, err = e.renderSite(rec)
	if err != nil {
		metrics.RenderErrorTotal.Inc()
		zap.L().Error("render failed",
			zap.String("request_id", requestinfo.RequestID(ctx)),
			zap.String("site_id", rec.ID),
			zap.String("key", res.Key), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	metrics.RenderTotal.Inc()

	// Populate the cache without making the response wait on it.  Write
	// failures are logged and dropped; the next request just re-renders.
	go func() {
		putCtx, cancel := context.WithTimeout(context.Background(), cachePutTimeout)
		defer cancel()
		if err := e.cache.Put(putCtx, cacheKey, html, e.ttl); err != nil {
			metrics.CacheErrorTotal.Inc()
			zap.L().Warn("cache write failed",
				zap.String("key", cacheKey), zap.Error(err))
		}
	}()

	e.respondHTML(w, html, "MISS")
}

func (e *Edge) renderSite(rec *directory.Record) (string, error) {
	doc, err := rec.Document()
	if err != nil {
		return "", err
	}
	return render.Site(doc, rec.BrandColor, rec.Layout())
}

// respondHTML writes a rendered document with the shared cache-control
// window and the hit/miss marker (observability only, not correctness).
func (e *Edge) respondHTML(w http.ResponseWriter, html, cacheState string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(e.ttl.Seconds())))
	w.Header().Set("X-Cache", cacheState)
	_, _ = w.Write([]byte(html))
}

// respondNotFound serves the branded 404.  Never cached, no public
// cache-control window: a site published moments later must be visible
// immediately.
func (e *Edge) respondNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(render.NotFound(e.mainAppURL)))
}
