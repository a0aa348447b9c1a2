// internal/edge/edge_test.go
//
// End-to-end dispatch tests against an in-memory cache and a stub
// directory with call-count instrumentation.

package edge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitegrove/edge/internal/directory"
	"github.com/sitegrove/edge/internal/htmlcache"
)

const (
	testPlatform = "sitegrove.site"
	testAppURL   = "https://app.sitegrove.site"
	testSecret   = "0123456789abcdef0123"
	testTTL      = 60 * time.Second
)

//
// Directory stub
//

type stubDirectory struct {
	mu       sync.Mutex
	subCalls int
	domCalls int
	bySub    map[string]*directory.Record
	byDom    map[string]*directory.Record
	err      error // forced transient failure when set
}

func (s *stubDirectory) BySubdomain(_ context.Context, sub string) (*directory.Record, error) {
	s.mu.Lock()
	s.subCalls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if rec, ok := s.bySub[sub]; ok {
		return rec, nil
	}
	return nil, directory.ErrNotFound
}

func (s *stubDirectory) ByCustomDomain(_ context.Context, dom string) (*directory.Record, error) {
	s.mu.Lock()
	s.domCalls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if rec, ok := s.byDom[dom]; ok {
		return rec, nil
	}
	return nil, directory.ErrNotFound
}

func (s *stubDirectory) calls() (sub, dom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subCalls, s.domCalls
}

//
// Fixtures
//

const testSiteData = `{
  "hero": {
    "badge": "Trusted Local Pros",
    "headline": {"line1": "Roofing", "line2": "You Can Trust"},
    "subtext": "Serving the valley for 20 years.",
    "ctaText": "Call Now",
    "navCta": "Free Quote",
    "heroImage": "https://img.example.com/hero.jpg"
  },
  "services": {"cards": [{"title": "Repairs", "description": "Leaks fixed fast.", "icon": "hammer"}]},
  "valueProposition": {
    "title": "Built to Last", "subtitle": "Our Craft", "content": "Quality materials only.",
    "ctaText": "Get Started", "image": "https://img.example.com/vp.jpg", "highlights": ["Licensed", "Insured"]
  },
  "benefits": {"title": "Why Us", "items": ["Fast", "Fair"]},
  "process": {"title": "Our Process", "steps": [{"title": "Inspect", "description": "We look first."}]},
  "whoWeHelp": {"title": "Who We Help", "image": "https://img.example.com/help.jpg", "bullets": ["Homes"]},
  "faqs": [{"question": "Free estimates?", "answer": "Always."}],
  "footer": {"headline": "Ready?", "ctaText": "Call Today"},
  "contact": {"phone": "5551234567", "location": "Mesa", "companyName": "Valley Roofing"}
}`

func testRecord(id string) *directory.Record {
	return &directory.Record{
		ID:         id,
		BrandColor: "#2563eb",
		SiteData:   []byte(testSiteData),
	}
}

func newTestEdge(t *testing.T, dir directory.Lookup) (*Edge, *htmlcache.Memory) {
	t.Helper()
	cache := htmlcache.NewMemory(0)
	t.Cleanup(cache.Close)
	return New(cache, dir, testPlatform, testAppURL, testTTL, testSecret), cache
}

func doRequest(e *Edge, method, host, path string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "http://"+host+path, bytes.NewReader(body))
	req.Host = host
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	e.Router().ServeHTTP(rr, req)
	return rr
}

// waitForKey blocks until the fire-and-forget cache write lands.
func waitForKey(t *testing.T, cache htmlcache.Store, key string) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, err := cache.Get(context.Background(), key)
		return err == nil
	}, time.Second, 5*time.Millisecond, "cache population for %s never happened", key)
}

//
// Dispatch
//

func TestServeSubdomainMissThenHit(t *testing.T) {
	dir := &stubDirectory{bySub: map[string]*directory.Record{"acme": testRecord("site-1")}}
	e, cache := newTestEdge(t, dir)

	first := doRequest(e, http.MethodGet, "acme.sitegrove.site", "/", nil, nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, "text/html; charset=utf-8", first.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf("public, max-age=%d", int(testTTL.Seconds())),
		first.Header().Get("Cache-Control"))
	assert.Contains(t, first.Body.String(), "Valley Roofing")

	waitForKey(t, cache, htmlcache.SubdomainKey("acme"))

	second := doRequest(e, http.MethodGet, "acme.sitegrove.site", "/", nil, nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String(), "hit must serve identical bytes")

	sub, dom := dir.calls()
	assert.Equal(t, 1, sub, "second request must not touch the directory")
	assert.Equal(t, 0, dom)
}

func TestServeCustomDomainUsesOwnKeyspace(t *testing.T) {
	dir := &stubDirectory{byDom: map[string]*directory.Record{"mybiz.com": testRecord("site-2")}}
	e, cache := newTestEdge(t, dir)

	rr := doRequest(e, http.MethodGet, "mybiz.com", "/", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	waitForKey(t, cache, htmlcache.CustomDomainKey("mybiz.com"))
	_, err := cache.Get(context.Background(), htmlcache.SubdomainKey("mybiz.com"))
	assert.ErrorIs(t, err, htmlcache.ErrMiss, "custom domain must never land in the subdomain keyspace")

	sub, dom := dir.calls()
	assert.Equal(t, 0, sub, "custom-domain requests must not fall back to the subdomain strategy")
	assert.Equal(t, 1, dom)
}

func TestServeNotFoundIsNotCached(t *testing.T) {
	dir := &stubDirectory{}
	e, cache := newTestEdge(t, dir)

	rr := doRequest(e, http.MethodGet, "ghost.sitegrove.site", "/", nil, nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "404")
	assert.Contains(t, rr.Body.String(), testAppURL)
	assert.Empty(t, rr.Header().Get("Cache-Control"))

	// 404s never populate the cache; every retry re-asks the directory.
	doRequest(e, http.MethodGet, "ghost.sitegrove.site", "/", nil, nil)
	_, err := cache.Get(context.Background(), htmlcache.SubdomainKey("ghost"))
	assert.ErrorIs(t, err, htmlcache.ErrMiss)
	sub, _ := dir.calls()
	assert.Equal(t, 2, sub)
}

func TestServeTransientLookupErrorIs5xx(t *testing.T) {
	dir := &stubDirectory{err: errors.New("connection refused")}
	e, cache := newTestEdge(t, dir)

	rr := doRequest(e, http.MethodGet, "acme.sitegrove.site", "/", nil, nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code, "transient failure must not read as not-found")
	assert.NotEqual(t, http.StatusNotFound, rr.Code)

	_, err := cache.Get(context.Background(), htmlcache.SubdomainKey("acme"))
	assert.ErrorIs(t, err, htmlcache.ErrMiss, "failures are never cached")
}

func TestServeRenderFailureIs500(t *testing.T) {
	rec := testRecord("site-3")
	rec.SiteData = []byte(`{"hero": {}}`) // structurally incomplete
	dir := &stubDirectory{bySub: map[string]*directory.Record{"broken": rec}}
	e, cache := newTestEdge(t, dir)

	rr := doRequest(e, http.MethodGet, "broken.sitegrove.site", "/", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	_, err := cache.Get(context.Background(), htmlcache.SubdomainKey("broken"))
	assert.ErrorIs(t, err, htmlcache.ErrMiss, "a failed render must never be cached, even partially")
}

func TestApexAndWWWRedirect(t *testing.T) {
	dir := &stubDirectory{}
	e, _ := newTestEdge(t, dir)

	for _, host := range []string{"sitegrove.site", "www.sitegrove.site"} {
		rr := doRequest(e, http.MethodGet, host, "/anything", nil, nil)
		assert.Equal(t, http.StatusMovedPermanently, rr.Code, host)
		assert.Equal(t, testAppURL, rr.Header().Get("Location"), host)
	}

	sub, dom := dir.calls()
	assert.Zero(t, sub+dom, "apex traffic bypasses the directory entirely")
}

func TestWellKnownBypass(t *testing.T) {
	dir := &stubDirectory{}
	e, _ := newTestEdge(t, dir)

	rr := doRequest(e, http.MethodGet, "anything.sitegrove.site", "/.well-known/acme-challenge/tok", nil, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())

	sub, dom := dir.calls()
	assert.Zero(t, sub+dom)
}

func TestServeSurvivesCacheBackendFailure(t *testing.T) {
	dir := &stubDirectory{bySub: map[string]*directory.Record{"acme": testRecord("site-1")}}
	cache := failingStore{}
	e := New(cache, dir, testPlatform, testAppURL, testTTL, testSecret)

	rr := doRequest(e, http.MethodGet, "acme.sitegrove.site", "/", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, "cache loss degrades to lookup + render, never an error")
	assert.Equal(t, "MISS", rr.Header().Get("X-Cache"))
}

// failingStore errors on every operation, simulating a down backend.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("cache down")
}
func (failingStore) Put(context.Context, string, string, time.Duration) error {
	return errors.New("cache down")
}
func (failingStore) Delete(context.Context, string) error {
	return errors.New("cache down")
}

//
// Purge gateway
//

func purgeBody(t *testing.T, sub, dom string) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]string{"subdomain": sub, "custom_domain": dom})
	require.NoError(t, err)
	return b
}

func TestPurgeRequiresSecret(t *testing.T) {
	e, _ := newTestEdge(t, &stubDirectory{})

	rr := doRequest(e, http.MethodPost, "edge.sitegrove.site", "/api/purge-cache",
		purgeBody(t, "acme", ""), nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doRequest(e, http.MethodPost, "edge.sitegrove.site", "/api/purge-cache",
		purgeBody(t, "acme", ""), map[string]string{"X-Purge-Secret": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPurgeRejectsEmptyTargetSet(t *testing.T) {
	e, _ := newTestEdge(t, &stubDirectory{})

	rr := doRequest(e, http.MethodPost, "edge.sitegrove.site", "/api/purge-cache",
		[]byte(`{}`), map[string]string{"X-Purge-Secret": testSecret})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(e, http.MethodPost, "edge.sitegrove.site", "/api/purge-cache",
		[]byte(`not json`), map[string]string{"X-Purge-Secret": testSecret})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPurgeDeletesAndRetriggersRender(t *testing.T) {
	dir := &stubDirectory{bySub: map[string]*directory.Record{"acme": testRecord("site-1")}}
	e, cache := newTestEdge(t, dir)

	doRequest(e, http.MethodGet, "acme.sitegrove.site", "/", nil, nil)
	waitForKey(t, cache, htmlcache.SubdomainKey("acme"))

	rr := doRequest(e, http.MethodPost, "edge.sitegrove.site", "/api/purge-cache",
		purgeBody(t, "acme", ""), map[string]string{"X-Purge-Secret": testSecret})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp purgeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"acme"}, resp.Purged)

	_, err := cache.Get(context.Background(), htmlcache.SubdomainKey("acme"))
	assert.ErrorIs(t, err, htmlcache.ErrMiss)

	// The next request misses and re-renders.
	again := doRequest(e, http.MethodGet, "acme.sitegrove.site", "/", nil, nil)
	assert.Equal(t, "MISS", again.Header().Get("X-Cache"))
	sub, _ := dir.calls()
	assert.Equal(t, 2, sub)
}

func TestPurgeBothTargets(t *testing.T) {
	e, cache := newTestEdge(t, &stubDirectory{})
	ctx := context.Background()
	require.NoError(t, cache.Put(ctx, htmlcache.SubdomainKey("acme"), "a", testTTL))
	require.NoError(t, cache.Put(ctx, htmlcache.CustomDomainKey("mybiz.com"), "b", testTTL))

	rr := doRequest(e, http.MethodPost, "edge.sitegrove.site", "/api/purge-cache",
		purgeBody(t, "acme", "mybiz.com"), map[string]string{"X-Purge-Secret": testSecret})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp purgeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"acme", "mybiz.com"}, resp.Purged)

	_, err := cache.Get(ctx, htmlcache.SubdomainKey("acme"))
	assert.ErrorIs(t, err, htmlcache.ErrMiss)
	_, err = cache.Get(ctx, htmlcache.CustomDomainKey("mybiz.com"))
	assert.ErrorIs(t, err, htmlcache.ErrMiss)
}

func TestPurgeOfUncachedKeyIsNoOp(t *testing.T) {
	e, _ := newTestEdge(t, &stubDirectory{})

	rr := doRequest(e, http.MethodPost, "edge.sitegrove.site", "/api/purge-cache",
		purgeBody(t, "never-cached", ""), map[string]string{"X-Purge-Secret": testSecret})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp purgeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"never-cached"}, resp.Purged)
}

func TestPurgeBackendFailureIs5xx(t *testing.T) {
	e := New(failingStore{}, &stubDirectory{}, testPlatform, testAppURL, testTTL, testSecret)

	rr := doRequest(e, http.MethodPost, "edge.sitegrove.site", "/api/purge-cache",
		purgeBody(t, "acme", ""), map[string]string{"X-Purge-Secret": testSecret})
	assert.Equal(t, http.StatusInternalServerError, rr.Code,
		"the caller must know invalidation did not happen")
}
