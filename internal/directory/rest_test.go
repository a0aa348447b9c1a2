package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSiteRow = `[{
  "id": "site-1",
  "subdomain": "acme",
  "custom_domain": null,
  "brand_colour": "#2563eb",
  "site_data": {"hero": {"badge": "Hi"}, "sections_config": [{"id": "faqs", "visible": true, "order": 0}]}
}]`

func TestRESTBySubdomain(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testSiteRow))
	}))
	defer srv.Close()

	rest := NewREST(srv.URL, "test-key")
	rec, err := rest.BySubdomain(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, "/rest/v1/sites", gotPath)
	assert.Contains(t, gotQuery, "subdomain=eq.acme")
	assert.Contains(t, gotQuery, "limit=1")
	assert.Equal(t, "test-key", gotKey)

	assert.Equal(t, "site-1", rec.ID)
	require.NotNil(t, rec.Subdomain)
	assert.Equal(t, "acme", *rec.Subdomain)
	assert.Equal(t, "#2563eb", rec.BrandColor)

	layout := rec.Layout()
	require.Len(t, layout, 1)
	assert.Equal(t, "faqs", layout[0].ID)
}

func TestRESTNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewREST(srv.URL, "k").ByCustomDomain(context.Background(), "nosuch.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRESTUpstreamErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewREST(srv.URL, "k").BySubdomain(context.Background(), "acme")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "an upstream 5xx must not read as not-found")
}

func TestRESTConnectionErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	_, err := NewREST(srv.URL, "k").BySubdomain(context.Background(), "acme")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestRecordDocumentDecode(t *testing.T) {
	rec := &Record{ID: "s", SiteData: []byte(`{"contact": {"phone": "5551234567"}}`)}
	doc, err := rec.Document()
	require.NoError(t, err)
	assert.Equal(t, "5551234567", doc.Contact.Phone)

	rec.SiteData = []byte(`{broken`)
	_, err = rec.Document()
	assert.Error(t, err)

	rec.SiteData = nil
	_, err = rec.Document()
	assert.Error(t, err)
	assert.Nil(t, rec.Layout())
}
