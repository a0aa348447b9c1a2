package requestinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// captureLogs swaps the global logger for an in-memory observer for the
// duration of the test.
func captureLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })
	return logs
}

func TestEnrichEmitsAccessLog(t *testing.T) {
	logs := captureLogs(t)

	var seen *Info
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "http://acme.sitegrove.site/", nil)
	req.Host = "acme.sitegrove.site"
	req.Header.Set("User-Agent", chromeUA)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.NotNil(t, seen, "Info must be on the handler's context")
	assert.Equal(t, seen.RequestID, rr.Header().Get("X-Request-Id"))

	entries := logs.FilterMessage("request served").All()
	require.Len(t, entries, 1, "exactly one access-log line per request")

	fields := entries[0].ContextMap()
	assert.Equal(t, seen.RequestID, fields["request_id"])
	assert.Equal(t, "acme.sitegrove.site", fields["host"])
	assert.Equal(t, "/", fields["path"])
	assert.Equal(t, "Chrome", fields["browser"])
	assert.Equal(t, "Windows", fields["os"])
	assert.Equal(t, "Desktop", fields["device"])
	assert.Equal(t, false, fields["bot"])
}

func TestEnrichClassifiesBots(t *testing.T) {
	logs := captureLogs(t)

	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "http://acme.sitegrove.site/", nil)
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request served").All()
	require.Len(t, entries, 1)
	assert.Equal(t, true, entries[0].ContextMap()["bot"])
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()),
		"bare context carries no request id")

	info := &Info{RequestID: "req-1"}
	ctx := newContext(context.Background(), info)
	assert.Equal(t, "req-1", RequestID(ctx))
}
