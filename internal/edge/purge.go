// internal/edge/purge.go
//
// Purge gateway: the only external mutation pathway into the cache.
//
// Context
// -------
// The main application calls this after a tenant saves or republishes,
// naming the routing keys whose cached HTML is now stale.  The shared
// secret travels in X-Purge-Secret and is compared in constant time; a
// mismatch is a bare 401 with no hint of which part was wrong.  Both
// keys are deleted concurrently, and a backend failure surfaces as a
// 500 because the caller must know invalidation did not happen —
// unlike the read path, purge cannot degrade silently.

package edge

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sitegrove/edge/internal/htmlcache"
	"github.com/sitegrove/edge/internal/metrics"
)

const purgeTimeout = 10 * time.Second

type purgeRequest struct {
	Subdomain    string `json:"subdomain"`
	CustomDomain string `json:"custom_domain"`
}

type purgeResponse struct {
	Success bool     `json:"success"`
	Purged  []string `json:"purged"`
}

func (e *Edge) handlePurge(w http.ResponseWriter, r *http.Request) {
	secret := r.Header.Get("X-Purge-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(e.purgeSecret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var req purgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}

	type target struct{ key, label string }
	var targets []target
	if req.Subdomain != "" {
		targets = append(targets, target{htmlcache.SubdomainKey(req.Subdomain), req.Subdomain})
	}
	if req.CustomDomain != "" {
		targets = append(targets, target{htmlcache.CustomDomainKey(req.CustomDomain), req.CustomDomain})
	}
	if len(targets) == 0 {
		writeJSON(w, http.StatusBadRequest,
			map[string]string{"error": "Provide subdomain or custom_domain to purge"})
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	purged := make([]string, len(targets))
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			delCtx, cancel := context.WithTimeout(ctx, purgeTimeout)
			defer cancel()
			if err := e.cache.Delete(delCtx, t.key); err != nil {
				return err
			}
			purged[i] = t.label
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Error("purge failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError,
			map[string]string{"error": "Cache purge failed"})
		return
	}

	metrics.PurgeTotal.Add(float64(len(purged)))
	zap.L().Info("cache purged", zap.Strings("keys", purged))
	writeJSON(w, http.StatusOK, purgeResponse{Success: true, Purged: purged})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
