// internal/requestinfo/middleware.go
//
// Enrich middleware: attach Info to the request context, echo the
// request id back to the client, and emit one structured access-log
// line per request once the handler returns.

package requestinfo

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Enrich builds an Info for the request and stores it on the context.
// The id is also set as the X-Request-Id response header so a tenant
// support ticket can be matched against log lines.  After the handler
// returns, one access-log line carries the id plus the UA and geo
// classification.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		info := &Info{
			RequestID: newRequestID(),
			UA:        parseUA(r.UserAgent()),
			Geo:       lookupGeo(r.RemoteAddr),
		}
		w.Header().Set("X-Request-Id", info.RequestID)

		next.ServeHTTP(w, r.WithContext(newContext(r.Context(), info)))

		zap.L().Info("request served",
			zap.String("request_id", info.RequestID),
			zap.String("host", r.Host),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.String("country", info.Geo.CountryISO),
			zap.String("city", info.Geo.City),
			zap.String("browser", info.UA.Browser),
			zap.String("os", info.UA.OS),
			zap.String("device", info.UA.Device),
			zap.Bool("bot", info.UA.IsBot),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
