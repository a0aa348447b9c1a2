// internal/requestinfo/requestinfo.go
//
// Per-request metadata for access logs.
//
// Context
// -------
// Every request gets a generated id, a parsed user-agent class, and,
// when a MaxMind database is configured, a best-effort geolocation of
// the client address.  The struct is inert: no pointers to handles or
// large buffers, safe to log or JSON-encode.  The Enrich middleware
// emits one access-log line per request from it, and the dispatcher
// stamps its error logs with the request id via RequestID; nothing here
// affects routing or caching decisions.
//
// Dependencies
//   - github.com/avct/uasurfer          (UA parsing)
//   - github.com/oschwald/geoip2-golang (MaxMind lookup, optional)
//   - github.com/google/uuid            (request ids)

package requestinfo

import (
	"context"
	"net"
	"strings"

	"github.com/avct/uasurfer"
	"github.com/google/uuid"
	"github.com/oschwald/geoip2-golang"
)

// UA is the parsed user-agent summary carried on access logs.
type UA struct {
	Browser string // "Chrome", "Firefox", "Safari", …
	OS      string // "Windows", "MacOSX", "Android", …
	Device  string // "Desktop", "Mobile", "Tablet", or "Other"
	IsBot   bool
}

// Geo holds IP-based geolocation hints; best-effort and often empty.
type Geo struct {
	CountryISO string // "US", "CA", "FR", …
	City       string
}

// Info is stored on the request context by the Enrich middleware.
type Info struct {
	RequestID string
	UA        UA
	Geo       Geo
}

//
// Package-level state
//

// geoReader is a singleton MaxMind handle, safe for concurrent reads,
// which is all we ever perform.  Nil when geolocation is disabled.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2 database at startup.  Call it from main
// only when a path is configured; the middleware degrades to empty Geo
// fields without it.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

type ctxKey struct{}

// FromContext returns the Info previously stored by Enrich, or nil.
func FromContext(ctx context.Context) *Info {
	v, _ := ctx.Value(ctxKey{}).(*Info)
	return v
}

func newContext(ctx context.Context, info *Info) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

// RequestID returns the request id from the context, or "" when the
// request never passed through Enrich.
func RequestID(ctx context.Context) string {
	if info := FromContext(ctx); info != nil {
		return info.RequestID
	}
	return ""
}

//
// Internal helpers
//

func parseUA(raw string) UA {
	u := uasurfer.Parse(raw)

	device := "Other"
	switch u.DeviceType {
	case uasurfer.DeviceComputer:
		device = "Desktop"
	case uasurfer.DeviceTablet:
		device = "Tablet"
	case uasurfer.DevicePhone, uasurfer.DeviceWearable:
		device = "Mobile"
	}

	return UA{
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		OS:      strings.TrimPrefix(u.OS.Name.String(), "OS"),
		Device:  device,
		IsBot:   u.IsBot(),
	}
}

func lookupGeo(remoteAddr string) Geo {
	if geoReader == nil {
		return Geo{}
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return Geo{}
	}
	city, err := geoReader.City(ip)
	if err != nil {
		return Geo{}
	}
	return Geo{
		CountryISO: city.Country.IsoCode,
		City:       city.City.Names["en"],
	}
}

func newRequestID() string { return uuid.NewString() }
