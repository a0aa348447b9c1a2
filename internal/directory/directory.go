// internal/directory/directory.go
//
// Site directory lookup contract.
//
// Context
// -------
// Given a routing key the directory returns the matching site record or
// "not found".  Exactly one lookup strategy per key kind, and no
// fallback between them: a request classified as custom-domain must
// never silently match a subdomain record.
//
// The caller needs to distinguish "genuinely not found" (a 404, safe to
// show the branded not-found page) from a transient upstream failure (a
// 5xx that must never be conflated with not-found, and never cached).
// ErrNotFound is the sentinel for the former; every other error is
// transient by definition.
//
// Two implementations ship: REST (the hosted system of record, a
// PostgREST-style HTTPS API) and SQL (self-hosted deployments, sqlx over
// the MySQL wire protocol).

package directory

import (
	"context"
	"errors"
)

// ErrNotFound means the routing key matches no site record.
var ErrNotFound = errors.New("directory: site not found")

// Lookup resolves routing keys to site records.  Implementations must
// return ErrNotFound for an absent record and wrap every transport or
// upstream failure in a distinct error.
type Lookup interface {
	BySubdomain(ctx context.Context, subdomain string) (*Record, error)
	ByCustomDomain(ctx context.Context, domain string) (*Record, error)
}
