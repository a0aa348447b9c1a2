// internal/directory/sql.go
//
// SQL directory backend.
//
// Self-hosted deployments keep the site table in a MySQL-protocol
// database reached through the shared sqlx pool.  Rows with a
// suspended_at or deleted_at timestamp are invisible to the edge, the
// same way an unpublished site is.

package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQL resolves routing keys against the site table.
type SQL struct {
	db *sqlx.DB
}

// NewSQL wraps an existing pool; the caller owns its lifecycle.
func NewSQL(db *sqlx.DB) *SQL { return &SQL{db: db} }

const siteColumns = `id, subdomain, custom_domain, brand_color,
               site_data, suspended_at, deleted_at, updated_at`

func (s *SQL) BySubdomain(ctx context.Context, subdomain string) (*Record, error) {
	const q = `
        SELECT ` + siteColumns + `
        FROM   site
        WHERE  subdomain = ?
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1`
	return s.one(ctx, q, subdomain)
}

func (s *SQL) ByCustomDomain(ctx context.Context, domain string) (*Record, error) {
	const q = `
        SELECT ` + siteColumns + `
        FROM   site
        WHERE  custom_domain = ?
          AND  suspended_at IS NULL
          AND  deleted_at   IS NULL
        LIMIT  1`
	return s.one(ctx, q, domain)
}

func (s *SQL) one(ctx context.Context, q, arg string) (*Record, error) {
	var rec Record
	if err := s.db.GetContext(ctx, &rec, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("directory: site query: %w", err)
	}
	return &rec, nil
}
