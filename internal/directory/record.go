// internal/directory/record.go
//
// Site record model.
//
// Context
// -------
// A Record mirrors one published site in the system of record.  This
// core only reads it; the publish and save paths that mutate it live in
// the main application.  site_data arrives as raw JSON and is decoded
// lazily, because the dispatcher only pays the decode cost on a cache
// miss.
//
// The optional per-site section layout rides inside site_data under
// "sections_config"; unknown section ids there are the renderer's
// problem (it drops them), not ours.
//
// Notes
// -----
//   - Subdomain and CustomDomain are nullable: a site may be reachable by
//     either, both, or (before first publish) neither.
//   - Oxford commas, two spaces after periods.

package directory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sitegrove/edge/internal/render"
)

// Record is one row of the site directory.
type Record struct {
	ID           string          `db:"id" json:"id"`
	Subdomain    *string         `db:"subdomain" json:"subdomain"`
	CustomDomain *string         `db:"custom_domain" json:"custom_domain"`
	BrandColor   string          `db:"brand_color" json:"brand_colour"`
	SiteData     json.RawMessage `db:"site_data" json:"site_data"`
	SuspendedAt  *time.Time      `db:"suspended_at" json:"suspended_at,omitempty"`
	DeletedAt    *time.Time      `db:"deleted_at" json:"deleted_at,omitempty"`
	UpdatedAt    *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

// Document decodes site_data into the renderer's content-document model.
// Structural validation is the renderer's job; this only fails on
// malformed JSON.
func (r *Record) Document() (*render.Document, error) {
	if len(r.SiteData) == 0 {
		return nil, fmt.Errorf("directory: site %s has no site_data", r.ID)
	}
	var doc render.Document
	if err := json.Unmarshal(r.SiteData, &doc); err != nil {
		return nil, fmt.Errorf("directory: decode site_data for site %s: %w", r.ID, err)
	}
	return &doc, nil
}

// Layout extracts the optional per-site section layout from site_data.
// Absent or malformed config yields nil, which means default order.
func (r *Record) Layout() []render.LayoutEntry {
	if len(r.SiteData) == 0 {
		return nil
	}
	var probe struct {
		SectionsConfig []render.LayoutEntry `json:"sections_config"`
	}
	if err := json.Unmarshal(r.SiteData, &probe); err != nil {
		return nil
	}
	return probe.SectionsConfig
}
