// internal/directory/rest.go
//
// REST directory client.
//
// Context
// -------
// The hosted system of record exposes the site table through a
// PostgREST-style API: exact-match filters in the query string, an API
// key sent both as `apikey` and as a bearer token, JSON array responses.
// One row at most comes back (`limit=1`); uniqueness of subdomain and
// custom_domain is enforced upstream.
//
// The embedded http.Client carries a hard timeout so a stalled upstream
// surfaces as the transient-error case instead of hanging the response.

package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const restTimeout = 5 * time.Second

// REST queries the directory over HTTPS.
type REST struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewREST builds a client for the directory API at baseURL.  The base
// URL is the service root; the sites endpoint hangs off /rest/v1/sites.
func NewREST(baseURL, apiKey string) *REST {
	return &REST{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: restTimeout},
	}
}

func (r *REST) BySubdomain(ctx context.Context, subdomain string) (*Record, error) {
	return r.fetch(ctx, "subdomain", subdomain)
}

func (r *REST) ByCustomDomain(ctx context.Context, domain string) (*Record, error) {
	return r.fetch(ctx, "custom_domain", domain)
}

func (r *REST) fetch(ctx context.Context, column, value string) (*Record, error) {
	q := url.Values{}
	q.Set(column, "eq."+value)
	q.Set("limit", "1")
	endpoint := r.baseURL + "/rest/v1/sites?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("directory: build request: %w", err)
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory: query %s: %w", column, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("directory: upstream status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rows []Record
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("directory: decode response: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
