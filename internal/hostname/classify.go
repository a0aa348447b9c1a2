// internal/hostname/classify.go
//
// Hostname classification.
//
// Context
// -------
// Every inbound request is routed by its Host header.  The decision is
// an explicit, ordered, total function with no fallthrough ambiguity:
//
//   1. The platform apex or its www variant → redirect to the main app.
//   2. Anything under the platform suffix   → subdomain, suffix stripped.
//   3. Everything else                      → custom domain.
//
// Hostnames are case-insensitive, so the input is lowercased and any
// :port suffix stripped before matching.  Well-known control paths (ACME
// probes, the purge endpoint) are matched on path, not host, and never
// reach this function.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package hostname

import "strings"

// Kind tags the outcome of classification.
type Kind int

const (
	// KindApex is the platform's own apex domain or its www variant; the
	// dispatcher answers with a permanent redirect to the main app.
	KindApex Kind = iota

	// KindSubdomain is a tenant hostname under the platform suffix; Key
	// holds the hostname with the suffix stripped.
	KindSubdomain

	// KindCustomDomain is any other hostname; Key holds it verbatim.
	KindCustomDomain
)

func (k Kind) String() string {
	switch k {
	case KindApex:
		return "apex"
	case KindSubdomain:
		return "subdomain"
	default:
		return "custom_domain"
	}
}

// Result is the classified routing decision for one hostname.
type Result struct {
	Kind Kind
	Key  string // routing key; empty for KindApex
}

// Classify resolves a raw Host header against the platform domain.
// platformDomain is the bare apex (e.g. "sitegrove.site"); tenant
// subdomains hang off "." + platformDomain.
func Classify(host, platformDomain string) Result {
	h := strings.ToLower(StripPort(host))
	apex := strings.ToLower(platformDomain)
	suffix := "." + apex

	switch {
	case h == apex || h == "www."+apex:
		return Result{Kind: KindApex}
	case strings.HasSuffix(h, suffix):
		return Result{Kind: KindSubdomain, Key: strings.TrimSuffix(h, suffix)}
	default:
		return Result{Kind: KindCustomDomain, Key: h}
	}
}

// StripPort removes any ":port" suffix from a Host header.
func StripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
