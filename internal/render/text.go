// internal/render/text.go
//
// Small text helpers shared by the section renderers.
package render

import (
	"strings"
	"unicode"
)

// esc HTML-escapes untrusted text for interpolation into element bodies
// and attribute values.  Covers &, <, >, double, and single quotes.
func esc(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&#039;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// formatPhone pretty-prints a phone number as (XXX) XXX-XXXX when exactly
// ten digits remain after stripping everything non-numeric.  Anything
// else is returned verbatim; we never guess at international formats.
func formatPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return phone
	}
	return "(" + d[:3] + ") " + d[3:6] + "-" + d[6:]
}
