package render

import "testing"

func TestFormatPhone(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"5551234567", "(555) 123-4567"},
		{"555-123-4567", "(555) 123-4567"},
		{"(555) 123 4567", "(555) 123-4567"},
		{"555-123-456", "555-123-456"},   // nine digits, verbatim
		{"+1 555 123 4567", "+1 555 123 4567"}, // eleven digits, verbatim
		{"", ""},
	}
	for _, c := range cases {
		if got := formatPhone(c.in); got != c.want {
			t.Errorf("formatPhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEsc(t *testing.T) {
	in := `<script>alert("x") & 'y'</script>`
	want := `&lt;script&gt;alert(&quot;x&quot;) &amp; &#039;y&#039;&lt;/script&gt;`
	if got := esc(in); got != want {
		t.Errorf("esc = %q, want %q", got, want)
	}
}
