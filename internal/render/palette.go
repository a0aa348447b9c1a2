// internal/render/palette.go
//
// Brand-color palette derivation.
//
// Context
// -------
// Tenants pick a single brand color.  The rendered document themes every
// "brand" utility class from an 11-step shade ramp derived from that one
// color: hex → HSL, hold the hue, walk lightness from near-white (50)
// down to near-black (950), and re-encode.  The 600 slot is the input
// color verbatim, so the tenant's exact pick always survives the round
// trip.  The two lightest steps get a small saturation boost so pale
// tints do not wash out to gray.
//
// Input is trusted to be six hex digits (an optional leading "#" is
// tolerated).  Malformed input yields garbage shades, not an error; the
// ramp is cosmetic and the caller has no recovery path anyway.
//
// Notes
// -----
//   - Conversion formulas are the standard CSS colorimetric ones.
//   - Oxford commas, two spaces after periods.

package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PaletteWeights lists the ramp slots in light-to-dark order.
var PaletteWeights = []string{
	"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950",
}

// weight → target lightness (percent).  600 is the identity anchor and has
// no entry here.
var paletteLightness = map[string]float64{
	"50":  97,
	"100": 93,
	"200": 86,
	"300": 75,
	"400": 64,
	"500": 55,
	"700": 40,
	"800": 32,
	"900": 24,
	"950": 16,
}

// Palette derives the full shade ramp for one brand color.  The returned
// map is keyed by nominal weight ("50" … "950"); Palette(c)["600"] == c.
func Palette(hex string) map[string]string {
	h, s, _ := hexToHSL(hex)

	p := make(map[string]string, len(PaletteWeights))
	for _, w := range PaletteWeights {
		switch w {
		case "50":
			p[w] = hslToHex(h, min(s+10, 100), paletteLightness[w])
		case "100":
			p[w] = hslToHex(h, min(s+5, 100), paletteLightness[w])
		case "600":
			p[w] = hex
		default:
			p[w] = hslToHex(h, s, paletteLightness[w])
		}
	}
	return p
}

// hexToHSL converts "#rrggbb" (or "rrggbb") to hue [0,360), saturation,
// and lightness in percent.  Values are rounded to whole numbers, which
// is all the ramp needs.
func hexToHSL(hex string) (h, s, l float64) {
	hex = strings.TrimPrefix(hex, "#")

	r := float64(hexByte(hex, 0)) / 255
	g := float64(hexByte(hex, 2)) / 255
	b := float64(hexByte(hex, 4)) / 255

	maxC := max(r, max(g, b))
	minC := min(r, min(g, b))
	l = (maxC + minC) / 2

	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}
		switch maxC {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		case b:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return roundF(h * 360), roundF(s * 100), roundF(l * 100)
}

// hslToHex re-encodes HSL (s, l in percent) as "#rrggbb".
func hslToHex(h, s, l float64) string {
	s /= 100
	l /= 100

	a := s * min(l, 1-l)
	f := func(n float64) byte {
		k := mod(n+h/30, 12)
		c := l - a*max(min(min(k-3, 9-k), 1), -1)
		return byte(roundF(255 * c))
	}
	return fmt.Sprintf("#%02x%02x%02x", f(0), f(8), f(4))
}

// Lightness returns the HSL lightness (percent) of a hex color.  Exposed
// for tests that assert ramp monotonicity.
func Lightness(hex string) float64 {
	_, _, l := hexToHSL(hex)
	return l
}

func hexByte(hex string, i int) uint8 {
	if len(hex) < i+2 {
		return 0
	}
	v, _ := strconv.ParseUint(hex[i:i+2], 16, 8)
	return uint8(v)
}

func roundF(v float64) float64 { return math.Round(v) }

func mod(v, m float64) float64 { return math.Mod(math.Mod(v, m)+m, m) }
