package sketch

import (
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Transparent is fully transparent black.
var Transparent = Color{Class: "color"}

// RGBA returns a color from 0..255 channels and a 0..1 alpha.
func RGBA(r, g, b uint8, alpha float64) Color {
	return Color{
		Class: "color",
		Red:   float64(r) / 255,
		Green: float64(g) / 255,
		Blue:  float64(b) / 255,
		Alpha: alpha,
	}
}

// ParseColor understands CSS hex notation (#rgb, #rgba, #rrggbb,
// #rrggbbaa), rgb()/rgba() and named colors. Unknown values are reported
// with ok false and resolve to transparent.
func ParseColor(css string) (Color, bool) {
	s := strings.ToLower(strings.TrimSpace(css))
	switch {
	case s == "" || s == "transparent" || s == "none":
		return Transparent, s != ""
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return RGBA(c.R, c.G, c.B, float64(c.A)/255), true
	}
	return Transparent, false
}

// MustColor is ParseColor ignoring failures.
func MustColor(css string) Color {
	c, _ := ParseColor(css)
	return c
}

func parseHex(h string) (Color, bool) {
	if len(h) == 3 || len(h) == 4 {
		var sb strings.Builder
		for _, r := range h {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		h = sb.String()
	}
	if len(h) != 6 && len(h) != 8 {
		return Transparent, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Transparent, false
	}
	alpha := 1.0
	if len(h) == 8 {
		alpha = float64(v&0xff) / 255
		v >>= 8
	}
	return RGBA(uint8(v>>16), uint8(v>>8), uint8(v), alpha), true
}

func parseFunc(s string) (Color, bool) {
	lo, hi := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if lo < 0 || hi < lo {
		return Transparent, false
	}
	args := strings.FieldsFunc(s[lo+1:hi], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return Transparent, false
	}
	var ch [3]uint8
	for i := range ch {
		v, ok := channel(args[i])
		if !ok {
			return Transparent, false
		}
		ch[i] = v
	}
	alpha := 1.0
	if len(args) == 4 {
		a, ok := fraction(args[3])
		if !ok {
			return Transparent, false
		}
		alpha = a
	}
	return RGBA(ch[0], ch[1], ch[2], alpha), true
}

func channel(arg string) (uint8, bool) {
	if p, found := strings.CutSuffix(arg, "%"); found {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		return uint8(clampUnit(f/100)*255 + 0.5), true
	}
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, false
	}
	return uint8(clampUnit(f/255)*255 + 0.5), true
}

func fraction(arg string) (float64, bool) {
	if p, found := strings.CutSuffix(arg, "%"); found {
		f, err := strconv.ParseFloat(p, 64)
		return clampUnit(f / 100), err == nil
	}
	f, err := strconv.ParseFloat(arg, 64)
	return clampUnit(f), err == nil
}

func clampUnit(f float64) float64 {
	return min(max(f, 0), 1)
}
