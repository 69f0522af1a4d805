package coerce

import (
	"strconv"
	"strings"

	"github.com/plotkit/engine/scene"
)

// Transparent is the parse-failure fallback color (spec.md §4.6 "color:
// ... defaulting to transparent on parse failure").
var Transparent = scene.Color{}

// Color parses a CSS color string or a length-4 numeric list into a
// scene.Color, defaulting to Transparent on any parse failure (spec.md
// §4.6).
func Color(v interface{}) scene.Color {
	switch x := v.(type) {
	case string:
		c, ok := parseCSSColor(x)
		if !ok {
			return Transparent
		}
		return c
	case []float32:
		if len(x) != 4 {
			return Transparent
		}
		return scene.Color{R: x[0], G: x[1], B: x[2], A: x[3]}
	case []float64:
		if len(x) != 4 {
			return Transparent
		}
		return scene.Color{R: float32(x[0]), G: float32(x[1]), B: float32(x[2]), A: float32(x[3])}
	case scene.Color:
		return x
	default:
		return Transparent
	}
}

// namedColors covers the CSS keyword colors most charts actually use;
// anything else falls through to the #rrggbb[aa] and rgb()/rgba() forms.
var namedColors = map[string]scene.Color{
	"black":       {R: 0, G: 0, B: 0, A: 1},
	"white":       {R: 1, G: 1, B: 1, A: 1},
	"red":         {R: 1, G: 0, B: 0, A: 1},
	"green":       {R: 0, G: 0.5019608, B: 0, A: 1},
	"blue":        {R: 0, G: 0, B: 1, A: 1},
	"gray":        {R: 0.5019608, G: 0.5019608, B: 0.5019608, A: 1},
	"grey":        {R: 0.5019608, G: 0.5019608, B: 0.5019608, A: 1},
	"transparent": {R: 0, G: 0, B: 0, A: 0},
	"orange":      {R: 1, G: 0.64705884, B: 0, A: 1},
	"yellow":      {R: 1, G: 1, B: 0, A: 1},
	"steelblue":   {R: 0.27450982, G: 0.50980395, B: 0.7058824, A: 1},
}

func parseCSSColor(s string) (scene.Color, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if c, ok := namedColors[lower]; ok {
		return c, true
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(lower, "rgba(") || strings.HasPrefix(lower, "rgb(") {
		return parseRGBFunc(s)
	}
	return scene.Color{}, false
}

func parseHexColor(hex string) (scene.Color, bool) {
	expand := func(c byte) (byte, byte) { return c, c }
	var r, g, b, a byte = 0, 0, 0, 255
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return scene.Color{}, false
		}
	}
	switch len(hex) {
	case 3, 4:
		rh, rl := expand(hex[0])
		gh, gl := expand(hex[1])
		bh, bl := expand(hex[2])
		r = hexByte(rh, rl)
		g = hexByte(gh, gl)
		b = hexByte(bh, bl)
		if len(hex) == 4 {
			ah, al := expand(hex[3])
			a = hexByte(ah, al)
		}
	case 6, 8:
		r = hexByte(hex[0], hex[1])
		g = hexByte(hex[2], hex[3])
		b = hexByte(hex[4], hex[5])
		if len(hex) == 8 {
			a = hexByte(hex[6], hex[7])
		}
	default:
		return scene.Color{}, false
	}
	return scene.Color{
		R: float32(r) / 255,
		G: float32(g) / 255,
		B: float32(b) / 255,
		A: float32(a) / 255,
	}, true
}

func hexByte(hi, lo byte) byte {
	h, ok1 := hexDigit(hi)
	l, ok2 := hexDigit(lo)
	if !ok1 || !ok2 {
		return 0
	}
	return h<<4 | l
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func parseRGBFunc(s string) (scene.Color, bool) {
	open := strings.Index(s, "(")
	close := strings.LastIndex(s, ")")
	if open < 0 || close < 0 || close < open {
		return scene.Color{}, false
	}
	parts := strings.Split(s[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return scene.Color{}, false
	}
	vals := make([]float64, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimSuffix(p, "%")
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return scene.Color{}, false
		}
		vals[i] = f
	}
	c := scene.Color{
		R: float32(vals[0] / 255),
		G: float32(vals[1] / 255),
		B: float32(vals[2] / 255),
		A: 1,
	}
	if len(vals) == 4 {
		c.A = float32(vals[3])
	}
	return c, true
}
