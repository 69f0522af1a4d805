package coerce

import (
	"math"
	"strconv"
	"strings"

	"github.com/plotkit/engine/scene"
)

// Path verb codes (spec.md §4.6): 0=begin, 1=line, 2=quad, 3=cubic,
// 4=end-open, 5=end-close.
const (
	VerbBegin byte = iota
	VerbLine
	VerbQuad
	VerbCubic
	VerbEndOpen
	VerbEndClose
)

// pathStruct is the alternate struct form spec.md §4.6 accepts directly
// alongside an SVG path string.
type pathStruct struct {
	Verbs  []byte
	Points []float32
}

// Path parses v into a scene.PathData: either an SVG path string
// (M/L/Q/C/Z commands, absolute or relative, following the verb-code
// convention spec.md §4.6 describes — actual SVG rendering is an
// out-of-scope external concern, so the mini path-grammar scanner below
// is hand-written) or a {verbs, points} struct.
func Path(v interface{}) scene.PathData {
	switch x := v.(type) {
	case string:
		return parseSVGPath(x)
	case pathStruct:
		return scene.PathData{Verbs: x.Verbs, Points: x.Points}
	case scene.PathData:
		return x
	default:
		return scene.PathData{}
	}
}

func parseSVGPath(d string) scene.PathData {
	var verbs []byte
	var points []float32
	var cx, cy float32
	i := 0
	n := len(d)
	skipSep := func() {
		for i < n && (d[i] == ' ' || d[i] == ',' || d[i] == '\t' || d[i] == '\n') {
			i++
		}
	}
	readNum := func() (float32, bool) {
		skipSep()
		start := i
		if i < n && (d[i] == '+' || d[i] == '-') {
			i++
		}
		for i < n && (d[i] >= '0' && d[i] <= '9' || d[i] == '.') {
			i++
		}
		if start == i {
			return 0, false
		}
		f, err := strconv.ParseFloat(d[start:i], 32)
		if err != nil {
			return 0, false
		}
		return float32(f), true
	}

	for i < n {
		skipSep()
		if i >= n {
			break
		}
		cmd := d[i]
		i++
		switch cmd {
		case 'M', 'm':
			x, ok1 := readNum()
			y, ok2 := readNum()
			if !ok1 || !ok2 {
				break
			}
			if cmd == 'm' {
				x, y = cx+x, cy+y
			}
			verbs = append(verbs, VerbBegin)
			points = append(points, x, y)
			cx, cy = x, y
		case 'L', 'l':
			x, ok1 := readNum()
			y, ok2 := readNum()
			if !ok1 || !ok2 {
				break
			}
			if cmd == 'l' {
				x, y = cx+x, cy+y
			}
			verbs = append(verbs, VerbLine)
			points = append(points, x, y)
			cx, cy = x, y
		case 'Q', 'q':
			x1, a1 := readNum()
			y1, a2 := readNum()
			x, a3 := readNum()
			y, a4 := readNum()
			if !a1 || !a2 || !a3 || !a4 {
				break
			}
			if cmd == 'q' {
				x1, y1, x, y = cx+x1, cy+y1, cx+x, cy+y
			}
			verbs = append(verbs, VerbQuad)
			points = append(points, x1, y1, x, y)
			cx, cy = x, y
		case 'C', 'c':
			x1, a1 := readNum()
			y1, a2 := readNum()
			x2, a3 := readNum()
			y2, a4 := readNum()
			x, a5 := readNum()
			y, a6 := readNum()
			if !a1 || !a2 || !a3 || !a4 || !a5 || !a6 {
				break
			}
			if cmd == 'c' {
				x1, y1 = cx+x1, cy+y1
				x2, y2 = cx+x2, cy+y2
				x, y = cx+x, cy+y
			}
			verbs = append(verbs, VerbCubic)
			points = append(points, x1, y1, x2, y2, x, y)
			cx, cy = x, y
		case 'Z', 'z':
			verbs = append(verbs, VerbEndClose)
		default:
			// Unknown command: stop parsing rather than loop forever.
			return scene.PathData{Verbs: append(verbs, VerbEndOpen), Points: points}
		}
	}
	if len(verbs) == 0 || verbs[len(verbs)-1] != VerbEndClose {
		verbs = append(verbs, VerbEndOpen)
	}
	return scene.PathData{Verbs: verbs, Points: points}
}

// PathTransform is a 2D affine matrix {a,b,c,d,e,f} in the SVG
// `matrix(a,b,c,d,e,f)` convention.
type PathTransform struct{ A, B, C, D, E, F float32 }

var identityTransform = PathTransform{A: 1, D: 1}

// ParsePathTransform parses an SVG transform string (rotate, translate,
// scale, skewX, matrix) or accepts an already-resolved PathTransform
// struct (spec.md §4.6 "path_transform").
func ParsePathTransform(v interface{}) PathTransform {
	switch x := v.(type) {
	case PathTransform:
		return x
	case string:
		return parseSVGTransform(x)
	default:
		return identityTransform
	}
}

func parseSVGTransform(s string) PathTransform {
	t := identityTransform
	s = strings.TrimSpace(s)
	for _, fn := range splitTransformFuncs(s) {
		name, args := fn.name, fn.args
		switch name {
		case "translate":
			tx := arg(args, 0, 0)
			ty := arg(args, 1, 0)
			t = compose(t, PathTransform{A: 1, D: 1, E: tx, F: ty})
		case "scale":
			sx := arg(args, 0, 1)
			sy := arg(args, 1, sx)
			t = compose(t, PathTransform{A: sx, D: sy})
		case "rotate":
			deg := arg(args, 0, 0)
			rad := float64(deg) * 3.141592653589793 / 180
			cos, sin := cosf(rad), sinf(rad)
			t = compose(t, PathTransform{A: cos, B: sin, C: -sin, D: cos})
		case "skewX":
			deg := arg(args, 0, 0)
			rad := float64(deg) * 3.141592653589793 / 180
			t = compose(t, PathTransform{A: 1, D: 1, C: tanf(rad)})
		case "matrix":
			if len(args) == 6 {
				t = compose(t, PathTransform{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]})
			}
		}
	}
	return t
}

type transformFunc struct {
	name string
	args []float32
}

func splitTransformFuncs(s string) []transformFunc {
	var out []transformFunc
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == ',') {
			i++
		}
		start := i
		for i < len(s) && s[i] != '(' {
			i++
		}
		if i >= len(s) {
			break
		}
		name := strings.TrimSpace(s[start:i])
		i++ // skip '('
		argStart := i
		for i < len(s) && s[i] != ')' {
			i++
		}
		argStr := s[argStart:i]
		i++ // skip ')'
		out = append(out, transformFunc{name: name, args: parseFloatList(argStr)})
	}
	return out
}

func parseFloatList(s string) []float32 {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' })
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err == nil {
			out = append(out, float32(v))
		}
	}
	return out
}

func arg(args []float32, i int, def float32) float32 {
	if i < len(args) {
		return args[i]
	}
	return def
}

// compose returns the matrix product a*b: the transform equivalent to
// applying b first, then a (SVG transform-list order, left to right).
func compose(a, b PathTransform) PathTransform {
	return PathTransform{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

func cosf(rad float64) float32 { return float32(math.Cos(rad)) }
func sinf(rad float64) float32 { return float32(math.Sin(rad)) }
func tanf(rad float64) float32 { return float32(math.Tan(rad)) }
