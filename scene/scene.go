// Package scene defines the immutable scene graph value the mark compiler
// emits and the downstream GPU renderer consumes (spec.md §3.7, §6.2).
// Every type here is a plain value type with no behavior beyond what the
// renderer contract requires; the renderer itself is an out-of-scope
// external collaborator (spec.md §1).
package scene

import "reflect"

// Kind is the closed set of primitive scene mark variants.
type Kind int

const (
	KindArc Kind = iota
	KindArea
	KindImage
	KindLine
	KindPath
	KindRect
	KindRule
	KindSymbol
	KindText
	KindTrail
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindArc:
		return "arc"
	case KindArea:
		return "area"
	case KindImage:
		return "image"
	case KindLine:
		return "line"
	case KindPath:
		return "path"
	case KindRect:
		return "rect"
	case KindRule:
		return "rule"
	case KindSymbol:
		return "symbol"
	case KindText:
		return "text"
	case KindTrail:
		return "trail"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Color is a resolved RGBA color in [0, 1] per channel.
type Color struct{ R, G, B, A float32 }

// GradientStop is one offset/color pair of a gradient ramp.
type GradientStop struct {
	Offset float32
	Color  Color
}

// Gradient is a named linear or radial gradient referenced by one or more
// ColorOrGradient channel values.
type Gradient struct {
	Name  string
	Kind  string // "linear" or "radial"
	Stops []GradientStop
	X0, Y0, X1, Y1 float32 // linear endpoints, or radial center+focal per renderer convention
	R0, R1         float32 // radial radii
}

// ColorOrGradient is a single resolved color channel value: either a solid
// color or a reference to a gradient carried in the owning mark's
// Gradients slice.
type ColorOrGradient struct {
	Solid        *Color
	GradientName string
}

// Field is a single scene-mark channel's resolved values: either a scalar
// (len 1, broadcast across all N rows) or a length-N array. Exactly one of
// Scalar/Array is set, selected by IsArray.
type Field struct {
	IsArray bool
	Scalar  interface{}
	Array   interface{}
}

func ScalarField(v interface{}) Field { return Field{Scalar: v} }
func ArrayField(v interface{}) Field  { return Field{IsArray: true, Array: v} }

// Len returns 1 for a scalar field or the array length for an array field.
func (f Field) Len() int {
	if !f.IsArray {
		return 1
	}
	return arrayLen(f.Array)
}

func arrayLen(v interface{}) int {
	switch a := v.(type) {
	case []float32:
		return len(a)
	case []Color:
		return len(a)
	case []ColorOrGradient:
		return len(a)
	case []string:
		return len(a)
	case []bool:
		return len(a)
	case []PathData:
		return len(a)
	default:
		// Channel kinds this package does not itself name a type for
		// (e.g. coerce.PathTransform's path-transform channel) still
		// carry a plain Go slice; reflect rather than growing this
		// switch for every coercion package's output type.
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Slice {
			return rv.Len()
		}
		return 0
	}
}

// PathData is a resolved vector path: a verb stream and a flat points
// buffer, per the verb-code convention in spec.md §4.6 (0=begin, 1=line,
// 2=quad, 3=cubic, 4=end-open, 5=end-close).
type PathData struct {
	Verbs  []byte
	Points []float32
}

// Clip describes an optional clip region on a group mark.
type Clip struct {
	None bool
	Rect *ClipRect
	Path *PathData
}

type ClipRect struct{ X, Y, W, H float32 }

// Mark is one primitive scene mark: a Kind tag, a row count N, a map of
// channel name to resolved Field, and (for KindGroup only) child marks,
// an origin offset, and an optional clip.
type Mark struct {
	Kind      Kind
	Name      string
	ZIndex    int
	Len       int
	Channels  map[string]Field
	Gradients []Gradient

	// Group-only fields.
	Children []*Mark
	Origin   [2]float32
	Clip     Clip
}

// Graph is the top-level immutable output handed to the renderer.
type Graph struct {
	Marks  []*Mark
	Width  float32
	Height float32
	Origin [2]float32
}
