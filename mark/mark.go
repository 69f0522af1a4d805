// Package mark implements the declarative Mark model and its compiler
// (spec.md §3.6, §4.8): a data source binding, a coordinate system, a
// channel→encoding map, optional details columns, an adjust chain, and
// an optional derive generator, compiled into a primitive scene.Mark.
package mark

import (
	"github.com/plotkit/engine/arrowtable"
	"github.com/plotkit/engine/evalctx"
	"github.com/plotkit/engine/scene"
	"github.com/plotkit/engine/variable"
)

// ChannelKind selects the encoding macro compileChannel applies to a
// channel: numeric values coerce to float32 (non-numbers become NaN),
// colors go through coerce.Color, strings through toDisplayString
// (strings and floats are formatted; any other value becomes ""), enums
// through the variant lookup named by Encoding.EnumName, and path,
// symbol-shape and path-transform values through their coerce parsers.
// Stroke dash is read from the first row only.
type ChannelKind int

const (
	ChannelNumeric ChannelKind = iota
	ChannelColor
	ChannelString
	ChannelEnum
	ChannelPath
	ChannelPathTransform
	ChannelSymbolShape
	ChannelStrokeDash
)

// Encoding is one channel's compilation recipe: the logical expression
// to project, the target channel kind, and an optional named scale to
// apply to the projected values before emission.
type Encoding struct {
	Expr      evalctx.Expr
	Kind      ChannelKind
	EnumName  string // only meaningful when Kind == ChannelEnum
	ScaleName string // "" means no scale is attached
}

// DataSource is a mark's data binding (spec.md §3.6): a named dataset
// variable resolved from the runtime's output map, an inline table, an
// already-resolved Frame (used by Derive-produced marks, which inherit
// their parent's row identity rather than re-querying the runtime), or
// neither (scalar-only encodings).
type DataSource struct {
	Variable *variable.Variable
	Inline   *arrowtable.Table
	Frame    *Frame
}

// BBox is the computed bounding-box struct column adjust transforms
// receive (spec.md §4.8 step 4).
type BBox struct {
	XMin, YMin, XMax, YMax float32
}

// Mark is the declarative mark spec.md §3.6 describes.
type Mark struct {
	Name     string
	Kind     scene.Kind
	Data     DataSource
	Coord    CoordSystem
	Channels map[string]Encoding
	Details  []string // passthrough columns carried through unscaled

	Adjusts []Adjust
	Derive  Derive

	ZIndex int
	Clip   bool
}

// ScaleBinding is the evaluated-scale value the runtime's output map
// carries for a mark's named scale references (spec.md §4.8 step 3
// "look up the evaluated scale by name in the runtime's output map").
// Boxed inside a taskvalue.Scalar.Value, since TaskValue has no
// dedicated Scale kind (spec.md §3.2's closed TaskValue variant set
// covers Val/Expr/Dataset/Function/Mark only).
type ScaleBinding struct {
	Apply func(values []interface{}) ([]interface{}, error)
}
