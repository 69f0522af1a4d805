package mark

import (
	"context"
	"math"
	"strconv"

	"github.com/plotkit/engine/arrowtable"
	"github.com/plotkit/engine/coerce"
	"github.com/plotkit/engine/errs"
	"github.com/plotkit/engine/evalctx"
	"github.com/plotkit/engine/scene"
)

// Datasets resolves a mark's data source to its evaluated table, per
// spec.md §4.8 step 1: a variable-bound mark reads the runtime's output
// map; an inline mark uses its own table; a mark with neither has no
// data (scalar encodings only).
type Datasets interface {
	Dataset(name string) (*arrowtable.Table, bool)
}

// Compile evaluates a declarative Mark into a primitive scene.Mark,
// implementing the six-step algorithm of spec.md §4.8.
func Compile(ctx context.Context, m *Mark, datasets Datasets, scales map[string]ScaleBinding, actx AdjustContext) (*scene.Mark, error) {
	// Step 1: resolve the data source.
	var src *arrowtable.Table
	if m.Data.Inline != nil {
		src = m.Data.Inline
	} else if m.Data.Variable != nil {
		t, ok := datasets.Dataset(m.Data.Variable.Name())
		if !ok {
			return nil, &errs.VariableNotFound{Name: m.Data.Variable.Name()}
		}
		src = t
	}

	// Step 2: evaluate each encoding expression into one projection.
	exprs := make(map[string]evalctx.Expr, len(m.Channels))
	for ch, enc := range m.Channels {
		exprs[ch] = enc.Expr
	}
	var columns map[string][]interface{}
	n := 1
	switch {
	case src != nil:
		var err error
		columns, n, err = evalctx.Project(src, exprs)
		if err != nil {
			return nil, err
		}
	case m.Data.Frame != nil:
		var err error
		columns, n, err = projectFrame(m.Data.Frame, exprs)
		if err != nil {
			return nil, err
		}
	default:
		columns = make(map[string][]interface{}, len(exprs))
		for ch, e := range exprs {
			v, err := evalctx.EvalRow(e, evalctx.Row{})
			if err != nil {
				return nil, err
			}
			columns[ch] = []interface{}{v}
		}
	}
	frame, err := NewFrame(columns, n)
	if err != nil {
		return nil, err
	}

	// Step 3: apply scales, then the coordinate-system position
	// transform.
	for ch, enc := range m.Channels {
		if enc.ScaleName == "" {
			continue
		}
		binding, ok := scales[enc.ScaleName]
		if !ok {
			return nil, &errs.VariableNotFound{Name: enc.ScaleName}
		}
		scaled, err := binding.Apply(frame.Columns[ch])
		if err != nil {
			return nil, err
		}
		frame = frame.With(ch, scaled)
	}
	if m.Coord != nil {
		frame, err = applyCoordTransform(m.Coord, frame)
		if err != nil {
			return nil, err
		}
	}

	// Step 4: apply the adjust chain, with a computed bbox.
	bbox := computeBBox(frame)
	frame, err = applyAdjusts(ctx, m.Adjusts, frame, bbox, actx)
	if err != nil {
		return nil, err
	}

	// Step 5: emit the primitive scene mark.
	sm, err := emitSceneMark(m, frame)
	if err != nil {
		return nil, err
	}

	// Step 6: apply derive, if present, recursively compiling its
	// result.
	if m.Derive != nil {
		child, err := m.Derive.Apply(ctx, frame, m)
		if err != nil {
			return nil, err
		}
		if child != nil {
			childScene, err := Compile(ctx, child, datasets, scales, actx)
			if err != nil {
				return nil, err
			}
			sm.Children = append(sm.Children, childScene)
		}
	}

	return sm, nil
}

// projectFrame evaluates exprs against an already-resolved Frame (a
// Derive-produced child mark's data source): a plain Column reference
// reads the named column directly, anything else is evaluated row by
// row against the frame's values.
func projectFrame(f *Frame, exprs map[string]evalctx.Expr) (map[string][]interface{}, int, error) {
	out := make(map[string][]interface{}, len(exprs))
	for ch, e := range exprs {
		if col, ok := e.(evalctx.Column); ok {
			out[ch] = f.Columns[col.Name]
			continue
		}
		vals := make([]interface{}, f.Len)
		for i := 0; i < f.Len; i++ {
			row := make(evalctx.Row, len(f.Columns))
			for name, c := range f.Columns {
				if i < len(c) {
					row[name] = c[i]
				}
			}
			v, err := evalctx.EvalRow(e, row)
			if err != nil {
				return nil, 0, err
			}
			vals[i] = v
		}
		out[ch] = vals
	}
	return out, f.Len, nil
}

// applyCoordTransform replaces a mark's declared position channels with
// screen-space {x, y}, per spec.md §4.8 step 3: "Position channels for
// polar coordinates are additionally transformed via x = r*cos(theta),
// y = r*sin(theta) (cartesian is identity)".
func applyCoordTransform(coord CoordSystem, f *Frame) (*Frame, error) {
	if _, isCartesian := coord.(Cartesian); isCartesian {
		return f, nil
	}
	required := coord.RequiredChannels()
	for _, ch := range required {
		if _, ok := f.Columns[ch]; !ok {
			return nil, &errs.MissingChannelError{Coord: coord.Name(), Channel: ch}
		}
	}
	xs := make([]interface{}, f.Len)
	ys := make([]interface{}, f.Len)
	for i := 0; i < f.Len; i++ {
		pos := make(map[string]float32, len(required))
		for _, ch := range required {
			pos[ch] = toFloat32(f.Columns[ch][i])
		}
		x, y := coord.ToScreen(pos)
		xs[i] = x
		ys[i] = y
	}
	out := f.With("x", xs)
	out = out.With("y", ys)
	return out, nil
}

func computeBBox(f *Frame) BBox {
	xs, xok := f.Columns["x"]
	ys, yok := f.Columns["y"]
	if !xok || !yok || f.Len == 0 {
		return BBox{}
	}
	bb := BBox{XMin: float32(math.Inf(1)), YMin: float32(math.Inf(1)), XMax: float32(math.Inf(-1)), YMax: float32(math.Inf(-1))}
	for i := 0; i < f.Len; i++ {
		x, y := toFloat32(xs[i]), toFloat32(ys[i])
		if x < bb.XMin {
			bb.XMin = x
		}
		if x > bb.XMax {
			bb.XMax = x
		}
		if y < bb.YMin {
			bb.YMin = y
		}
		if y > bb.YMax {
			bb.YMax = y
		}
	}
	return bb
}

// emitSceneMark applies each channel's encoding macro (spec.md §4.8
// "Encoding macros define the per-channel compilation policy") and
// builds the primitive scene.Mark.
func emitSceneMark(m *Mark, f *Frame) (*scene.Mark, error) {
	channels := make(map[string]scene.Field, len(m.Channels)+len(m.Details))
	for ch, enc := range m.Channels {
		field, err := compileChannel(enc, f.Columns[ch])
		if err != nil {
			return nil, err
		}
		channels[ch] = field
	}
	// Screen-space x/y written by a non-cartesian coordinate transform
	// are emitted as numeric arrays when the mark does not declare them.
	for _, ch := range []string{"x", "y"} {
		if _, declared := m.Channels[ch]; declared {
			continue
		}
		if _, ok := f.Columns[ch]; ok {
			channels[ch] = scene.ArrayField(f.Float32Column(ch))
		}
	}
	for _, d := range m.Details {
		col, ok := f.Columns[d]
		if !ok {
			continue
		}
		channels[d] = passthroughField(col)
	}
	return &scene.Mark{
		Kind:     m.Kind,
		Name:     m.Name,
		ZIndex:   m.ZIndex,
		Len:      f.Len,
		Channels: channels,
	}, nil
}

func compileChannel(enc Encoding, values []interface{}) (scene.Field, error) {
	switch enc.Kind {
	case ChannelNumeric:
		nums := make([]float32, len(values))
		for i, v := range values {
			nums[i] = toFloat32OrNaN(v)
		}
		return coerceField(coerce.Collapse(nums)), nil
	case ChannelColor:
		cols := make([]scene.Color, len(values))
		for i, v := range values {
			cols[i] = coerce.Color(v)
		}
		return colorField(cols), nil
	case ChannelString:
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = toDisplayString(v)
		}
		return stringField(strs), nil
	case ChannelEnum:
		nums := make([]float32, len(values))
		for i, v := range values {
			idx, err := coerce.Enum(enc.EnumName, v)
			if err != nil {
				return scene.Field{}, err
			}
			nums[i] = float32(idx)
		}
		return coerceField(coerce.Collapse(nums)), nil
	case ChannelPath:
		paths := make([]scene.PathData, len(values))
		for i, v := range values {
			paths[i] = coerce.Path(v)
		}
		return pathField(paths), nil
	case ChannelSymbolShape:
		paths := make([]scene.PathData, len(values))
		for i, v := range values {
			paths[i] = coerce.SymbolShape(v)
		}
		return pathField(paths), nil
	case ChannelPathTransform:
		xforms := make([]coerce.PathTransform, len(values))
		for i, v := range values {
			xforms[i] = coerce.ParsePathTransform(v)
		}
		return scene.ArrayField(xforms), nil
	case ChannelStrokeDash:
		if len(values) == 0 {
			return scene.Field{}, nil
		}
		return scene.ScalarField(coerce.StrokeDash(values[0])), nil
	default:
		return scene.Field{}, &errs.InternalError{Msg: "unhandled channel kind"}
	}
}

func toFloat32OrNaN(v interface{}) float32 {
	switch x := v.(type) {
	case float32:
		return x
	case float64:
		return float32(x)
	default:
		return float32(math.NaN())
	}
}

func toDisplayString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	default:
		return ""
	}
}

func coerceField(s coerce.ScalarOrArray[float32]) scene.Field {
	if s.IsScalar {
		return scene.ScalarField(s.Scalar)
	}
	return scene.ArrayField(s.Array)
}

func colorField(cols []scene.Color) scene.Field {
	if allEqual(cols) {
		return scene.ScalarField(cols[0])
	}
	return scene.ArrayField(cols)
}

func allEqual(cols []scene.Color) bool {
	if len(cols) == 0 {
		return false
	}
	for _, c := range cols[1:] {
		if c != cols[0] {
			return false
		}
	}
	return true
}

func stringField(strs []string) scene.Field {
	s := coerce.Collapse(strs)
	if s.IsScalar {
		return scene.ScalarField(s.Scalar)
	}
	return scene.ArrayField(s.Array)
}

func pathField(paths []scene.PathData) scene.Field {
	return scene.ArrayField(paths)
}

func passthroughField(col []interface{}) scene.Field {
	if len(col) == 1 {
		return scene.ScalarField(col[0])
	}
	return scene.ArrayField(col)
}
