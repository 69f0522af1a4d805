package transform

import (
	"context"

	"github.com/plotkit/engine/evalctx"
	"github.com/plotkit/engine/mark"
	"github.com/plotkit/engine/scene"
)

// LabelPoints implements spec.md §4.9's Derive exemplar: it produces a
// text mark positioned at each parent row's x/y plus a configured offset,
// with a configured alignment; the extent of the parent's marks (their
// bounding boxes) is not used. It inherits the parent's
// row identity by reading the parent's post-adjust frame directly
// rather than re-resolving a data source.
type LabelPoints struct {
	TextChannel string // channel on the parent frame holding label text
	OffsetX     float32
	OffsetY     float32
	Align       scene.TextAlign
	Baseline    scene.TextBaseline
}

func (l LabelPoints) Name() string { return "label_points" }

func (l LabelPoints) Apply(ctx context.Context, f *mark.Frame, parent *mark.Mark) (*mark.Mark, error) {
	xs := f.Float32Column("x")
	ys := f.Float32Column("y")

	labelX := make([]interface{}, f.Len)
	labelY := make([]interface{}, f.Len)
	for i := range labelX {
		labelX[i] = xs[i] + l.OffsetX
		labelY[i] = ys[i] + l.OffsetY
	}
	align := make([]interface{}, f.Len)
	baseline := make([]interface{}, f.Len)
	for i := range align {
		align[i] = float32(l.Align)
		baseline[i] = float32(l.Baseline)
	}
	labelFrame, err := mark.NewFrame(map[string][]interface{}{
		"x":         labelX,
		"y":         labelY,
		"text_repr": f.Columns[l.TextChannel],
		"align":     align,
		"baseline":  baseline,
	}, f.Len)
	if err != nil {
		return nil, err
	}

	child := &mark.Mark{
		Name:  parent.Name + "/label",
		Kind:  scene.KindText,
		Data:  mark.DataSource{Frame: labelFrame},
		Coord: mark.Cartesian{},
		Channels: map[string]mark.Encoding{
			"x":        {Expr: evalctx.Column{Name: "x"}, Kind: mark.ChannelNumeric},
			"y":        {Expr: evalctx.Column{Name: "y"}, Kind: mark.ChannelNumeric},
			"text":     {Expr: evalctx.Column{Name: "text_repr"}, Kind: mark.ChannelString},
			"align":    {Expr: evalctx.Column{Name: "align"}, Kind: mark.ChannelNumeric},
			"baseline": {Expr: evalctx.Column{Name: "baseline"}, Kind: mark.ChannelNumeric},
		},
		ZIndex: parent.ZIndex + 1,
	}
	return child, nil
}
