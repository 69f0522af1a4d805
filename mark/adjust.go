package mark

import (
	"context"

	"github.com/plotkit/engine/evalctx"
)

// AdjustContext is the transform context adjust and derive steps
// receive alongside the data (spec.md §4.8 step 4 "{plot dimensions,
// session}").
type AdjustContext struct {
	Width, Height float32
	Session       *evalctx.Session
}

// Adjust is a post-scale adjust transform (spec.md §4.8 step 4,
// §4.9): it receives the batched, scaled data frame plus its bounding
// box and the transform context, and returns a new Frame, which may add
// or drop columns. Multiple adjusts chain in declaration order.
type Adjust interface {
	Name() string
	Apply(ctx context.Context, f *Frame, bbox BBox, actx AdjustContext) (*Frame, error)
}

// Derive is a child-mark generator (spec.md §3.6, §4.9 "Derive
// (LabelPoints exemplar)"): it receives the post-scale, post-adjust data
// frame and the parent's declarative Mark, and returns an additional
// declarative Mark to be recursively compiled.
type Derive interface {
	Name() string
	Apply(ctx context.Context, f *Frame, parent *Mark) (*Mark, error)
}

func applyAdjusts(ctx context.Context, adjusts []Adjust, f *Frame, bbox BBox, actx AdjustContext) (*Frame, error) {
	cur := f
	for _, a := range adjusts {
		next, err := a.Apply(ctx, cur, bbox, actx)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
