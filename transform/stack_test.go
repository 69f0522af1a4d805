package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plotkit/engine/mark"
)

func floatCol(vs ...float32) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func strCol(vs ...string) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func TestStackZeroOffset(t *testing.T) {
	f, err := mark.NewFrame(map[string][]interface{}{
		"x": strCol("a", "a", "b", "b"),
		"y": floatCol(10, 20, 5, 15),
	}, 4)
	require.NoError(t, err)

	s := Stack{StackChannel: "y", GroupChannel: "x", Order: OrderAppearance, Offset: OffsetZero}
	out, err := s.Apply(context.Background(), f, mark.BBox{}, mark.AdjustContext{})
	require.NoError(t, err)

	y1 := out.Float32Column("y1")
	y2 := out.Float32Column("y2")
	require.Equal(t, []float32{0, 10, 0, 5}, y1)
	require.Equal(t, []float32{10, 30, 5, 20}, y2)
}

func TestStackNormalizeSumsToOne(t *testing.T) {
	f, err := mark.NewFrame(map[string][]interface{}{
		"x": strCol("a", "a", "a"),
		"y": floatCol(1, 2, 1),
	}, 3)
	require.NoError(t, err)

	s := Stack{StackChannel: "y", GroupChannel: "x", Offset: OffsetNormalize}
	out, err := s.Apply(context.Background(), f, mark.BBox{}, mark.AdjustContext{})
	require.NoError(t, err)

	y2 := out.Float32Column("y2")
	require.InDelta(t, 1.0, y2[2], 1e-3)
}
