package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plotkit/engine/mark"
)

func TestGroupMeanAggregation(t *testing.T) {
	f, err := mark.NewFrame(map[string][]interface{}{
		"cat":   strCol("a", "a", "b"),
		"value": floatCol(10, 20, 5),
	}, 3)
	require.NoError(t, err)

	g := Group{
		Fields:         []string{"cat"},
		PrimarySource:  "value",
		PrimaryChannel: "y",
		PrimaryAgg:     AggMean(),
	}
	out, err := g.Apply(context.Background(), f, mark.BBox{}, mark.AdjustContext{})
	require.NoError(t, err)
	require.Equal(t, 2, out.Len)

	cats := out.Columns["cat"]
	ys := out.Float32Column("y")
	for i, c := range cats {
		switch c {
		case "a":
			require.Equal(t, float32(15), ys[i])
		case "b":
			require.Equal(t, float32(5), ys[i])
		}
	}
}

func TestGroupCountAggregation(t *testing.T) {
	f, err := mark.NewFrame(map[string][]interface{}{
		"cat": strCol("a", "a", "a", "b"),
	}, 4)
	require.NoError(t, err)

	g := Group{
		Fields:         []string{"cat"},
		PrimaryChannel: "y",
		PrimarySource:  "cat",
		PrimaryAgg:     AggCount(),
	}
	out, err := g.Apply(context.Background(), f, mark.BBox{}, mark.AdjustContext{})
	require.NoError(t, err)
	require.Equal(t, 2, out.Len)
}
