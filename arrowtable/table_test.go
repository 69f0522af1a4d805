package arrowtable

import "testing"

func TestNewCoercesNullable(t *testing.T) {
	rec := Float64Column("x", []float64{1, 2, 3})
	tbl, err := SingleBatch(rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tbl.Schema().Field(0).Nullable {
		t.Fatalf("want schema field coerced nullable")
	}
	if tbl.NumRows() != 3 {
		t.Fatalf("got %d rows", tbl.NumRows())
	}
}

func TestHashEqualSameContent(t *testing.T) {
	a, _ := SingleBatch(Float64Column("x", []float64{1, 2, 3}))
	b, _ := SingleBatch(Float64Column("x", []float64{1, 2, 3}))
	if !a.Equal(b) {
		t.Fatalf("want equal tables with identical content to hash equal")
	}
}

func TestHashDiffersOnContent(t *testing.T) {
	a, _ := SingleBatch(Float64Column("x", []float64{1, 2, 3}))
	b, _ := SingleBatch(Float64Column("x", []float64{1, 2, 4}))
	if a.Equal(b) {
		t.Fatalf("want differing content to hash differently")
	}
}

func TestHashDiffersOnSchema(t *testing.T) {
	a, _ := SingleBatch(Float64Column("x", []float64{1, 2, 3}))
	b, _ := SingleBatch(StringColumn("x", []string{"1", "2", "3"}))
	if a.Equal(b) {
		t.Fatalf("want differing schema to hash differently")
	}
}
