package performance

import (
	"math"
	"testing"
)

func TestTableLookupExactKey(t *testing.T) {
	tbl, err := NewTable(LLCruise, []float64{240, 300, 360}, [][]float64{{7.6}, {10.5}, {13.7}})
	if err != nil {
		t.Fatal(err)
	}
	row, err := tbl.Lookup(300)
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != 10.5 {
		t.Errorf("Lookup(300) = %v; want 10.5", row[0])
	}
}

func TestTableLookupInterpolates(t *testing.T) {
	// synthetic two-row table: every column is interpolated independently
	tbl, err := NewTable(NormalClimb, []float64{100, 200}, [][]float64{{10, 60, 4}, {20, 120, 8}})
	if err != nil {
		t.Fatal(err)
	}
	row, err := tbl.Lookup(150)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{15, 90, 6}
	for c := range want {
		if math.Abs(row[c]-want[c]) > 1e-12 {
			t.Errorf("Lookup(150)[%d] = %v; want %v", c, row[c], want[c])
		}
	}
}

func TestTableLookupClampsBeyondBounds(t *testing.T) {
	tbl, err := NewTable(LLCruise, []float64{240, 480}, [][]float64{{7.6}, {25.0}})
	if err != nil {
		t.Fatal(err)
	}
	low, err := tbl.Lookup(100)
	if err != nil {
		t.Fatal(err)
	}
	high, err := tbl.Lookup(600)
	if err != nil {
		t.Fatal(err)
	}
	if low[0] != 7.6 || high[0] != 25.0 {
		t.Errorf("clamped lookups = %v, %v; want 7.6, 25.0", low[0], high[0])
	}
}

func TestTableSortsUnorderedRows(t *testing.T) {
	tbl, err := NewTable(LLCruise, []float64{360, 240, 300}, [][]float64{{13.7}, {7.6}, {10.5}})
	if err != nil {
		t.Fatal(err)
	}
	row, err := tbl.Lookup(270)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(row[0]-9.05) > 1e-12 {
		t.Errorf("Lookup(270) = %v; want 9.05", row[0])
	}
}

func TestTableLookupEmpty(t *testing.T) {
	tbl, err := NewTable(MLCruise, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tbl.Lookup(300); err == nil {
		t.Fatal("expected error for empty table")
	}
}

func TestNewTableRejectsMalformedRows(t *testing.T) {
	if _, err := NewTable(LLCruise, []float64{1, 2}, [][]float64{{1}}); err == nil {
		t.Error("expected error for key/row length mismatch")
	}
	if _, err := NewTable(LLCruise, []float64{1, 2}, [][]float64{{1}, {1, 2}}); err == nil {
		t.Error("expected error for ragged rows")
	}
}
