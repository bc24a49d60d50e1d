// Package performance maps aircraft operations to climb, descent and cruise
// metrics by linear interpolation over tabular reference data. Tables are
// immutable after construction; lookups outside the table bounds clamp to
// the nearest edge row.
package performance

import (
	"errors"
	"fmt"
	"sort"
)

// Operation identifies one performance table of the aircraft dataset.
type Operation string

const (
	// NormalClimb and NavDescent are keyed by flight level (hundreds of
	// feet) and yield distance, time and fuel burn.
	NormalClimb Operation = "NORMAL_CLIMB"
	NavDescent  Operation = "NAV_DESCENT"

	// LLCruise is keyed by airspeed in knots, MLCruise by flight level.
	LLCruise Operation = "LL_CRUISE"
	MLCruise Operation = "ML_CRUISE"
)

// ErrNoData is returned when a table cannot produce a value for a key.
var ErrNoData = errors.New("performance: no data for lookup")

// Table is a sorted lookup table for one operation: a key column and a fixed
// number of numeric metric columns per row.
type Table struct {
	op   Operation
	keys []float64
	rows [][]float64
}

// NewTable builds a table from parallel key and row slices. Rows are sorted
// by key; every row must have the same number of columns.
func NewTable(op Operation, keys []float64, rows [][]float64) (*Table, error) {
	if len(keys) != len(rows) {
		return nil, fmt.Errorf("performance: %s: %d keys for %d rows", op, len(keys), len(rows))
	}
	width := -1
	for i, r := range rows {
		if width == -1 {
			width = len(r)
		}
		if len(r) != width {
			return nil, fmt.Errorf("performance: %s: row %d has %d columns, want %d", op, i, len(r), width)
		}
	}

	t := &Table{
		op:   op,
		keys: make([]float64, len(keys)),
		rows: make([][]float64, len(rows)),
	}
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })
	for i, j := range idx {
		t.keys[i] = keys[j]
		t.rows[i] = append([]float64(nil), rows[j]...)
	}
	return t, nil
}

// Operation returns the operation this table serves.
func (t *Table) Operation() Operation { return t.op }

// Lookup returns the metric columns for key. An exact key returns the stored
// row; a key between two rows returns each column linearly interpolated; a
// key beyond either end returns the nearest edge row unchanged.
func (t *Table) Lookup(key float64) ([]float64, error) {
	if len(t.keys) == 0 {
		return nil, fmt.Errorf("%w: %s table is empty", ErrNoData, t.op)
	}
	i := sort.SearchFloat64s(t.keys, key)
	switch {
	case i < len(t.keys) && t.keys[i] == key:
		return append([]float64(nil), t.rows[i]...), nil
	case i == 0:
		return append([]float64(nil), t.rows[0]...), nil
	case i == len(t.keys):
		return append([]float64(nil), t.rows[len(t.rows)-1]...), nil
	}

	lo, hi := i-1, i
	f := (key - t.keys[lo]) / (t.keys[hi] - t.keys[lo])
	out := make([]float64, len(t.rows[lo]))
	for c := range out {
		out[c] = t.rows[lo][c] + f*(t.rows[hi][c]-t.rows[lo][c])
	}
	return out, nil
}
