package performance

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/lowlevel-nav/planner/pkg/mmss"
)

//go:embed data/normal_climb.csv
var normalClimbCSV []byte

//go:embed data/nav_descent.csv
var navDescentCSV []byte

//go:embed data/ll_cruise.csv
var llCruiseCSV []byte

//go:embed data/ml_cruise.csv
var mlCruiseCSV []byte

// Dataset bundles the four operation tables of one aircraft.
type Dataset struct {
	climb   *Table
	descent *Table
	ll      *Table
	ml      *Table
}

// NewDataset assembles a dataset from already-built tables.
func NewDataset(climb, descent, ll, ml *Table) *Dataset {
	return &Dataset{climb: climb, descent: descent, ll: ll, ml: ml}
}

var defaultDataset = sync.OnceValues(func() (*Dataset, error) {
	climb, err := parseClimbDescent(NormalClimb, normalClimbCSV)
	if err != nil {
		return nil, err
	}
	descent, err := parseClimbDescent(NavDescent, navDescentCSV)
	if err != nil {
		return nil, err
	}
	ll, err := parseNumeric(LLCruise, llCruiseCSV, 1)
	if err != nil {
		return nil, err
	}
	ml, err := parseNumeric(MLCruise, mlCruiseCSV, 2)
	if err != nil {
		return nil, err
	}
	return NewDataset(climb, descent, ll, ml), nil
})

// Default returns the embedded aircraft dataset. The embedded CSVs are
// parsed once; subsequent calls return the same dataset.
func Default() (*Dataset, error) {
	return defaultDataset()
}

// ClimbDescent looks up climb or descent performance for a flight level.
// Values between table rows are linearly interpolated, with the time rounded
// to whole seconds; flight levels beyond the table clamp to the edge row.
func (d *Dataset) ClimbDescent(op Operation, flightLevel float64) (ClimbDescent, error) {
	var t *Table
	switch op {
	case NormalClimb:
		t = d.climb
	case NavDescent:
		t = d.descent
	default:
		return ClimbDescent{}, fmt.Errorf("performance: %s is not a climb/descent operation", op)
	}
	row, err := t.Lookup(flightLevel)
	if err != nil {
		return ClimbDescent{}, err
	}
	return ClimbDescent{
		Operation:  op,
		DistanceNM: row[0],
		TimeSecs:   int(math.Round(row[1])),
		FuelKg:     row[2],
	}, nil
}

// LowLevelCruise looks up low-level cruise fuel flow for an airspeed in
// knots.
func (d *Dataset) LowLevelCruise(airspeedKts float64) (LowLevelCruise, error) {
	row, err := d.ll.Lookup(airspeedKts)
	if err != nil {
		return LowLevelCruise{}, err
	}
	return LowLevelCruise{KgPerMin: row[0]}, nil
}

// MidLevelCruise looks up mid-level cruise fuel flow for a flight level.
func (d *Dataset) MidLevelCruise(flightLevel float64) (MidLevelCruise, error) {
	row, err := d.ml.Lookup(flightLevel)
	if err != nil {
		return MidLevelCruise{}, err
	}
	return MidLevelCruise{KgPerMin: row[0], KgPerANM: row[1]}, nil
}

// parseClimbDescent reads a {key, distance_nm, time (mm:ss), fuel_kg} CSV
// and validates each row's constraints.
func parseClimbDescent(op Operation, raw []byte) (*Table, error) {
	records, err := readCSV(op, raw, 4)
	if err != nil {
		return nil, err
	}
	keys := make([]float64, 0, len(records))
	rows := make([][]float64, 0, len(records))
	for i, rec := range records {
		key, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("performance: %s row %d: key %q: %w", op, i+1, rec[0], err)
		}
		dist, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("performance: %s row %d: distance %q: %w", op, i+1, rec[1], err)
		}
		secs, err := mmss.Parse(rec[2])
		if err != nil {
			return nil, fmt.Errorf("performance: %s row %d: %w", op, i+1, err)
		}
		fuel, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("performance: %s row %d: fuel %q: %w", op, i+1, rec[3], err)
		}
		cd := ClimbDescent{Operation: op, DistanceNM: dist, TimeSecs: secs, FuelKg: fuel}
		if err := cd.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		keys = append(keys, key)
		rows = append(rows, []float64{dist, float64(secs), fuel})
	}
	return NewTable(op, keys, rows)
}

// parseNumeric reads a CSV whose metric columns are all plain numbers.
func parseNumeric(op Operation, raw []byte, metricCols int) (*Table, error) {
	records, err := readCSV(op, raw, metricCols+1)
	if err != nil {
		return nil, err
	}
	keys := make([]float64, 0, len(records))
	rows := make([][]float64, 0, len(records))
	for i, rec := range records {
		vals := make([]float64, len(rec))
		for c, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("performance: %s row %d col %d: %q: %w", op, i+1, c+1, field, err)
			}
			if c > 0 && v < 0 {
				return nil, fmt.Errorf("performance: %s row %d col %d: %v, must be >= 0", op, i+1, c+1, v)
			}
			vals[c] = v
		}
		keys = append(keys, vals[0])
		rows = append(rows, vals[1:])
	}
	return NewTable(op, keys, rows)
}

func readCSV(op Operation, raw []byte, wantCols int) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = wantCols
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("performance: %s: %w", op, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s file is empty", ErrNoData, op)
	}
	return records[1:], nil // drop the header row
}
