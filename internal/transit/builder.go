package transit

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lowlevel-nav/planner/internal/geo"
	"github.com/lowlevel-nav/planner/internal/performance"
	"github.com/lowlevel-nav/planner/internal/plan"
	"github.com/lowlevel-nav/planner/pkg/mmss"
)

var (
	// ErrNoSegments is returned when a builder is constructed without any
	// transit segments.
	ErrNoSegments = errors.New("transit: no segments to plan")

	// ErrNotInitialized is returned when a builder stage runs before the
	// stage whose output it consumes.
	ErrNotInitialized = errors.New("transit: stage invoked before its inputs were computed")
)

// Performance supplies climb and descent lookups for the selected flight
// level.
type Performance interface {
	ClimbDescent(op performance.Operation, flightLevel float64) (performance.ClimbDescent, error)
}

// Transit is the write-once output bundle of a Builder. Stages that were
// never run leave their field nil.
type Transit struct {
	Start         *plan.Waypoint
	TOC           *plan.Waypoint
	Intermediates []plan.Waypoint
	TOD           *plan.Waypoint
	End           *plan.Waypoint
}

// Waypoints flattens the bundle in flying order, skipping unset stages.
func (t Transit) Waypoints() []plan.Waypoint {
	out := make([]plan.Waypoint, 0, len(t.Intermediates)+4)
	for _, wp := range []*plan.Waypoint{t.Start, t.TOC} {
		if wp != nil {
			out = append(out, *wp)
		}
	}
	out = append(out, t.Intermediates...)
	for _, wp := range []*plan.Waypoint{t.TOD, t.End} {
		if wp != nil {
			out = append(out, *wp)
		}
	}
	return out
}

// BuilderConfig carries everything a transit plan needs up front.
type BuilderConfig struct {
	Segments        []geo.Segment
	Performance     Performance
	TransitSpeedKts float64
	RouteAltFt      int
	Logger          zerolog.Logger
}

// Builder assembles a Transit stage by stage. Stages chain fluently; the
// first failure sticks and surfaces from Build. A Builder serves exactly one
// planning run.
type Builder struct {
	cfg BuilderConfig

	flightLevel int
	climb       performance.ClimbDescent
	descent     performance.ClimbDescent
	totalNM     float64

	todTimeSecs float64
	todSet      bool

	transit Transit
	err     error
}

// NewBuilder selects the flight level over the transit segments and fetches
// the climb and descent performance for it.
func NewBuilder(cfg BuilderConfig) (*Builder, error) {
	if len(cfg.Segments) == 0 {
		return nil, ErrNoSegments
	}

	fl := SelectFlightLevel(cfg.Segments)
	climb, err := cfg.Performance.ClimbDescent(performance.NormalClimb, float64(fl))
	if err != nil {
		return nil, fmt.Errorf("transit: climb performance for FL%d: %w", fl, err)
	}
	descent, err := cfg.Performance.ClimbDescent(performance.NavDescent, float64(fl))
	if err != nil {
		return nil, fmt.Errorf("transit: descent performance for FL%d: %w", fl, err)
	}

	var total float64
	for _, s := range cfg.Segments {
		total += s.Length()
	}

	cfg.Logger.Debug().
		Int("flight_level", fl).
		Float64("total_nm", total).
		Float64("climb_nm", climb.DistanceNM).
		Float64("descent_nm", descent.DistanceNM).
		Msg("transit builder initialized")

	return &Builder{
		cfg:         cfg,
		flightLevel: fl,
		climb:       climb,
		descent:     descent,
		totalNM:     total,
	}, nil
}

// FlightLevel returns the selected transit flight level.
func (b *Builder) FlightLevel() int { return b.flightLevel }

// SetStart produces the departure waypoint: a copy of the first segment's
// start, identified by the outbound true bearing at elapsed time zero.
func (b *Builder) SetStart() *Builder {
	if b.err != nil {
		return b
	}
	first := b.cfg.Segments[0]
	wp := first.Start
	wp.Ident = fmt.Sprintf("0:00/%03d", first.TrueBearing())
	wp.Comment = "START"
	wp.Type = plan.TypeWaypoint
	b.transit.Start = &wp
	return b
}

// SetTOC places the top-of-climb on the first segment at the selected
// flight level.
func (b *Builder) SetTOC() *Builder {
	if b.err != nil {
		return b
	}
	first := b.cfg.Segments[0]
	lat, lon, err := first.InterpolatePosition(climbFraction(b.climb.DistanceNM, first.Length()))
	if err != nil {
		b.err = fmt.Errorf("transit: placing TOC: %w", err)
		return b
	}
	b.transit.TOC = &plan.Waypoint{
		Name:    "TOC",
		Ident:   fmt.Sprintf("%s/FL%d/TOC", mmss.Format(float64(b.climb.TimeSecs)), b.flightLevel),
		Type:    plan.TypeWaypoint,
		Comment: "TOC",
		Pos:     plan.Position{Lon: lon, Lat: lat, Alt: b.flightLevel * 100},
	}
	return b
}

// SetIntermediates re-identifies every transit waypoint strictly between
// start and end with cumulative elapsed time and the outbound true bearing.
// The first leg is climb plus cruise for the remainder of the segment; later
// legs are plain cruise, truncated to whole seconds.
func (b *Builder) SetIntermediates() *Builder {
	if b.err != nil {
		return b
	}
	segs := b.cfg.Segments
	wps := make([]plan.Waypoint, 0, len(segs)-1)
	var cumulative float64
	for i := 0; i < len(segs)-1; i++ {
		var legSecs float64
		if i == 0 {
			cruiseNM := segs[i].Length() - b.climb.DistanceNM
			legSecs = cruiseNM/b.cfg.TransitSpeedKts*3600 + float64(b.climb.TimeSecs)
		} else {
			legSecs = float64(int(segs[i].TravelTime(b.cfg.TransitSpeedKts)))
		}
		cumulative += legSecs

		wp := segs[i].End
		wp.Ident = fmt.Sprintf("%s/%d", mmss.Format(cumulative), segs[i+1].TrueBearing())
		if wp.Comment != "" {
			wp.Ident += "/" + wp.Comment
		}
		wp.Type = plan.TypeWaypoint
		wp.Pos.Alt = b.flightLevel * 100
		wps = append(wps, wp)
	}
	b.transit.Intermediates = wps
	return b
}

// SetTOD places the top-of-descent on the last segment so the descent
// consumes its final descent-distance nautical miles.
func (b *Builder) SetTOD() *Builder {
	if b.err != nil {
		return b
	}
	last := b.cfg.Segments[len(b.cfg.Segments)-1]
	lat, lon, err := last.InterpolatePosition(descentFraction(b.descent.DistanceNM, last.Length()))
	if err != nil {
		b.err = fmt.Errorf("transit: placing TOD: %w", err)
		return b
	}

	cruiseNM := b.totalNM - b.climb.DistanceNM - b.descent.DistanceNM
	b.todTimeSecs = float64(b.climb.TimeSecs) + cruiseNM/b.cfg.TransitSpeedKts*3600
	b.todSet = true

	b.transit.TOD = &plan.Waypoint{
		Name:    "TOD",
		Ident:   fmt.Sprintf("%s/FL%d/TOD", mmss.Format(b.todTimeSecs), b.flightLevel),
		Type:    plan.TypeWaypoint,
		Comment: "TOD",
		Pos:     plan.Position{Lon: lon, Lat: lat, Alt: b.flightLevel * 100},
	}
	return b
}

// SetEnd produces the low-level entry point from the last segment's end
// waypoint, stamped with the total transit time and the magnetic departure
// bearing of the onward route. Requires SetTOD to have run.
func (b *Builder) SetEnd(departureBearingMag int) *Builder {
	if b.err != nil {
		return b
	}
	if !b.todSet {
		b.err = fmt.Errorf("%w: SetEnd needs the TOD time from SetTOD", ErrNotInitialized)
		return b
	}

	wp := b.cfg.Segments[len(b.cfg.Segments)-1].End
	endSecs := b.todTimeSecs + float64(b.descent.TimeSecs)
	wp.Ident = fmt.Sprintf("%s/%03d/LLEP", mmss.Format(endSecs), departureBearingMag)
	if wp.Comment != "" {
		wp.Ident += "/" + wp.Comment
	}
	wp.Name = "LLEP"
	wp.Type = plan.TypeWaypoint
	wp.Comment = "LLEP"
	wp.Pos.Alt = b.cfg.RouteAltFt
	b.transit.End = &wp
	return b
}

// Build returns the assembled bundle, or the first stage error.
func (b *Builder) Build() (Transit, error) {
	if b.err != nil {
		return Transit{}, b.err
	}
	return b.transit, nil
}

// climbFraction is the along-segment fraction where the TOC is placed. It
// reuses the descent formula, measuring the climb distance back from the
// segment end rather than forward from its start; published route cards
// were produced with this placement, so it is kept as a separate calculation
// rather than folded into descentFraction.
func climbFraction(climbNM, segmentNM float64) float64 {
	return 1 - climbNM/segmentNM
}

// descentFraction places the TOD so the descent covers the final descentNM
// of the segment.
func descentFraction(descentNM, segmentNM float64) float64 {
	return 1 - descentNM/segmentNM
}
