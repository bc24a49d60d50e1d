package routeproc

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lowlevel-nav/planner/internal/geo"
	"github.com/lowlevel-nav/planner/internal/plan"
	"github.com/lowlevel-nav/planner/internal/transit"
	"github.com/lowlevel-nav/planner/pkg/mmss"
)

// Options wires a Processor's collaborators.
type Options struct {
	Performance transit.Performance
	Declinator  geo.Declinator
	Logger      zerolog.Logger
}

// Processor turns a raw waypoint list into the annotated low-level route.
// It is stateless across calls; each ProcessRoute run is independent.
type Processor struct {
	perf transit.Performance
	decl geo.Declinator
	log  zerolog.Logger
}

// NewProcessor builds a Processor from its collaborators.
func NewProcessor(opts Options) *Processor {
	return &Processor{
		perf: opts.Performance,
		decl: opts.Declinator,
		log:  opts.Logger,
	}
}

// ProcessRoute produces the final waypoint list: the transit phase
// (start, TOC, intermediates, TOD, low-level entry) followed by the
// relabelled low-level waypoints. The input slice is never mutated; every
// returned waypoint is an independent copy.
func (p *Processor) ProcessRoute(route []plan.Waypoint, cfg Config) ([]plan.Waypoint, error) {
	if err := cfg.Validate(len(route)); err != nil {
		return nil, err
	}

	// waypoints entry..exit+1 (1-based) carry the low-level segment plus
	// the extra waypoint supplying the final departure bearing
	routeSegs := geo.Segments(route[cfg.EntryIndex-1 : cfg.ExitIndex+1])
	departureMag, err := routeSegs[0].MagneticBearing(p.decl)
	if err != nil {
		return nil, fmt.Errorf("routeproc: departure bearing at low-level entry: %w", err)
	}

	transitSegs := geo.Segments(route[:cfg.EntryIndex])
	builder, err := transit.NewBuilder(transit.BuilderConfig{
		Segments:        transitSegs,
		Performance:     p.perf,
		TransitSpeedKts: cfg.TransitSpeedKts,
		RouteAltFt:      cfg.RouteAltFt,
		Logger:          p.log,
	})
	if err != nil {
		return nil, err
	}
	plannedTransit, err := builder.
		SetStart().
		SetTOC().
		SetIntermediates().
		SetTOD().
		SetEnd(departureMag).
		Build()
	if err != nil {
		return nil, err
	}

	lowLevel, err := p.relabelRoute(routeSegs, cfg)
	if err != nil {
		return nil, err
	}

	out := append(plannedTransit.Waypoints(), lowLevel...)
	p.log.Debug().
		Int("input_waypoints", len(route)).
		Int("output_waypoints", len(out)).
		Int("flight_level", builder.FlightLevel()).
		Msg("route processed")
	return out, nil
}

// relabelRoute re-identifies the low-level waypoints strictly between the
// entry and exit points with cumulative elapsed time and the magnetic
// bearing of the next leg. The final boundary waypoint only supplies that
// outgoing bearing and is not emitted.
func (p *Processor) relabelRoute(segs []geo.Segment, cfg Config) ([]plan.Waypoint, error) {
	wps := make([]plan.Waypoint, 0, len(segs)-1)
	var cumulative float64
	for i := 0; i < len(segs)-1; i++ {
		cumulative += segs[i].TravelTime(cfg.RouteSpeedKts)
		bearing, err := segs[i+1].MagneticBearing(p.decl)
		if err != nil {
			return nil, fmt.Errorf("routeproc: bearing for leg %d: %w", i+2, err)
		}

		wp := segs[i].End
		wp.Ident = fmt.Sprintf("%s/%03d", mmss.Format(cumulative), bearing)
		if wp.Comment != "" {
			wp.Ident += "/" + wp.Comment
		}
		wp.Type = plan.TypeWaypoint
		wp.Comment = fmt.Sprintf("WP%d", i+1)
		wp.Pos.Alt = cfg.RouteAltFt
		wps = append(wps, wp)
	}
	return wps, nil
}
