// Package geo implements the geometric primitives of the planning engine:
// flat-earth segment lengths, spherical bearings, travel times and linear
// position interpolation. All angles are degrees, distances nautical miles
// and times seconds unless stated otherwise.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/lowlevel-nav/planner/internal/plan"
)

// EarthRadiusNM is the mean Earth radius in nautical miles, used by the
// flat-earth distance approximation.
const EarthRadiusNM = 3440.065

// ErrFractionRange is returned when an interpolation fraction falls outside
// [0, 1]. Valid inputs never produce it; seeing it means an upstream
// calculation fed a distance longer than its segment.
var ErrFractionRange = errors.New("geo: interpolation fraction outside [0, 1]")

// Declinator supplies magnetic declination in degrees (east positive) at a
// geographic point.
type Declinator interface {
	DeclinationAt(lat, lon float64) (float64, error)
}

// Segment is a directed leg between two waypoints. Segments are derived on
// demand and never stored; every property is recomputed per call.
type Segment struct {
	Start plan.Waypoint
	End   plan.Waypoint
}

// NewSegment builds the directed segment from start to end.
func NewSegment(start, end plan.Waypoint) Segment {
	return Segment{Start: start, End: end}
}

// Length returns the flat-earth length in nautical miles:
// R · sqrt((Δlon·cos(meanLat))² + Δlat²). Good for short legs; no curvature
// correction beyond the cosine scaling of longitude.
func (s Segment) Length() float64 {
	lat1 := radians(s.Start.Pos.Lat)
	lon1 := radians(s.Start.Pos.Lon)
	lat2 := radians(s.End.Pos.Lat)
	lon2 := radians(s.End.Pos.Lon)

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	x := dLon * math.Cos((lat1+lat2)/2)
	return EarthRadiusNM * math.Sqrt(x*x+dLat*dLat)
}

// Bearing returns the initial true bearing in degrees, normalized to
// [0, 360), using the standard spherical formula.
func (s Segment) Bearing() float64 {
	lat1 := radians(s.Start.Pos.Lat)
	lon1 := radians(s.Start.Pos.Lon)
	lat2 := radians(s.End.Pos.Lat)
	lon2 := radians(s.End.Pos.Lon)

	dLon := lon2 - lon1
	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	b := degrees(math.Atan2(y, x))
	return math.Mod(b+360, 360)
}

// TrueBearing returns Bearing rounded to the nearest whole degree in [0, 360).
func (s Segment) TrueBearing() int {
	return int(math.Round(math.Mod(s.Bearing(), 360)))
}

// MagneticBearing adjusts the rounded true bearing by the declination at the
// segment midpoint and rounds again, normalized to [0, 360). The double
// rounding matches the published route cards this engine reproduces.
func (s Segment) MagneticBearing(d Declinator) (int, error) {
	midLat := (s.Start.Pos.Lat + s.End.Pos.Lat) / 2
	midLon := (s.Start.Pos.Lon + s.End.Pos.Lon) / 2
	decl, err := d.DeclinationAt(midLat, midLon)
	if err != nil {
		return 0, fmt.Errorf("geo: declination at segment midpoint: %w", err)
	}
	mag := math.Mod(float64(s.TrueBearing())+decl, 360)
	if mag < 0 {
		mag += 360
	}
	return int(math.Round(mag)) % 360, nil
}

// TravelTime returns the time in seconds to fly the segment at the given
// groundspeed in knots.
func (s Segment) TravelTime(speedKts float64) float64 {
	return s.Length() / speedKts * 3600
}

// InterpolatePosition linearly interpolates latitude and longitude
// independently along the segment. fraction 0 is the start position, 1 the
// end position.
func (s Segment) InterpolatePosition(fraction float64) (lat, lon float64, err error) {
	if fraction < 0 || fraction > 1 {
		return 0, 0, fmt.Errorf("%w: %v", ErrFractionRange, fraction)
	}
	lat = s.Start.Pos.Lat + fraction*(s.End.Pos.Lat-s.Start.Pos.Lat)
	lon = s.Start.Pos.Lon + fraction*(s.End.Pos.Lon-s.Start.Pos.Lon)
	return lat, lon, nil
}

// Segments converts an ordered waypoint slice into its consecutive segments.
// Waypoints are copied by value, so the caller's slice is never aliased.
func Segments(route []plan.Waypoint) []Segment {
	if len(route) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(route)-1)
	for i := 0; i < len(route)-1; i++ {
		segs = append(segs, NewSegment(route[i], route[i+1]))
	}
	return segs
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
