// Package transit plans the medium-level transit phase of a route: it
// selects a transit flight level and builds the Start, TOC, intermediate,
// TOD and low-level entry waypoints that bridge the departure airfield to
// the low-level route.
package transit

import (
	"math"

	"github.com/lowlevel-nav/planner/internal/geo"
)

// SelectFlightLevel picks the transit flight level (hundreds of feet) for a
// sequence of climb segments: two times the total length in nautical miles,
// parity-adjusted for direction of flight, rounded down to the nearest ten.
// A planning estimate that bounds the performance lookups, not a true climb
// solution.
func SelectFlightLevel(segs []geo.Segment) int {
	var total, x, y float64
	for _, s := range segs {
		total += s.Length()
		b := float64(s.TrueBearing()) * math.Pi / 180
		x += math.Cos(b)
		y += math.Sin(b)
	}
	mean := circularMean(x, y)
	raw := parityAdjust(int(2*total), mean)
	return raw / 10 * 10
}

// circularMean converts summed bearing unit vectors to a whole-degree mean
// bearing in [0, 360).
func circularMean(x, y float64) int {
	deg := math.Atan2(y, x) * 180 / math.Pi
	return int(math.Mod(deg+360, 360))
}

// parityAdjust applies the IFR odd/even convention: eastbound (mean bearing
// in [0, 180)) flight levels are odd, westbound even.
func parityAdjust(rawFL, meanBearing int) int {
	if meanBearing < 180 {
		return rawFL | 1
	}
	return rawFL &^ 1
}
