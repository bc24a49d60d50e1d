package transit

import (
	"math"
	"testing"
)

func TestParityAdjust(t *testing.T) {
	cases := []struct {
		raw, bearing, want int
	}{
		{120, 90, 121},  // eastbound forces odd
		{121, 90, 121},  // already odd
		{121, 270, 120}, // westbound forces even
		{120, 270, 120},
		{207, 0, 207},
		{207, 180, 206},
		{0, 179, 1},
	}
	for _, c := range cases {
		if got := parityAdjust(c.raw, c.bearing); got != c.want {
			t.Errorf("parityAdjust(%d, %d) = %d; want %d", c.raw, c.bearing, got, c.want)
		}
	}
}

func TestCircularMean(t *testing.T) {
	// midpoints are kept clear of whole-degree boundaries so the
	// truncation to int is unambiguous
	cases := []struct {
		bearings []float64
		want     int
	}{
		{[]float64{350, 21}, 5}, // wraps through north
		{[]float64{80, 101}, 90},
		{[]float64{136, 139}, 137},
		{[]float64{260, 281}, 270},
	}
	for _, c := range cases {
		var x, y float64
		for _, b := range c.bearings {
			x += math.Cos(b * math.Pi / 180)
			y += math.Sin(b * math.Pi / 180)
		}
		if got := circularMean(x, y); got != c.want {
			t.Errorf("circularMean of %v = %d; want %d", c.bearings, got, c.want)
		}
	}
}
