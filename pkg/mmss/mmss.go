// Package mmss formats and parses elapsed time as minutes:seconds strings,
// the notation used for waypoint identifiers and performance table rows.
package mmss

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Format renders a duration in seconds as "M:SS". Fractional seconds are
// truncated; minutes are not padded, seconds always are.
func Format(seconds float64) string {
	mins := int(seconds / 60)
	secs := int(math.Mod(seconds, 60))
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Parse converts a "MM:SS" string to whole seconds.
func Parse(s string) (int, error) {
	mins, secs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("mmss: %q is not a MM:SS time", s)
	}
	m, err := strconv.Atoi(strings.TrimSpace(mins))
	if err != nil {
		return 0, fmt.Errorf("mmss: bad minutes in %q: %w", s, err)
	}
	sec, err := strconv.Atoi(strings.TrimSpace(secs))
	if err != nil {
		return 0, fmt.Errorf("mmss: bad seconds in %q: %w", s, err)
	}
	if m < 0 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("mmss: %q out of range", s)
	}
	return m*60 + sec, nil
}
