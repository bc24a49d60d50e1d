package performance

import "fmt"

// ClimbDescent is the result of a NORMAL_CLIMB or NAV_DESCENT lookup: the
// ground distance covered, elapsed time and fuel burned to reach (or leave)
// a flight level. Interpolated times are rounded to whole seconds.
type ClimbDescent struct {
	Operation  Operation
	DistanceNM float64
	TimeSecs   int
	FuelKg     float64
}

// Validate enforces the dataset row constraints.
func (c ClimbDescent) Validate() error {
	if c.DistanceNM <= 0 {
		return fmt.Errorf("performance: %s: distance %v nm, must be > 0", c.Operation, c.DistanceNM)
	}
	if c.TimeSecs < 0 {
		return fmt.Errorf("performance: %s: time %d s, must be >= 0", c.Operation, c.TimeSecs)
	}
	if c.FuelKg < 0 {
		return fmt.Errorf("performance: %s: fuel %v kg, must be >= 0", c.Operation, c.FuelKg)
	}
	return nil
}

// LowLevelCruise is the fuel flow at a low-level cruise airspeed.
type LowLevelCruise struct {
	KgPerMin float64
}

// Validate enforces the dataset row constraints.
func (c LowLevelCruise) Validate() error {
	if c.KgPerMin < 0 {
		return fmt.Errorf("performance: %s: kg/min %v, must be >= 0", LLCruise, c.KgPerMin)
	}
	return nil
}

// MidLevelCruise is the fuel flow at a mid-level cruise flight level, per
// minute and per air nautical mile.
type MidLevelCruise struct {
	KgPerMin float64
	KgPerANM float64
}

// Validate enforces the dataset row constraints.
func (c MidLevelCruise) Validate() error {
	if c.KgPerMin < 0 {
		return fmt.Errorf("performance: %s: kg/min %v, must be >= 0", MLCruise, c.KgPerMin)
	}
	if c.KgPerANM < 0 {
		return fmt.Errorf("performance: %s: kg/anm %v, must be >= 0", MLCruise, c.KgPerANM)
	}
	return nil
}
