// Package routeproc orchestrates route processing: it validates the
// processor configuration, plans the transit phase and relabels the
// low-level route waypoints into the final annotated list.
package routeproc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned when the entry/exit indices violate the
// route-length invariant.
var ErrInvalidConfig = errors.New("routeproc: invalid processor configuration")

// Config parameterizes one processing run. EntryIndex and ExitIndex are
// 1-based positions in the input route bounding the low-level segment.
type Config struct {
	EntryIndex      int     `toml:"id_entry"`
	ExitIndex       int     `toml:"id_exit"`
	RouteSpeedKts   float64 `toml:"route_airspeed_kts"`
	TransitSpeedKts float64 `toml:"transit_airspeed_kts"`
	RouteAltFt      int     `toml:"route_alt_ft"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		EntryIndex:      3,
		ExitIndex:       12,
		RouteSpeedKts:   420,
		TransitSpeedKts: 495,
		RouteAltFt:      500,
	}
}

// Validate checks the index invariant against a route of routeLen waypoints:
// 1 < entry <= len and entry <= exit <= len-1. The waypoint after the exit
// index must exist to supply the final departure bearing.
func (c Config) Validate(routeLen int) error {
	if c.EntryIndex <= 1 || c.EntryIndex > routeLen {
		return fmt.Errorf("%w: entry index %d not in (1, %d]", ErrInvalidConfig, c.EntryIndex, routeLen)
	}
	if c.ExitIndex < c.EntryIndex || c.ExitIndex > routeLen-1 {
		return fmt.Errorf("%w: exit index %d not in [%d, %d]", ErrInvalidConfig, c.ExitIndex, c.EntryIndex, routeLen-1)
	}
	if c.RouteSpeedKts <= 0 || c.TransitSpeedKts <= 0 {
		return fmt.Errorf("%w: airspeeds must be positive", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a TOML config file. A missing file is not an error: the
// defaults are written to path and returned.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		if err := SaveConfig(path, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("routeproc: reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("routeproc: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes the configuration to path as TOML.
func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("routeproc: encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("routeproc: writing config %s: %w", path, err)
	}
	return nil
}
