package main

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowlevel-nav/planner/internal/routeproc"
)

func overrideFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	fs.Int("entry", 0, "")
	fs.Int("exit", 0, "")
	fs.Float64("transit-airspeed", 0, "")
	fs.Float64("route-airspeed", 0, "")
	fs.Int("route-alt", 0, "")
	return fs
}

func TestApplyOverrides(t *testing.T) {
	fs := overrideFlagSet()
	require.NoError(t, fs.Parse([]string{"-exit", "9", "-transit-airspeed", "450"}))

	cfg := routeproc.DefaultConfig()
	applyOverrides(fs, &cfg)

	assert.Equal(t, 9, cfg.ExitIndex)
	assert.Equal(t, 450.0, cfg.TransitSpeedKts)
	// unset flags leave the stored configuration alone
	def := routeproc.DefaultConfig()
	assert.Equal(t, def.EntryIndex, cfg.EntryIndex)
	assert.Equal(t, def.RouteSpeedKts, cfg.RouteSpeedKts)
	assert.Equal(t, def.RouteAltFt, cfg.RouteAltFt)
}

// An explicit zero is a value, not "use the config": -route-alt 0 must win
// over the stored altitude.
func TestApplyOverridesExplicitZero(t *testing.T) {
	fs := overrideFlagSet()
	require.NoError(t, fs.Parse([]string{"-route-alt", "0"}))

	cfg := routeproc.DefaultConfig()
	require.NotZero(t, cfg.RouteAltFt)
	applyOverrides(fs, &cfg)

	assert.Equal(t, 0, cfg.RouteAltFt)
}

func TestApplyOverridesNothingSet(t *testing.T) {
	fs := overrideFlagSet()
	require.NoError(t, fs.Parse(nil))

	cfg := routeproc.DefaultConfig()
	applyOverrides(fs, &cfg)

	assert.Equal(t, routeproc.DefaultConfig(), cfg)
}
