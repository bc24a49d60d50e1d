package routeproc_test

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowlevel-nav/planner/internal/geomag"
	"github.com/lowlevel-nav/planner/internal/performance"
	"github.com/lowlevel-nav/planner/internal/plan"
	"github.com/lowlevel-nav/planner/internal/routeproc"
)

// referenceRoute is the Newcastle to Inverness training route: transit to
// the low-level entry at Montrose, then nine low-level legs to the
// instrument approach at Inverness.
func referenceRoute() []plan.Waypoint {
	return []plan.Waypoint{
		{Name: "Newcastle", Ident: "EGNT", Type: plan.TypeAirport,
			Pos: plan.Position{Lon: -1.689722, Lat: 55.038055, Alt: 266}},
		{Name: "Saint Abbs", Ident: "SAB", Type: plan.TypeVOR, Region: "EG", Comment: "112.5",
			Pos: plan.Position{Lon: -2.206336, Lat: 55.907513, Alt: 14759}},
		{Name: "Montrose", Ident: "LLEP", Type: plan.TypeUser,
			Pos: plan.Position{Lon: -2.475614, Lat: 56.70507, Alt: 22000}},
		{Name: "Forfar", Ident: "WP1", Type: plan.TypeUser,
			Pos: plan.Position{Lon: -2.92245, Lat: 56.632725, Alt: 22000}},
		{Name: "Crathie", Ident: "WP2", Type: plan.TypeUser,
			Pos: plan.Position{Lon: -3.215497, Lat: 57.040005, Alt: 22000}},
		{Name: "Braemar", Ident: "WP3", Type: plan.TypeUser,
			Pos: plan.Position{Lon: -3.483008, Lat: 56.991013, Alt: 22000}},
		{Name: "Tummel", Ident: "WP4", Type: plan.TypeUser,
			Pos: plan.Position{Lon: -4.012328, Lat: 56.70752, Alt: 22000}},
		{Name: "Rannoch", Ident: "WP5", Type: plan.TypeUser,
			Pos: plan.Position{Lon: -4.43118, Lat: 56.684898, Alt: 18896}},
		{Name: "Loch Ericht", Ident: "WP6", Type: plan.TypeUser,
			Pos: plan.Position{Lon: -4.466886, Lat: 56.747452, Alt: 17800}},
		{Name: "Dalwhinnie", Ident: "WP7", Type: plan.TypeUser,
			Pos: plan.Position{Lon: -4.247161, Lat: 56.93224, Alt: 14115}},
		{Name: "Fort Augustus", Ident: "WP8", Type: plan.TypeUser,
			Pos: plan.Position{Lon: -4.67408, Lat: 57.136242, Alt: 8946}},
		{Ident: "CI05", Type: plan.TypeWaypoint, Region: "EG", Comment: "ILS108.5/RW05",
			Pos: plan.Position{Lon: -4.328055, Lat: 57.41526, Alt: 3330}},
		{Name: "Inverness", Ident: "EGPE", Type: plan.TypeAirport,
			Pos: plan.Position{Lon: -4.0475, Lat: 57.5425, Alt: 31}},
	}
}

func newProcessor(t *testing.T) *routeproc.Processor {
	t.Helper()
	ds, err := performance.Default()
	require.NoError(t, err)
	return routeproc.NewProcessor(routeproc.Options{
		Performance: ds,
		Declinator:  geomag.NewFixed(geomag.NewModel(), 2025.13),
		Logger:      zerolog.Nop(),
	})
}

func TestProcessRoute(t *testing.T) {
	route := referenceRoute()
	out, err := newProcessor(t).ProcessRoute(route, routeproc.DefaultConfig())
	require.NoError(t, err)
	require.Len(t, out, 14)

	// transit phase
	assert.Equal(t, "0:00/342", out[0].Ident)
	assert.Equal(t, "START", out[0].Comment)
	assert.Equal(t, "TOC", out[1].Name)
	assert.Equal(t, "3:48/FL200/TOC", out[1].Ident)
	assert.Equal(t, 20000, out[1].Pos.Alt)
	assert.Equal(t, "7:19/350/112.5", out[2].Ident)
	assert.Equal(t, "TOD", out[3].Name)
	assert.Equal(t, "10:33/FL200/TOD", out[3].Ident)
	assert.Equal(t, "LLEP", out[4].Name)
	assert.Equal(t, "13:33/253/LLEP", out[4].Ident)
	assert.Equal(t, 500, out[4].Pos.Alt)
	assert.Equal(t, plan.TypeWaypoint, out[4].Type)

	// low-level phase
	wantLowLevel := []struct {
		name  string
		ident string
	}{
		{"Forfar", "2:11/338"},
		{"Crathie", "5:56/251"},
		{"Braemar", "7:16/225"},
		{"Tummel", "10:44/264"},
		{"Rannoch", "12:43/342"},
		{"Loch Ericht", "13:17/032"},
		{"Dalwhinnie", "15:10/310"},
		{"Fort Augustus", "17:49/033"},
		{"", "20:42/049/ILS108.5/RW05"},
	}
	for i, want := range wantLowLevel {
		got := out[5+i]
		assert.Equal(t, want.name, got.Name, "waypoint %d name", 5+i)
		assert.Equal(t, want.ident, got.Ident, "waypoint %d ident", 5+i)
		assert.Equal(t, fmt.Sprintf("WP%d", i+1), got.Comment, "waypoint %d comment", 5+i)
		assert.Equal(t, 500, got.Pos.Alt, "waypoint %d altitude", 5+i)
	}
}

func TestProcessRouteDoesNotMutateInput(t *testing.T) {
	route := referenceRoute()
	_, err := newProcessor(t).ProcessRoute(route, routeproc.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, referenceRoute(), route)
}

func TestProcessRouteInvalidConfig(t *testing.T) {
	route := referenceRoute()
	cfg := routeproc.DefaultConfig()
	cfg.EntryIndex = len(route) + 1

	_, err := newProcessor(t).ProcessRoute(route, cfg)
	assert.ErrorIs(t, err, routeproc.ErrInvalidConfig)
}

func TestProcessRouteEmptyRoute(t *testing.T) {
	_, err := newProcessor(t).ProcessRoute(nil, routeproc.DefaultConfig())
	assert.ErrorIs(t, err, routeproc.ErrInvalidConfig)
}

func TestProcessRouteDeclinationFailure(t *testing.T) {
	ds, err := performance.Default()
	require.NoError(t, err)
	p := routeproc.NewProcessor(routeproc.Options{
		Performance: ds,
		Declinator:  geomag.NewFixed(geomag.NewModel(), 1990.0), // outside validity
		Logger:      zerolog.Nop(),
	})

	_, err = p.ProcessRoute(referenceRoute(), routeproc.DefaultConfig())
	assert.ErrorIs(t, err, geomag.ErrYearOutOfRange)
}
