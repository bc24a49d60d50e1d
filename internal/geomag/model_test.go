package geomag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowlevel-nav/planner/internal/geomag"
)

// Reference declinations computed with the NOAA algorithm from the WMM2025
// coefficient set at the model epoch.
func TestDeclinationEpochReferencePoints(t *testing.T) {
	m := geomag.NewModel()

	cases := []struct {
		name     string
		lat, lon float64
		want     float64
	}{
		{"high north", 80, 0, 1.281482},
		{"equator", 0, 120, -0.158274},
		{"high south", -80, 240, 68.775385},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := m.Declination(c.lat, c.lon, 0, 2025.0)
			require.NoError(t, err)
			assert.InDelta(t, c.want, got, 1e-5)
		})
	}
}

func TestDeclinationSecularVariation(t *testing.T) {
	m := geomag.NewModel()

	// midpoint of the Montrose-Forfar leg, a third of the way into 2025
	got, err := m.Declination(56.668897, -2.699032, 0, 2025.13)
	require.NoError(t, err)
	assert.InDelta(t, -0.545715, got, 1e-5)
}

func TestDeclinationAltitude(t *testing.T) {
	m := geomag.NewModel()

	sea, err := m.Declination(80, 0, 0, 2025.0)
	require.NoError(t, err)
	high, err := m.Declination(80, 0, 100, 2025.0)
	require.NoError(t, err)

	assert.InDelta(t, 0.852035, high, 1e-5)
	assert.NotEqual(t, sea, high)
}

func TestDeclinationYearValidity(t *testing.T) {
	m := geomag.NewModel()

	for _, year := range []float64{2024.99, 2020.0, 2030.01, 2035.0} {
		_, err := m.Declination(56, -3, 0, year)
		assert.ErrorIs(t, err, geomag.ErrYearOutOfRange, "year %v", year)
	}
	for _, year := range []float64{2025.0, 2027.5, 2030.0} {
		_, err := m.Declination(56, -3, 0, year)
		assert.NoError(t, err, "year %v", year)
	}
}

func TestFixedPinsAltitudeAndYear(t *testing.T) {
	m := geomag.NewModel()
	f := geomag.NewFixed(m, 2025.13)

	got, err := f.DeclinationAt(56.668897, -2.699032)
	require.NoError(t, err)

	want, err := m.Declination(56.668897, -2.699032, 0, 2025.13)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFixedPropagatesModelError(t *testing.T) {
	f := geomag.NewFixed(geomag.NewModel(), 1999.0)
	_, err := f.DeclinationAt(56, -3)
	assert.ErrorIs(t, err, geomag.ErrYearOutOfRange)
}
