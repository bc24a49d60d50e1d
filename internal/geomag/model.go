// Package geomag evaluates magnetic declination from the World Magnetic
// Model. It is a self-contained port of the NOAA reference algorithm
// (spherical-harmonic synthesis to degree and order 12, Schmidt
// quasi-normalized associated Legendre functions, WGS84 geodetic to
// geocentric conversion) carrying the WMM2025 coefficient set.
package geomag

import (
	"errors"
	"fmt"
	"math"
)

const (
	maxOrder = 12

	// Epoch is the base decimal year of the embedded coefficient set. The
	// secular variation terms are valid for five years past it.
	Epoch = 2025.0

	validitySpan = 5.0

	// WGS84 ellipsoid and the geomagnetic reference radius, km.
	wgs84A           = 6378.137
	wgs84B           = 6356.7523142
	geomagReferenceR = 6371.2
)

// ErrYearOutOfRange is returned for decimal years outside the coefficient
// set's validity window. There is no fallback model.
var ErrYearOutOfRange = errors.New("geomag: decimal year outside model validity")

// Model is an initialized WMM evaluator. It is immutable after construction
// and safe for concurrent use.
type Model struct {
	c, cd  [maxOrder + 1][maxOrder + 1]float64
	k      [maxOrder + 1][maxOrder + 1]float64
	fn, fm [maxOrder + 1]float64
}

// NewModel Schmidt quasi-normalizes the embedded WMM2025 coefficients and
// returns a ready evaluator.
func NewModel() *Model {
	m := &Model{}

	for _, r := range wmm2025 {
		m.c[r.m][r.n] = r.g
		m.cd[r.m][r.n] = r.gDot
		if r.m != 0 {
			m.c[r.n][r.m-1] = r.h
			m.cd[r.n][r.m-1] = r.hDot
		}
	}

	var snorm [maxOrder + 1][maxOrder + 1]float64
	snorm[0][0] = 1
	for n := 1; n <= maxOrder; n++ {
		snorm[0][n] = snorm[0][n-1] * float64(2*n-1) / float64(n)
		j := 2.0
		for mm := 0; mm <= n; mm++ {
			m.k[mm][n] = float64((n-1)*(n-1)-mm*mm) / float64((2*n-1)*(2*n-3))
			if mm > 0 {
				flnmj := float64(n-mm+1) * j / float64(n+mm)
				snorm[mm][n] = snorm[mm-1][n] * math.Sqrt(flnmj)
				j = 1
				m.c[n][mm-1] = snorm[mm][n] * m.c[n][mm-1]
				m.cd[n][mm-1] = snorm[mm][n] * m.cd[n][mm-1]
			}
			m.c[mm][n] = snorm[mm][n] * m.c[mm][n]
			m.cd[mm][n] = snorm[mm][n] * m.cd[mm][n]
		}
		m.fn[n] = float64(n + 1)
		m.fm[n] = float64(n)
	}
	m.k[1][1] = 0
	m.fm[0] = 0

	return m
}

// Declination returns the magnetic declination in degrees (east positive) at
// a geodetic latitude/longitude in degrees and altitude in kilometers above
// the WGS84 ellipsoid, for the given decimal year.
func (m *Model) Declination(lat, lon, altKm, decimalYear float64) (float64, error) {
	if decimalYear < Epoch || decimalYear > Epoch+validitySpan {
		return 0, fmt.Errorf("%w: %.2f not in [%.1f, %.1f]",
			ErrYearOutOfRange, decimalYear, Epoch, Epoch+validitySpan)
	}

	dt := decimalYear - Epoch
	rlat := lat * math.Pi / 180
	rlon := lon * math.Pi / 180
	srlat := math.Sin(rlat)
	crlat := math.Cos(rlat)
	srlat2 := srlat * srlat
	crlat2 := crlat * crlat

	a2 := wgs84A * wgs84A
	b2 := wgs84B * wgs84B
	c2 := a2 - b2
	a4 := a2 * a2
	b4 := b2 * b2
	c4 := a4 - b4

	var sp, cp [maxOrder + 1]float64
	sp[0] = 0
	cp[0] = 1
	sp[1] = math.Sin(rlon)
	cp[1] = math.Cos(rlon)
	for mm := 2; mm <= maxOrder; mm++ {
		sp[mm] = sp[1]*cp[mm-1] + cp[1]*sp[mm-1]
		cp[mm] = cp[1]*cp[mm-1] - sp[1]*sp[mm-1]
	}

	// geodetic to geocentric spherical coordinates
	q := math.Sqrt(a2 - c2*srlat2)
	q1 := altKm * q
	q2 := (q1 + a2) / (q1 + b2)
	q2 *= q2
	ct := srlat / math.Sqrt(q2*crlat2+srlat2)
	st := math.Sqrt(1 - ct*ct)
	r2 := altKm*altKm + 2*q1 + (a4-c4*srlat2)/(q*q)
	r := math.Sqrt(r2)
	d := math.Sqrt(a2*crlat2 + b2*srlat2)
	ca := (altKm + d) / r
	sa := c2 * crlat * srlat / (r * d)

	aor := geomagReferenceR / r
	ar := aor * aor

	var p, dp [maxOrder + 1][maxOrder + 1]float64
	p[0][0] = 1
	var pp [maxOrder + 1]float64
	pp[0] = 1

	var br, bt, bp, bpp float64

	for n := 1; n <= maxOrder; n++ {
		ar *= aor
		for mm := 0; mm <= n; mm++ {
			// associated Legendre recursion
			switch {
			case n == mm:
				p[mm][n] = st * p[mm-1][n-1]
				dp[mm][n] = st*dp[mm-1][n-1] + ct*p[mm-1][n-1]
			case n == 1 && mm == 0:
				p[mm][n] = ct * p[mm][n-1]
				dp[mm][n] = ct*dp[mm][n-1] - st*p[mm][n-1]
			case n > 1:
				if mm > n-2 {
					p[mm][n-2] = 0
					dp[mm][n-2] = 0
				}
				p[mm][n] = ct*p[mm][n-1] - m.k[mm][n]*p[mm][n-2]
				dp[mm][n] = ct*dp[mm][n-1] - st*p[mm][n-1] - m.k[mm][n]*dp[mm][n-2]
			}

			tc := m.c[mm][n] + dt*m.cd[mm][n]
			var th float64
			if mm != 0 {
				th = m.c[n][mm-1] + dt*m.cd[n][mm-1]
			}
			temp1 := tc*cp[mm] + th*sp[mm]
			temp2 := tc*sp[mm] - th*cp[mm]

			bt -= ar * temp1 * dp[mm][n]
			bp += m.fm[mm] * temp2 * ar * p[mm][n]
			br += m.fn[n] * temp1 * ar * p[mm][n]

			// special recursion for the horizontal field at the poles
			if st == 0 && mm == 1 {
				if n == 1 {
					pp[n] = pp[n-1]
				} else {
					pp[n] = ct*pp[n-1] - m.k[mm][n]*pp[n-2]
				}
				bpp += m.fm[mm] * temp2 * ar * pp[n]
			}
		}
	}

	if st == 0 {
		bp = bpp
	} else {
		bp /= st
	}

	// rotate the field to geodetic north/east and take the declination
	bx := -bt*ca - br*sa
	by := bp
	return math.Atan2(by, bx) * 180 / math.Pi, nil
}
