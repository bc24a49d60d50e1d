package geomag

// Fixed evaluates a Model at a pinned altitude and decimal year, reducing it
// to a function of latitude and longitude only. The planning engine uses it
// with altitude 0 and the reference epoch its performance data was surveyed
// against.
type Fixed struct {
	Model *Model
	AltKm float64
	Year  float64
}

// NewFixed pins the model at sea level for the given decimal year.
func NewFixed(m *Model, decimalYear float64) Fixed {
	return Fixed{Model: m, Year: decimalYear}
}

// DeclinationAt returns the declination in degrees at the pinned altitude
// and year.
func (f Fixed) DeclinationAt(lat, lon float64) (float64, error) {
	return f.Model.Declination(lat, lon, f.AltKm, f.Year)
}
