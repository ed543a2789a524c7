package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Valid reports whether the pair is inside the legal coordinate ranges.
func (c Coordinates) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// IsZero reports whether the pair is the zero value. Providers use this to
// drop records that arrived without a location.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

// DistanceKm returns the great-circle distance between a and b in
// kilometres, rounded to two decimal places. Symmetric and pure.
func DistanceKm(a, b Coordinates) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	d := 2 * earthRadiusKm * math.Asin(math.Sqrt(h))

	return math.Round(d*100) / 100
}

// Round returns the coordinates rounded to the given number of decimal
// places. Dedup keys use 4 places (~11 m) and 3 places (~111 m).
func (c Coordinates) Round(places int) Coordinates {
	f := math.Pow(10, float64(places))
	return Coordinates{
		Lat: math.Round(c.Lat*f) / f,
		Lon: math.Round(c.Lon*f) / f,
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
