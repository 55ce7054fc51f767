package domain

import "math"

// Mean Earth radius in kilometres, used for great-circle distance.
const earthRadiusKm = 6371.0088

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the great-circle (haversine) distance to other in
// kilometres, rounded to 2 decimal places. Road distance is out of scope;
// callers rely on the rounding as a presentation contract.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	lat1 := c.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - c.Lat) * math.Pi / 180
	dLon := (other.Lon - c.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	km := 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
	return math.Round(km*100) / 100
}
