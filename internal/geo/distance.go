package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometres between two points
// given in decimal degrees, using the Haversine formula. Inputs are not
// validated: NaN or out-of-range coordinates yield meaningless results.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1, lon1, lat2, lon2 = toRad(lat1), toRad(lon1), toRad(lat2), toRad(lon2)
	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
