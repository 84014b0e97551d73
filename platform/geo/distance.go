// Package geo provides great-circle distance helpers.
// This is part of the platform layer and contains no business logic.
package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance in kilometers between two
// coordinate pairs using the haversine formula.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Offset returns the coordinate reached by travelling distanceKm from
// (lat, lng) at the given bearing in degrees. It uses the flat-earth
// approximation of 1 degree ~= 111 km, which is adequate for the sub-100 km
// offsets the supplier generator needs.
func Offset(lat, lng, bearingDeg, distanceKm float64) (float64, float64) {
	rad := bearingDeg * math.Pi / 180
	latOffset := (distanceKm / 111.0) * math.Cos(rad)
	lngOffset := (distanceKm / 111.0) * math.Sin(rad)
	return lat + latOffset, lng + lngOffset
}

// RoundKm rounds a distance to one decimal place.
func RoundKm(v float64) float64 {
	return math.Round(v*10) / 10
}
