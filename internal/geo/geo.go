// Package geo provides pure geographic predicates and great-circle math.
//
// Validation functions are predicates only: they never return errors.
// Callers decide whether a failed check becomes an invalid-coordinates or
// invalid-bounds rejection.
package geo

import "math"

// Earth radius used for all great-circle distances.
const (
	EarthRadiusKm = 6371.0
	EarthRadiusM  = 6371000.0
)

// Latitude and longitude range limits in degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ValidateCoordinates reports whether lat is in [-90, 90] and lng in [-180, 180].
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= MinLatitude && lat <= MaxLatitude &&
		lng >= MinLongitude && lng <= MaxLongitude
}

// ValidateBounds reports whether the box is well formed: north strictly above
// south, east strictly above west, and all four corners individually valid.
func ValidateBounds(north, south, east, west float64) bool {
	if north <= south || east <= west {
		return false
	}
	return ValidateCoordinates(north, east) &&
		ValidateCoordinates(north, west) &&
		ValidateCoordinates(south, east) &&
		ValidateCoordinates(south, west)
}

// InBounds reports whether a point lies inside the box. Containment is a pair
// of independent range checks on latitude and longitude, no curvature
// correction, so every backend agrees exactly on bounding-box results.
func InBounds(lat, lng, north, south, east, west float64) bool {
	return lat >= south && lat <= north && lng >= west && lng <= east
}

// Haversine calculates the great-circle distance between two points in
// kilometers using the haversine formula
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaPhi := (lat2 - lat1) * math.Pi / 180
	deltaLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// HaversineMeters is Haversine with the result in meters.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	return Haversine(lat1, lng1, lat2, lng2) * 1000
}

// IsWithinRadius checks if a point is within a given radius of a center point
func IsWithinRadius(centerLat, centerLng, pointLat, pointLng, radiusKm float64) bool {
	return Haversine(centerLat, centerLng, pointLat, pointLng) <= radiusKm
}
