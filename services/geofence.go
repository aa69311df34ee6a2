package services

import (
	"fmt"
	"main/model"
	"math"
)

// GeofenceRadiusMeters is the acceptance radius around a class location.
// Students farther than this are rejected.
const GeofenceRadiusMeters = 50.0

// Mean earth radius (IUGG), meters.
const earthRadiusMeters = 6371008.8

// ValidateCoordinates rejects latitudes outside [-90, 90], longitudes outside
// [-180, 180] and non-finite values.
func ValidateCoordinates(latitude, longitude float64) error {
	if math.IsNaN(latitude) || math.IsInf(latitude, 0) ||
		math.IsNaN(longitude) || math.IsInf(longitude, 0) {
		return fmt.Errorf("%w: coordinates must be finite numbers", model.ErrInvalidCoordinates)
	}
	if latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", model.ErrInvalidCoordinates, latitude)
	}
	if longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", model.ErrInvalidCoordinates, longitude)
	}
	return nil
}

// DistanceMeters returns the great-circle distance between two points using
// the haversine formula. Agrees with geodesic reference values to well under
// 1%, which is plenty of margin for a 50 m geofence.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if err := ValidateCoordinates(lat1, lng1); err != nil {
		return 0, err
	}
	if err := ValidateCoordinates(lat2, lng2); err != nil {
		return 0, err
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c, nil
}

// WithinRadius reports whether a measured distance falls inside the geofence.
func WithinRadius(distance, radius float64) bool {
	return distance <= radius
}

// RoundMeters rounds a distance to one decimal, the precision stored on
// attendance records and reported to students.
func RoundMeters(distance float64) float64 {
	return math.Round(distance*10) / 10
}
