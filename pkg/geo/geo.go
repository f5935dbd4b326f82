package geo

import (
	"fmt"
	"math"
)

const EarthRadiusMeters = 6371000.0

// Distance returns the haversine (great-circle) distance in meters between
// two (longitude, latitude) points given in degrees.
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(a))
}

// ValidateCoordinates checks a [longitude, latitude] pair as supplied by a
// profile update.
func ValidateCoordinates(coords []float64) error {
	if len(coords) != 2 {
		return fmt.Errorf("coordinates must be a [longitude, latitude] pair")
	}
	lon, lat := coords[0], coords[1]
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
