// Package geo computes great-circle distances, the proximity weight applied
// to candidate slots, and nearest-region resolution for customer addresses.
package geo

import (
	"math"

	"fixify/models"
)

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(a, b models.Coordinates) float64 {
	const R = 6371
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180)
	lat1Rad := a.Latitude * (math.Pi / 180)
	lat2Rad := b.Latitude * (math.Pi / 180)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return R * c
}
