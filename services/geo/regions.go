package geo

import "fixify/models"

// regionCenters are the five fixed service-region reference points.
var regionCenters = []models.Region{
	{ID: models.RegionWest, Center: models.Coordinates{Latitude: 1.3329, Longitude: 103.7436}},
	{ID: models.RegionNorth, Center: models.Coordinates{Latitude: 1.4382, Longitude: 103.7890}},
	{ID: models.RegionCentral, Center: models.Coordinates{Latitude: 1.3048, Longitude: 103.8318}},
	{ID: models.RegionNortheast, Center: models.Coordinates{Latitude: 1.3868, Longitude: 103.8914}},
	{ID: models.RegionEast, Center: models.Coordinates{Latitude: 1.3496, Longitude: 103.9568}},
}

// Regions returns a copy of the fixed region centers.
func Regions() []models.Region {
	out := make([]models.Region, len(regionCenters))
	copy(out, regionCenters)
	return out
}

// NearestRegion returns the region center closest to the given point along
// with the distance to it in km.
func NearestRegion(point models.Coordinates) (models.RegionID, float64) {
	var nearest models.RegionID
	best := -1.0
	for _, r := range regionCenters {
		d := HaversineKm(point, r.Center)
		if best < 0 || d < best {
			best = d
			nearest = r.ID
		}
	}
	return nearest, best
}
