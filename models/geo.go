package models

import (
	"encoding/json"
	"math"
)

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RegionID identifies one of the five fixed service regions.
type RegionID string

const (
	RegionWest      RegionID = "west"
	RegionNorth     RegionID = "north"
	RegionCentral   RegionID = "central"
	RegionNortheast RegionID = "northeast"
	RegionEast      RegionID = "east"
)

// Region maps a fixed region id to its canonical center. Static, never mutated.
type Region struct {
	ID     RegionID    `json:"id"`
	Center Coordinates `json:"center"`
}

// RegionResolution is the outcome of resolving an address to its nearest
// service region. An unresolved address has an empty Region, an infinite
// distance and WithinRadius false.
type RegionResolution struct {
	Region       RegionID `json:"region,omitempty"`
	DistanceKm   float64  `json:"distanceKm"`
	WithinRadius bool     `json:"withinRadius"`
}

// MarshalJSON renders the infinite distance of an unresolved address as null,
// which encoding/json cannot represent as a float.
func (r RegionResolution) MarshalJSON() ([]byte, error) {
	type wire struct {
		Region       RegionID `json:"region,omitempty"`
		DistanceKm   *float64 `json:"distanceKm"`
		WithinRadius bool     `json:"withinRadius"`
	}
	w := wire{Region: r.Region, WithinRadius: r.WithinRadius}
	if !math.IsInf(r.DistanceKm, 0) {
		w.DistanceKm = &r.DistanceKm
	}
	return json.Marshal(w)
}
