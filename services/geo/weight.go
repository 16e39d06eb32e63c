package geo

import (
	"fixify/models"
	"fixify/services/rules"
)

// Taper bounds for the proximity weight: full priority inside nearKm, zero
// beyond farKm, linear in between.
const (
	nearKm = 5.0
	farKm  = rules.ServiceRadiusKm
)

// DistanceWeight maps a distance in km to a priority weight in [0,1],
// monotonically non-increasing in distance.
func DistanceWeight(distanceKm float64) float64 {
	switch {
	case distanceKm < nearKm:
		return 1.0
	case distanceKm > farKm:
		return 0.0
	default:
		return 1 - (distanceKm-nearKm)/(farKm-nearKm)
	}
}

// FilterSlotsByDistance applies the proximity weight for the given distance to
// every slot. A zero weight means the address is outside the service radius,
// so every slot is flipped unavailable; otherwise the weight is attached and
// availability is left alone. Ordering is preserved; ranking is the caller's
// concern.
func FilterSlotsByDistance(slots []models.TimeSlot, distanceKm float64) []models.TimeSlot {
	weight := DistanceWeight(distanceKm)
	out := make([]models.TimeSlot, len(slots))
	for i, slot := range slots {
		if weight == 0 {
			slot.Available = false
			slot.Weight = nil
		} else {
			w := weight
			slot.Weight = &w
		}
		out[i] = slot
	}
	return out
}
