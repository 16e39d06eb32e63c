package geo

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"fixify/models"
	"fixify/services/rules"
	"fixify/utils"
)

// MinGeocodeInterval is the minimum spacing between successive geocoding
// requests issued by one Resolver.
const MinGeocodeInterval = 100 * time.Millisecond

// Resolver resolves customer addresses to their nearest service region. It
// owns the request pacing for its geocoder, so concurrent callers are spaced
// out rather than bursting the provider.
type Resolver struct {
	geocoder Geocoder
	limiter  *rate.Limiter
}

// NewResolver builds a Resolver around the given geocoder.
func NewResolver(geocoder Geocoder) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		limiter:  rate.NewLimiter(rate.Every(MinGeocodeInterval), 1),
	}
}

// unresolved is the safe result used whenever geocoding fails.
func unresolved() models.RegionResolution {
	return models.RegionResolution{
		Region:       "",
		DistanceKm:   math.Inf(1),
		WithinRadius: false,
	}
}

// ResolveRegion geocodes the address and returns the nearest fixed region
// center. Every geocoder failure, rate limits and zero results included, is
// absorbed here into an unresolved result; nothing propagates as an error
// past this boundary.
func (r *Resolver) ResolveRegion(ctx context.Context, address string) models.RegionResolution {
	logger := utils.GetLogger()

	if err := r.limiter.Wait(ctx); err != nil {
		logger.Warn("Geocode pacing wait aborted", zap.String("address", address), zap.Error(err))
		return unresolved()
	}

	point, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		logger.Warn("Geocoding failed; treating address as unresolved",
			zap.String("address", address), zap.Error(err))
		return unresolved()
	}

	region, distanceKm := NearestRegion(point)
	return models.RegionResolution{
		Region:       region,
		DistanceKm:   distanceKm,
		WithinRadius: distanceKm <= rules.ServiceRadiusKm,
	}
}
