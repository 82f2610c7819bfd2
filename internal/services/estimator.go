package services

import (
	"context"
	"math"

	"go.uber.org/zap"

	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/platform/obs"
	"travel-fee-service/internal/ports"
)

const (
	earthRadiusKm = 6371.0

	// Empirical correction applied to the great-circle distance to
	// approximate the real road distance.
	roadCircuityFactor = 1.3
)

// Estimator computes one-way travel distances. The primary path asks the
// route provider for a real road route; on any failure it degrades to a
// corrected great-circle estimate. The caller always learns which method
// produced the result via the method tag.
type Estimator struct {
	routes ports.RouteProvider
	logger *zap.Logger
}

func NewEstimator(routes ports.RouteProvider, logger *zap.Logger) *Estimator {
	return &Estimator{routes: routes, logger: logger}
}

// Estimate never fails for valid coordinates: the geometric fallback is a
// closed-form computation with no external dependency. Duration is only
// known on the primary path.
func (e *Estimator) Estimate(ctx context.Context, origin, destination domain.Coordinates) domain.DistanceResult {
	route, err := e.routes.DrivingRoute(ctx, origin, destination)
	if err == nil {
		minutes := route.DurationSeconds / 60
		obs.DistanceMethodTotal.WithLabelValues(domain.MethodOSRM).Inc()
		return domain.DistanceResult{
			OneWayKm:        route.DistanceMeters / 1000,
			DurationMinutes: &minutes,
			Method:          domain.MethodOSRM,
		}
	}

	e.logger.Warn("routing failed, using geometric fallback", zap.Error(err))
	obs.DistanceMethodTotal.WithLabelValues(domain.MethodHaversine).Inc()

	return domain.DistanceResult{
		OneWayKm: haversineKm(origin, destination) * roadCircuityFactor,
		Method:   domain.MethodHaversine,
	}
}

// haversineKm returns the great-circle distance between two coordinates.
func haversineKm(a, b domain.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dlat := toRadians(b.Lat - a.Lat)
	dlon := toRadians(b.Lon - a.Lon)

	sinDlat := math.Sin(dlat / 2)
	sinDlon := math.Sin(dlon / 2)
	h := sinDlat*sinDlat + math.Cos(lat1)*math.Cos(lat2)*sinDlon*sinDlon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
