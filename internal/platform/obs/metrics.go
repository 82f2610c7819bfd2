package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CalculationsTotal counts surcharge calculations grouped by outcome
	// (ok, invalid_cep, not_found, unavailable, error).
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fee_calculations_total",
		Help: "Total surcharge calculations grouped by outcome.",
	}, []string{"outcome"})

	// DistanceMethodTotal counts distance estimates by method, so fallback
	// activation is visible without reading logs.
	DistanceMethodTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "distance_method_total",
		Help: "Distance computations grouped by method (osrm, haversine_ajustado).",
	}, []string{"method"})

	// CacheLookupsTotal counts coordinate cache lookups by result.
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coordinate_cache_lookups_total",
		Help: "Coordinate cache lookups grouped by result (hit, miss).",
	}, []string{"result"})
)
