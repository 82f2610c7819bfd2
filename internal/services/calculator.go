package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/platform/obs"
	"travel-fee-service/internal/ports"
)

// Calculator sequences the surcharge pipeline: normalize the destination,
// resolve origin and destination (through the cache), estimate the travel
// distance, apply the fee rule. It owns the single fixed origin CEP.
type Calculator struct {
	originCEP string
	resolver  *Resolver
	estimator *Estimator
	cache     ports.CoordinateCache
	fees      domain.FeeTable
	logger    *zap.Logger
	now       func() time.Time
}

func NewCalculator(
	originCEP string,
	resolver *Resolver,
	estimator *Estimator,
	cache ports.CoordinateCache,
	fees domain.FeeTable,
	logger *zap.Logger,
) (*Calculator, error) {
	normalized, err := domain.NormalizeCEP(originCEP)
	if err != nil {
		return nil, fmt.Errorf("origin cep: %w", err)
	}

	return &Calculator{
		originCEP: normalized,
		resolver:  resolver,
		estimator: estimator,
		cache:     cache,
		fees:      fees,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Calculate computes the surcharge for a destination CEP. The identifier is
// validated before any external call is issued.
func (c *Calculator) Calculate(ctx context.Context, rawCEP string) (domain.Calculation, error) {
	cep, err := domain.NormalizeCEP(rawCEP)
	if err != nil {
		obs.CalculationsTotal.WithLabelValues(outcomeFor(err)).Inc()
		return domain.Calculation{}, err
	}

	return c.run(ctx, func(ctx context.Context) (domain.ResolvedLocation, error) {
		return c.resolver.ResolveCEP(ctx, cep)
	})
}

// CalculateByAddress computes the surcharge for a free-text destination
// address.
func (c *Calculator) CalculateByAddress(ctx context.Context, endereco string) (domain.Calculation, error) {
	return c.run(ctx, func(ctx context.Context) (domain.ResolvedLocation, error) {
		return c.resolver.ResolveFreeForm(ctx, endereco)
	})
}

func (c *Calculator) run(
	ctx context.Context,
	resolveDestination func(context.Context) (domain.ResolvedLocation, error),
) (domain.Calculation, error) {
	// The origin never changes across requests, so after the first request
	// this is always a cache hit.
	origin, err := c.resolver.ResolveCEP(ctx, c.originCEP)
	if err != nil {
		obs.CalculationsTotal.WithLabelValues(outcomeFor(err)).Inc()
		return domain.Calculation{}, fmt.Errorf("resolve origin: %w", err)
	}

	destination, err := resolveDestination(ctx)
	if err != nil {
		obs.CalculationsTotal.WithLabelValues(outcomeFor(err)).Inc()
		return domain.Calculation{}, fmt.Errorf("resolve destination: %w", err)
	}

	distance := c.estimator.Estimate(ctx, origin.Coordinates, destination.Coordinates)

	fee, err := c.fees.Calculate(distance.OneWayKm)
	if err != nil {
		obs.CalculationsTotal.WithLabelValues(outcomeFor(err)).Inc()
		return domain.Calculation{}, fmt.Errorf("compute fee: %w", err)
	}

	obs.CalculationsTotal.WithLabelValues("ok").Inc()
	c.logger.Info("calculation done",
		zap.String("destino", destination.CEP),
		zap.Float64("ida_km", distance.OneWayKm),
		zap.String("metodo", distance.Method),
		zap.Float64("valor_taxa", fee.Amount))

	return domain.Calculation{
		Origin:      origin,
		Destination: destination,
		Distance:    distance,
		Fee:         fee,
		Timestamp:   c.now(),
	}, nil
}

// ClearCache removes every cached resolution and reports the count removed.
func (c *Calculator) ClearCache() int {
	removed := c.cache.Clear()
	c.logger.Info("coordinate cache cleared", zap.Int("removed", removed))
	return removed
}

// CacheSize reports the number of cached resolutions.
func (c *Calculator) CacheSize() int {
	return c.cache.Len()
}

// OriginCEP returns the fixed origin in display form.
func (c *Calculator) OriginCEP() string {
	return domain.FormatCEP(c.originCEP)
}

// FeeTable returns the business rule in effect.
func (c *Calculator) FeeTable() domain.FeeTable {
	return c.fees
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCEP):
		return "invalid_cep"
	case errors.Is(err, domain.ErrAddressNotFound), errors.Is(err, domain.ErrGeocodeNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
