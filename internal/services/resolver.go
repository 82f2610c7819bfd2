package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/platform/obs"
	"travel-fee-service/internal/ports"
)

// addressKeyPrefix separates free-form address entries from CEP entries in
// the shared coordinate cache.
const addressKeyPrefix = "endereco:"

// Resolver turns identifiers into resolved locations, consulting the
// coordinate cache before issuing external lookups.
type Resolver struct {
	cache     ports.CoordinateCache
	directory ports.AddressResolver
	geocoder  ports.Geocoder
	logger    *zap.Logger
}

func NewResolver(
	cache ports.CoordinateCache,
	directory ports.AddressResolver,
	geocoder ports.Geocoder,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		cache:     cache,
		directory: directory,
		geocoder:  geocoder,
		logger:    logger,
	}
}

// ResolveCEP resolves a normalized 8-digit CEP through the directory and
// geocoding chain. Results are cached; concurrent resolution of the same
// uncached CEP is allowed and the last write wins.
func (r *Resolver) ResolveCEP(ctx context.Context, cep string) (domain.ResolvedLocation, error) {
	if loc, ok := r.cache.Get(cep); ok {
		obs.CacheLookupsTotal.WithLabelValues("hit").Inc()
		r.logger.Debug("cep found in cache", zap.String("cep", cep))
		return loc, nil
	}
	obs.CacheLookupsTotal.WithLabelValues("miss").Inc()

	addr, err := r.directory.Resolve(ctx, cep)
	if err != nil {
		return domain.ResolvedLocation{}, fmt.Errorf("resolve cep %s: %w", cep, err)
	}

	coords, err := r.geocoder.Geocode(ctx, addr)
	if err != nil {
		return domain.ResolvedLocation{}, fmt.Errorf("geocode cep %s: %w", cep, err)
	}

	loc := domain.ResolvedLocation{
		CEP:         domain.FormatCEP(cep),
		Endereco:    formatEndereco(addr),
		Cidade:      addr.Localidade,
		UF:          addr.UF,
		Coordinates: coords,
	}
	r.cache.Put(cep, loc)

	r.logger.Info("cep resolved",
		zap.String("cep", cep),
		zap.Float64("lat", coords.Lat),
		zap.Float64("lon", coords.Lon))

	return loc, nil
}

// ResolveFreeForm resolves a free-text address via the geocoder directly.
// Entries are cached under a normalized address key.
func (r *Resolver) ResolveFreeForm(ctx context.Context, text string) (domain.ResolvedLocation, error) {
	key := addressKeyPrefix + strings.ToLower(strings.TrimSpace(text))
	if loc, ok := r.cache.Get(key); ok {
		obs.CacheLookupsTotal.WithLabelValues("hit").Inc()
		r.logger.Debug("address found in cache", zap.String("address", text))
		return loc, nil
	}
	obs.CacheLookupsTotal.WithLabelValues("miss").Inc()

	place, err := r.geocoder.SearchFreeForm(ctx, text)
	if err != nil {
		return domain.ResolvedLocation{}, fmt.Errorf("resolve address %q: %w", text, err)
	}

	cep := place.CEP
	if cep == "" {
		cep = "N/A"
	}

	loc := domain.ResolvedLocation{
		CEP:         cep,
		Endereco:    place.DisplayName,
		Cidade:      place.Cidade,
		UF:          place.UF,
		Coordinates: place.Coordinates,
	}
	r.cache.Put(key, loc)

	return loc, nil
}

// formatEndereco renders the locality label, e.g.
// "Rua Jamil Gebara, Jardim Paulista, Bauru-SP" or "Bauru-SP".
func formatEndereco(addr ports.Address) string {
	parts := make([]string, 0, 3)
	if addr.Logradouro != "" {
		parts = append(parts, addr.Logradouro)
	}
	if addr.Bairro != "" {
		parts = append(parts, addr.Bairro)
	}
	parts = append(parts, addr.Localidade+"-"+addr.UF)
	return strings.Join(parts, ", ")
}
