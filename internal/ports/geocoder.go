package ports

import (
	"context"

	"travel-fee-service/internal/domain"
)

// Place is a free-form geocoding match with whatever locality detail the
// upstream could extract.
type Place struct {
	DisplayName string
	Cidade      string
	UF          string
	CEP         string
	Coordinates domain.Coordinates
}

// Geocoder resolves addresses to coordinates via an external geocoding
// lookup. When the upstream returns multiple candidates, implementations
// select the first (highest-ranked) result.
type Geocoder interface {
	// Geocode resolves a structured CEP address to coordinates.
	// Fails with domain.ErrGeocodeNotFound when no candidate is returned.
	Geocode(ctx context.Context, addr Address) (domain.Coordinates, error)

	// SearchFreeForm resolves a free-text address to a Place.
	SearchFreeForm(ctx context.Context, text string) (Place, error)
}
