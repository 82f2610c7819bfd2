package domain

import "time"

// ResolvedLocation is the product of the resolution chain: a postal
// identifier with its locality label and coordinates. Immutable once
// constructed; owned by the coordinate cache entry and by the responses
// it contributes to.
type ResolvedLocation struct {
	CEP         string
	Endereco    string
	Cidade      string
	UF          string
	Coordinates Coordinates
}

// Calculation aggregates everything the external interface returns for one
// request. Created once per request, never persisted.
type Calculation struct {
	Origin      ResolvedLocation
	Destination ResolvedLocation
	Distance    DistanceResult
	Fee         FeeBreakdown
	Timestamp   time.Time
}
