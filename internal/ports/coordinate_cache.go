package ports

import "travel-fee-service/internal/domain"

// CoordinateCache maps normalized identifiers to resolved locations for the
// lifetime of the process. Entries never expire; only Clear removes them.
// Implementations must be safe for concurrent use. Two requests resolving the
// same uncached key concurrently is acceptable: last write wins.
type CoordinateCache interface {
	Get(key string) (domain.ResolvedLocation, bool)
	Put(key string, loc domain.ResolvedLocation)
	// Clear removes every entry and reports how many were removed.
	Clear() int
	Len() int
}
