package domain

import "errors"

// Error taxonomy surfaced by the calculation pipeline. Adapters and services
// wrap these sentinels with context via %w so callers can classify failures
// with errors.Is.
var (
	// ErrInvalidCEP reports a destination identifier that does not normalize
	// to exactly 8 digits.
	ErrInvalidCEP = errors.New("invalid cep")

	// ErrAddressNotFound reports a CEP the directory service does not know.
	ErrAddressNotFound = errors.New("address not found")

	// ErrGeocodeNotFound reports an address the geocoding service returned
	// no candidates for.
	ErrGeocodeNotFound = errors.New("geocode not found")

	// ErrUpstreamUnavailable reports a timeout or transport failure that
	// survived the retry budget. There is no safe fallback for missing
	// coordinates, so this propagates to the caller.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInvalidDistance reports a negative or non-finite distance input.
	// This is a contract violation, not an expected runtime condition.
	ErrInvalidDistance = errors.New("invalid distance")
)
