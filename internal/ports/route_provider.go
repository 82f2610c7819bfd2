package ports

import (
	"context"

	"travel-fee-service/internal/domain"
)

// RouteResult is a one-way driving route over the real road network.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// RouteProvider computes driving routes between two coordinate pairs.
// Any error (timeout, transport, no route) tells the caller to fall back to
// a geometric estimate; errors from this port never reach the end user.
type RouteProvider interface {
	DrivingRoute(ctx context.Context, origin, destination domain.Coordinates) (RouteResult, error)
}
