package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travel-fee-service/internal/adapters/cache"
	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/ports"
)

type stubDirectory struct {
	addresses map[string]ports.Address
	err       error
	calls     int
}

func (s *stubDirectory) Resolve(_ context.Context, cep string) (ports.Address, error) {
	s.calls++
	if s.err != nil {
		return ports.Address{}, s.err
	}
	addr, ok := s.addresses[cep]
	if !ok {
		return ports.Address{}, fmt.Errorf("viacep: cep %s: %w", cep, domain.ErrAddressNotFound)
	}
	return addr, nil
}

type stubGeocoder struct {
	coords map[string]domain.Coordinates
	place  ports.Place
	err    error
	calls  int
}

func (s *stubGeocoder) Geocode(_ context.Context, addr ports.Address) (domain.Coordinates, error) {
	s.calls++
	if s.err != nil {
		return domain.Coordinates{}, s.err
	}
	c, ok := s.coords[addr.CEP]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("nominatim: %q: %w", addr.Localidade, domain.ErrGeocodeNotFound)
	}
	return c, nil
}

func (s *stubGeocoder) SearchFreeForm(_ context.Context, _ string) (ports.Place, error) {
	s.calls++
	if s.err != nil {
		return ports.Place{}, s.err
	}
	return s.place, nil
}

func newTestCalculator(t *testing.T, directory *stubDirectory, geocoder *stubGeocoder, routes *stubRouteProvider) *Calculator {
	t.Helper()

	logger := zap.NewNop()
	coordCache := cache.NewMemoryCoordinateCache()
	resolver := NewResolver(coordCache, directory, geocoder, logger)
	estimator := NewEstimator(routes, logger)

	calc, err := NewCalculator("17017-337", resolver, estimator, coordCache, domain.DefaultFeeTable(), logger)
	require.NoError(t, err)
	return calc
}

func defaultStubs() (*stubDirectory, *stubGeocoder) {
	directory := &stubDirectory{addresses: map[string]ports.Address{
		"17017337": {CEP: "17017337", Logradouro: "Rua Aviador Gomes Ribeiro", Bairro: "Centro", Localidade: "Bauru", UF: "SP"},
		"17500005": {CEP: "17500005", Localidade: "Marília", UF: "SP"},
	}}
	geocoder := &stubGeocoder{coords: map[string]domain.Coordinates{
		"17017337": bauru,
		"17500005": marilia,
	}}
	return directory, geocoder
}

func TestCalculateEndToEnd(t *testing.T) {
	directory, geocoder := defaultStubs()
	routes := &stubRouteProvider{
		result: ports.RouteResult{DistanceMeters: 107500, DurationSeconds: 4800},
	}
	calc := newTestCalculator(t, directory, geocoder, routes)

	got, err := calc.Calculate(context.Background(), "17500-005")
	require.NoError(t, err)

	require.Equal(t, "17017-337", got.Origin.CEP)
	require.Equal(t, "Bauru", got.Origin.Cidade)
	require.Equal(t, "17500-005", got.Destination.CEP)
	require.Equal(t, "Marília-SP", got.Destination.Endereco)

	require.Equal(t, domain.MethodOSRM, got.Distance.Method)
	require.InDelta(t, 107.5, got.Distance.OneWayKm, 1e-9)

	require.InDelta(t, 155.0, got.Fee.ExcessKm, 1e-9)
	require.InDelta(t, 248.00, got.Fee.Amount, 1e-9)
	require.False(t, got.Timestamp.IsZero())
}

func TestCalculateWithinFranchise(t *testing.T) {
	directory, geocoder := defaultStubs()
	routes := &stubRouteProvider{
		result: ports.RouteResult{DistanceMeters: 25000, DurationSeconds: 1500},
	}
	calc := newTestCalculator(t, directory, geocoder, routes)

	got, err := calc.Calculate(context.Background(), "17500005")
	require.NoError(t, err)
	require.Zero(t, got.Fee.ExcessKm)
	require.Zero(t, got.Fee.Amount)
}

func TestCalculateInvalidCEPIssuesNoExternalCalls(t *testing.T) {
	directory, geocoder := defaultStubs()
	routes := &stubRouteProvider{}
	calc := newTestCalculator(t, directory, geocoder, routes)

	_, err := calc.Calculate(context.Background(), "123")
	require.ErrorIs(t, err, domain.ErrInvalidCEP)

	require.Zero(t, directory.calls)
	require.Zero(t, geocoder.calls)
	require.Zero(t, routes.calls)
}

func TestCalculateCachesResolutions(t *testing.T) {
	directory, geocoder := defaultStubs()
	routes := &stubRouteProvider{
		result: ports.RouteResult{DistanceMeters: 107500, DurationSeconds: 4800},
	}
	calc := newTestCalculator(t, directory, geocoder, routes)

	_, err := calc.Calculate(context.Background(), "17500-005")
	require.NoError(t, err)
	// origin + destination
	require.Equal(t, 2, directory.calls)

	_, err = calc.Calculate(context.Background(), "17500-005")
	require.NoError(t, err)
	// everything served from cache the second time
	require.Equal(t, 2, directory.calls)
	require.Equal(t, 2, geocoder.calls)
	require.Equal(t, 2, routes.calls, "distance is never cached")
}

func TestCalculateRoutingFailureDoesNotFailRequest(t *testing.T) {
	directory, geocoder := defaultStubs()
	routes := &stubRouteProvider{err: context.DeadlineExceeded}
	calc := newTestCalculator(t, directory, geocoder, routes)

	got, err := calc.Calculate(context.Background(), "17500-005")
	require.NoError(t, err)
	require.Equal(t, domain.MethodHaversine, got.Distance.Method)
	require.Nil(t, got.Distance.DurationMinutes)
	require.Greater(t, got.Fee.Amount, 0.0)
}

func TestCalculateUnknownCEP(t *testing.T) {
	directory, geocoder := defaultStubs()
	calc := newTestCalculator(t, directory, geocoder, &stubRouteProvider{})

	_, err := calc.Calculate(context.Background(), "99999-999")
	require.ErrorIs(t, err, domain.ErrAddressNotFound)
}

func TestCalculateUpstreamUnavailablePropagates(t *testing.T) {
	directory := &stubDirectory{err: fmt.Errorf("viacep: %w", domain.ErrUpstreamUnavailable)}
	_, geocoder := defaultStubs()
	calc := newTestCalculator(t, directory, geocoder, &stubRouteProvider{})

	_, err := calc.Calculate(context.Background(), "17500-005")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestCalculateByAddress(t *testing.T) {
	directory, geocoder := defaultStubs()
	geocoder.place = ports.Place{
		DisplayName: "Avenida Paulista, São Paulo, SP, Brazil",
		Cidade:      "São Paulo",
		UF:          "São Paulo",
		CEP:         "01310-100",
		Coordinates: domain.Coordinates{Lat: -23.5489, Lon: -46.6388},
	}
	routes := &stubRouteProvider{
		result: ports.RouteResult{DistanceMeters: 330000, DurationSeconds: 14400},
	}
	calc := newTestCalculator(t, directory, geocoder, routes)

	got, err := calc.CalculateByAddress(context.Background(), "Avenida Paulista, São Paulo")
	require.NoError(t, err)
	require.Equal(t, "01310-100", got.Destination.CEP)
	require.Equal(t, "São Paulo", got.Destination.Cidade)
	require.InDelta(t, 330.0, got.Distance.OneWayKm, 1e-9)
}

func TestCalculateByAddressIsCached(t *testing.T) {
	directory, geocoder := defaultStubs()
	geocoder.place = ports.Place{
		DisplayName: "Praça da Sé, São Paulo",
		Coordinates: domain.Coordinates{Lat: -23.5505, Lon: -46.6333},
	}
	routes := &stubRouteProvider{
		result: ports.RouteResult{DistanceMeters: 330000, DurationSeconds: 14400},
	}
	calc := newTestCalculator(t, directory, geocoder, routes)

	_, err := calc.CalculateByAddress(context.Background(), "Praça da Sé, São Paulo")
	require.NoError(t, err)
	freeFormCalls := geocoder.calls

	_, err = calc.CalculateByAddress(context.Background(), "  praça da sé, são paulo ")
	require.NoError(t, err)
	require.Equal(t, freeFormCalls, geocoder.calls, "normalized address key should hit the cache")
}

func TestClearCache(t *testing.T) {
	directory, geocoder := defaultStubs()
	routes := &stubRouteProvider{
		result: ports.RouteResult{DistanceMeters: 107500, DurationSeconds: 4800},
	}
	calc := newTestCalculator(t, directory, geocoder, routes)

	_, err := calc.Calculate(context.Background(), "17500-005")
	require.NoError(t, err)
	require.Equal(t, 2, calc.CacheSize())

	require.Equal(t, 2, calc.ClearCache())
	require.Equal(t, 0, calc.CacheSize())

	// resolutions happen again after the cache reset
	_, err = calc.Calculate(context.Background(), "17500-005")
	require.NoError(t, err)
	require.Equal(t, 4, directory.calls)
}

func TestNewCalculatorRejectsBadOrigin(t *testing.T) {
	directory, geocoder := defaultStubs()
	logger := zap.NewNop()
	coordCache := cache.NewMemoryCoordinateCache()
	resolver := NewResolver(coordCache, directory, geocoder, logger)
	estimator := NewEstimator(&stubRouteProvider{}, logger)

	_, err := NewCalculator("not-a-cep", resolver, estimator, coordCache, domain.DefaultFeeTable(), logger)
	require.ErrorIs(t, err, domain.ErrInvalidCEP)
}
