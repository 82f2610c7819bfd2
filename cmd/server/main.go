package main

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"travel-fee-service/internal/adapters/cache"
	"travel-fee-service/internal/adapters/nominatim"
	"travel-fee-service/internal/adapters/osrm"
	"travel-fee-service/internal/adapters/viacep"
	"travel-fee-service/internal/api"
	"travel-fee-service/internal/api/handlers"
	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/platform/httpclient"
	"travel-fee-service/internal/platform/obs"
	"travel-fee-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (ViaCEP, Nominatim, OSRM) behind ports and
// starts the HTTP server.
func main() {
	logger := obs.NewLogger("travel-fee-service")
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found (using environment variables)")
	}

	port := getEnv("PORT", "7777")
	originCEP := getEnv("ORIGIN_CEP", "17017-337")
	lookupTimeout := getEnvSeconds("HTTP_TIMEOUT_SECONDS", 5*time.Second)
	routingTimeout := getEnvSeconds("OSRM_TIMEOUT_SECONDS", 10*time.Second)
	maxRetries := getEnvInt("HTTP_MAX_RETRIES", 3)

	// Directory and geocoding lookups share a retry budget; routing gets a
	// longer deadline but no retries, since its failure path is the
	// geometric fallback, not another attempt.
	lookupClient := httpclient.New(httpclient.Config{
		Timeout:    lookupTimeout,
		MaxRetries: maxRetries,
	})
	routingClient := httpclient.New(httpclient.Config{Timeout: routingTimeout})

	directory := viacep.New(getEnv("VIACEP_BASE_URL", viacep.DefaultBaseURL), lookupClient, logger)
	geocoder := nominatim.New(getEnv("NOMINATIM_BASE_URL", nominatim.DefaultBaseURL), lookupClient, logger)
	router := osrm.New(getEnv("OSRM_BASE_URL", osrm.DefaultBaseURL), routingClient, logger)

	coordCache := cache.NewMemoryCoordinateCache()
	resolver := services.NewResolver(coordCache, directory, geocoder, logger)
	estimator := services.NewEstimator(router, logger)

	calc, err := services.NewCalculator(
		originCEP, resolver, estimator, coordCache, domain.DefaultFeeTable(), logger)
	if err != nil {
		logger.Fatal("invalid origin cep", zap.String("cep", originCEP), zap.Error(err))
	}

	probes := []handlers.UpstreamProbe{
		{Name: "viacep", Check: directory.Ping},
		{Name: "nominatim", Check: geocoder.Ping},
		{Name: "osrm", Check: router.Ping},
	}

	handler := api.NewRouter(calc, probes, logger)

	// Write timeout leaves room for a cold-cache request that walks the
	// whole resolution chain with retries.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("origem", calc.OriginCEP()))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
