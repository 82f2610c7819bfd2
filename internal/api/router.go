package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"travel-fee-service/internal/api/handlers"
	"travel-fee-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(calc *services.Calculator, probes []handlers.UpstreamProbe, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))

	calcHandler := &handlers.CalcHandler{Svc: calc, Logger: logger}
	healthHandler := &handlers.HealthHandler{
		CacheSize: calc.CacheSize,
		Probes:    probes,
		Logger:    logger,
	}
	indexHandler := &handlers.IndexHandler{
		OriginCEP: calc.OriginCEP(),
		Fees:      calc.FeeTable(),
		Logger:    logger,
	}

	r.Get("/", indexHandler.Info)
	r.Get("/health", healthHandler.Check)
	r.Post("/calcular", calcHandler.Calculate)
	r.Get("/teste/{cep}", calcHandler.QuickTestCEP)
	r.Get("/teste-endereco/*", calcHandler.QuickTestAddress)
	r.Post("/limpar-cache", calcHandler.ClearCache)
	r.Handle("/metrics", promhttp.Handler())

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"erro","codigo":"ENDPOINT_NAO_ENCONTRADO","mensagem":"Endpoint não encontrado. Consulte / para ver os endpoints disponíveis"}`))
	})

	return r
}
