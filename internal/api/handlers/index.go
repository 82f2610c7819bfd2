package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"travel-fee-service/internal/domain"
)

// IndexHandler serves the API description at the root path.
type IndexHandler struct {
	OriginCEP string
	Fees      domain.FeeTable
	Logger    *zap.Logger
}

func (h *IndexHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Logger, http.StatusOK, map[string]any{
		"api":    "Calculadora de Taxa de Deslocamento",
		"versao": "1.0.0",
		"endpoints": map[string]string{
			"/":                     "Informações da API",
			"/health":               "Status de saúde",
			"/calcular":             "POST - Calcular taxa de deslocamento (aceita 'cep' ou 'endereco')",
			"/teste/{cep}":          "GET - Testar cálculo com CEP",
			"/teste-endereco/{end}": "GET - Testar cálculo com endereço",
			"/limpar-cache":         "POST - Limpar cache de coordenadas",
			"/metrics":              "Métricas Prometheus",
		},
		"servicos_utilizados": map[string]string{
			"cep":       "ViaCEP",
			"geocoding": "Nominatim/OpenStreetMap",
			"routing":   "OSRM - Open Source Routing Machine",
		},
		"regras_negocio": map[string]any{
			"cep_origem":        h.OriginCEP,
			"franquia_km_ida":   h.Fees.OneWayFranchiseKm,
			"franquia_km_total": h.Fees.RoundTripFranchiseKm(),
			"taxa_por_km":       fmt.Sprintf("R$ %.2f", h.Fees.RatePerKm),
			"formula": fmt.Sprintf("(Distância_Total_KM - %.0f) × R$ %.2f",
				h.Fees.RoundTripFranchiseKm(), h.Fees.RatePerKm),
		},
	})
}
