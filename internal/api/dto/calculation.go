package dto

import (
	"math"
	"time"

	"travel-fee-service/internal/domain"
)

// Request body for POST /calcular. Exactly one of the fields is expected.
type CalculateRequest struct {
	CEP      string `json:"cep,omitempty"`
	Endereco string `json:"endereco,omitempty"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type LocationResponse struct {
	CEP         string              `json:"cep"`
	Endereco    string              `json:"endereco"`
	Coordenadas CoordinatesResponse `json:"coordenadas"`
}

type DistanceResponse struct {
	IdaKm      float64 `json:"ida_km"`
	IdaVoltaKm float64 `json:"ida_volta_km"`
	// Absent when the geometric fallback produced the distance.
	TempoEstimadoIdaMinutos *float64 `json:"tempo_estimado_ida_minutos,omitempty"`
	MetodoCalculo           string   `json:"metodo_calculo"`
}

type FeeResponse struct {
	FranquiaKmIda   float64 `json:"franquia_km_ida"`
	FranquiaKmTotal float64 `json:"franquia_km_total"`
	KmExcedente     float64 `json:"km_excedente"`
	TaxaPorKm       float64 `json:"taxa_por_km"`
	ValorTaxa       float64 `json:"valor_taxa"`
}

type CalculationResponse struct {
	Status    string           `json:"status"`
	Origem    LocationResponse `json:"origem"`
	Destino   LocationResponse `json:"destino"`
	Distancia DistanceResponse `json:"distancia"`
	Calculo   FeeResponse      `json:"calculo"`
	Timestamp string           `json:"timestamp"`
}

type ErrorResponse struct {
	Status   string `json:"status"`
	Codigo   string `json:"codigo"`
	Mensagem string `json:"mensagem"`
}

// FromCalculation maps a domain calculation to the wire payload, rounding
// kilometers and currency to two decimals.
func FromCalculation(c domain.Calculation) CalculationResponse {
	var tempo *float64
	if c.Distance.DurationMinutes != nil {
		v := math.Round(*c.Distance.DurationMinutes)
		tempo = &v
	}

	return CalculationResponse{
		Status:  "sucesso",
		Origem:  fromLocation(c.Origin),
		Destino: fromLocation(c.Destination),
		Distancia: DistanceResponse{
			IdaKm:                   round2(c.Distance.OneWayKm),
			IdaVoltaKm:              round2(2 * c.Distance.OneWayKm),
			TempoEstimadoIdaMinutos: tempo,
			MetodoCalculo:           c.Distance.Method,
		},
		Calculo: FeeResponse{
			FranquiaKmIda:   c.Fee.OneWayFranchiseKm,
			FranquiaKmTotal: c.Fee.RoundTripFranchiseKm,
			KmExcedente:     round2(c.Fee.ExcessKm),
			TaxaPorKm:       c.Fee.RatePerKm,
			ValorTaxa:       round2(c.Fee.Amount),
		},
		Timestamp: c.Timestamp.Format(time.RFC3339),
	}
}

func fromLocation(loc domain.ResolvedLocation) LocationResponse {
	return LocationResponse{
		CEP:      loc.CEP,
		Endereco: loc.Endereco,
		Coordenadas: CoordinatesResponse{
			Lat: loc.Coordinates.Lat,
			Lon: loc.Coordinates.Lon,
		},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
