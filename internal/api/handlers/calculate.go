package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"travel-fee-service/internal/api/dto"
	"travel-fee-service/internal/domain"
	"travel-fee-service/internal/services"
)

// CalcHandler exposes the surcharge calculation and cache administration
// endpoints.
type CalcHandler struct {
	Svc    *services.Calculator
	Logger *zap.Logger
}

// Calculate handles POST /calcular with either {"cep": …} or
// {"endereco": …} in the body.
func (h *CalcHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, h.Logger, http.StatusBadRequest,
			"DADOS_OBRIGATORIOS", "Informe o endereço ou CEP no corpo da requisição")
		return
	}

	switch {
	case strings.TrimSpace(req.Endereco) != "":
		result, err := h.Svc.CalculateByAddress(r.Context(), req.Endereco)
		h.respond(w, result, err)
	case strings.TrimSpace(req.CEP) != "":
		result, err := h.Svc.Calculate(r.Context(), req.CEP)
		h.respond(w, result, err)
	default:
		writeError(w, h.Logger, http.StatusBadRequest,
			"PARAMETRO_INVALIDO", "Informe 'endereco' ou 'cep' no corpo da requisição")
	}
}

// QuickTestCEP handles GET /teste/{cep} for manual testing.
func (h *CalcHandler) QuickTestCEP(w http.ResponseWriter, r *http.Request) {
	cep := chi.URLParam(r, "cep")
	result, err := h.Svc.Calculate(r.Context(), cep)
	h.respond(w, result, err)
}

// QuickTestAddress handles GET /teste-endereco/{endereco} where the address
// may span multiple path segments.
func (h *CalcHandler) QuickTestAddress(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "*")
	endereco, err := url.PathUnescape(raw)
	if err != nil {
		endereco = raw
	}

	if strings.TrimSpace(endereco) == "" {
		writeError(w, h.Logger, http.StatusBadRequest,
			"ENDERECO_VAZIO", "O endereço não pode estar vazio")
		return
	}

	result, calcErr := h.Svc.CalculateByAddress(r.Context(), endereco)
	h.respond(w, result, calcErr)
}

// ClearCache handles POST /limpar-cache.
func (h *CalcHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	removed := h.Svc.ClearCache()
	writeJSON(w, h.Logger, http.StatusOK, map[string]any{
		"status":             "sucesso",
		"entradas_removidas": removed,
	})
}

func (h *CalcHandler) respond(w http.ResponseWriter, result domain.Calculation, err error) {
	if err == nil {
		writeJSON(w, h.Logger, http.StatusOK, dto.FromCalculation(result))
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCEP):
		writeError(w, h.Logger, http.StatusBadRequest,
			"CEP_INVALIDO", "CEP inválido. Use o formato XXXXX-XXX ou XXXXXXXX")
	case errors.Is(err, domain.ErrAddressNotFound):
		writeError(w, h.Logger, http.StatusNotFound,
			"CEP_NAO_ENCONTRADO", "CEP não encontrado")
	case errors.Is(err, domain.ErrGeocodeNotFound):
		writeError(w, h.Logger, http.StatusNotFound,
			"ENDERECO_NAO_ENCONTRADO", "Não foi possível localizar o endereço")
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		writeError(w, h.Logger, http.StatusBadGateway,
			"SERVICO_INDISPONIVEL", "Serviço externo indisponível, tente novamente")
	default:
		h.Logger.Error("calculation failed", zap.Error(err))
		writeError(w, h.Logger, http.StatusInternalServerError,
			"ERRO_INTERNO", "Erro interno do servidor")
	}
}
