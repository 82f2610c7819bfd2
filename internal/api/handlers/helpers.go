package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"travel-fee-service/internal/api/dto"
)

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("response encode failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, codigo, mensagem string) {
	writeJSON(w, logger, status, dto.ErrorResponse{
		Status:   "erro",
		Codigo:   codigo,
		Mensagem: mensagem,
	})
}
