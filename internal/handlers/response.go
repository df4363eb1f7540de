package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GGmuzem/showcase-api/internal/calculator"
	"github.com/GGmuzem/showcase-api/internal/logger"
	"github.com/GGmuzem/showcase-api/pkg/models"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON пишет v с кодом status. Заголовок к этому моменту уже отправлен,
// поэтому ошибка записи тела (обычно клиент отключился) только логируется
func writeJSON(log *logger.Logger, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("write response failed", "status", status, "error", err)
	}
}

// handleError переводит ошибку в HTTP-ответ: ошибки проверки и калькулятора дают 400,
// всё остальное 500
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) || calculator.IsDomainError(err) {
		h.log.Debug("request rejected", "path", r.URL.Path, "error", err)
		writeJSON(h.log, w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	h.log.Error("request failed", "path", r.URL.Path, "error", err)
	writeJSON(h.log, w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
