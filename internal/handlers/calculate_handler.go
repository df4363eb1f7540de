package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/GGmuzem/showcase-api/internal/calculator"
	"github.com/GGmuzem/showcase-api/internal/stringx"
	"github.com/GGmuzem/showcase-api/pkg/models"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// максимальная длина имени операции в логах
const logOperationLen = 32

type operationFunc func(ctx context.Context, req models.CalculationRequest) (float64, error)

func (h *Handler) newOperations() map[string]operationFunc {
	return map[string]operationFunc{
		models.OperationAdd: func(_ context.Context, req models.CalculationRequest) (float64, error) {
			result, err := h.calc.Add(int32(req.A), int32(req.B))
			return float64(result), err
		},
		models.OperationSubtract: func(_ context.Context, req models.CalculationRequest) (float64, error) {
			result, err := h.calc.Subtract(int32(req.A), int32(req.B))
			return float64(result), err
		},
		models.OperationDivide: func(_ context.Context, req models.CalculationRequest) (float64, error) {
			result, err := h.calc.Divide(decimal.NewFromFloat(req.A), decimal.NewFromFloat(req.B))
			return result.InexactFloat64(), err
		},
		models.OperationSqrt: func(ctx context.Context, req models.CalculationRequest) (float64, error) {
			return h.calc.CalculateAsync(ctx, req.A)
		},
	}
}

// CalculateHandler обрабатывает POST /calculate
func (h *Handler) CalculateHandler(w http.ResponseWriter, r *http.Request) {
	var body models.CalculationRequestBody
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		h.log.Debug("invalid calculation body", "error", err)
		writeJSON(h.log, w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON body"})
		return
	}

	req, err := body.Request()
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	op, ok := h.operations[req.NormalizedOperation()]
	if !ok {
		h.handleError(w, r, calculator.UnsupportedOperationError(req.Operation))
		return
	}

	result, err := op(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log.Debug("calculated",
		"operation", stringx.SafeSubstring(req.Operation, 0, logOperationLen),
		"a", req.A, "b", req.B, "result", result)

	writeJSON(h.log, w, http.StatusOK, models.CalculationResult{Result: result, Operation: req.Operation})
}
