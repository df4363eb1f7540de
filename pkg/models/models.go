package models

import (
	"fmt"
	"math"
	"strings"
)

// Границы допустимых операндов запроса на вычисление
const (
	MinOperand = -1000000
	MaxOperand = 1000000
)

// Поддерживаемые операции
const (
	OperationAdd      = "add"
	OperationSubtract = "subtract"
	OperationDivide   = "divide"
	OperationSqrt     = "sqrt"
)

// ValidationError ошибка проверки полей модели
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CalculationRequest запрос на вычисление
type CalculationRequest struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
}

// CalculationRequestBody тело POST /calculate. Указатели отличают отсутствующее поле от нуля
type CalculationRequestBody struct {
	Operation *string  `json:"operation"`
	A         *float64 `json:"a"`
	B         *float64 `json:"b"`
}

// Request проверяет наличие обязательных полей и собирает проверенный CalculationRequest
func (b CalculationRequestBody) Request() (CalculationRequest, error) {
	if b.Operation == nil {
		return CalculationRequest{}, &ValidationError{Field: "operation", Message: "operation is required"}
	}
	if b.A == nil {
		return CalculationRequest{}, &ValidationError{Field: "a", Message: "a is required"}
	}
	if b.B == nil {
		return CalculationRequest{}, &ValidationError{Field: "b", Message: "b is required"}
	}

	req := CalculationRequest{Operation: *b.Operation, A: *b.A, B: *b.B}
	if err := req.Validate(); err != nil {
		return CalculationRequest{}, err
	}
	return req, nil
}

// Validate проверяет запрос до передачи калькулятору
func (r CalculationRequest) Validate() error {
	if strings.TrimSpace(r.Operation) == "" {
		return &ValidationError{Field: "operation", Message: "operation is required"}
	}
	if !inOperandRange(r.A) {
		return &ValidationError{Field: "a", Message: fmt.Sprintf("a must be between %d and %d", MinOperand, MaxOperand)}
	}
	if !inOperandRange(r.B) {
		return &ValidationError{Field: "b", Message: fmt.Sprintf("b must be between %d and %d", MinOperand, MaxOperand)}
	}
	return nil
}

// NormalizedOperation имя операции в нижнем регистре
func (r CalculationRequest) NormalizedOperation() string {
	return strings.ToLower(strings.TrimSpace(r.Operation))
}

// CalculationResult ответ на успешное вычисление
type CalculationResult struct {
	Result    float64 `json:"result"`
	Operation string  `json:"operation"`
}

func inOperandRange(v float64) bool {
	return !math.IsNaN(v) && v >= MinOperand && v <= MaxOperand
}
