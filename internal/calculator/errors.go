package calculator

import (
	"errors"
	"fmt"
)

// OverflowError результат арифметической операции вышел за пределы int32
type OverflowError struct {
	Message string
}

func (e *OverflowError) Error() string {
	return e.Message
}

// InvalidArgumentError недопустимое значение аргумента операции
type InvalidArgumentError struct {
	Param   string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	if e.Param == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (parameter '%s')", e.Message, e.Param)
}

// NewOverflowError создаёт ошибку переполнения
func NewOverflowError(format string, args ...interface{}) *OverflowError {
	return &OverflowError{Message: fmt.Sprintf(format, args...)}
}

// NewInvalidArgumentError создаёт ошибку недопустимого аргумента
func NewInvalidArgumentError(param, message string) *InvalidArgumentError {
	return &InvalidArgumentError{Param: param, Message: message}
}

// UnsupportedOperationError создаёт ошибку для неизвестной операции
func UnsupportedOperationError(operation string) *InvalidArgumentError {
	return &InvalidArgumentError{Message: fmt.Sprintf("unsupported operation: %s", operation)}
}

// IsDomainError сообщает, что err относится к ошибкам калькулятора (переполнение или аргумент)
func IsDomainError(err error) bool {
	var overflowErr *OverflowError
	var argErr *InvalidArgumentError
	return errors.As(err, &overflowErr) || errors.As(err, &argErr)
}
