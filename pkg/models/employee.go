package models

import (
	"fmt"
	"time"

	"github.com/GGmuzem/showcase-api/internal/stringx"
)

// Employee сотрудник. Department необязателен
type Employee struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"createdAt"`
	Department *string   `json:"department"`
}

// EmployeeOption дополнительные поля сотрудника
type EmployeeOption func(*Employee)

// WithDepartment задаёт отдел
func WithDepartment(department string) EmployeeOption {
	return func(e *Employee) {
		e.Department = &department
	}
}

// WithCreatedAt задаёт дату создания вместо текущего времени
func WithCreatedAt(createdAt time.Time) EmployeeOption {
	return func(e *Employee) {
		e.CreatedAt = createdAt.UTC()
	}
}

// NewEmployee создаёт сотрудника; id, имя и email обязательны
func NewEmployee(id int, name, email string, opts ...EmployeeOption) (Employee, error) {
	if id <= 0 {
		return Employee{}, &ValidationError{Field: "id", Message: "id must be positive"}
	}
	if stringx.IsBlank(name) {
		return Employee{}, &ValidationError{Field: "name", Message: "name must not be empty"}
	}
	if stringx.IsBlank(email) {
		return Employee{}, &ValidationError{Field: "email", Message: "email must not be empty"}
	}

	e := Employee{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e, nil
}

// DepartmentName отдел или пустая строка
func (e Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return *e.Department
}

func (e Employee) String() string {
	return fmt.Sprintf("[%d] %s (%s)", e.ID, e.Name, e.Email)
}
