package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GGmuzem/showcase-api/pkg/models"
)

// ErrEmployeeExists сотрудник с таким id уже есть
var ErrEmployeeExists = errors.New("employee already exists")

// Database справочник сотрудников
type Database interface {
	Close() error
	MigrateDB() error
	CreateEmployee(ctx context.Context, e models.Employee) error
	ListEmployees(ctx context.Context) ([]models.Employee, error)
}

// seedCreatedAt фиксированная дата создания начальных сотрудников
var seedCreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// DefaultEmployees три сотрудника, которые отдаёт GET /employees
func DefaultEmployees() []models.Employee {
	seed := []struct {
		id         int
		name       string
		email      string
		department string
	}{
		{1, "Zhang San", "zhang@example.com", "Development"},
		{2, "Li Si", "li@example.com", "QA"},
		{3, "Wang Wu", "wang@example.com", ""},
	}

	employees := make([]models.Employee, 0, len(seed))
	for _, s := range seed {
		opts := []models.EmployeeOption{models.WithCreatedAt(seedCreatedAt)}
		if s.department != "" {
			opts = append(opts, models.WithDepartment(s.department))
		}
		e, err := models.NewEmployee(s.id, s.name, s.email, opts...)
		if err != nil {
			panic(fmt.Sprintf("invalid seed employee %d: %v", s.id, err))
		}
		employees = append(employees, e)
	}
	return employees
}

// Seed заполняет пустой справочник сотрудниками по умолчанию
func Seed(ctx context.Context, db Database) error {
	existing, err := db.ListEmployees(ctx)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, e := range DefaultEmployees() {
		if err := db.CreateEmployee(ctx, e); err != nil {
			return fmt.Errorf("seed employee %d: %w", e.ID, err)
		}
	}
	return nil
}
