package database

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/GGmuzem/showcase-api/pkg/models"
)

// MemoryDB справочник сотрудников в памяти без использования SQLite
type MemoryDB struct {
	employees map[int]models.Employee
	mutex     sync.RWMutex
}

var _ Database = (*MemoryDB)(nil)

// NewMemoryDB создает новую in-memory БД
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		employees: make(map[int]models.Employee),
	}
}

// Close просто заглушка для совместимости
func (db *MemoryDB) Close() error {
	return nil
}

// MigrateDB для in-memory не требуется миграция
func (db *MemoryDB) MigrateDB() error {
	return nil
}

// CreateEmployee сохраняет сотрудника
func (db *MemoryDB) CreateEmployee(_ context.Context, e models.Employee) error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.employees[e.ID]; exists {
		return fmt.Errorf("employee %d: %w", e.ID, ErrEmployeeExists)
	}
	db.employees[e.ID] = e
	return nil
}

// ListEmployees возвращает сотрудников по возрастанию id
func (db *MemoryDB) ListEmployees(_ context.Context) ([]models.Employee, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	employees := make([]models.Employee, 0, len(db.employees))
	for _, e := range db.employees {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool {
		return employees[i].ID < employees[j].ID
	})
	return employees, nil
}
