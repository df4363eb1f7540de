package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GGmuzem/showcase-api/pkg/models"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// SQLiteDB реализация интерфейса Database для SQLite
type SQLiteDB struct {
	db *sql.DB
}

var _ Database = (*SQLiteDB)(nil)

// New открывает базу SQLite. Для ":memory:" каждая новая связь была бы отдельной базой,
// поэтому пул ограничен одним соединением
func New(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close закрывает соединение с БД
func (s *SQLiteDB) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// MigrateDB создаёт таблицу сотрудников
func (s *SQLiteDB) MigrateDB() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		department TEXT,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create table employees: %w", err)
	}
	return nil
}

// CreateEmployee сохраняет сотрудника
func (s *SQLiteDB) CreateEmployee(ctx context.Context, e models.Employee) error {
	var department sql.NullString
	if e.Department != nil {
		department = sql.NullString{String: *e.Department, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO employees (id, name, email, department, created_at) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.Name, e.Email, department, e.CreatedAt.UnixNano(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("employee %d: %w", e.ID, ErrEmployeeExists)
		}
		return fmt.Errorf("insert employee %d: %w", e.ID, err)
	}
	return nil
}

// ListEmployees возвращает сотрудников по возрастанию id
func (s *SQLiteDB) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, department, created_at FROM employees ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query employees: %w", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var (
			e          models.Employee
			department sql.NullString
			createdAt  int64
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &department, &createdAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		if department.Valid {
			d := department.String
			e.Department = &d
		}
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}
