package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
)

// GetDepartments returns the catalog in insertion order.
func (s *SQLiteStorage) GetDepartments(ctx context.Context) ([]model.Department, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, department_type
		FROM departments
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var departments []model.Department
	for rows.Next() {
		var dept model.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.DepartmentType); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, dept)
	}

	return departments, rows.Err()
}

// GetDepartment returns the department with id, or common.ErrNotFound.
func (s *SQLiteStorage) GetDepartment(ctx context.Context, id string) (*model.Department, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var dept model.Department
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, department_type
		FROM departments
		WHERE id = ?
	`, id).Scan(&dept.ID, &dept.Name, &dept.DepartmentType)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("department %q: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return &dept, nil
}

// SaveDepartment inserts dept or updates the name and type of an existing one.
// New departments are appended to the end of the catalog.
func (s *SQLiteStorage) SaveDepartment(ctx context.Context, dept *model.Department) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDepartment(dept); err != nil {
		return err
	}
	return s.saveDepartmentTx(ctx, s.db, dept)
}

func (s *SQLiteStorage) saveDepartmentTx(ctx context.Context, q queryable, dept *model.Department) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO departments (id, name, department_type, position)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM departments))
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			department_type = excluded.department_type
	`, dept.ID, dept.Name, string(dept.DepartmentType))
	if err != nil {
		return fmt.Errorf("failed to save department: %w", err)
	}
	return nil
}

// DeleteDepartment removes a department from the catalog. History referencing it is kept.
func (s *SQLiteStorage) DeleteDepartment(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM departments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("department %q: %w", id, common.ErrNotFound)
	}
	return nil
}

// SeedDefaultDepartments loads the built-in catalog when the table is empty.
// It returns the number of departments inserted.
func (s *SQLiteStorage) SeedDefaultDepartments(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM departments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count departments: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	defaults := model.DefaultDepartments()
	for i := range defaults {
		if err := s.saveDepartmentTx(ctx, tx, &defaults[i]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}

	slog.Info("Seeded default departments", "count", len(defaults))
	return len(defaults), nil
}
