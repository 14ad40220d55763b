package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nxtei/quality-draw/internal/model"
)

// Legacy data files written by the desktop build next to its executable.
const (
	LegacyDepartmentsFile = "departments.json"
	LegacyRecordsFile     = "records.json"
)

// ImportResult counts what a legacy import wrote.
type ImportResult struct {
	Departments    int
	Records        int
	SkippedRecords int
	Duplicates     int
}

// readJSON best-effort reads path into out; a missing file is not an error.
func readJSON(path string, out any) (bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

// departmentTypeTx returns the type of department id, or "" when the catalog no longer has it.
func departmentTypeTx(ctx context.Context, q queryable, id string) (model.DepartmentType, error) {
	var t model.DepartmentType
	err := q.QueryRowContext(ctx, `SELECT department_type FROM departments WHERE id = ?`, id).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up department %s: %w", id, err)
	}
	return t, nil
}

// ImportLegacyDir loads departments.json and records.json from dir.
// Departments are upserted; records already present (same id) are left alone.
// Records whose specialty does not apply to the target's department type are skipped.
func (s *SQLiteStorage) ImportLegacyDir(ctx context.Context, dir string) (*ImportResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}

	var departments []model.Department
	if _, err := readJSON(filepath.Join(dir, LegacyDepartmentsFile), &departments); err != nil {
		return nil, err
	}
	var records []model.DrawRecord
	if _, err := readJSON(filepath.Join(dir, LegacyRecordsFile), &records); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result := &ImportResult{}
	for i := range departments {
		if err := validateDepartment(&departments[i]); err != nil {
			return nil, fmt.Errorf("department at index %d: %w", i, err)
		}
		if err := s.saveDepartmentTx(ctx, tx, &departments[i]); err != nil {
			return nil, err
		}
		result.Departments++
	}

	for i := range records {
		rec := &records[i]
		if err := validateRecord(rec); err != nil {
			slog.Warn("Skipping invalid legacy record", "index", i, "id", rec.ID, "error", err)
			result.SkippedRecords++
			continue
		}
		targetType, err := departmentTypeTx(ctx, tx, rec.TargetDepartmentID)
		if err != nil {
			return nil, err
		}
		if err := rec.Validate(targetType); err != nil {
			slog.Warn("Skipping inconsistent legacy record", "index", i, "id", rec.ID, "error", err)
			result.SkippedRecords++
			continue
		}
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO draw_records (
				id, timestamp, target_department_id, target_department_name, specialty_type,
				selected_specialist_id, selected_specialist_name,
				selected_from_department_id, selected_from_department_name
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			rec.ID,
			formatTimestamp(rec.Timestamp),
			rec.TargetDepartmentID,
			rec.TargetDepartmentName,
			string(rec.SpecialtyType),
			rec.SelectedSpecialistID,
			rec.SelectedSpecialistName,
			rec.SelectedFromDepartmentID,
			rec.SelectedFromDepartmentName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to import record %s: %w", rec.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			result.Duplicates++
			continue
		}
		result.Records++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	slog.Info("Imported legacy data",
		"dir", dir,
		"departments", result.Departments,
		"records", result.Records,
		"skipped", result.SkippedRecords,
		"duplicates", result.Duplicates)

	return result, nil
}
