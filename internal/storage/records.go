package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
)

// timestampLayout is fixed-width so that text ordering is chronological.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

// AddRecord appends a draw record to the history.
func (s *SQLiteStorage) AddRecord(ctx context.Context, record *model.DrawRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}
	return s.addRecordTx(ctx, s.db, record)
}

func (s *SQLiteStorage) addRecordTx(ctx context.Context, q queryable, record *model.DrawRecord) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO draw_records (
			id, timestamp, target_department_id, target_department_name, specialty_type,
			selected_specialist_id, selected_specialist_name,
			selected_from_department_id, selected_from_department_name
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		formatTimestamp(record.Timestamp),
		record.TargetDepartmentID,
		record.TargetDepartmentName,
		string(record.SpecialtyType),
		record.SelectedSpecialistID,
		record.SelectedSpecialistName,
		record.SelectedFromDepartmentID,
		record.SelectedFromDepartmentName,
	)
	if err != nil {
		return fmt.Errorf("failed to save draw record: %w", err)
	}
	return nil
}

// GetRecords returns history oldest first. A positive Limit keeps the newest entries.
func (s *SQLiteStorage) GetRecords(ctx context.Context, filter service.RecordFilter) ([]model.DrawRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.Specialty != "" {
		if err := validateSpecialty(filter.Specialty); err != nil {
			return nil, err
		}
	}

	q := sq.Select(
		"id", "timestamp", "target_department_id", "target_department_name", "specialty_type",
		"selected_specialist_id", "selected_specialist_name",
		"selected_from_department_id", "selected_from_department_name",
	).From("draw_records").
		OrderBy("timestamp DESC", "rowid DESC")

	if filter.Since != nil {
		q = q.Where(sq.GtOrEq{"timestamp": formatTimestamp(*filter.Since)})
	}
	if filter.TargetDepartmentID != "" {
		q = q.Where(sq.Eq{"target_department_id": filter.TargetDepartmentID})
	}
	if filter.Specialty != "" {
		q = q.Where(sq.Eq{"specialty_type": string(filter.Specialty)})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build draw record query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.DrawRecord
	for rows.Next() {
		var (
			rec model.DrawRecord
			ts  string
		)
		if err := rows.Scan(
			&rec.ID,
			&ts,
			&rec.TargetDepartmentID,
			&rec.TargetDepartmentName,
			&rec.SpecialtyType,
			&rec.SelectedSpecialistID,
			&rec.SelectedSpecialistName,
			&rec.SelectedFromDepartmentID,
			&rec.SelectedFromDepartmentName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan draw record: %w", err)
		}
		if rec.Timestamp, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draw records: %w", err)
	}

	// Queried newest first so LIMIT keeps the latest; hand back oldest first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	return records, nil
}

// ClearRecords deletes the whole history and returns the number of removed records.
func (s *SQLiteStorage) ClearRecords(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM draw_records`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear draw records: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared records: %w", err)
	}
	return n, nil
}
