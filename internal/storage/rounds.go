package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
)

// AddRoundPick records a selection in the current round.
func (s *SQLiteStorage) AddRoundPick(ctx context.Context, pick *model.RoundPick) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRoundPick(pick); err != nil {
		return err
	}
	return s.addRoundPickTx(ctx, s.db, pick)
}

// addRoundPickTx inserts the pick only if the selected department is still free for the
// specialty and has not been inspected by the target this round. The check and the insert
// are one statement, so a pick made meanwhile by another process yields common.ErrPickConflict.
func (s *SQLiteStorage) addRoundPickTx(ctx context.Context, q queryable, pick *model.RoundPick) error {
	if pick.CreatedAt.IsZero() {
		pick.CreatedAt = time.Now()
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO round_picks (specialty_type, target_department_id, selected_department_id, created_at)
		SELECT ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM round_picks
			WHERE specialty_type = ?
				AND (selected_department_id = ?
					OR (target_department_id = ? AND selected_department_id = ?))
		)
	`,
		string(pick.Specialty), pick.TargetDepartmentID, pick.SelectedDepartmentID, formatTimestamp(pick.CreatedAt),
		string(pick.Specialty), pick.SelectedDepartmentID, pick.SelectedDepartmentID, pick.TargetDepartmentID,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%w: %s for %s", common.ErrPickConflict, pick.SelectedDepartmentID, pick.Specialty)
		}
		return fmt.Errorf("failed to save round pick: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check saved round pick: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s for %s", common.ErrPickConflict, pick.SelectedDepartmentID, pick.Specialty)
	}
	return nil
}

// GetRoundPicks returns this round's picks for specialty in the order they were made.
func (s *SQLiteStorage) GetRoundPicks(ctx context.Context, specialty model.SpecialtyType) ([]model.RoundPick, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSpecialty(specialty); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT specialty_type, target_department_id, selected_department_id, created_at
		FROM round_picks
		WHERE specialty_type = ?
		ORDER BY id
	`, string(specialty))
	if err != nil {
		return nil, fmt.Errorf("failed to query round picks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var picks []model.RoundPick
	for rows.Next() {
		var (
			pick model.RoundPick
			ts   string
		)
		if err := rows.Scan(&pick.Specialty, &pick.TargetDepartmentID, &pick.SelectedDepartmentID, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan round pick: %w", err)
		}
		if pick.CreatedAt, err = parseTimestamp(ts); err != nil {
			return nil, err
		}
		picks = append(picks, pick)
	}

	return picks, rows.Err()
}

// ClearRound forgets every pick of the current round.
func (s *SQLiteStorage) ClearRound(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM round_picks`); err != nil {
		return fmt.Errorf("failed to clear round: %w", err)
	}
	return nil
}
