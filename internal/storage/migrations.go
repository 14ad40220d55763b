package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application expects.
// If the database cannot be migrated to this version, it's a fatal error.
const ExpectedSchemaVersion = 4

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS departments (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					department_type TEXT NOT NULL,
					position INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS draw_records (
					id TEXT PRIMARY KEY,
					timestamp TEXT NOT NULL,
					target_department_id TEXT NOT NULL,
					target_department_name TEXT NOT NULL,
					specialty_type TEXT NOT NULL,
					selected_specialist_id TEXT NOT NULL,
					selected_specialist_name TEXT NOT NULL,
					selected_from_department_id TEXT NOT NULL,
					selected_from_department_name TEXT NOT NULL
				)`,
				`CREATE INDEX idx_draw_records_timestamp ON draw_records(timestamp)`,
			)
		},
	},
	{
		Version:     2,
		Description: "Persist current round picks",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE TABLE IF NOT EXISTS round_picks (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					specialty_type TEXT NOT NULL,
					target_department_id TEXT NOT NULL,
					selected_department_id TEXT NOT NULL,
					created_at TEXT NOT NULL
				)`,
				`CREATE INDEX idx_round_picks_specialty ON round_picks(specialty_type)`,
			)
		},
	},
	{
		Version:     3,
		Description: "Index history by target and specialty",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				`CREATE INDEX IF NOT EXISTS idx_draw_records_target ON draw_records(target_department_id, specialty_type)`,
				`CREATE INDEX IF NOT EXISTS idx_departments_position ON departments(position)`,
			)
		},
	},
	{
		Version:     4,
		Description: "A department is selected at most once per specialty and round",
		Up: func(tx *sql.Tx) error {
			return execAll(tx,
				// Keep the earliest pick where concurrent runs already produced duplicates.
				`DELETE FROM round_picks WHERE id NOT IN (
					SELECT MIN(id) FROM round_picks GROUP BY specialty_type, selected_department_id
				)`,
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_round_picks_selected ON round_picks(specialty_type, selected_department_id)`,
			)
		},
	},
}

func execAll(tx *sql.Tx, queries ...string) error {
	for _, query := range queries {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query '%s': %w", query, err)
		}
	}
	return nil
}

// Migrate brings the schema up to ExpectedSchemaVersion.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Debug("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	finalVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// SchemaVersion reports the schema version recorded in the database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}
