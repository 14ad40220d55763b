package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/config"
	"github.com/nxtei/quality-draw/internal/engine"
	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/storage"
)

// databasePath returns the expanded database location.
func databasePath() string {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	return config.ExpandPath(dbPath)
}

// openStorage opens the database without touching the schema.
func openStorage() (*storage.SQLiteStorage, error) {
	return storage.NewSQLiteStorage(databasePath())
}

// initStorage opens the database, migrates it and seeds the built-in catalog into an empty one.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := openStorage()
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	common.LogDebug("Opened database", common.Fields{"path": store.Path()})

	seeded, err := store.SeedDefaultDepartments(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed departments: %w", err)
	}
	if seeded > 0 {
		slog.Info("Seeded default departments", "count", seeded)
	}

	return store, nil
}

func newEngine(store *storage.SQLiteStorage) *engine.DrawEngine {
	cfg := engine.DefaultConfig()
	cfg.AvoidRepeat = viper.GetBool("draw.avoid_repeat")
	return engine.NewWithConfig(store, cfg)
}

// departmentNames maps ids to names for rendering round picks.
func departmentNames(departments []model.Department) map[string]string {
	names := make(map[string]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	return names
}
