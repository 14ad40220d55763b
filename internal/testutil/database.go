// Package testutil provides test fixtures backed by a real in-memory database.
package testutil

import (
	"context"
	"testing"

	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage     *storage.SQLiteStorage
	t           *testing.T
	Departments []model.Department
}

// SetupTestDB creates a migrated in-memory database holding departments.
// A nil slice seeds the built-in catalog; an empty slice leaves the catalog empty.
//
// Example:
//
//	db := testutil.SetupTestDB(t, nil)
//	nd := db.MustDepartment("nd")
func SetupTestDB(t *testing.T, departments []model.Department) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if departments == nil {
		departments = model.DefaultDepartments()
	}
	for i := range departments {
		if err := store.SaveDepartment(ctx, &departments[i]); err != nil {
			t.Fatalf("failed to seed department %q: %v", departments[i].ID, err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage:     store,
		Departments: departments,
		t:           t,
	}
}

// MustDepartment returns the seeded department with id or fails the test.
func (db *TestDB) MustDepartment(id string) model.Department {
	db.t.Helper()
	for _, d := range db.Departments {
		if d.ID == id {
			return d
		}
	}
	db.t.Fatalf("department %q not seeded", id)
	return model.Department{}
}

// AddPick records a round pick or fails the test.
func (db *TestDB) AddPick(specialty model.SpecialtyType, targetID, selectedID string) {
	db.t.Helper()
	pick := model.RoundPick{Specialty: specialty, TargetDepartmentID: targetID, SelectedDepartmentID: selectedID}
	if err := db.Storage.AddRoundPick(context.Background(), &pick); err != nil {
		db.t.Fatalf("failed to add round pick: %v", err)
	}
}
