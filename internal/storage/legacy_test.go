package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyDepartments = `[
  {"id": "nd", "name": "宁东分院", "department_type": "Comprehensive"},
  {"id": "cy1", "name": "承压特种设备一部", "department_type": "Pressure"},
  {"id": "jd1", "name": "机电特种设备一部", "department_type": "Mechanical"}
]`

const legacyRecords = `[
  {
    "id": "5f0c1a52-8f1e-4d8e-9a53-1b7e1e0f8a11",
    "timestamp": "2024-01-15T17:30:00.123456789+08:00",
    "target_department_id": "nd",
    "target_department_name": "宁东分院",
    "specialty_type": "Pressure",
    "selected_specialist_id": "cy1",
    "selected_specialist_name": "承压特种设备一部",
    "selected_from_department_id": "cy1",
    "selected_from_department_name": "承压特种设备一部"
  },
  {
    "id": "broken",
    "timestamp": "2024-01-15T17:31:00+08:00",
    "target_department_id": "nd",
    "target_department_name": "宁东分院",
    "specialty_type": "Mechanical",
    "selected_specialist_id": "nd",
    "selected_specialist_name": "宁东分院",
    "selected_from_department_id": "nd",
    "selected_from_department_name": "宁东分院"
  },
  {
    "id": "0b8e6a8e-44a5-4a5e-93c2-6f3f5c1d2e77",
    "timestamp": "2024-01-15T17:32:00+08:00",
    "target_department_id": "cy1",
    "target_department_name": "承压特种设备一部",
    "specialty_type": "Mechanical",
    "selected_specialist_id": "jd1",
    "selected_specialist_name": "机电特种设备一部",
    "selected_from_department_id": "jd1",
    "selected_from_department_name": "机电特种设备一部"
  },
  {
    "id": "9d4f2c1b-7a3e-4f60-8b21-5c0e9a7d3f14",
    "timestamp": "2024-01-15T17:33:00+08:00",
    "target_department_id": "gone",
    "target_department_name": "已撤销部门",
    "specialty_type": "Pressure",
    "selected_specialist_id": "cy1",
    "selected_specialist_name": "承压特种设备一部",
    "selected_from_department_id": "cy1",
    "selected_from_department_name": "承压特种设备一部"
  }
]`

func writeLegacyDir(t *testing.T, departments, records string) string {
	t.Helper()
	dir := t.TempDir()
	if departments != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, LegacyDepartmentsFile), []byte(departments), 0o600))
	}
	if records != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, LegacyRecordsFile), []byte(records), 0o600))
	}
	return dir
}

func TestSQLiteStorage_ImportLegacyDir(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	dir := writeLegacyDir(t, legacyDepartments, legacyRecords)

	res, err := store.ImportLegacyDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Departments)
	// The mechanical draw for a pressure department is inconsistent; the record
	// for a department no longer in the catalog is kept.
	assert.Equal(t, 2, res.Records)
	assert.Equal(t, 2, res.SkippedRecords)
	assert.Equal(t, 0, res.Duplicates)

	depts, err := store.GetDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, depts, 3)
	assert.Equal(t, model.DepartmentMechanical, depts[2].DepartmentType)

	records, err := store.GetRecords(ctx, service.RecordFilter{TargetDepartmentID: "nd"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	want := time.Date(2024, 1, 15, 9, 30, 0, 123456789, time.UTC)
	assert.True(t, records[0].Timestamp.Equal(want), "got %s", records[0].Timestamp)
	assert.Equal(t, model.SpecialtyPressure, records[0].SpecialtyType)

	records, err = store.GetRecords(ctx, service.RecordFilter{Specialty: model.SpecialtyMechanical})
	require.NoError(t, err)
	assert.Empty(t, records)

	// A second import only finds duplicates.
	res, err = store.ImportLegacyDir(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Records)
	assert.Equal(t, 2, res.Duplicates)
}

func TestSQLiteStorage_ImportLegacyDir_MissingFiles(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	res, err := store.ImportLegacyDir(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ImportResult{}, *res)
}

func TestSQLiteStorage_ImportLegacyDir_Malformed(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	dir := writeLegacyDir(t, `{"not": "a list"}`, "")
	_, err := store.ImportLegacyDir(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), LegacyDepartmentsFile)

	dir = writeLegacyDir(t, `[{"id": "x", "name": "", "department_type": "Pressure"}]`, "")
	_, err = store.ImportLegacyDir(context.Background(), dir)
	assert.ErrorIs(t, err, ErrInvalidDepartment)
}
