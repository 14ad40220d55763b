package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDrawRecord(t *testing.T) {
	target := NewDepartment("szs", "石嘴山分院", DepartmentComprehensive)
	selected := NewDepartment("cy1", "承压特种设备一部", DepartmentPressure)
	at := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	rec := NewDrawRecord(target, SpecialtyPressure, selected, at)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, at, rec.Timestamp)
	assert.Equal(t, "szs", rec.TargetDepartmentID)
	assert.Equal(t, "石嘴山分院", rec.TargetDepartmentName)
	assert.Equal(t, SpecialtyPressure, rec.SpecialtyType)
	assert.Equal(t, "cy1", rec.SelectedSpecialistID)
	assert.Equal(t, "承压特种设备一部", rec.SelectedSpecialistName)
	assert.Equal(t, "cy1", rec.SelectedFromDepartmentID)
	assert.Equal(t, "承压特种设备一部", rec.SelectedFromDepartmentName)
	assert.Equal(t, "2024-01-15T09:30:00Z", rec.TimestampString())

	other := NewDrawRecord(target, SpecialtyPressure, selected, at)
	assert.NotEqual(t, rec.ID, other.ID)
}

func TestDrawRecord_JSONFieldNames(t *testing.T) {
	rec := NewDrawRecord(
		NewDepartment("jd1", "机电特种设备一部", DepartmentMechanical),
		SpecialtyMechanical,
		NewDepartment("nd", "宁东分院", DepartmentComprehensive),
		time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
	)

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{
		"id", "timestamp", "target_department_id", "target_department_name", "specialty_type",
		"selected_specialist_id", "selected_specialist_name",
		"selected_from_department_id", "selected_from_department_name",
	} {
		assert.Contains(t, fields, key)
	}
	assert.Equal(t, "Mechanical", fields["specialty_type"])
	assert.Equal(t, "2024-01-15T09:30:00Z", fields["timestamp"])
}

func TestDrawRecord_Validate(t *testing.T) {
	base := func() DrawRecord {
		return NewDrawRecord(
			NewDepartment("cy1", "承压特种设备一部", DepartmentPressure),
			SpecialtyPressure,
			NewDepartment("nd", "宁东分院", DepartmentComprehensive),
			time.Now(),
		)
	}

	tests := []struct {
		name    string
		mutate  func(*DrawRecord)
		target  DepartmentType
		errMsg  string
		wantErr bool
	}{
		{name: "valid", mutate: func(*DrawRecord) {}, target: DepartmentPressure},
		{name: "valid without target type", mutate: func(*DrawRecord) {}},
		{name: "missing id", mutate: func(r *DrawRecord) { r.ID = "" }, target: DepartmentPressure, wantErr: true, errMsg: "record id is required"},
		{name: "zero timestamp", mutate: func(r *DrawRecord) { r.Timestamp = time.Time{} }, wantErr: true, errMsg: "record timestamp is required"},
		{name: "self inspection", mutate: func(r *DrawRecord) { r.SelectedSpecialistID = "cy1" }, wantErr: true, errMsg: "department cy1 cannot inspect itself"},
		{name: "bad specialty", mutate: func(r *DrawRecord) { r.SpecialtyType = "Comprehensive" }, wantErr: true, errMsg: `invalid specialty type "Comprehensive"`},
		{
			name:    "specialty inconsistent with target type",
			mutate:  func(*DrawRecord) {},
			target:  DepartmentMechanical,
			wantErr: true,
			errMsg:  "specialty Pressure does not apply to Mechanical department cy1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := base()
			tt.mutate(&rec)
			err := rec.Validate(tt.target)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.errMsg, err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDrawResult_JSON(t *testing.T) {
	ok := SuccessResult(NewDepartment("nd", "宁东分院", DepartmentComprehensive), SpecialtyPressure)
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"department_name":"宁东分院","department_id":"nd","specialty_type":"Pressure"}`, string(data))

	fail := FailureResult("没有符合条件的候选部门")
	data, err = json.Marshal(fail)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"没有符合条件的候选部门"}`, string(data))
}
