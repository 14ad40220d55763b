package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecialtyTypeLabel(t *testing.T) {
	assert.Equal(t, "承压类", SpecialtyTypeLabel(SpecialtyPressure))
	assert.Equal(t, "机电类", SpecialtyTypeLabel(SpecialtyMechanical))
	assert.Equal(t, "Comprehensive", SpecialtyTypeLabel(SpecialtyType("Comprehensive")))
	assert.Equal(t, SpecialtyTypeLabel(SpecialtyPressure), SpecialtyPressure.Label())
}

func TestSpecialtyType_Accepts(t *testing.T) {
	tests := []struct {
		name      string
		specialty SpecialtyType
		dept      DepartmentType
		want      bool
	}{
		{name: "pressure from comprehensive", specialty: SpecialtyPressure, dept: DepartmentComprehensive, want: true},
		{name: "pressure from pressure", specialty: SpecialtyPressure, dept: DepartmentPressure, want: true},
		{name: "pressure from mechanical", specialty: SpecialtyPressure, dept: DepartmentMechanical, want: false},
		{name: "mechanical from comprehensive", specialty: SpecialtyMechanical, dept: DepartmentComprehensive, want: true},
		{name: "mechanical from pressure", specialty: SpecialtyMechanical, dept: DepartmentPressure, want: false},
		{name: "mechanical from mechanical", specialty: SpecialtyMechanical, dept: DepartmentMechanical, want: true},
		{name: "unknown specialty", specialty: SpecialtyType("x"), dept: DepartmentComprehensive, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.specialty.Accepts(tt.dept))
		})
	}
}

func TestParseSpecialtyType(t *testing.T) {
	got, ok := ParseSpecialtyType("pressure")
	assert.True(t, ok)
	assert.Equal(t, SpecialtyPressure, got)

	got, ok = ParseSpecialtyType("机电类")
	assert.True(t, ok)
	assert.Equal(t, SpecialtyMechanical, got)

	_, ok = ParseSpecialtyType("Comprehensive")
	assert.False(t, ok)
}
