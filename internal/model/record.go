package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DrawRecord is the audit entry of one completed draw.
//
// The selected_specialist_* fields carry the selected department, not a person.
// Their names are kept so history written by earlier builds still loads.
type DrawRecord struct {
	Timestamp                  time.Time     `json:"timestamp"`
	ID                         string        `json:"id"`
	TargetDepartmentID         string        `json:"target_department_id"`
	TargetDepartmentName       string        `json:"target_department_name"`
	SpecialtyType              SpecialtyType `json:"specialty_type"`
	SelectedSpecialistID       string        `json:"selected_specialist_id"`
	SelectedSpecialistName     string        `json:"selected_specialist_name"`
	SelectedFromDepartmentID   string        `json:"selected_from_department_id"`
	SelectedFromDepartmentName string        `json:"selected_from_department_name"`
}

// NewDrawRecord builds the record for selected having been drawn to inspect target.
func NewDrawRecord(target Department, specialty SpecialtyType, selected Department, at time.Time) DrawRecord {
	return DrawRecord{
		ID:                         uuid.NewString(),
		Timestamp:                  at,
		TargetDepartmentID:         target.ID,
		TargetDepartmentName:       target.Name,
		SpecialtyType:              specialty,
		SelectedSpecialistID:       selected.ID,
		SelectedSpecialistName:     selected.Name,
		SelectedFromDepartmentID:   selected.ID,
		SelectedFromDepartmentName: selected.Name,
	}
}

// TimestampString returns the timestamp in RFC 3339 form, the format FormatDateTime expects.
func (r DrawRecord) TimestampString() string {
	return r.Timestamp.Format(time.RFC3339)
}

// Validate checks the record is complete and that its specialty fits the target department type.
func (r DrawRecord) Validate(target DepartmentType) error {
	if r.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("record timestamp is required")
	}
	if r.TargetDepartmentID == "" {
		return fmt.Errorf("target department is required")
	}
	if r.SelectedSpecialistID == "" {
		return fmt.Errorf("selected department is required")
	}
	if !r.SpecialtyType.Valid() {
		return fmt.Errorf("invalid specialty type %q", r.SpecialtyType)
	}
	if r.SelectedSpecialistID == r.TargetDepartmentID {
		return fmt.Errorf("department %s cannot inspect itself", r.TargetDepartmentID)
	}
	if target != "" && !r.SpecialtyType.Accepts(target) {
		return fmt.Errorf("specialty %s does not apply to %s department %s",
			r.SpecialtyType, target, r.TargetDepartmentID)
	}
	return nil
}

// RoundPick is one selection made during the current round.
type RoundPick struct {
	CreatedAt            time.Time
	TargetDepartmentID   string
	SelectedDepartmentID string
	Specialty            SpecialtyType
}
