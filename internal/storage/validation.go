// Package storage provides the data persistence layer for the draw application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nxtei/quality-draw/internal/model"
)

// Validation errors.
var (
	ErrNilContext        = errors.New("context cannot be nil")
	ErrEmptyString       = errors.New("string parameter cannot be empty")
	ErrNilParameter      = errors.New("parameter cannot be nil")
	ErrInvalidDepartment = errors.New("invalid department")
	ErrInvalidRecord     = errors.New("invalid draw record")
	ErrInvalidRoundPick  = errors.New("invalid round pick")
	ErrInvalidSpecialty  = errors.New("invalid specialty type")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateSpecialty(t model.SpecialtyType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSpecialty, t)
	}
	return nil
}

func validateDepartment(dept *model.Department) error {
	if dept == nil {
		return fmt.Errorf("%w: department", ErrNilParameter)
	}
	if strings.TrimSpace(dept.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDepartment)
	}
	if strings.ContainsAny(dept.ID, " \t\n") {
		return fmt.Errorf("%w: id %q contains whitespace", ErrInvalidDepartment, dept.ID)
	}
	if strings.TrimSpace(dept.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDepartment)
	}
	if !dept.DepartmentType.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDepartment, dept.DepartmentType)
	}
	return nil
}

// validateRecord checks the record shape. Consistency with the target's
// department type is checked by the caller, which knows the catalog.
func validateRecord(record *model.DrawRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if err := record.Validate(""); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if strings.TrimSpace(record.TargetDepartmentName) == "" || strings.TrimSpace(record.SelectedSpecialistName) == "" {
		return fmt.Errorf("%w: missing department name", ErrInvalidRecord)
	}
	return nil
}

func validateRoundPick(pick *model.RoundPick) error {
	if pick == nil {
		return fmt.Errorf("%w: round pick", ErrNilParameter)
	}
	if err := validateSpecialty(pick.Specialty); err != nil {
		return err
	}
	if pick.TargetDepartmentID == "" || pick.SelectedDepartmentID == "" {
		return fmt.Errorf("%w: missing department id", ErrInvalidRoundPick)
	}
	if pick.TargetDepartmentID == pick.SelectedDepartmentID {
		return fmt.Errorf("%w: department %s cannot inspect itself", ErrInvalidRoundPick, pick.TargetDepartmentID)
	}
	return nil
}
