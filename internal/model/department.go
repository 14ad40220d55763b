// Package model defines the core domain models used throughout the application.
package model

import "strings"

// DepartmentType is the broad classification of a department.
type DepartmentType string

const (
	// DepartmentComprehensive covers both pressure and mechanical equipment.
	DepartmentComprehensive DepartmentType = "Comprehensive"
	// DepartmentPressure covers pressure-bearing equipment.
	DepartmentPressure DepartmentType = "Pressure"
	// DepartmentMechanical covers mechanical and electrical equipment.
	DepartmentMechanical DepartmentType = "Mechanical"
)

// DepartmentTypes lists every department type in display order.
var DepartmentTypes = []DepartmentType{
	DepartmentComprehensive,
	DepartmentPressure,
	DepartmentMechanical,
}

// DepartmentTypeLabel returns the localized display label for t.
// Values outside the enum are echoed back unchanged.
func DepartmentTypeLabel(t DepartmentType) string {
	switch t {
	case DepartmentComprehensive:
		return "综合类"
	case DepartmentPressure:
		return "承压类"
	case DepartmentMechanical:
		return "机电类"
	default:
		return string(t)
	}
}

// Label is shorthand for DepartmentTypeLabel(t).
func (t DepartmentType) Label() string {
	return DepartmentTypeLabel(t)
}

// Valid reports whether t is one of the known department types.
func (t DepartmentType) Valid() bool {
	switch t {
	case DepartmentComprehensive, DepartmentPressure, DepartmentMechanical:
		return true
	}
	return false
}

// Specialties returns the specialties that must be drawn for a department of this type.
func (t DepartmentType) Specialties() []SpecialtyType {
	var out []SpecialtyType
	if NeedsPressure(t) {
		out = append(out, SpecialtyPressure)
	}
	if NeedsMechanical(t) {
		out = append(out, SpecialtyMechanical)
	}
	return out
}

// NeedsPressure reports whether a department of type t requires a pressure draw.
func NeedsPressure(t DepartmentType) bool {
	return t == DepartmentComprehensive || t == DepartmentPressure
}

// NeedsMechanical reports whether a department of type t requires a mechanical draw.
func NeedsMechanical(t DepartmentType) bool {
	return t == DepartmentComprehensive || t == DepartmentMechanical
}

// ParseDepartmentType accepts the wire name (any case) or the localized label.
func ParseDepartmentType(s string) (DepartmentType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range DepartmentTypes {
		if strings.EqualFold(s, string(t)) || s == t.Label() {
			return t, true
		}
	}
	return "", false
}

// Department is a unit that can be inspected and can supply inspectors.
type Department struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	DepartmentType DepartmentType `json:"department_type" yaml:"department_type"`
}

// NewDepartment creates a department.
func NewDepartment(id, name string, t DepartmentType) Department {
	return Department{ID: id, Name: name, DepartmentType: t}
}

// DefaultDepartments returns the seed catalog used when no departments exist yet.
func DefaultDepartments() []Department {
	return []Department{
		// Branches carry both specialties.
		NewDepartment("nd", "宁东分院", DepartmentComprehensive),
		NewDepartment("szs", "石嘴山分院", DepartmentComprehensive),
		NewDepartment("wz", "吴忠分院", DepartmentComprehensive),
		NewDepartment("zw", "中卫分院", DepartmentComprehensive),
		NewDepartment("gy", "固原分院", DepartmentComprehensive),

		NewDepartment("cy1", "承压特种设备一部", DepartmentPressure),
		NewDepartment("cy2", "承压特种设备二部", DepartmentPressure),
		NewDepartment("zh", "综合检验检测站", DepartmentPressure),

		NewDepartment("jd1", "机电特种设备一部", DepartmentMechanical),
		NewDepartment("jd2", "机电特种设备二部", DepartmentMechanical),
	}
}
