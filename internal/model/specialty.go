package model

import "strings"

// SpecialtyType is the kind of expertise a draw selects for.
type SpecialtyType string

// Specialty constants share their wire values with the matching department types.
const (
	SpecialtyPressure   SpecialtyType = "Pressure"
	SpecialtyMechanical SpecialtyType = "Mechanical"
)

// SpecialtyTypes lists every specialty in draw order.
var SpecialtyTypes = []SpecialtyType{SpecialtyPressure, SpecialtyMechanical}

// SpecialtyTypeLabel returns the localized display label for t.
// Values outside the enum are echoed back unchanged.
func SpecialtyTypeLabel(t SpecialtyType) string {
	switch t {
	case SpecialtyPressure:
		return "承压类"
	case SpecialtyMechanical:
		return "机电类"
	default:
		return string(t)
	}
}

// Label is shorthand for SpecialtyTypeLabel(t).
func (t SpecialtyType) Label() string {
	return SpecialtyTypeLabel(t)
}

// Valid reports whether t is a known specialty.
func (t SpecialtyType) Valid() bool {
	return t == SpecialtyPressure || t == SpecialtyMechanical
}

// Accepts reports whether a department of type d may be drawn to inspect for this specialty.
func (t SpecialtyType) Accepts(d DepartmentType) bool {
	switch t {
	case SpecialtyPressure:
		return NeedsPressure(d)
	case SpecialtyMechanical:
		return NeedsMechanical(d)
	default:
		return false
	}
}

// ParseSpecialtyType accepts the wire name (any case) or the localized label.
func ParseSpecialtyType(s string) (SpecialtyType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range SpecialtyTypes {
		if strings.EqualFold(s, string(t)) || s == t.Label() {
			return t, true
		}
	}
	return "", false
}
