// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nxtei/quality-draw/internal/model"
)

// Palette. Specialty colors match the draw screen themes.
var (
	PrimaryColor    = lipgloss.Color("#2F6FD6")
	SuccessColor    = lipgloss.Color("#3BB273")
	WarningColor    = lipgloss.Color("#E1A100")
	ErrorColor      = lipgloss.Color("#E15554")
	InfoColor       = lipgloss.Color("#4D9DE0")
	SubtleColor     = lipgloss.Color("#777777")
	PressureColor   = lipgloss.Color("#D1495B")
	MechanicalColor = lipgloss.Color("#00798C")
)

var (
	// TitleStyle heads a command's output.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor).Padding(0, 1)
	TableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	DrawIcon    = "🎲"
	RoundIcon   = "🔄"
	ExportIcon  = "📄"
)

// SpecialtyStyle returns the accent style for a specialty.
func SpecialtyStyle(s model.SpecialtyType) lipgloss.Style {
	switch s {
	case model.SpecialtyPressure:
		return lipgloss.NewStyle().Foreground(PressureColor).Bold(true)
	case model.SpecialtyMechanical:
		return lipgloss.NewStyle().Foreground(MechanicalColor).Bold(true)
	default:
		return BoldStyle
	}
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the draw icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(DrawIcon + " " + title)
}
