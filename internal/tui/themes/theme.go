// Package themes defines the color schemes of the interactive draw screen.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Rolling       lipgloss.Style
	Winner        lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Pressure      lipgloss.Color
	Mechanical    lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Success       lipgloss.Color
	Error         lipgloss.Color
}

type palette struct {
	primary, pressure, mechanical, muted, border, foreground, success, errorC, info, selectedFg lipgloss.Color
}

func build(p palette) Theme {
	return Theme{
		Primary:    p.primary,
		Pressure:   p.pressure,
		Mechanical: p.mechanical,
		Muted:      p.muted,
		Border:     p.border,
		Success:    p.success,
		Error:      p.errorC,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.primary).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.muted),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.selectedFg).
			Bold(true),
		Rolling: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.muted).
			Padding(1, 4),
		Winner: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.success).
			Padding(1, 4),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.errorC).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
	}
}

// Default is the default theme.
var Default = build(palette{
	primary:    lipgloss.Color("#2f6fd6"),
	pressure:   lipgloss.Color("#d1495b"),
	mechanical: lipgloss.Color("#00798c"),
	muted:      lipgloss.Color("#737373"),
	border:     lipgloss.Color("#404040"),
	foreground: lipgloss.Color("#fafafa"),
	success:    lipgloss.Color("#10b981"),
	errorC:     lipgloss.Color("#ef4444"),
	info:       lipgloss.Color("#3b82f6"),
	selectedFg: lipgloss.Color("#fafafa"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:    lipgloss.Color("#cba6f7"),
	pressure:   lipgloss.Color("#f38ba8"),
	mechanical: lipgloss.Color("#94e2d5"),
	muted:      lipgloss.Color("#6c7086"),
	border:     lipgloss.Color("#45475a"),
	foreground: lipgloss.Color("#cdd6f4"),
	success:    lipgloss.Color("#a6e3a1"),
	errorC:     lipgloss.Color("#f38ba8"),
	info:       lipgloss.Color("#89dceb"),
	selectedFg: lipgloss.Color("#1e1e2e"),
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// Names lists the selectable theme names.
func Names() []string {
	return []string{"default", "catppuccin-mocha"}
}
