package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	DrawPressure   key.Binding
	DrawMechanical key.Binding
	DrawAll        key.Binding
	NewRound       key.Binding
	Help           key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "上移"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "下移"),
		),
		DrawPressure: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "抽取承压类"),
		),
		DrawMechanical: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "抽取机电类"),
		),
		DrawAll: key.NewBinding(
			key.WithKeys("a", "enter"),
			key.WithHelp("a/Enter", "全部抽取"),
		),
		NewRound: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "开始新一轮"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "帮助"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/Esc", "退出"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.DrawPressure, k.DrawMechanical, k.DrawAll, k.NewRound, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.DrawPressure, k.DrawMechanical, k.DrawAll},
		{k.NewRound, k.Help, k.Quit},
	}
}
