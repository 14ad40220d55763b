package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the draw screen until the operator quits or ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	m := New(ctx, opts...)
	if m.config.Drawer == nil {
		return errors.New("draw engine is required")
	}
	if m.config.Departments == nil {
		return errors.New("department source is required")
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
