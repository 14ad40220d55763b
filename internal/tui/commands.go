package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nxtei/quality-draw/internal/model"
)

var errNotConfigured = errors.New("draw engine not configured")

func (m Model) loadDepartments() tea.Cmd {
	ctx := m.ctx
	src := m.config.Departments
	return func() tea.Msg {
		if src == nil {
			return departmentsLoadedMsg{err: errNotConfigured}
		}
		departments, err := src.GetDepartments(ctx)
		return departmentsLoadedMsg{departments: departments, err: err}
	}
}

func (m Model) loadRound() tea.Cmd {
	ctx := m.ctx
	drawer := m.config.Drawer
	return func() tea.Msg {
		if drawer == nil {
			return roundLoadedMsg{err: errNotConfigured}
		}
		summary, err := drawer.RoundStatus(ctx)
		return roundLoadedMsg{summary: summary, err: err}
	}
}

func (m Model) fetchCandidates(targetID string, specialty model.SpecialtyType) tea.Cmd {
	ctx := m.ctx
	drawer := m.config.Drawer
	return func() tea.Msg {
		if drawer == nil {
			return candidatesMsg{targetID: targetID, specialty: specialty, err: errNotConfigured}
		}
		names, err := drawer.CandidateNames(ctx, targetID, specialty)
		return candidatesMsg{targetID: targetID, specialty: specialty, names: names, err: err}
	}
}

func (m Model) execute(targetID string, specialty model.SpecialtyType) tea.Cmd {
	ctx := m.ctx
	drawer := m.config.Drawer
	return func() tea.Msg {
		if drawer == nil {
			return drawDoneMsg{targetID: targetID, result: model.FailureResult(errNotConfigured.Error())}
		}
		return drawDoneMsg{targetID: targetID, result: drawer.Execute(ctx, targetID, specialty)}
	}
}

func (m Model) startNewRound() tea.Cmd {
	ctx := m.ctx
	drawer := m.config.Drawer
	return func() tea.Msg {
		if drawer == nil {
			return roundResetMsg{err: errNotConfigured}
		}
		return roundResetMsg{err: drawer.StartNewRound(ctx)}
	}
}

func tick(interval time.Duration, seq int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return rollTickMsg{seq: seq}
	})
}
