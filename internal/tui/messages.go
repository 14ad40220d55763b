package tui

import (
	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
)

type departmentsLoadedMsg struct {
	err         error
	departments []model.Department
}

type roundLoadedMsg struct {
	err     error
	summary service.RoundSummary
}

// candidatesMsg starts the rolling animation for a queued draw.
type candidatesMsg struct {
	err       error
	targetID  string
	specialty model.SpecialtyType
	names     []string
}

type rollTickMsg struct {
	seq int
}

type drawDoneMsg struct {
	targetID string
	result   model.DrawResult
}

type roundResetMsg struct {
	err error
}
