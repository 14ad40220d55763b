// Package tui implements the interactive draw screen.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
	"github.com/nxtei/quality-draw/internal/tui/themes"
)

// State represents the current state of the TUI.
type State int

const (
	StateLoading State = iota
	StateIdle
	// StateDrawing waits for candidates or for the engine result.
	StateDrawing
	StateRolling
)

// DrawOutcome is one result shown in the result panel.
type DrawOutcome struct {
	TargetName string
	Result     model.DrawResult
}

type rolling struct {
	names     []string
	frame     int
	ticksLeft int
	seq       int
}

// Model holds the main TUI state.
type Model struct {
	ctx         context.Context
	lastError   error
	theme       themes.Theme
	help        help.Model
	keymap      KeyMap
	config      Config
	status      string
	targetID    string
	departments []model.Department
	queue       []model.SpecialtyType
	outcomes    []DrawOutcome
	round       service.RoundSummary
	rolling     rolling
	current     model.SpecialtyType
	cursor      int
	width       int
	height      int
	state       State
	showHelp    bool
	quitting    bool
}

// New creates the screen model.
func New(ctx context.Context, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = defaultConfig().TickInterval
	}

	h := help.New()
	h.Width = cfg.Width

	return Model{
		ctx:    ctx,
		config: cfg,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   h,
		width:  cfg.Width,
		height: cfg.Height,
		state:  StateLoading,
	}
}

// Init loads the department list and the current round.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDepartments(), m.loadRound())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case departmentsLoadedMsg:
		m.state = StateIdle
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.departments = msg.departments
		if m.cursor >= len(m.departments) {
			m.cursor = max(len(m.departments)-1, 0)
		}
		return m, nil

	case roundLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.round = msg.summary
		return m, nil

	case candidatesMsg:
		return m.handleCandidates(msg)

	case rollTickMsg:
		return m.handleTick(msg)

	case drawDoneMsg:
		if m.state != StateDrawing {
			return m, nil
		}
		m.outcomes = append(m.outcomes, DrawOutcome{
			TargetName: m.departmentName(msg.targetID),
			Result:     msg.result,
		})
		return m, m.nextDraw()

	case roundResetMsg:
		if msg.err != nil {
			m.lastError = msg.err
			return m, nil
		}
		m.outcomes = nil
		m.status = "已开始新一轮抽签"
		return m, m.loadRound()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keymap.Help) {
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil
	}

	// Draw keys are ignored while a draw is in flight.
	if m.state != StateIdle {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.departments)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.DrawPressure):
		return m.startDraw(model.SpecialtyPressure)
	case key.Matches(msg, m.keymap.DrawMechanical):
		return m.startDraw(model.SpecialtyMechanical)
	case key.Matches(msg, m.keymap.DrawAll):
		if d, ok := m.Selected(); ok {
			return m.startDraw(d.DepartmentType.Specialties()...)
		}
	case key.Matches(msg, m.keymap.NewRound):
		m.lastError = nil
		return m, m.startNewRound()
	}
	return m, nil
}

func (m Model) startDraw(specialties ...model.SpecialtyType) (tea.Model, tea.Cmd) {
	d, ok := m.Selected()
	if !ok || len(specialties) == 0 {
		return m, nil
	}
	m.targetID = d.ID
	m.queue = specialties
	m.outcomes = nil
	m.status = ""
	m.lastError = nil
	return m, m.nextDraw()
}

// nextDraw starts the next queued specialty, or returns to idle and refreshes the round.
func (m *Model) nextDraw() tea.Cmd {
	if len(m.queue) == 0 {
		m.state = StateIdle
		m.current = ""
		return m.loadRound()
	}
	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.state = StateDrawing
	return m.fetchCandidates(m.targetID, m.current)
}

func (m Model) handleCandidates(msg candidatesMsg) (tea.Model, tea.Cmd) {
	if m.state != StateDrawing || msg.targetID != m.targetID || msg.specialty != m.current {
		return m, nil
	}
	// Nothing to animate: let the engine report the outcome.
	if msg.err != nil || len(msg.names) == 0 || m.config.Animation <= 0 {
		return m, m.execute(m.targetID, m.current)
	}

	ticks := int(m.config.Animation / m.config.TickInterval)
	m.rolling = rolling{
		names:     msg.names,
		ticksLeft: max(ticks, 1),
		seq:       m.rolling.seq + 1,
	}
	m.state = StateRolling
	return m, tick(m.config.TickInterval, m.rolling.seq)
}

func (m Model) handleTick(msg rollTickMsg) (tea.Model, tea.Cmd) {
	if m.state != StateRolling || msg.seq != m.rolling.seq {
		return m, nil
	}
	m.rolling.frame++
	m.rolling.ticksLeft--
	if m.rolling.ticksLeft > 0 {
		return m, tick(m.config.TickInterval, m.rolling.seq)
	}
	m.state = StateDrawing
	return m, m.execute(m.targetID, m.current)
}

// Selected returns the department under the cursor.
func (m Model) Selected() (model.Department, bool) {
	if m.cursor < 0 || m.cursor >= len(m.departments) {
		return model.Department{}, false
	}
	return m.departments[m.cursor], true
}

// Outcomes returns the results of the last draw action.
func (m Model) Outcomes() []DrawOutcome {
	return m.outcomes
}

// State returns the current state.
func (m Model) State() State {
	return m.state
}

// RollingName is the candidate currently shown by the animation.
func (m Model) RollingName() string {
	if len(m.rolling.names) == 0 {
		return ""
	}
	return m.rolling.names[m.rolling.frame%len(m.rolling.names)]
}

func (m Model) departmentName(id string) string {
	for _, d := range m.departments {
		if d.ID == id {
			return d.Name
		}
	}
	return id
}
