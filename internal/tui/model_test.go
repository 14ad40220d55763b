package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtei/quality-draw/internal/engine"
	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/testutil"
	"github.com/nxtei/quality-draw/internal/tui/themes"
)

// drain runs cmd and every command it produces, feeding messages back into m.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			return m
		default:
			updated, c := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, c)
		}
	}
	return m
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return drain(t, updated.(Model), cmd)
}

func newTestModel(t *testing.T, opts ...Option) (Model, *testutil.TestDB) {
	t.Helper()
	db := testutil.SetupTestDB(t, nil)
	eng := engine.NewWithConfig(db.Storage, engine.Config{Picker: engine.FixedPicker(0)})
	base := []Option{
		WithDrawer(eng),
		WithDepartments(db.Storage),
		WithAnimation(5*time.Millisecond, time.Millisecond),
	}
	m := New(context.Background(), append(base, opts...)...)
	return drain(t, m, m.Init()), db
}

func TestModel_LoadsDepartments(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, StateIdle, m.State())
	d, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "nd", d.ID)
	assert.Contains(t, m.View(), "宁东分院")
	assert.Contains(t, m.View(), "本轮尚未抽签")
}

func TestModel_Navigation(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "k")
	d, _ := m.Selected()
	assert.Equal(t, "nd", d.ID, "cursor stays at the top")

	m = press(t, m, "j")
	m = press(t, m, "j")
	d, _ = m.Selected()
	assert.Equal(t, "wz", d.ID)

	for range 20 {
		m = press(t, m, "j")
	}
	d, _ = m.Selected()
	assert.Equal(t, "jd2", d.ID)
}

func TestModel_DrawPressure(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "p")

	assert.Equal(t, StateIdle, m.State())
	require.Len(t, m.Outcomes(), 1)
	out := m.Outcomes()[0]
	assert.Equal(t, "宁东分院", out.TargetName)
	assert.True(t, out.Result.Success)
	assert.Equal(t, "szs", out.Result.DepartmentID)
	assert.Len(t, m.round.Pressure, 1)
	assert.Contains(t, m.View(), "石嘴山分院")
}

func TestModel_DrawAll(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "a")
	require.Len(t, m.Outcomes(), 2)
	assert.Equal(t, model.SpecialtyPressure, m.Outcomes()[0].Result.SpecialtyType)
	assert.Equal(t, model.SpecialtyMechanical, m.Outcomes()[1].Result.SpecialtyType)
	assert.Equal(t, 2, m.round.Total())

	m = press(t, m, "n")
	assert.Empty(t, m.Outcomes())
	assert.Equal(t, 0, m.round.Total())
	assert.Contains(t, m.View(), "已开始新一轮抽签")
}

func TestModel_SpecialtyNotNeeded(t *testing.T) {
	m, _ := newTestModel(t)
	for range 5 {
		m = press(t, m, "j")
	}
	d, _ := m.Selected()
	require.Equal(t, "cy1", d.ID)

	m = press(t, m, "m")
	require.Len(t, m.Outcomes(), 1)
	assert.False(t, m.Outcomes()[0].Result.Success)
	assert.Equal(t, engine.MsgNotNeeded, m.Outcomes()[0].Result.Message)
}

func TestModel_Rolling(t *testing.T) {
	m, _ := newTestModel(t, WithAnimation(time.Hour, time.Millisecond))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = updated.(Model)
	require.Equal(t, StateDrawing, m.State())

	// Run only the candidate lookup; the animation should start.
	updated, _ = m.Update(cmd())
	m = updated.(Model)
	require.Equal(t, StateRolling, m.State())
	first := m.RollingName()
	assert.NotEmpty(t, first)
	assert.Contains(t, m.View(), first)

	updated, _ = m.Update(rollTickMsg{seq: m.rolling.seq})
	m = updated.(Model)
	assert.NotEqual(t, first, m.RollingName())

	// Stale ticks and draw keys are ignored while rolling.
	updated, cmd = m.Update(rollTickMsg{seq: m.rolling.seq - 1})
	assert.Nil(t, cmd)
	m = updated.(Model)
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.Nil(t, cmd)
	assert.Equal(t, StateRolling, updated.(Model).State())
}

func TestModel_NoAnimation(t *testing.T) {
	m, _ := newTestModel(t, WithAnimation(0, 0))
	m = press(t, m, "p")
	require.Len(t, m.Outcomes(), 1)
	assert.True(t, m.Outcomes()[0].Result.Success)
}

type failingSource struct{}

func (failingSource) GetDepartments(context.Context) ([]model.Department, error) {
	return nil, errors.New("database locked")
}

func TestModel_LoadError(t *testing.T) {
	db := testutil.SetupTestDB(t, nil)
	m := New(context.Background(),
		WithDrawer(engine.New(db.Storage)),
		WithDepartments(failingSource{}),
		WithTheme(themes.GetTheme("catppuccin-mocha")),
	)
	m = drain(t, m, m.Init())
	assert.Contains(t, m.View(), "database locked")
	assert.Contains(t, m.View(), "没有部门")

	// Nothing selected, so draw keys do nothing.
	m = press(t, m, "a")
	assert.Empty(t, m.Outcomes())
}

func TestModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "?")
	assert.True(t, m.showHelp)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, updated.(Model).View())
}

func TestModel_WindowResize(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 140, m.width)
	assert.NotEmpty(t, m.View())
}

func TestRun_RequiresDependencies(t *testing.T) {
	assert.Error(t, Run(context.Background()))
}
