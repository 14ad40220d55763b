package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nxtei/quality-draw/internal/model"
)

const screenTitle = "宁夏特检院质量监督检查抽签"

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state == StateLoading {
		return m.theme.StatusPending.Render("正在加载部门列表…")
	}

	title := m.theme.Title.Render(screenTitle)

	listWidth := 30
	panelWidth := max(m.width-listWidth-6, 30)

	left := m.theme.RoundedBox.Width(listWidth).Render(m.renderDepartments())
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.RoundedBox.Width(panelWidth).Render(m.renderDrawPanel()),
		m.theme.RoundedBox.Width(panelWidth).Render(m.renderRound()),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	parts := []string{title, body}
	if m.lastError != nil {
		parts = append(parts, m.theme.StatusError.Render("错误: "+m.lastError.Error()))
	} else if m.status != "" {
		parts = append(parts, m.theme.StatusInfo.Render(m.status))
	}
	parts = append(parts, m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderDepartments() string {
	if len(m.departments) == 0 {
		return m.theme.StatusPending.Render("没有部门")
	}
	lines := make([]string, 0, len(m.departments)+1)
	lines = append(lines, m.theme.Bold.Render("被检部门"))
	for i, d := range m.departments {
		line := fmt.Sprintf("%s  %s", d.Name, m.theme.Subtitle.Render(d.DepartmentType.Label()))
		if i == m.cursor {
			line = m.theme.Selected.Render("▶ " + d.Name + "  " + d.DepartmentType.Label())
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) specialtyStyle(s model.SpecialtyType) lipgloss.Style {
	color := m.theme.Primary
	switch s {
	case model.SpecialtyPressure:
		color = m.theme.Pressure
	case model.SpecialtyMechanical:
		color = m.theme.Mechanical
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

func (m Model) renderDrawPanel() string {
	header := m.theme.Bold.Render("抽签结果")

	switch m.state {
	case StateRolling:
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.specialtyStyle(m.current).Render(m.current.Label()+" 抽签中…"),
			m.theme.Rolling.Render(m.RollingName()),
		)
	case StateDrawing:
		return lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.theme.StatusPending.Render(m.current.Label()+" 抽签中…"),
		)
	}

	if len(m.outcomes) == 0 {
		hint := "选择部门后按 p / m / a 抽签"
		if d, ok := m.Selected(); ok {
			needs := make([]string, 0, 2)
			for _, s := range d.DepartmentType.Specialties() {
				needs = append(needs, s.Label())
			}
			hint = fmt.Sprintf("%s 需抽取: %s", d.Name, strings.Join(needs, "、"))
		}
		return lipgloss.JoinVertical(lipgloss.Left, header, m.theme.StatusPending.Render(hint))
	}

	lines := []string{header}
	for _, o := range m.outcomes {
		if !o.Result.Success {
			lines = append(lines, m.theme.StatusError.Render(fmt.Sprintf("✗ %s: %s", o.TargetName, o.Result.Message)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s %s → %s",
			m.theme.StatusSuccess.Render("✓"),
			o.TargetName,
			m.specialtyStyle(o.Result.SpecialtyType).Render(o.Result.SpecialtyType.Label()),
			m.theme.Winner.UnsetPadding().Render(o.Result.DepartmentName),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRound() string {
	header := m.theme.Bold.Render(fmt.Sprintf("本轮已抽 %d 次", m.round.Total()))
	if m.round.Total() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.theme.StatusPending.Render("本轮尚未抽签"))
	}

	lines := []string{header}
	for _, group := range []struct {
		specialty model.SpecialtyType
		picks     []model.RoundPick
	}{
		{model.SpecialtyPressure, m.round.Pressure},
		{model.SpecialtyMechanical, m.round.Mechanical},
	} {
		if len(group.picks) == 0 {
			continue
		}
		lines = append(lines, m.specialtyStyle(group.specialty).Render(group.specialty.Label()))
		for _, p := range group.picks {
			lines = append(lines, fmt.Sprintf("  %s → %s",
				m.departmentName(p.TargetDepartmentID),
				m.departmentName(p.SelectedDepartmentID)))
		}
	}
	return strings.Join(lines, "\n")
}
