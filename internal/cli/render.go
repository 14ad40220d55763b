package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

// RenderDepartments renders the catalog with the specialties each department needs.
func RenderDepartments(departments []model.Department) string {
	t := newTable("编号", "名称", "类型", "需抽取专责")
	for _, d := range departments {
		needs := make([]string, 0, 2)
		for _, s := range d.DepartmentType.Specialties() {
			needs = append(needs, s.Label())
		}
		t.Row(d.ID, d.Name, d.DepartmentType.Label(), strings.Join(needs, "、"))
	}
	return t.String()
}

// RenderRecords renders history rows with display timestamps.
func RenderRecords(records []model.DrawRecord) string {
	t := newTable("序号", "抽签时间", "被检部门", "专责类型", "抽中部门")
	for i, r := range records {
		t.Row(
			strconv.Itoa(i+1),
			model.FormatDateTime(r.TimestampString()),
			r.TargetDepartmentName,
			r.SpecialtyType.Label(),
			r.SelectedSpecialistName,
		)
	}
	return t.String()
}

// FormatResult renders one draw result line.
func FormatResult(targetName string, r model.DrawResult) string {
	if !r.Success {
		return FormatError(fmt.Sprintf("%s: %s", targetName, r.Message))
	}
	specialty := SpecialtyStyle(r.SpecialtyType).Render(r.SpecialtyType.Label())
	return FormatSuccess(fmt.Sprintf("%s %s → %s", targetName, specialty, BoldStyle.Render(r.DepartmentName)))
}

// RenderRound renders the current round's picks per specialty. names maps department ids to names.
func RenderRound(summary service.RoundSummary, names map[string]string) string {
	if summary.Total() == 0 {
		return SubtleStyle.Render("本轮尚未抽签")
	}

	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	var sections []string
	for _, group := range []struct {
		specialty model.SpecialtyType
		picks     []model.RoundPick
	}{
		{model.SpecialtyPressure, summary.Pressure},
		{model.SpecialtyMechanical, summary.Mechanical},
	} {
		if len(group.picks) == 0 {
			continue
		}
		t := newTable("被检部门", "抽中部门")
		for _, p := range group.picks {
			t.Row(name(p.TargetDepartmentID), name(p.SelectedDepartmentID))
		}
		title := SpecialtyStyle(group.specialty).Render(fmt.Sprintf("%s (%d)", group.specialty.Label(), len(group.picks)))
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, title, t.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
