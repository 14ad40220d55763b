package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/service"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestInterruptHandler(t *testing.T) {
	var out syncBuffer
	h := NewInterruptHandler(&out, "已完成的抽签已保存")

	ctx, stop := h.HandleInterrupts(context.Background())
	defer stop()
	assert.False(t, h.WasInterrupted())

	h.Interrupt()
	h.Interrupt()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not canceled")
	}
	assert.True(t, h.WasInterrupted())
	assert.Equal(t, 1, strings.Count(out.String(), "已中断"))
	assert.Contains(t, out.String(), "已完成的抽签已保存")
}

func TestInterruptHandler_StopCancels(t *testing.T) {
	h := NewInterruptHandler(nil, "")
	ctx, stop := h.HandleInterrupts(context.Background())
	stop()
	assert.Error(t, ctx.Err())
	assert.False(t, h.WasInterrupted())
}

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out, 2, "抽签中")
	p.Step("宁东分院")
	p.Step("")
	p.Finish()
	assert.Contains(t, out.String(), "2/2")
}

func TestRenderDepartments(t *testing.T) {
	out := RenderDepartments(model.DefaultDepartments())
	assert.Contains(t, out, "宁东分院")
	assert.Contains(t, out, "承压类、机电类")
	assert.Contains(t, out, "jd2")
}

func TestRenderRecords(t *testing.T) {
	target := model.NewDepartment("nd", "宁东分院", model.DepartmentComprehensive)
	selected := model.NewDepartment("jd1", "机电特种设备一部", model.DepartmentMechanical)
	rec := model.NewDrawRecord(target, model.SpecialtyMechanical, selected, time.Now())

	out := RenderRecords([]model.DrawRecord{rec})
	assert.Contains(t, out, "机电类")
	assert.Contains(t, out, "机电特种设备一部")
	assert.Contains(t, out, rec.Timestamp.Local().Format("2006/01/02 15:04:05"))
}

func TestFormatResult(t *testing.T) {
	ok := FormatResult("宁东分院", model.SuccessResult(model.NewDepartment("cy1", "承压特种设备一部", model.DepartmentPressure), model.SpecialtyPressure))
	assert.Contains(t, ok, SuccessIcon)
	assert.Contains(t, ok, "承压特种设备一部")

	failed := FormatResult("宁东分院", model.FailureResult("没有符合条件的候选部门"))
	assert.Contains(t, failed, ErrorIcon)
	assert.Contains(t, failed, "没有符合条件的候选部门")
}

func TestRenderRound(t *testing.T) {
	assert.Contains(t, RenderRound(service.RoundSummary{}, nil), "本轮尚未抽签")

	summary := service.RoundSummary{
		Pressure: []model.RoundPick{{Specialty: model.SpecialtyPressure, TargetDepartmentID: "nd", SelectedDepartmentID: "cy1"}},
	}
	out := RenderRound(summary, map[string]string{"nd": "宁东分院"})
	require.NotEmpty(t, out)
	assert.Contains(t, out, "承压类 (1)")
	assert.Contains(t, out, "宁东分院")
	assert.Contains(t, out, "cy1", "unknown ids fall back to the id")
	assert.NotContains(t, out, "机电类")
}
