package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
)

var shanghai = time.FixedZone("CST", 8*3600)

func sampleRecords() []model.DrawRecord {
	nd := model.NewDepartment("nd", "宁东分院", model.DepartmentComprehensive)
	cy1 := model.NewDepartment("cy1", "承压特种设备一部", model.DepartmentPressure)
	jd1 := model.NewDepartment("jd1", "机电特种设备一部", model.DepartmentMechanical)
	return []model.DrawRecord{
		model.NewDrawRecord(nd, model.SpecialtyPressure, cy1, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)),
		model.NewDrawRecord(nd, model.SpecialtyMechanical, jd1, time.Date(2024, 1, 15, 9, 31, 5, 0, time.UTC)),
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleRecords(), shanghai)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{
		Index:     1,
		Time:      "2024-01-15 17:30:00",
		Target:    "宁东分院",
		Specialty: "承压类",
		Selected:  "承压特种设备一部",
	}, rows[0])
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, "机电类", rows[1].Specialty)
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2024, 1, 15, 17, 30, 5, 0, shanghai)
	assert.Equal(t, "抽签记录_20240115_173005.xlsx", DefaultFilename("xlsx", now))
	assert.Equal(t, "抽签记录_20240115_173005.html", DefaultFilename("html", now))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	printedAt := time.Date(2024, 1, 16, 8, 0, 0, 0, shanghai)
	require.NoError(t, WriteHTML(&buf, sampleRecords(), printedAt))

	out := buf.String()
	assert.Contains(t, out, "<title>"+Title+"</title>")
	for _, h := range Headers {
		assert.Contains(t, out, "<th>"+h+"</th>")
	}
	assert.Contains(t, out, "2024-01-15 17:30:00")
	assert.Contains(t, out, "2024-01-16 08:00:00")
	assert.Contains(t, out, "共计 2 条抽签记录")
	assert.Equal(t, 2, strings.Count(out, "<tr><td>"))
}

func TestWriteHTML_EscapesNames(t *testing.T) {
	target := model.NewDepartment("x", "<b>部门</b>", model.DepartmentPressure)
	selected := model.NewDepartment("y", "乙", model.DepartmentPressure)
	records := []model.DrawRecord{model.NewDrawRecord(target, model.SpecialtyPressure, selected, time.Now())}

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, records, time.Now()))
	assert.NotContains(t, buf.String(), "<b>部门</b>")
	assert.Contains(t, buf.String(), "&lt;b&gt;部门&lt;/b&gt;")
}

func TestExport_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHTML(&buf, nil, time.Now())
	require.ErrorIs(t, err, common.ErrNoRecords)
	assert.Equal(t, NoRecordsMessage, common.UserMessage(err))
	assert.Zero(t, buf.Len())

	err = WriteXLSX(nil, filepath.Join(t.TempDir(), "x.xlsx"), XLSXOptions{})
	assert.ErrorIs(t, err, common.ErrNoRecords)
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename("xlsx", time.Now()))
	require.NoError(t, WriteXLSX(sampleRecords(), path, XLSXOptions{Location: shanghai}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{"1", "2024-01-15 17:30:00", "宁东分院", "承压类", "承压特种设备一部"}, rows[1])
	assert.Equal(t, []string{"2", "2024-01-15 17:31:05", "宁东分院", "机电类", "机电特种设备一部"}, rows[2])

	width, err := f.GetColWidth(sheetName, "D")
	require.NoError(t, err)
	assert.InDelta(t, 12.0, width, 0.01)
}

func TestWriteXLSXTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSXTo(&buf, sampleRecords(), XLSXOptions{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{sheetName}, f.GetSheetList())
}
