package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
	"github.com/nxtei/quality-draw/internal/sheets"
	"github.com/nxtei/quality-draw/internal/storage"
)

// useTempDatabase points the commands at a fresh database file.
func useTempDatabase(t *testing.T) string {
	t.Helper()
	viper.Reset()
	setDefaults()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "qdraw.db")
	viper.Set("database.path", dbPath)
	viper.Set("export.dir", dir)
	t.Cleanup(viper.Reset)
	return dbPath
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDepartmentsCmd(t *testing.T) {
	useTempDatabase(t)

	out, err := run(t, departmentsCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "宁东分院")
	assert.Contains(t, out, "机电特种设备二部")

	out, err = run(t, departmentsCmd(), "add", "yc", "银川分院", "--type", "综合类")
	require.NoError(t, err)
	assert.Contains(t, out, "银川分院")

	out, err = run(t, departmentsCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "银川分院")

	_, err = run(t, departmentsCmd(), "add", "x", "X", "--type", "bogus")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = run(t, departmentsCmd(), "remove", "yc")
	require.NoError(t, err)

	_, err = run(t, departmentsCmd(), "remove", "yc")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "部门 yc 不存在", common.UserMessage(err))
}

func TestDepartmentsCmd_ImportCatalog(t *testing.T) {
	useTempDatabase(t)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`departments:
  - id: a
    name: 甲分院
    type: 综合类
  - id: b
    name: 乙分院
    type: Comprehensive
`), 0o600))

	out, err := run(t, departmentsCmd(), "import", path, "--replace")
	require.NoError(t, err)
	assert.Contains(t, out, "导入 2 个部门")

	out, err = run(t, departmentsCmd(), "dump")
	require.NoError(t, err)
	assert.Contains(t, out, "id: a")
	assert.Contains(t, out, "name: 乙分院")
	assert.NotContains(t, out, "id: nd")
}

func TestDepartmentsCmd_ImportLegacy(t *testing.T) {
	useTempDatabase(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.LegacyDepartmentsFile),
		[]byte(`[{"id": "yc", "name": "银川分院", "department_type": "Comprehensive"}]`), 0o600))

	out, err := run(t, departmentsCmd(), "import", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "导入 1 个部门, 0 条抽签记录")

	out, err = run(t, departmentsCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "银川分院")
}

func TestDrawCmd(t *testing.T) {
	useTempDatabase(t)

	out, err := run(t, drawCmd(), "nd")
	require.NoError(t, err)
	assert.Contains(t, out, "宁东分院")
	assert.Contains(t, out, "承压类")
	assert.Contains(t, out, "机电类")

	out, err = run(t, recordsCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "共计 2 条抽签记录")

	out, err = run(t, recordsCmd(), "list", "--specialty", "pressure")
	require.NoError(t, err)
	assert.Contains(t, out, "共计 1 条抽签记录")

	out, err = run(t, roundCmd(), "status")
	require.NoError(t, err)
	assert.Contains(t, out, "本轮已抽 2 次")
}

func TestDrawCmd_Failures(t *testing.T) {
	useTempDatabase(t)

	out, err := run(t, drawCmd(), "nd", "--specialty", "electrical")
	assert.ErrorIs(t, err, errDrawIncomplete)
	assert.Contains(t, out, "无效的专责类型")

	out, err = run(t, drawCmd(), "missing")
	assert.ErrorIs(t, err, errDrawIncomplete)
	assert.Contains(t, out, "未找到目标部门")

	out, err = run(t, drawCmd(), "cy1", "--specialty", "mechanical")
	assert.ErrorIs(t, err, errDrawIncomplete)
	assert.Contains(t, out, "该部门不需要抽取此类专责")
}

func TestRoundCmd_New(t *testing.T) {
	useTempDatabase(t)

	_, err := run(t, drawCmd(), "nd", "-s", "pressure")
	require.NoError(t, err)

	out, err := run(t, roundCmd(), "new")
	require.NoError(t, err)
	assert.Contains(t, out, "已开始新一轮抽签")

	out, err = run(t, roundCmd(), "status")
	require.NoError(t, err)
	assert.Contains(t, out, "本轮尚未抽签")

	// History survives a new round.
	out, err = run(t, recordsCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "共计 1 条抽签记录")
}

type fakeDrawer struct {
	calls []string
	fail  string
}

func (f *fakeDrawer) DrawAll(_ context.Context, targetID string) []model.DrawResult {
	f.calls = append(f.calls, targetID)
	if targetID == f.fail {
		return []model.DrawResult{model.FailureResult("没有符合条件的候选部门")}
	}
	return []model.DrawResult{model.SuccessResult(model.Department{ID: "x", Name: "X"}, model.SpecialtyPressure)}
}

func TestDrawRound(t *testing.T) {
	departments := model.DefaultDepartments()[:3]
	d := &fakeDrawer{fail: "szs"}
	var out bytes.Buffer

	outcomes, err := drawRound(context.Background(), &out, d, departments)
	require.NoError(t, err)
	assert.Equal(t, []string{"nd", "szs", "wz"}, d.calls)
	require.Len(t, outcomes, 3)
	assert.Equal(t, "石嘴山分院", outcomes[1].name)
	assert.False(t, outcomes[1].result.Success)
}

func TestDrawRound_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &fakeDrawer{}

	outcomes, err := drawRound(ctx, &bytes.Buffer{}, d, model.DefaultDepartments())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
	assert.Empty(t, d.calls)
}

func TestRecordsCmd_Clear(t *testing.T) {
	useTempDatabase(t)

	_, err := run(t, drawCmd(), "nd")
	require.NoError(t, err)

	out, err := run(t, recordsCmd(), "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "--yes")

	out, err = run(t, recordsCmd(), "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "已删除 2 条抽签记录")

	out, err = run(t, recordsCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "暂无抽签记录")
}

func TestRecordsCmd_InvalidFilters(t *testing.T) {
	useTempDatabase(t)

	_, err := run(t, recordsCmd(), "list", "--since", "yesterday")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = run(t, recordsCmd(), "list", "--specialty", "electrical")
	assert.ErrorIs(t, err, common.ErrInvalidSpecialty)
}

func TestExportCmd(t *testing.T) {
	useTempDatabase(t)

	_, err := run(t, exportCmd(), "xlsx")
	assert.ErrorIs(t, err, common.ErrNoRecords)
	assert.Equal(t, "没有可导出的记录", common.UserMessage(err))

	_, err = run(t, drawCmd(), "nd")
	require.NoError(t, err)

	xlsxPath := filepath.Join(t.TempDir(), "history.xlsx")
	out, err := run(t, exportCmd(), "xlsx", "--output", xlsxPath)
	require.NoError(t, err)
	assert.Contains(t, out, "已导出 2 条记录")
	assert.FileExists(t, xlsxPath)

	out, err = run(t, exportCmd(), "html")
	require.NoError(t, err)
	matches, err := filepath.Glob(filepath.Join(viper.GetString("export.dir"), "抽签记录_*.html"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Contains(t, out, matches[0])

	page, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(page), "共计 2 条抽签记录")
}

func TestPublish(t *testing.T) {
	w := sheets.NewMockWriter()
	records := []model.DrawRecord{{ID: "r1"}}

	require.NoError(t, publish(context.Background(), w, records))
	assert.Equal(t, 1, w.Calls())
	assert.Equal(t, records, w.LastRecords)

	w.SetWriteError(errors.New("quota exceeded"))
	err := publish(context.Background(), w, records)
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestSheetsAuthCmd_MissingClient(t *testing.T) {
	useTempDatabase(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")

	_, err := run(t, exportCmd(), "sheets-auth")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestMigrateCmd(t *testing.T) {
	useTempDatabase(t)

	out, err := run(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "当前版本: 0")
	assert.Contains(t, out, "需要迁移")

	_, err = run(t, migrateCmd())
	require.NoError(t, err)

	out, err = run(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.NotContains(t, out, "需要迁移")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, versionCmd())
	require.NoError(t, err)
	assert.Equal(t, "qdraw dev\n", out)
}
