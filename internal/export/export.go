// Package export renders the draw history as spreadsheets and printable pages.
package export

import (
	"fmt"
	"time"

	"github.com/nxtei/quality-draw/internal/common"
	"github.com/nxtei/quality-draw/internal/model"
)

// Title heads every exported document.
const Title = "宁夏特检院质量监督检查抽签记录"

// TimeLayout is used for the draw time column.
const TimeLayout = "2006-01-02 15:04:05"

// NoRecordsMessage is shown when there is nothing to export.
const NoRecordsMessage = "没有可导出的记录"

// Headers are the column titles shared by every export format.
var Headers = []string{"序号", "抽签时间", "被检部门", "专责类型", "抽中部门"}

// ColumnWidths are the spreadsheet column widths, in characters.
var ColumnWidths = []float64{8, 20, 20, 12, 20}

// Row is one history line ready for display.
type Row struct {
	Index     int
	Time      string
	Target    string
	Specialty string
	Selected  string
}

// Cells returns the row in Headers order.
func (r Row) Cells() []any {
	return []any{r.Index, r.Time, r.Target, r.Specialty, r.Selected}
}

// Rows converts records to display rows, numbered from 1, rendering times in loc.
func Rows(records []model.DrawRecord, loc *time.Location) []Row {
	if loc == nil {
		loc = time.Local
	}
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			Index:     i + 1,
			Time:      rec.Timestamp.In(loc).Format(TimeLayout),
			Target:    rec.TargetDepartmentName,
			Specialty: rec.SpecialtyType.Label(),
			Selected:  rec.SelectedSpecialistName,
		}
	}
	return rows
}

// DefaultFilename returns the conventional file name for an export made at now.
func DefaultFilename(ext string, now time.Time) string {
	return fmt.Sprintf("抽签记录_%s.%s", now.Format("20060102_150405"), ext)
}

func checkRecords(records []model.DrawRecord) error {
	if len(records) == 0 {
		return common.NewUserError(NoRecordsMessage, common.ErrNoRecords)
	}
	return nil
}
