package export

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/nxtei/quality-draw/internal/model"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "SimSun", "Songti SC", serif; margin: 2em; }
h1 { text-align: center; font-size: 20pt; }
.meta { text-align: right; font-size: 10pt; color: #555; }
table { width: 100%; border-collapse: collapse; margin-top: 1em; }
th, td { border: 1px solid #000; padding: 6px 8px; text-align: center; font-size: 11pt; }
th { background: #f0f0f0; font-weight: bold; }
.total { margin-top: 1em; text-align: right; }
@media print { body { margin: 0; } .meta { color: #000; } }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">打印时间：{{.PrintedAt}}</p>
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{- range .Rows}}
<tr><td>{{.Index}}</td><td>{{.Time}}</td><td>{{.Target}}</td><td>{{.Specialty}}</td><td>{{.Selected}}</td></tr>
{{- end}}
</tbody>
</table>
<p class="total">共计 {{len .Rows}} 条抽签记录</p>
</body>
</html>
`))

type page struct {
	Title     string
	PrintedAt string
	Headers   []string
	Rows      []Row
}

// WriteHTML renders records as a printable page. Times are shown in printedAt's location.
func WriteHTML(w io.Writer, records []model.DrawRecord, printedAt time.Time) error {
	if err := checkRecords(records); err != nil {
		return err
	}

	data := page{
		Title:     Title,
		PrintedAt: printedAt.Format(TimeLayout),
		Headers:   Headers,
		Rows:      Rows(records, printedAt.Location()),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}
	return nil
}
