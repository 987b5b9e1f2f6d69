package report

import (
	"fmt"
	"html/template"
	"io"

	"github.com/imyousuf/CodeGauge/internal/aggregate"
	"github.com/imyousuf/CodeGauge/internal/metrics"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"value": metrics.FormatValue,
	"entryValue": func(e aggregate.Entry) string {
		return metrics.FormatValue(e.Value, e.Integral)
	},
	"severityClass": func(s metrics.Severity) string {
		if s == metrics.SeverityError {
			return "error"
		}
		return "warning"
	},
}).Parse(htmlSource))

type htmlData struct {
	Title       string
	Generated   string
	Intro       string
	Explanation []string
	Aggregated  []aggregate.Entry
	Files       []fileView
}

// RenderHTML writes doc as a self-contained HTML page.
func RenderHTML(w io.Writer, doc *Document) error {
	data := htmlData{
		Title:       doc.title(),
		Generated:   doc.timestamp(),
		Intro:       explanation.Intro,
		Explanation: explanation.Metrics,
		Aggregated:  doc.Summary.Entries(),
		Files:       fileViews(doc.Files),
	}
	if err := htmlTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("execute HTML template: %w", err)
	}
	return nil
}

const htmlSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 20px; background-color: #f9f9f9; }
  .container { max-width: 1200px; margin: auto; background-color: #fff; padding: 20px; box-shadow: 0 0 10px rgba(0, 0, 0, 0.1); }
  h1, h2, h3 { color: #333; }
  table { width: 100%; border-collapse: collapse; margin-bottom: 20px; }
  th, td { padding: 10px; border: 1px solid #ddd; text-align: left; }
  th { background-color: #f2f2f2; font-weight: bold; }
  .good { background-color: #d4edda; color: #155724; }
  .moderate { background-color: #fff3cd; color: #856404; }
  .poor { background-color: #f8d7da; color: #721c24; }
  .error { background-color: #f8d7da; color: #721c24; }
  .warning { background-color: #fff3cd; color: #856404; }
  .explanation { background-color: #e9ecef; padding: 10px; margin-bottom: 20px; border-left: 4px solid #007bff; }
  .summary { padding: 5px; font-weight: bold; }
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
<p>Generated on: {{.Generated}}</p>
<div class="explanation">
<p>{{.Intro}}</p>
<ul>
{{- range .Explanation}}
<li>{{.}}</li>
{{- end}}
</ul>
</div>
<h2>Aggregated Project Metrics</h2>
<table class="aggregated">
<tr><th>Metric</th><th>Value</th></tr>
{{- range .Aggregated}}
<tr><td>{{.Name}}</td><td>{{entryValue .}}</td></tr>
{{- end}}
</table>
<h2>Individual File Metrics</h2>
{{- range .Files}}
<div class="file">
<h3>File: {{.Path}}</h3>
<p class="summary {{.Band.Class}}">Summary: {{.Band.Summary}}</p>
<table class="metrics">
<tr><th>Metric</th><th>Value</th></tr>
{{- range .Values}}
<tr><td>{{.Name}}</td><td>{{value .Value .Integral}}</td></tr>
{{- end}}
</table>
{{- if .Diagnostics}}
<table class="diagnostics">
<tr><th>Line</th><th>Severity</th><th>Message</th><th>Rule</th></tr>
{{- range .Diagnostics}}
<tr class="{{severityClass .Severity}}"><td>{{.Line}}</td><td>{{.Severity}}</td><td>{{.Message}}</td><td>{{.Rule}}</td></tr>
{{- end}}
</table>
{{- end}}
</div>
{{- end}}
</div>
</body>
</html>
`
