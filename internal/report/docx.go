package report

import (
	"fmt"
	"io"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/imyousuf/CodeGauge/internal/metrics"
)

// Run colors for lint diagnostics.
const (
	colorError   = "FF0000"
	colorWarning = "FFA500"
)

// tableStyle is the bordered grid style shipped in the default template.
const tableStyle = "TableGrid"

// RenderDocx writes doc as a Word (.docx) document.
func RenderDocx(w io.Writer, doc *Document) error {
	d, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create docx: %w", err)
	}

	if _, err := d.AddHeading(doc.title(), 0); err != nil {
		return fmt.Errorf("add title: %w", err)
	}
	d.AddParagraph("Generated on: " + doc.timestamp())
	d.AddParagraph(explanation.Intro)
	for _, m := range explanation.Metrics {
		d.AddParagraph("- " + m)
	}

	if _, err := d.AddHeading("Aggregated Project Metrics", 1); err != nil {
		return fmt.Errorf("add heading: %w", err)
	}
	rows := [][]string{{"Metric", "Value"}}
	for _, e := range doc.Summary.Entries() {
		rows = append(rows, []string{e.Name, metrics.FormatValue(e.Value, e.Integral)})
	}
	addTable(d, rows)

	if _, err := d.AddHeading("Individual File Metrics", 1); err != nil {
		return fmt.Errorf("add heading: %w", err)
	}
	for _, f := range fileViews(doc.Files) {
		if _, err := d.AddHeading("File: "+f.Path, 2); err != nil {
			return fmt.Errorf("add heading for %s: %w", f.Path, err)
		}
		p := d.AddParagraph("Summary: ")
		p.AddText(f.Band.Summary()).Color(f.Band.Color())

		rows := [][]string{{"Metric", "Value"}}
		for _, v := range f.Values {
			rows = append(rows, []string{v.Name, metrics.FormatValue(v.Value, v.Integral)})
		}
		addTable(d, rows)

		for _, diag := range f.Diagnostics {
			color := colorWarning
			if diag.Severity == metrics.SeverityError {
				color = colorError
			}
			text := fmt.Sprintf("Line %d: [%s] %s (rule: %s)", diag.Line, diag.Severity, diag.Message, diag.Rule())
			d.AddParagraph("").AddText(text).Color(color)
		}
	}

	if err := d.Write(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

// addTable appends a grid table; the first row is a bold header.
func addTable(d *docx.RootDoc, rows [][]string) {
	tbl := d.AddTable()
	tbl.Style(tableStyle)
	for i, row := range rows {
		r := tbl.AddRow()
		for _, cell := range row {
			if i == 0 {
				r.AddCell().AddParagraph("").AddText(cell).Bold(true)
				continue
			}
			r.AddCell().AddParagraph(cell)
		}
	}
}
