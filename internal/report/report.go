// Package report renders analysis results as an HTML page or a Word document.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/renameio"

	"github.com/imyousuf/CodeGauge/internal/aggregate"
	"github.com/imyousuf/CodeGauge/internal/metrics"
)

// Format selects the report output shape.
type Format string

const (
	FormatHTML Format = "html"
	FormatWord Format = "word"
)

// Formats lists the supported report formats.
func Formats() []Format {
	return []Format{FormatHTML, FormatWord}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHTML, FormatWord:
		return f, nil
	case "docx":
		return FormatWord, nil
	}
	return "", fmt.Errorf("unknown report format %q (valid: html, word)", s)
}

// DefaultTitle is used when a Document has no title.
const DefaultTitle = "Code Analysis Report"

const timestampLayout = "2006-01-02 15:04:05"

// Document is the content of one report.
type Document struct {
	Title     string
	Generated time.Time
	Files     []metrics.FileMetrics
	Summary   *aggregate.Summary
}

func (d *Document) title() string {
	if d.Title == "" {
		return DefaultTitle
	}
	return d.Title
}

func (d *Document) timestamp() string {
	t := d.Generated
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format(timestampLayout)
}

// explanation is the introductory text shared by both formats.
var explanation = struct {
	Intro   string
	Metrics []string
}{
	Intro: "This report provides an analysis of the source code within the specified folder. " +
		"The analysis includes metrics that give insight into the code's quality, maintainability and complexity. " +
		"Below is a brief explanation of the key metrics included in this report:",
	Metrics: []string{
		"Cyclomatic Complexity: the number of independent paths through a function.",
		"Halstead Metrics: code volume, effort and difficulty derived from operator and operand counts.",
		"Maintainability Index: a composite 0-100 score; 80 and above is good, below 50 is poor.",
		"Lint Score and Issues: adherence to the linter's style and correctness rules.",
	},
}

// Write renders doc in the given format and atomically writes it to path. If
// the summary is empty nothing is written and Write returns false.
func Write(path string, format Format, doc *Document, logf func(format string, args ...any)) (bool, error) {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if doc == nil || doc.Summary.Empty() {
		logf("No data to generate a report")
		return false, nil
	}

	var buf bytes.Buffer
	if err := Render(&buf, format, doc); err != nil {
		return false, err
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return false, fmt.Errorf("write report %s: %w", path, err)
	}
	logf("%s report generated: %s", formatLabel(format), path)
	return true, nil
}

// Render writes doc to w in the given format.
func Render(w io.Writer, format Format, doc *Document) error {
	switch format {
	case FormatHTML:
		return RenderHTML(w, doc)
	case FormatWord:
		return RenderDocx(w, doc)
	}
	return fmt.Errorf("unknown report format %q", format)
}

func formatLabel(f Format) string {
	if f == FormatWord {
		return "Word"
	}
	return "HTML"
}

// fileView is the per-file content shared by both renderers.
type fileView struct {
	Path        string
	Band        metrics.Band
	Values      []metrics.Value
	Diagnostics []metrics.Diagnostic
}

func fileViews(files []metrics.FileMetrics) []fileView {
	views := make([]fileView, 0, len(files))
	for _, f := range files {
		views = append(views, fileView{
			Path:        f.FilePath,
			Band:        metrics.BandFor(f.Maintainability),
			Values:      f.Values(),
			Diagnostics: f.Diagnostics,
		})
	}
	return views
}
