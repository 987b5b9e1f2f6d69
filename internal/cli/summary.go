package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imyousuf/CodeGauge/internal/metrics"
	"github.com/imyousuf/CodeGauge/internal/pipeline"
)

// Style definitions for console output.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})
	labelStyle = lipgloss.NewStyle().
			Faint(true).
			Width(34)
	valueStyle = lipgloss.NewStyle()

	bandStyles = map[metrics.Band]lipgloss.Style{
		metrics.BandFavorable:   lipgloss.NewStyle().Foreground(lipgloss.Color("#" + metrics.BandFavorable.Color())),
		metrics.BandModerate:    lipgloss.NewStyle().Foreground(lipgloss.Color("#" + metrics.BandModerate.Color())),
		metrics.BandUnfavorable: lipgloss.NewStyle().Foreground(lipgloss.Color("#" + metrics.BandUnfavorable.Color())),
	}
)

func printSection(out io.Writer, title string) {
	fmt.Fprintf(out, "  %s\n", headerStyle.Render(title))
}

func printKV(out io.Writer, label, value string) {
	fmt.Fprintf(out, "    %s%s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}

// printSummary writes the aggregated metrics and the maintainability spread
// of a completed run.
func printSummary(out io.Writer, res *pipeline.Result) {
	if res.Summary.Empty() {
		fmt.Fprintln(out, "No files analyzed; no report written.")
		return
	}

	fmt.Fprintln(out)
	printSection(out, "Aggregated Project Metrics")
	for _, e := range res.Summary.Entries() {
		printKV(out, e.Name, metrics.FormatValue(e.Value, e.Integral))
	}
	fmt.Fprintln(out)

	counts := make(map[metrics.Band]int)
	for _, f := range res.Files {
		counts[metrics.BandFor(f.Maintainability)]++
	}
	printSection(out, "Maintainability")
	for _, b := range []metrics.Band{metrics.BandFavorable, metrics.BandModerate, metrics.BandUnfavorable} {
		label := strings.ToUpper(b.String()[:1]) + b.String()[1:]
		printKV(out, label, bandStyles[b].Render(fmt.Sprintf("%d", counts[b])))
	}
	fmt.Fprintln(out)

	if res.ReportWritten {
		printKV(out, "Report", res.ReportPath)
	}
}
