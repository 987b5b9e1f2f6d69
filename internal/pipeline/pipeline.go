// Package pipeline sequences a single analysis run: enumerate, analyze,
// aggregate, render.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/imyousuf/CodeGauge/internal/aggregate"
	"github.com/imyousuf/CodeGauge/internal/metrics"
	"github.com/imyousuf/CodeGauge/internal/report"
	"github.com/imyousuf/CodeGauge/internal/walker"
)

// FileAnalyzer produces one metrics record per file.
type FileAnalyzer interface {
	Analyze(ctx context.Context, path string) metrics.FileMetrics
}

// Config holds the collaborators of a run.
type Config struct {
	Walker   *walker.Walker
	Analyzer FileAnalyzer
	Format   report.Format
	Output   string // report path
	Title    string
	Logger   func(format string, args ...any) // optional logger, defaults to fmt.Fprintf(os.Stderr, ...)
	Now      func() time.Time                 // optional clock for the report timestamp
}

// Result describes a completed run.
type Result struct {
	Files         []metrics.FileMetrics
	Summary       *aggregate.Summary
	ReportWritten bool
	ReportPath    string
}

// Pipeline runs one analysis.
type Pipeline struct {
	walker   *walker.Walker
	analyzer FileAnalyzer
	format   report.Format
	output   string
	title    string
	log      func(format string, args ...any)
	now      func() time.Time
}

// New creates a Pipeline from cfg.
func New(cfg Config) *Pipeline {
	logFn := cfg.Logger
	if logFn == nil {
		logFn = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	format := cfg.Format
	if format == "" {
		format = report.FormatHTML
	}
	return &Pipeline{
		walker:   cfg.Walker,
		analyzer: cfg.Analyzer,
		format:   format,
		output:   cfg.Output,
		title:    cfg.Title,
		log:      logFn,
		now:      now,
	}
}

// Run analyzes every matching file under root and writes the report. A root
// that cannot be walked aborts the run; a tree with no matching files is not
// an error and produces no report.
func (p *Pipeline) Run(ctx context.Context, root string) (*Result, error) {
	files, err := p.walker.Files(root)
	if err != nil {
		return nil, err
	}

	res := &Result{ReportPath: p.output}
	for path := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analyze %s: %w", root, err)
		}
		p.log("Analyzing: %s", path)
		res.Files = append(res.Files, p.analyzer.Analyze(ctx, path))
	}
	if len(res.Files) == 0 {
		p.log("No matching source files found in %s", root)
	}

	res.Summary = aggregate.Aggregate(res.Files, p.log)

	doc := &report.Document{
		Title:     p.title,
		Generated: p.now(),
		Files:     res.Files,
		Summary:   res.Summary,
	}
	wrote, err := report.Write(p.output, p.format, doc, p.log)
	if err != nil {
		return res, fmt.Errorf("generate report: %w", err)
	}
	res.ReportWritten = wrote
	return res, nil
}
