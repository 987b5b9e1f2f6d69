// Package analyzer adapts external static-analysis tools into per-file
// metric records. Each tool sits behind a capability interface so the
// orchestration does not depend on how a tool is located or invoked.
package analyzer

import (
	"context"
	"fmt"
	"os"

	"github.com/imyousuf/CodeGauge/internal/errlog"
	"github.com/imyousuf/CodeGauge/internal/metrics"
)

// Complexity is what a complexity analyzer reports for one file.
type Complexity struct {
	// Scores holds the cyclomatic complexity of each function-like block.
	Scores []float64

	DistinctOperators int
	DistinctOperands  int
	TotalOperators    int
	TotalOperands     int
	Vocabulary        int
	Length            int
	Volume            float64
	Difficulty        float64
	Effort            float64

	LinesOfCode int
	Comments    int

	// Maintainability is set when the tool computes the index itself.
	Maintainability *float64
}

// LintResult is what a linter reports for one file.
type LintResult struct {
	Score       float64
	Issues      int
	Errors      int
	Warnings    int
	Diagnostics []metrics.Diagnostic
}

// ComplexityAnalyzer computes complexity, Halstead and raw metrics.
type ComplexityAnalyzer interface {
	Name() string
	Analyze(ctx context.Context, path string, content []byte) (*Complexity, error)
}

// Linter reports style and correctness findings.
type Linter interface {
	Name() string
	Lint(ctx context.Context, path string) (*LintResult, error)
}

// Config holds the tools used per language.
type Config struct {
	Complexity map[metrics.Language]ComplexityAnalyzer
	Linters    map[metrics.Language]Linter
	ErrorLog   *errlog.Log
	Verbose    bool
	Logger     func(format string, args ...any) // optional logger, defaults to fmt.Fprintf(os.Stderr, ...)
}

// Adapter turns a file path into exactly one metrics.FileMetrics record.
type Adapter struct {
	complexity map[metrics.Language]ComplexityAnalyzer
	linters    map[metrics.Language]Linter
	errLog     *errlog.Log
	verbose    bool
	log        func(format string, args ...any)
}

// NewAdapter creates an Adapter from cfg.
func NewAdapter(cfg Config) *Adapter {
	logFn := cfg.Logger
	if logFn == nil {
		logFn = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}
	}
	return &Adapter{
		complexity: cfg.Complexity,
		linters:    cfg.Linters,
		errLog:     cfg.ErrorLog,
		verbose:    cfg.Verbose,
		log:        logFn,
	}
}

// Analyze runs the configured tools for path's language. It never fails: a
// tool error is logged, appended to the error log, and the fields that tool
// supplies keep their defaults (0, or 100 for maintainability).
func (a *Adapter) Analyze(ctx context.Context, path string) metrics.FileMetrics {
	lang := metrics.DetectLanguage(path)
	m := metrics.Default(path, lang)

	content, err := os.ReadFile(path)
	if err != nil {
		a.fail(path, "read", fmt.Errorf("read file %s: %w", path, err))
		return m
	}

	if ca := a.complexity[lang]; ca != nil {
		if a.verbose {
			a.log("  Running %s on %s", ca.Name(), path)
		}
		c, err := ca.Analyze(ctx, path, content)
		if err != nil {
			a.fail(path, ca.Name(), err)
		} else {
			applyComplexity(&m, c, metrics.PhysicalLines(content))
		}
	}

	if l := a.linters[lang]; l != nil {
		if a.verbose {
			a.log("  Running %s on %s", l.Name(), path)
		}
		res, err := l.Lint(ctx, path)
		if err != nil {
			a.fail(path, l.Name(), err)
		} else {
			applyLint(&m, res)
		}
	}

	return m
}

func (a *Adapter) fail(path, tool string, err error) {
	a.log("Error running %s on %s: %v", tool, path, err)
	if logErr := a.errLog.Append(path, err); logErr != nil {
		a.log("Error writing error log: %v", logErr)
	}
}

func applyComplexity(m *metrics.FileMetrics, c *Complexity, lines int) {
	m.ComplexityBlocks = len(c.Scores)
	if len(c.Scores) > 0 {
		var sum, max float64
		for i, s := range c.Scores {
			sum += s
			if i == 0 || s > max {
				max = s
			}
		}
		m.ComplexityAvg = sum / float64(len(c.Scores))
		m.ComplexityMax = max
	}

	m.DistinctOperators = c.DistinctOperators
	m.DistinctOperands = c.DistinctOperands
	m.HalsteadVocabulary = c.Vocabulary
	m.HalsteadLength = c.Length
	m.HalsteadVolume = c.Volume
	m.HalsteadDifficulty = c.Difficulty
	m.HalsteadEffort = c.Effort

	m.LinesOfCode = c.LinesOfCode
	m.Comments = c.Comments

	if c.Maintainability != nil {
		m.Maintainability = metrics.Clamp(*c.Maintainability, 0, 100)
	} else {
		m.Maintainability = metrics.MaintainabilityIndex(lines, c.Volume, m.ComplexityAvg, m.ComplexityBlocks)
	}
}

func applyLint(m *metrics.FileMetrics, r *LintResult) {
	m.LintScore = r.Score
	m.LintIssues = r.Issues
	m.LintErrors = r.Errors
	m.LintWarnings = r.Warnings
	m.Diagnostics = r.Diagnostics
}
