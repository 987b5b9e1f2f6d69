package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/imyousuf/CodeGauge/internal/metrics"
)

// Pylint exit status bits that mean the run itself failed. The remaining bits
// (error, warning, refactor, convention) only signal findings.
const (
	pylintFatal = 1
	pylintUsage = 32
)

// Pylint lints Python files and reports pylint's global score.
type Pylint struct {
	runner     Runner
	executable string
}

// NewPylint creates a Pylint linter. An empty executable defaults to "pylint".
func NewPylint(runner Runner, executable string) *Pylint {
	if executable == "" {
		executable = "pylint"
	}
	return &Pylint{runner: runner, executable: executable}
}

func (p *Pylint) Name() string { return "pylint" }

// pylintReport is the json2 output format (pylint >= 3.0).
type pylintReport struct {
	Messages []struct {
		Type      string `json:"type"`
		Symbol    string `json:"symbol"`
		Message   string `json:"message"`
		MessageID string `json:"messageId"`
		Line      int    `json:"line"`
		Column    int    `json:"column"`
	} `json:"messages"`
	Statistics *struct {
		Score float64 `json:"score"`
	} `json:"statistics"`
}

// Lint runs `pylint --output-format=json2 --score=y <path>`.
func (p *Pylint) Lint(ctx context.Context, path string) (*LintResult, error) {
	out, err := p.runner.Run(ctx, p.executable, "--output-format=json2", "--score=y", path)
	if err != nil {
		return nil, invocationError(p.Name(), path, err, out)
	}
	if out.ExitCode < 0 || out.ExitCode&(pylintFatal|pylintUsage) != 0 {
		return nil, invocationError(p.Name(), path, fmt.Errorf("%w: %d", ErrNonZeroExit, out.ExitCode), out)
	}
	if len(bytes.TrimSpace(out.Stdout)) == 0 {
		return nil, invocationError(p.Name(), path, ErrEmptyOutput, out)
	}

	var report pylintReport
	if err := json.Unmarshal(out.Stdout, &report); err != nil {
		return nil, invocationError(p.Name(), path, fmt.Errorf("%w: %v", ErrMalformedOutput, err), out)
	}
	if report.Statistics == nil {
		return nil, invocationError(p.Name(), path, fmt.Errorf("%w: missing statistics", ErrMalformedOutput), out)
	}

	res := &LintResult{Score: report.Statistics.Score, Issues: len(report.Messages)}
	for _, msg := range report.Messages {
		sev := metrics.SeverityWarning
		if msg.Type == "error" || msg.Type == "fatal" {
			sev = metrics.SeverityError
			res.Errors++
		} else {
			res.Warnings++
		}
		rule := msg.Symbol
		if rule == "" {
			rule = msg.MessageID
		}
		res.Diagnostics = append(res.Diagnostics, metrics.Diagnostic{
			Line:     msg.Line,
			Column:   msg.Column,
			Severity: sev,
			Message:  msg.Message,
			RuleID:   rule,
		})
	}
	return res, nil
}
