package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/imyousuf/CodeGauge/internal/metrics"
)

// ESLint lints JavaScript and TypeScript files. Exit status 1 means lint
// problems were found; 2 and above means ESLint itself failed.
type ESLint struct {
	runner     Runner
	executable string
}

// NewESLint creates an ESLint linter. An empty executable defaults to "eslint".
func NewESLint(runner Runner, executable string) *ESLint {
	if executable == "" {
		executable = "eslint"
	}
	return &ESLint{runner: runner, executable: executable}
}

func (e *ESLint) Name() string { return "eslint" }

type eslintResult struct {
	FilePath     string `json:"filePath"`
	ErrorCount   int    `json:"errorCount"`
	WarningCount int    `json:"warningCount"`
	Messages     []struct {
		RuleID   *string `json:"ruleId"`
		Severity int     `json:"severity"`
		Message  string  `json:"message"`
		Line     int     `json:"line"`
		Column   int     `json:"column"`
	} `json:"messages"`
}

// Lint runs `eslint --format json <path>`.
func (e *ESLint) Lint(ctx context.Context, path string) (*LintResult, error) {
	out, err := e.runner.Run(ctx, e.executable, "--format", "json", path)
	if err != nil {
		return nil, invocationError(e.Name(), path, err, out)
	}
	if out.ExitCode < 0 || out.ExitCode > 1 {
		return nil, invocationError(e.Name(), path, fmt.Errorf("%w: %d", ErrNonZeroExit, out.ExitCode), out)
	}
	if len(bytes.TrimSpace(out.Stdout)) == 0 {
		return nil, invocationError(e.Name(), path, ErrEmptyOutput, out)
	}

	var results []eslintResult
	if err := json.Unmarshal(out.Stdout, &results); err != nil {
		return nil, invocationError(e.Name(), path, fmt.Errorf("%w: %v", ErrMalformedOutput, err), out)
	}

	res := &LintResult{}
	for _, r := range results {
		res.Errors += r.ErrorCount
		res.Warnings += r.WarningCount
		for _, msg := range r.Messages {
			rule := ""
			if msg.RuleID != nil {
				rule = *msg.RuleID
			}
			sev := metrics.SeverityWarning
			if msg.Severity == int(metrics.SeverityError) {
				sev = metrics.SeverityError
			}
			res.Diagnostics = append(res.Diagnostics, metrics.Diagnostic{
				Line:     msg.Line,
				Column:   msg.Column,
				Severity: sev,
				Message:  msg.Message,
				RuleID:   rule,
			})
		}
	}
	res.Issues = len(res.Diagnostics)
	return res, nil
}
