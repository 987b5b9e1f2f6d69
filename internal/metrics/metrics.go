// Package metrics defines the per-file metric record produced by analyzers and
// the derived quality scores shared by the aggregator and the report renderer.
package metrics

import (
	"path/filepath"
	"strings"
)

// Language identifies a supported source language.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangUnknown    Language = "unknown"
)

// FileExtensions maps each language to its recognized file extensions.
// JavaScript covers TypeScript and JSX variants since ESLint lints all of them.
var FileExtensions = map[Language][]string{
	LangPython:     {".py"},
	LangJavaScript: {".js", ".jsx", ".ts", ".tsx"},
}

// Languages returns the supported languages in a stable order.
func Languages() []Language {
	return []Language{LangPython, LangJavaScript}
}

// ParseLanguage converts a config value into a Language.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangPython:
		return LangPython, true
	case LangJavaScript, "js", "typescript", "ts", "react":
		return LangJavaScript, true
	}
	return LangUnknown, false
}

// DetectLanguage maps a file path to a language by extension.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	for lang, exts := range FileExtensions {
		for _, e := range exts {
			if e == ext {
				return lang
			}
		}
	}
	return LangUnknown
}

// Severity is a lint diagnostic severity.
type Severity int

const (
	SeverityWarning Severity = 1
	SeverityError   Severity = 2
)

func (s Severity) String() string {
	if s == SeverityError {
		return "Error"
	}
	return "Warning"
}

// Diagnostic is a single linter finding.
type Diagnostic struct {
	Line     int
	Column   int
	Severity Severity
	Message  string
	RuleID   string
}

// Rule returns the rule id, or "-" for findings the linter did not attribute
// to a rule.
func (d Diagnostic) Rule() string {
	if d.RuleID == "" {
		return "-"
	}
	return d.RuleID
}

// FileMetrics is the fixed set of metrics collected for one analyzed file.
// Records are created by the analyzer adapter and not modified afterwards.
type FileMetrics struct {
	FilePath string
	Language Language

	ComplexityAvg    float64
	ComplexityMax    float64
	ComplexityBlocks int

	HalsteadVocabulary int
	HalsteadLength     int
	HalsteadVolume     float64
	HalsteadEffort     float64
	HalsteadDifficulty float64
	// Distinct operator and operand counts (Halstead h1, h2).
	DistinctOperators int
	DistinctOperands  int

	LinesOfCode int
	Comments    int

	Maintainability float64

	// LintScore is the linter's global score (pylint: 0-10). Linters that
	// report no score leave it at zero.
	LintScore    float64
	LintIssues   int
	LintErrors   int
	LintWarnings int
	Diagnostics  []Diagnostic
}

// Default returns a record with every tool-sourced field at its documented
// default: zero for all metrics and DefaultMaintainability for the index.
func Default(path string, lang Language) FileMetrics {
	return FileMetrics{
		FilePath:        path,
		Language:        lang,
		Maintainability: DefaultMaintainability,
	}
}

// Value is one named metric of a file, in display order.
type Value struct {
	Name     string
	Value    float64
	Integral bool
}

// Values lists the file's metrics in the order they are reported.
func (m FileMetrics) Values() []Value {
	return []Value{
		{"Cyclomatic Complexity (avg)", m.ComplexityAvg, false},
		{"Cyclomatic Complexity (max)", m.ComplexityMax, false},
		{"Halstead Vocabulary", float64(m.HalsteadVocabulary), true},
		{"Halstead Length", float64(m.HalsteadLength), true},
		{"Halstead Volume", m.HalsteadVolume, false},
		{"Halstead Effort", m.HalsteadEffort, false},
		{"Halstead Difficulty", m.HalsteadDifficulty, false},
		{"Distinct Operators", float64(m.DistinctOperators), true},
		{"Distinct Operands", float64(m.DistinctOperands), true},
		{"Lines of Code", float64(m.LinesOfCode), true},
		{"Comments", float64(m.Comments), true},
		{"Maintainability Index", m.Maintainability, false},
		{"Lint Score", m.LintScore, false},
		{"Lint Issues", float64(m.LintIssues), true},
	}
}
