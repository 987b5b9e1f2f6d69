package analyzer

import (
	"fmt"

	"github.com/imyousuf/CodeGauge/internal/metrics"
)

// Complexity analyzer selection modes.
const (
	ModeAuto    = "auto"
	ModeRadon   = "radon"
	ModeBuiltin = "builtin"
)

// ToolsConfig selects and locates the tools used for each language.
type ToolsConfig struct {
	Languages  []metrics.Language
	Complexity string // auto, radon or builtin
	Lint       bool
	Radon      string
	Pylint     string
	ESLint     string
}

// Tools is the resolved set of tools for a run.
type Tools struct {
	Complexity map[metrics.Language]ComplexityAnalyzer
	Linters    map[metrics.Language]Linter
}

// BuildTools resolves tc into concrete analyzers. available reports whether
// an executable can be found; it decides between radon and the builtin
// analyzer in auto mode. A nil available uses Available.
func BuildTools(tc ToolsConfig, runner Runner, available func(string) bool) (*Tools, error) {
	if available == nil {
		available = Available
	}
	radonExe := tc.Radon
	if radonExe == "" {
		radonExe = "radon"
	}

	t := &Tools{
		Complexity: make(map[metrics.Language]ComplexityAnalyzer),
		Linters:    make(map[metrics.Language]Linter),
	}
	builtin := NewBuiltin()

	for _, lang := range tc.Languages {
		switch lang {
		case metrics.LangPython:
			switch tc.Complexity {
			case ModeRadon:
				t.Complexity[lang] = NewRadon(runner, radonExe)
			case ModeBuiltin:
				t.Complexity[lang] = builtin
			case ModeAuto, "":
				if available(radonExe) {
					t.Complexity[lang] = NewRadon(runner, radonExe)
				} else {
					t.Complexity[lang] = builtin
				}
			default:
				return nil, fmt.Errorf("unknown complexity mode %q", tc.Complexity)
			}
			if tc.Lint {
				t.Linters[lang] = NewPylint(runner, tc.Pylint)
			}
		case metrics.LangJavaScript:
			t.Complexity[lang] = builtin
			if tc.Lint {
				t.Linters[lang] = NewESLint(runner, tc.ESLint)
			}
		default:
			return nil, fmt.Errorf("unsupported language %q", lang)
		}
	}
	return t, nil
}
