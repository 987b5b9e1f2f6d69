package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/imyousuf/CodeGauge/internal/analyzer"
	"github.com/imyousuf/CodeGauge/internal/config"
	"github.com/imyousuf/CodeGauge/internal/metrics"
	"github.com/imyousuf/CodeGauge/internal/report"
)

// formValues is the editable subset of config.Config as wizard fields.
type formValues struct {
	languages  []string
	format     string
	complexity string
	lint       bool
	exclude    string
	gitignore  bool
	errorLog   string
	timeout    string
}

func newFormValues(cfg *config.Config) *formValues {
	langs := make([]string, 0, len(cfg.Languages))
	for _, l := range cfg.ParsedLanguages() {
		langs = append(langs, string(l))
	}
	return &formValues{
		languages:  langs,
		format:     cfg.Report.Format,
		complexity: cfg.Analyzers.Complexity,
		lint:       cfg.Analyzers.Lint,
		exclude:    strings.Join(cfg.Exclude, ", "),
		gitignore:  cfg.GitIgnore,
		errorLog:   cfg.ErrorLog,
		timeout:    cfg.Tools.Timeout.String(),
	}
}

// apply copies the wizard values into cfg.
func (v *formValues) apply(cfg *config.Config) error {
	timeout, err := time.ParseDuration(strings.TrimSpace(v.timeout))
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", v.timeout, err)
	}
	cfg.Languages = append([]string(nil), v.languages...)
	cfg.Report.Format = v.format
	cfg.Analyzers.Complexity = v.complexity
	cfg.Analyzers.Lint = v.lint
	cfg.Exclude = splitList(v.exclude)
	cfg.GitIgnore = v.gitignore
	cfg.ErrorLog = strings.TrimSpace(v.errorLog)
	cfg.Tools.Timeout = timeout
	return cfg.Validate()
}

func (v *formValues) summary() string {
	langStr := strings.Join(v.languages, ", ")
	if langStr == "" {
		langStr = "(none)"
	}
	return fmt.Sprintf(
		"Languages:   %s\n"+
			"Format:      %s\n"+
			"Complexity:  %s\n"+
			"Lint:        %s\n"+
			"Exclude:     %s\n"+
			"Gitignore:   %s\n"+
			"Error log:   %s\n"+
			"Timeout:     %s",
		langStr, v.format, v.complexity, boolYesNo(v.lint), v.exclude, boolYesNo(v.gitignore), v.errorLog, v.timeout,
	)
}

// splitList parses a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func boolYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// runConfigForm edits cfg through an interactive wizard. Languages in
// detected are pre-selected. It reports false when the user cancels.
func runConfigForm(cfg *config.Config, title string, detected []string) (bool, error) {
	v := newFormValues(cfg)
	selected := make(map[string]bool)
	for _, l := range append(v.languages, detected...) {
		selected[l] = true
	}

	langOptions := make([]huh.Option[string], 0, len(metrics.Languages()))
	for _, lang := range metrics.Languages() {
		opt := huh.NewOption(string(lang), string(lang))
		if selected[string(lang)] {
			opt = opt.Selected(true)
		}
		langOptions = append(langOptions, opt)
	}

	formatOptions := make([]huh.Option[string], 0, len(report.Formats()))
	for _, f := range report.Formats() {
		formatOptions = append(formatOptions, huh.NewOption(string(f), string(f)))
	}

	complexityOptions := []huh.Option[string]{
		huh.NewOption("Auto (radon when installed)", analyzer.ModeAuto),
		huh.NewOption("radon", analyzer.ModeRadon),
		huh.NewOption("Built-in (tree-sitter)", analyzer.ModeBuiltin),
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Languages to analyze").
				Description("Detected languages are pre-selected").
				Options(langOptions...).
				Value(&v.languages).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("select at least one language")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Report format").
				Options(formatOptions...).
				Value(&v.format),
		).Title(title),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Python complexity analyzer").
				Options(complexityOptions...).
				Value(&v.complexity),
			huh.NewConfirm().
				Title("Run linters (pylint, eslint)?").
				Value(&v.lint).
				Affirmative("Yes").
				Negative("No"),
			huh.NewInput().
				Title("Tool timeout").
				Value(&v.timeout).
				Validate(func(s string) error {
					d, err := time.ParseDuration(strings.TrimSpace(s))
					if err != nil || d <= 0 {
						return fmt.Errorf("enter a positive duration such as 2m or 90s")
					}
					return nil
				}),
		).Title("Analyzers"),

		huh.NewGroup(
			huh.NewInput().
				Title("Excluded directories").
				Description("Comma-separated directory names").
				Value(&v.exclude),
			huh.NewConfirm().
				Title("Honor .gitignore files?").
				Value(&v.gitignore),
			huh.NewInput().
				Title("Error log").
				Description("Leave empty to disable").
				Value(&v.errorLog),
		).Title("Files"),

		huh.NewGroup(
			huh.NewNote().
				Title("Summary").
				DescriptionFunc(v.summary, v),
			huh.NewConfirm().
				Title("Save configuration?").
				Value(&confirm).
				Affirmative("Save").
				Negative("Cancel"),
		).Title("Confirm"),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("interactive config: %w", err)
	}
	if !confirm {
		return false, nil
	}
	if err := v.apply(cfg); err != nil {
		return false, err
	}
	return true, nil
}
