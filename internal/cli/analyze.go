package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imyousuf/CodeGauge/internal/analyzer"
	"github.com/imyousuf/CodeGauge/internal/config"
	"github.com/imyousuf/CodeGauge/internal/errlog"
	"github.com/imyousuf/CodeGauge/internal/metrics"
	"github.com/imyousuf/CodeGauge/internal/pipeline"
	"github.com/imyousuf/CodeGauge/internal/report"
	"github.com/imyousuf/CodeGauge/internal/walker"
)

func runAnalyze(cmd *cobra.Command, opts *rootOptions, root string) error {
	cfg, err := loadConfig(cmd, opts, root)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	logf := stderrLogger(cmd.ErrOrStderr())
	adapter, err := buildAdapter(cfg, opts.verbose, logf)
	if err != nil {
		return err
	}

	var walkOpts []walker.Option
	if opts.verbose {
		walkOpts = append(walkOpts, walker.WithLogger(logf))
	}
	if cfg.GitIgnore {
		walkOpts = append(walkOpts, walker.WithGitIgnore())
	}

	title := cfg.Report.Title
	if title == "" {
		title = fmt.Sprintf("%s: %s", report.DefaultTitle, config.DetectProject(root).Name)
	}

	p := pipeline.New(pipeline.Config{
		Walker:   walker.New(cfg.Exclude, cfg.Extensions(), walkOpts...),
		Analyzer: adapter,
		Format:   format,
		Output:   opts.output,
		Title:    title,
		Logger:   logf,
	})
	res, err := p.Run(cmd.Context(), root)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), res)
	return nil
}

// loadConfig loads the config file, looking in projectDirs before the working
// directory, and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, opts *rootOptions, projectDirs ...string) (*config.Config, error) {
	cfg, err := config.Load(opts.cfgFile, projectDirs...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Report.Format = opts.format
	}
	if flags.Changed("title") {
		cfg.Report.Title = opts.title
	}
	if len(opts.exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, opts.exclude...)
	}
	if opts.gitignore {
		cfg.GitIgnore = true
	}
	if len(opts.languages) > 0 {
		cfg.Languages = opts.languages
	}
	if flags.Changed("error-log") {
		cfg.ErrorLog = opts.errorLog
	}
	if opts.noLint {
		cfg.Analyzers.Lint = false
	}
	if opts.complexity != "" {
		cfg.Analyzers.Complexity = opts.complexity
	}
	if opts.timeout > 0 {
		cfg.Tools.Timeout = opts.timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// buildAdapter resolves the configured tools into an analyzer adapter.
func buildAdapter(cfg *config.Config, verbose bool, logf func(string, ...any)) (*analyzer.Adapter, error) {
	langs := cfg.ParsedLanguages()
	tools, err := analyzer.BuildTools(analyzer.ToolsConfig{
		Languages:  langs,
		Complexity: cfg.Analyzers.Complexity,
		Lint:       cfg.Analyzers.Lint,
		Radon:      cfg.Tools.Radon,
		Pylint:     cfg.Tools.Pylint,
		ESLint:     cfg.Tools.ESLint,
	}, analyzer.NewExecRunner(cfg.Tools.Timeout), nil)
	if err != nil {
		return nil, fmt.Errorf("configure analyzers: %w", err)
	}

	if ca := tools.Complexity[metrics.LangPython]; ca != nil && verbose {
		logf("Python complexity analyzer: %s", ca.Name())
	}
	for _, lang := range langs {
		if l, ok := tools.Linters[lang]; ok {
			exe := linterExecutable(cfg, l.Name())
			if !analyzer.Available(exe) {
				logf("Warning: %s not found; lint results for %s files will default to 0", exe, lang)
			}
		}
	}

	return analyzer.NewAdapter(analyzer.Config{
		Complexity: tools.Complexity,
		Linters:    tools.Linters,
		ErrorLog:   errlog.New(cfg.ErrorLog),
		Verbose:    verbose,
		Logger:     logf,
	}), nil
}

func linterExecutable(cfg *config.Config, name string) string {
	exe := ""
	switch name {
	case "pylint":
		exe = cfg.Tools.Pylint
	case "eslint":
		exe = cfg.Tools.ESLint
	}
	if exe == "" {
		return name
	}
	return exe
}
