// Package cli implements the command-line interface for CodeGauge.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

// rootOptions holds the flags of the root (analyze) command.
type rootOptions struct {
	cfgFile string
	verbose bool

	format     string
	output     string
	title      string
	exclude    []string
	gitignore  bool
	languages  []string
	errorLog   string
	noLint     bool
	complexity string
	timeout    time.Duration
}

// NewRootCmd builds the codegauge command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "codegauge <folder_path>",
		Short: "CodeGauge - code quality reports for Python and JavaScript projects",
		Long: `CodeGauge walks a source tree, runs complexity analyzers and linters on every
Python and JavaScript/TypeScript file, aggregates the results, and writes an
HTML or Word report.

Examples:
  codegauge ./service --output report.html
  codegauge ./web --format word --output quality.docx --exclude dist

Commands:
  init       Write a .codegauge.yaml config file
  config     Show or edit the effective configuration
  metrics    Show metrics for a single file
  version    Print version information`,
		Version:       versionLine(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	// Persistent flags (available to all subcommands)
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: .codegauge.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "html", "report format (html or word)")
	f.StringVarP(&opts.output, "output", "o", "", "output path for the report (required)")
	f.StringVar(&opts.title, "title", "", "report title (default: detected from the project manifest)")
	f.StringSliceVar(&opts.exclude, "exclude", nil, "additional directory names to skip (repeatable)")
	f.BoolVar(&opts.gitignore, "gitignore", false, "also skip paths matched by .gitignore files")
	f.StringSliceVar(&opts.languages, "language", nil, "languages to analyze: python, javascript (repeatable)")
	f.StringVar(&opts.errorLog, "error-log", "", "file recording analyzer failures")
	f.BoolVar(&opts.noLint, "no-lint", false, "skip pylint and eslint")
	f.StringVar(&opts.complexity, "complexity", "", "Python complexity analyzer: auto, radon or builtin")
	f.DurationVar(&opts.timeout, "timeout", 0, "timeout for each external tool invocation")
	if err := cmd.MarkFlagRequired("output"); err != nil {
		panic(fmt.Sprintf("failed to mark output flag required: %v", err))
	}

	// Add subcommands
	cmd.AddCommand(newInitCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newMetricsCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command. Cancelling ctx stops an analysis between
// files.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// stderrLogger returns a printf logger writing one line per call to w.
func stderrLogger(w io.Writer) func(format string, args ...any) {
	return func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}
