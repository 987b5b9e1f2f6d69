package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imyousuf/CodeGauge/internal/metrics"
)

func newMetricsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <file>",
		Short: "Show code quality metrics for a single file",
		Long: `Show code quality metrics for a single source file using the configured
analyzers. No report is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]
			info, err := os.Stat(filePath)
			if err != nil {
				return fmt.Errorf("stat file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory; run 'codegauge %s --output <path>' instead", filePath, filePath)
			}
			lang := metrics.DetectLanguage(filePath)
			if lang == metrics.LangUnknown {
				return fmt.Errorf("unsupported file type %q", filePath)
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if !slices.Contains(cfg.ParsedLanguages(), lang) {
				cfg.Languages = append(cfg.Languages, string(lang))
			}
			adapter, err := buildAdapter(cfg, opts.verbose, stderrLogger(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			m := adapter.Analyze(cmd.Context(), filePath)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Metrics for %s (language: %s)\n", filePath, lang)
			fmt.Fprintf(out, "%s\n\n", strings.Repeat("=", 40))
			for _, v := range m.Values() {
				fmt.Fprintf(out, "  %-30s %s\n", v.Name, metrics.FormatValue(v.Value, v.Integral))
			}

			band := metrics.BandFor(m.Maintainability)
			fmt.Fprintf(out, "\n  %s\n", bandStyles[band].Render(band.Summary()))
			for _, d := range m.Diagnostics {
				fmt.Fprintf(out, "  Line %d: [%s] %s (rule: %s)\n", d.Line, d.Severity, d.Message, d.Rule())
			}
			return nil
		},
	}
}
