package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imyousuf/CodeGauge/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit the effective configuration",
		Long: `View or edit CodeGauge configuration.

By default, displays the effective configuration (defaults, config file and
CODEGAUGE_* environment overrides). Use 'config edit' to edit the config file
interactively.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			printConfig(cmd, cfg, configPath(opts))
			return nil
		},
	}

	cmd.AddCommand(newConfigEditCmd(opts))

	return cmd
}

// configPath is the file written by 'config edit' and 'init'.
func configPath(opts *rootOptions) string {
	if opts.cfgFile != "" {
		return opts.cfgFile
	}
	return config.DefaultConfigFile + "." + config.DefaultConfigType
}

func printConfig(cmd *cobra.Command, cfg *config.Config, path string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)

	fmt.Fprintln(out, headerStyle.Render("CodeGauge Configuration"))
	fmt.Fprintln(out, headerStyle.Render(strings.Repeat("=", 23)))
	fmt.Fprintln(out)

	printSection(out, "Source")
	if _, err := os.Stat(path); err == nil {
		printKV(out, "Config file", path)
	} else {
		printKV(out, "Config file", "(defaults)")
	}
	fmt.Fprintln(out)

	printSection(out, "Languages")
	if len(cfg.Languages) > 0 {
		fmt.Fprintf(out, "    %s\n", strings.Join(cfg.Languages, ", "))
	} else {
		fmt.Fprintln(out, "    (none)")
	}
	fmt.Fprintln(out)

	printSection(out, "Report")
	printKV(out, "Format", cfg.Report.Format)
	title := cfg.Report.Title
	if title == "" {
		title = "(project name)"
	}
	printKV(out, "Title", title)
	errorLog := cfg.ErrorLog
	if errorLog == "" {
		errorLog = "(disabled)"
	}
	printKV(out, "Error log", errorLog)
	fmt.Fprintln(out)

	printSection(out, "Analyzers")
	printKV(out, "Complexity", cfg.Analyzers.Complexity)
	printKV(out, "Lint", boolYesNo(cfg.Analyzers.Lint))
	fmt.Fprintln(out)

	printSection(out, "Tools")
	printKV(out, "radon", cfg.Tools.Radon)
	printKV(out, "pylint", cfg.Tools.Pylint)
	printKV(out, "eslint", cfg.Tools.ESLint)
	printKV(out, "Timeout", cfg.Tools.Timeout.String())
	fmt.Fprintln(out)

	printSection(out, "Excluded Directories")
	printKV(out, "Honor .gitignore", boolYesNo(cfg.GitIgnore))
	for _, pattern := range cfg.Exclude {
		fmt.Fprintf(out, "    %s\n", pattern)
	}
	fmt.Fprintln(out)
}

func newConfigEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration interactively",
		Long:  `Edit the CodeGauge config file using an interactive wizard.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			ok, err := runConfigForm(cfg, "Edit CodeGauge Configuration", detectLanguages("."))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Edit cancelled.")
				return nil
			}

			path := configPath(opts)
			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("create config directory: %w", err)
				}
			}
			if err := config.WriteConfig(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(out, "Configuration saved to %s\n", path)
			return nil
		},
	}
}
