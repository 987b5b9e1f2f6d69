package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imyousuf/CodeGauge/internal/config"
	"github.com/imyousuf/CodeGauge/internal/metrics"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var (
		interactive bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a .codegauge.yaml config file",
		Long: `Write a .codegauge.yaml config file for the project in dir (default: the
current directory).

Languages are detected from the files found near the project root. Use
--interactive to review every setting in a wizard before saving.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("stat project directory: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			path := opts.cfgFile
			if path == "" {
				path = filepath.Join(dir, config.DefaultConfigFile+"."+config.DefaultConfigType)
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; use --force to overwrite", path)
			}

			cfg := config.Default()
			detected := detectLanguages(dir)
			if len(detected) > 0 {
				cfg.Languages = detected
			}

			out := cmd.OutOrStdout()
			if interactive {
				ok, err := runConfigForm(cfg, "CodeGauge Setup", detected)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Setup cancelled.")
					return nil
				}
			}

			if err := config.WriteConfig(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", path)
			if len(detected) > 0 {
				fmt.Fprintf(out, "Detected languages: %s\n", strings.Join(detected, ", "))
			} else {
				fmt.Fprintln(out, "No source files detected; enabled all supported languages.")
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintf(out, "  1. Review %s\n", path)
			fmt.Fprintln(out, "  2. Install radon and pylint (pip) or eslint (npm) for full metrics")
			fmt.Fprintf(out, "  3. Run: codegauge %s --output report.html\n", dir)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "review settings in an interactive wizard")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}

// detectLanguages walks rootDir (depth-limited to 2 levels) and returns the
// supported languages whose file extensions appear in it.
func detectLanguages(rootDir string) []string {
	found := make(map[string]bool)

	extToLang := make(map[string]string)
	for lang, exts := range metrics.FileExtensions {
		for _, ext := range exts {
			extToLang[ext] = string(lang)
		}
	}

	_ = filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			rel, relErr := filepath.Rel(rootDir, path)
			if relErr != nil || rel == "." {
				return nil
			}
			if strings.Count(filepath.ToSlash(rel), "/") >= 2 {
				return fs.SkipDir
			}
			if slices.Contains(config.DefaultExclude, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if lang, ok := extToLang[strings.ToLower(filepath.Ext(path))]; ok {
			found[lang] = true
		}
		return nil
	})

	result := make([]string, 0, len(found))
	for lang := range found {
		result = append(result, lang)
	}
	sort.Strings(result)
	return result
}
