// Package config handles configuration loading and validation for CodeGauge.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/imyousuf/CodeGauge/internal/analyzer"
	"github.com/imyousuf/CodeGauge/internal/metrics"
	"github.com/imyousuf/CodeGauge/internal/report"
)

const (
	// DefaultConfigFile is the default configuration file name (without extension).
	DefaultConfigFile = ".codegauge"
	// DefaultConfigType is the default configuration file type.
	DefaultConfigType = "yaml"
	// DefaultErrorLog is where analyzer failures are recorded.
	DefaultErrorLog = "analysis_errors.log"
	// EnvPrefix prefixes environment overrides, e.g. CODEGAUGE_TOOLS_TIMEOUT.
	EnvPrefix = "CODEGAUGE"
)

// DefaultExclude lists directory names that are never analyzed.
var DefaultExclude = []string{"venv", ".venv", "node_modules", "__pycache__", ".git"}

// Config holds all configuration for CodeGauge.
type Config struct {
	// Languages lists the languages to analyze.
	Languages []string `mapstructure:"languages" yaml:"languages"`
	// Exclude lists directory names (or glob patterns) skipped during traversal.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
	// GitIgnore additionally skips paths matched by .gitignore files.
	GitIgnore bool `mapstructure:"gitignore" yaml:"gitignore"`
	// ErrorLog is the append-only file recording analyzer failures. Empty disables it.
	ErrorLog string `mapstructure:"error_log" yaml:"error_log"`
	// Report contains output settings.
	Report ReportConfig `mapstructure:"report" yaml:"report"`
	// Analyzers selects which analyzers run.
	Analyzers AnalyzersConfig `mapstructure:"analyzers" yaml:"analyzers"`
	// Tools locates the external executables.
	Tools ToolsConfig `mapstructure:"tools" yaml:"tools"`
}

// ReportConfig holds report output settings.
type ReportConfig struct {
	// Format is the report format (html or word).
	Format string `mapstructure:"format" yaml:"format"`
	// Title overrides the report heading. Empty uses the detected project name.
	Title string `mapstructure:"title" yaml:"title,omitempty"`
}

// AnalyzersConfig selects analyzers.
type AnalyzersConfig struct {
	// Complexity is the Python complexity source: auto, radon or builtin.
	Complexity string `mapstructure:"complexity" yaml:"complexity"`
	// Lint enables pylint and eslint.
	Lint bool `mapstructure:"lint" yaml:"lint"`
}

// ToolsConfig holds external tool locations and limits.
type ToolsConfig struct {
	Radon   string        `mapstructure:"radon" yaml:"radon"`
	Pylint  string        `mapstructure:"pylint" yaml:"pylint"`
	ESLint  string        `mapstructure:"eslint" yaml:"eslint"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Default returns the configuration used when no file or override is present.
func Default() *Config {
	return &Config{
		Languages: []string{string(metrics.LangPython), string(metrics.LangJavaScript)},
		Exclude:   append([]string(nil), DefaultExclude...),
		ErrorLog:  DefaultErrorLog,
		Report:    ReportConfig{Format: string(report.FormatHTML)},
		Analyzers: AnalyzersConfig{Complexity: analyzer.ModeAuto, Lint: true},
		Tools: ToolsConfig{
			Radon:   "radon",
			Pylint:  "pylint",
			ESLint:  "eslint",
			Timeout: analyzer.DefaultTimeout,
		},
	}
}

// Load loads configuration from defaults, the config file, and environment
// variables, in increasing precedence. configFile overrides the default
// .codegauge.yaml lookup, which searches projectDirs in order and then the
// working directory; a missing default file is not an error.
func Load(configFile string, projectDirs ...string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigFile)
		v.SetConfigType(DefaultConfigType)
		for _, dir := range projectDirs {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if the default one is not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return fmt.Errorf("at least one language must be configured")
	}
	for _, l := range c.Languages {
		if _, ok := metrics.ParseLanguage(l); !ok {
			return fmt.Errorf("unsupported language %q (valid: python, javascript)", l)
		}
	}

	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		return err
	}

	switch c.Analyzers.Complexity {
	case analyzer.ModeAuto, analyzer.ModeRadon, analyzer.ModeBuiltin:
	default:
		return fmt.Errorf("analyzers.complexity must be 'auto', 'radon' or 'builtin', got %q", c.Analyzers.Complexity)
	}

	if c.Tools.Timeout <= 0 {
		return fmt.Errorf("tools.timeout must be positive, got %v", c.Tools.Timeout)
	}
	return nil
}

// ParsedLanguages returns the configured languages, deduplicated, in
// configuration order. Call Validate first; unknown names are dropped.
func (c *Config) ParsedLanguages() []metrics.Language {
	var out []metrics.Language
	seen := make(map[metrics.Language]bool)
	for _, l := range c.Languages {
		lang, ok := metrics.ParseLanguage(l)
		if !ok || seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	return out
}

// Extensions returns the file extensions of the configured languages.
func (c *Config) Extensions() []string {
	var exts []string
	for _, lang := range c.ParsedLanguages() {
		exts = append(exts, metrics.FileExtensions[lang]...)
	}
	return exts
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("languages", d.Languages)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("gitignore", d.GitIgnore)
	v.SetDefault("error_log", d.ErrorLog)

	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("report.title", "")

	v.SetDefault("analyzers.complexity", d.Analyzers.Complexity)
	v.SetDefault("analyzers.lint", d.Analyzers.Lint)

	v.SetDefault("tools.radon", d.Tools.Radon)
	v.SetDefault("tools.pylint", d.Tools.Pylint)
	v.SetDefault("tools.eslint", d.Tools.ESLint)
	v.SetDefault("tools.timeout", d.Tools.Timeout)
}
