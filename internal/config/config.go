package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"labreport/internal/project"
	"labreport/internal/report"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "labreport.yaml"

// Config holds all labreport configuration.
type Config struct {
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ReportConfig controls the composed document.
type ReportConfig struct {
	Output              string   `yaml:"output"`
	Language            string   `yaml:"language"` // Python, R, HTML
	PaddingLines        int      `yaml:"padding_lines"`
	ResultSpaceBeforePt float64  `yaml:"result_space_before_pt"`
	ResultText          string   `yaml:"result_text"`
	Extensions          []string `yaml:"extensions"` // picked up when a directory is given
}

// WatchConfig configures the regenerate-on-change loop.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Report: ReportConfig{
			Output:              report.DefaultOutput,
			Language:            project.Python.String(),
			PaddingLines:        report.DefaultPaddingLines,
			ResultSpaceBeforePt: report.DefaultResultSpaceBefore,
			ResultText:          report.DefaultResultText,
			Extensions:          append([]string(nil), project.DefaultExtensions...),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Dir:    filepath.Join(".labreport", "logs"),
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
	}
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are ignored; variables already set are not overwritten.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Defaults still honour the environment
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LABREPORT_OUTPUT"); v != "" {
		c.Report.Output = v
	}
	if v := os.Getenv("LABREPORT_LANGUAGE"); v != "" {
		c.Report.Language = v
	}
	if v := os.Getenv("LABREPORT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LABREPORT_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Report.Output == "" {
		return fmt.Errorf("report output path not configured")
	}
	if _, err := project.ParseLanguage(c.Report.Language); err != nil {
		return fmt.Errorf("invalid report language: %w", err)
	}
	if c.Report.ResultSpaceBeforePt < 0 {
		return fmt.Errorf("result_space_before_pt must not be negative, got %v", c.Report.ResultSpaceBeforePt)
	}
	if len(c.Report.Extensions) == 0 {
		return fmt.Errorf("at least one program file extension is required")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %s (valid: text, json)", c.Logging.Format)
	}
	return nil
}

// SelectedLanguage returns the configured default language.
func (c *Config) SelectedLanguage() (project.Language, error) {
	return project.ParseLanguage(c.Report.Language)
}

// ComposerOptions maps the report settings onto the composer.
// A zero padding count in the file means no padding.
func (c *Config) ComposerOptions() report.Options {
	padding := c.Report.PaddingLines
	if padding == 0 {
		padding = -1
	}
	return report.Options{
		PaddingLines:        padding,
		ResultSpaceBeforePt: c.Report.ResultSpaceBeforePt,
		ResultText:          c.Report.ResultText,
	}
}

// GetWatchDebounce returns the watch debounce as a duration.
func (c *Config) GetWatchDebounce() time.Duration {
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}
