// =============================================================================
// Spectrum Parts List - Configuration Module
// =============================================================================
//
// This module loads the run configuration. Every setting has a built-in
// default, so the tool runs with no config file at all.
//
// SOURCES (later wins):
//   1. Built-in defaults
//   2. config.yaml (optional)
//   3. Environment variables (a .env file is loaded first if present)
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/spectrum-parts-list/internal/logging"
	"github.com/ginjaninja78/spectrum-parts-list/pkg/utils"
)

// Environment variables that override the file settings.
const (
	EnvInputFile = "PARTS_INPUT_FILE"
	EnvOutputDir = "PARTS_OUTPUT_DIR"
	EnvLogFile   = "PARTS_LOG_FILE"
	EnvLogLevel  = "PARTS_LOG_LEVEL"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings for one pipeline run.
type Config struct {
	// =========================================================================
	// INPUT / OUTPUT
	// =========================================================================

	// InputFile is the CSV export to load.
	// Default: "./files/PurchasingData.csv"
	InputFile string `yaml:"input_file"`

	// OutputDir is the directory relative report names are placed in.
	// Default: "./files"
	OutputDir string `yaml:"output_dir"`

	// Reports names the output files.
	Reports Reports `yaml:"reports"`

	// SheetName is the worksheet name used in every workbook.
	// Default: "Part"
	SheetName string `yaml:"sheet_name"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is the append-only row-error log.
	// Default: "./Log.txt"
	LogFile string `yaml:"log_file"`

	// LogLevel controls the verbosity of the console log.
	// Valid values: "debug", "info", "warn" (or "warning"), "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// CONSOLE SETTINGS
	// =========================================================================

	// PauseOnExit waits for Enter after the completion message, for runs
	// started by double-clicking the executable. Set it to false (or pass
	// --no-pause) for scripted runs.
	// Default: true
	PauseOnExit bool `yaml:"pause_on_exit"`
}

// Reports holds the output file names. Names may use the placeholders
// {timestamp}, {date}, {time} and {uuid}.
type Reports struct {
	// Lines is the report of every distinct purchase line.
	// Default: "FormattedPurchasingData1.xlsx"
	Lines string `yaml:"lines"`

	// ByCostCode is the report grouped by item code, cost code and
	// description.
	// Default: "FormattedPurchasingData2.xlsx"
	ByCostCode string `yaml:"by_cost_code"`

	// ByItem is the report grouped by item code.
	// Default: "FormattedPurchasingData3.xlsx"
	ByItem string `yaml:"by_item"`

	// CSV, when set, also writes the distinct lines as CSV.
	// Default: "" (disabled)
	CSV string `yaml:"csv"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{PauseOnExit: true}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load builds the configuration for a run.
//
// PARAMETERS:
//   - configPath: The path to the YAML file. A missing file is not an
//     error; the defaults are used instead.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read or parsed, or the result is
//     invalid.
func Load(configPath string) (*Config, error) {
	// An optional .env file feeds the environment overrides.
	_ = godotenv.Load()

	// Booleans cannot be told apart from "unset" after unmarshalling, so
	// their defaults are seeded first.
	cfg := &Config{PauseOnExit: true}

	if configPath != "" && utils.FileExists(configPath) {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(cfg)
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = "./files/PurchasingData.csv"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./files"
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "./Log.txt"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.SheetName == "" {
		cfg.SheetName = "Part"
	}
	if cfg.Reports.Lines == "" {
		cfg.Reports.Lines = "FormattedPurchasingData1.xlsx"
	}
	if cfg.Reports.ByCostCode == "" {
		cfg.Reports.ByCostCode = "FormattedPurchasingData2.xlsx"
	}
	if cfg.Reports.ByItem == "" {
		cfg.Reports.ByItem = "FormattedPurchasingData3.xlsx"
	}
}

func applyEnv(cfg *Config) {
	cfg.InputFile = getEnv(EnvInputFile, cfg.InputFile)
	cfg.OutputDir = getEnv(EnvOutputDir, cfg.OutputDir)
	cfg.LogFile = getEnv(EnvLogFile, cfg.LogFile)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.InputFile) == "" {
		problems = append(problems, "input_file cannot be empty")
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log_level '%s': must be one of %v", c.LogLevel, logging.Levels))
	}

	reports := []struct {
		key  string
		name string
		ext  string
	}{
		{"reports.lines", c.Reports.Lines, ".xlsx"},
		{"reports.by_cost_code", c.Reports.ByCostCode, ".xlsx"},
		{"reports.by_item", c.Reports.ByItem, ".xlsx"},
		{"reports.csv", c.Reports.CSV, ".csv"},
	}

	seen := make(map[string]string)
	for _, r := range reports {
		if r.name == "" {
			continue
		}
		if !strings.EqualFold(filepath.Ext(r.name), r.ext) {
			problems = append(problems, fmt.Sprintf("%s '%s' must end in %s", r.key, r.name, r.ext))
		}

		// Each {uuid} expands to a fresh value, so such a name never collides.
		if strings.Contains(r.name, "{uuid}") {
			continue
		}
		target := c.outputPath(r.name)
		if other, ok := seen[target]; ok {
			problems = append(problems, fmt.Sprintf("%s and %s both write '%s'", other, r.key, target))
		}
		seen[target] = r.key
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// =============================================================================
// OUTPUT PATHS
// =============================================================================

// ReportPath resolves a report name to the path it is written to.
// Placeholders are expanded and a relative name is placed in OutputDir.
// An empty name yields an empty path.
func (c *Config) ReportPath(name string) string {
	if name == "" {
		return ""
	}

	return c.outputPath(utils.GenerateOutputFileName(name, nil))
}

// outputPath places name in OutputDir unless it is absolute. The result is
// cleaned, so "a.xlsx" and "./a.xlsx" give the same path.
func (c *Config) outputPath(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(c.OutputDir, name)
}
