package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Sources   SourcesConfig   `yaml:"sources" envconfig:"SOURCES"`
	Reports   ReportsConfig   `yaml:"reports" envconfig:"REPORTS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Cache     CacheConfig     `yaml:"cache" envconfig:"CACHE"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
	Sheets    SheetsConfig    `yaml:"sheets" envconfig:"SHEETS"`
}

// SourcesConfig locates the raw CSV tables
type SourcesConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR"`
}

// ReportsConfig controls where report artifacts are written
type ReportsConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout stderr file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// CacheConfig controls the loaded-dataset cache
type CacheConfig struct {
	Enabled    bool `yaml:"enabled" envconfig:"ENABLED"`
	MaxEntries int  `yaml:"max_entries" envconfig:"MAX_ENTRIES" validate:"min=1"`
}

// TelemetryConfig controls tracing and metrics for pipeline runs
type TelemetryConfig struct {
	TracingEnabled bool    `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	TraceExporter  string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	MetricsEnabled bool    `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
	MetricExporter string  `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER" validate:"oneof=prometheus none"`
	PushgatewayURL string  `yaml:"pushgateway_url" envconfig:"PUSHGATEWAY_URL" validate:"omitempty,url"`
	SampleRatio    float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"min=0,max=1"`
}

// SheetsConfig enables the optional Google Sheets export when both fields
// are set
type SheetsConfig struct {
	CredentialsFile string `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
	SpreadsheetID   string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
}

// Enabled reports whether the Sheets export is configured
func (s SheetsConfig) Enabled() bool {
	return s.CredentialsFile != "" && s.SpreadsheetID != ""
}

// Load loads configuration from defaults, an optional YAML file discovered
// in the usual locations, and SHOP_* environment variables, in increasing
// order of precedence.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables take precedence over the file
	if err := envconfig.Process("SHOP", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile merges a YAML file over cfg
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field constraints and cross-field consistency
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	if (c.Logging.Output == "file" || c.Logging.Output == "both") && c.Logging.FilePath == "" {
		return fmt.Errorf("logging output %q requires logging.file_path", c.Logging.Output)
	}

	if c.Sheets.CredentialsFile != "" && c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("sheets.credentials_file set without sheets.spreadsheet_id")
	}

	return nil
}

// ResolveSourcesDir returns the sources directory as an absolute path
func (c *Config) ResolveSourcesDir() (string, error) {
	if c.Sources.Dir == "" {
		return "", fmt.Errorf("sources directory not configured")
	}
	return filepath.Abs(c.Sources.Dir)
}

// EnsureReportsDir creates the reports directory if needed and returns its
// absolute path
func (c *Config) EnsureReportsDir() (string, error) {
	dir, err := filepath.Abs(c.Reports.Dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	return dir, nil
}

// findConfigFile returns the first config file present in the usual
// locations, or the SHOP_CONFIG_FILE override
func findConfigFile() string {
	if path := os.Getenv("SHOP_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Sources: SourcesConfig{},
		Reports: ReportsConfig{
			Dir: DefaultReportsDir,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: DefaultLogFile,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: DefaultCacheMaxEntries,
		},
		Telemetry: TelemetryConfig{
			TracingEnabled: false,
			TraceExporter:  "stdout",
			MetricsEnabled: false,
			MetricExporter: "prometheus",
			SampleRatio:    1.0,
		},
		Sheets: SheetsConfig{},
	}
}
