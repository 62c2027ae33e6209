package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultReportsDir, cfg.Reports.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultCacheMaxEntries, cfg.Cache.MaxEntries)
	assert.False(t, cfg.Telemetry.TracingEnabled)
	assert.False(t, cfg.Sheets.Enabled())

	require.NoError(t, cfg.Validate())
}

func TestLoadFile_YAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
sources:
  dir: data/ecommerce
reports:
  dir: out/reports
logging:
  level: debug
  format: text
cache:
  enabled: true
  max_entries: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "data/ecommerce", cfg.Sources.Dir)
	assert.Equal(t, "out/reports", cfg.Reports.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 3, cfg.Cache.MaxEntries)
	// Untouched sections keep defaults
	assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("SHOP_LOGGING_LEVEL", "warn")
	t.Setenv("SHOP_SOURCES_DIR", "/srv/data")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/srv/data", cfg.Sources.Dir)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "Level",
		},
		{
			name:    "bad metric exporter",
			mutate:  func(c *Config) { c.Telemetry.MetricExporter = "statsd" },
			wantErr: "MetricExporter",
		},
		{
			name:    "sample ratio out of range",
			mutate:  func(c *Config) { c.Telemetry.SampleRatio = 1.5 },
			wantErr: "SampleRatio",
		},
		{
			name: "file output requires path",
			mutate: func(c *Config) {
				c.Logging.Output = "file"
				c.Logging.FilePath = ""
			},
			wantErr: "file_path",
		},
		{
			name: "sheets credentials without spreadsheet",
			mutate: func(c *Config) {
				c.Sheets.CredentialsFile = "creds.json"
			},
			wantErr: "spreadsheet_id",
		},
		{
			name:    "cache max entries must be positive",
			mutate:  func(c *Config) { c.Cache.MaxEntries = 0 },
			wantErr: "MaxEntries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSheetsConfig_Enabled(t *testing.T) {
	assert.False(t, SheetsConfig{}.Enabled())
	assert.False(t, SheetsConfig{CredentialsFile: "creds.json"}.Enabled())
	assert.True(t, SheetsConfig{CredentialsFile: "creds.json", SpreadsheetID: "abc"}.Enabled())
}

func TestEnsureReportsDir(t *testing.T) {
	cfg := Default()
	cfg.Reports.Dir = filepath.Join(t.TempDir(), "nested", "reports")

	dir, err := cfg.EnsureReportsDir()
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
