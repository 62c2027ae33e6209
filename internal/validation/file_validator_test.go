package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmetrics/internal/config"
	apperrors "shopmetrics/internal/errors"
)

// writeSources creates all six source CSVs in a temp directory.
func writeSources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, fileName := range config.SourceFiles {
		path := filepath.Join(dir, fileName)
		require.NoError(t, os.WriteFile(path, []byte("header\n"), 0644))
	}
	return dir
}

func TestFileValidator_ValidateSourceDirectory(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		missingSource bool
		errorContains string
	}{
		{
			name:      "all six tables present",
			setupFunc: writeSources,
			wantErr:   false,
		},
		{
			name: "orders table missing",
			setupFunc: func(t *testing.T) string {
				dir := writeSources(t)
				require.NoError(t, os.Remove(filepath.Join(dir, config.OrdersFile)))
				return dir
			},
			wantErr:       true,
			missingSource: true,
			errorContains: "orders",
		},
		{
			name: "reviews table missing",
			setupFunc: func(t *testing.T) string {
				dir := writeSources(t)
				require.NoError(t, os.Remove(filepath.Join(dir, config.ReviewsFile)))
				return dir
			},
			wantErr:       true,
			missingSource: true,
			errorContains: "reviews",
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return "/non/existent/path"
			},
			wantErr:       true,
			missingSource: true,
		},
		{
			name: "path is file not directory",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				file := filepath.Join(dir, "test.txt")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			dir := tt.setupFunc(t)

			err := validator.ValidateSourceDirectory(dir)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Equal(t, tt.missingSource, apperrors.IsMissingSource(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		validator := NewFileValidator(nil)
		dir := filepath.Join(t.TempDir(), "reports", "nested")

		require.NoError(t, validator.ValidateOutputDirectory(dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("removes write test file", func(t *testing.T) {
		validator := NewFileValidator(nil)
		dir := t.TempDir()

		require.NoError(t, validator.ValidateOutputDirectory(dir))

		_, err := os.Stat(filepath.Join(dir, ".write_test"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestFileValidator_ValidateFile(t *testing.T) {
	validator := NewFileValidator(slog.Default())

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0644))
		assert.NoError(t, validator.ValidateFile(path))
	})

	t.Run("missing file", func(t *testing.T) {
		err := validator.ValidateFile(filepath.Join(t.TempDir(), "absent.csv"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("directory instead of file", func(t *testing.T) {
		err := validator.ValidateFile(t.TempDir())
		assert.ErrorContains(t, err, "is a directory")
	})
}

func TestFileValidator_ValidateCSVFile(t *testing.T) {
	validator := NewFileValidator(slog.Default())

	t.Run("csv extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0644))
		assert.NoError(t, validator.ValidateCSVFile(path))
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.txt")
		require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0644))
		err := validator.ValidateCSVFile(path)
		assert.ErrorContains(t, err, "not a CSV file")
	})
}

func TestFileValidator_CountFiles(t *testing.T) {
	validator := NewFileValidator(slog.Default())
	dir := t.TempDir()

	for _, name := range []string{"a.csv", "b.csv", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub.csv"), 0755))

	count, err := validator.CountFiles(dir, "*.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "directories matching the pattern are not counted")
}
