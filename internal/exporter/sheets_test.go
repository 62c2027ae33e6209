package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmetrics/internal/config"
)

func TestNewSheetsUploader(t *testing.T) {
	_, err := NewSheetsUploader(config.SheetsConfig{}, nil)
	assert.Error(t, err, "unconfigured sheets export must not construct")

	_, err = NewSheetsUploader(config.SheetsConfig{CredentialsFile: "creds.json"}, nil)
	assert.Error(t, err, "spreadsheet id is required")

	u, err := NewSheetsUploader(config.SheetsConfig{
		CredentialsFile: "creds.json",
		SpreadsheetID:   "sheet-1",
	}, nil)
	require.NoError(t, err)
	assert.NotNil(t, u)
}
