package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"BATCH_WORKERS", "MAX_PAYLOAD_BYTES", "GOOGLE_SHEET_URL", "GOOGLE_SHEET_WORKSHEET",
		"DEFAULT_INCLUDES", "LOG_LEVEL", "LOG_FORMAT", "LOG_TIME_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BatchWorkers)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxPayloadBytes)
	assert.Equal(t, "Invoices", cfg.GoogleSheetWorksheet)
	assert.Empty(t, cfg.GoogleSheetURL)
	assert.Equal(t, "info", cfg.GetLoggerConfig().Level)
	assert.Equal(t, "stderr", cfg.GetLoggerConfig().Output)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BATCH_WORKERS", "4")
	t.Setenv("MAX_PAYLOAD_BYTES", "1024")
	t.Setenv("DEFAULT_INCLUDES", "Customer,Lines")
	t.Setenv("GOOGLE_SHEET_URL", "https://docs.google.com/spreadsheets/d/abc123/edit")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.BatchWorkers)
	assert.Equal(t, int64(1024), cfg.MaxPayloadBytes)
	assert.Equal(t, "Customer,Lines", cfg.DefaultIncludes)
	assert.Equal(t, "json", cfg.GetLoggerConfig().Format)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"non-numeric workers": {"BATCH_WORKERS", "many"},
		"zero workers":        {"BATCH_WORKERS", "0"},
		"too many workers":    {"BATCH_WORKERS", "500"},
		"negative payload":    {"MAX_PAYLOAD_BYTES", "-1"},
		"not a sheet url":     {"GOOGLE_SHEET_URL", "https://example.com/sheet"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDefaultPassesValidation(t *testing.T) {
	assert.NoError(t, Default().validate())
}
