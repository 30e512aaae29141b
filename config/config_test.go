package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energy-billing/invoice-reader/dto"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INVOICE_CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, int64(32), cfg.Server.MaxMultipartMemoryMB)
	assert.Equal(t, "/tmp/uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes())
	assert.False(t, cfg.PDF.Validate)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, dto.DefaultLayout(), cfg.Layout)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("INVOICE_CONFIG_FILE", "")
	t.Setenv("INVOICE_SERVER_PORT", "9090")
	t.Setenv("INVOICE_UPLOAD_DIR", "/var/invoices")
	t.Setenv("INVOICE_PDF_VALIDATE", "true")
	t.Setenv("INVOICE_LOG_FORMAT", "json")
	t.Setenv("INVOICE_LAYOUT_CONSUMER_UNIT_LINE", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/var/invoices", cfg.Upload.Dir)
	assert.True(t, cfg.PDF.Validate)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Layout.ConsumerUnitLine)
	assert.Equal(t, 5, cfg.Layout.ReferenceLine)
}

func TestLoad_LayoutFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
layout:
  item_prefixes: ["(1A)", "(1B)"]
  reference_line: 7
  due_date:
    start: 10
    end: 20
`), 0o644))
	t.Setenv("INVOICE_CONFIG_FILE", file)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"(1A)", "(1B)"}, cfg.Layout.ItemPrefixes)
	assert.Equal(t, 7, cfg.Layout.ReferenceLine)
	assert.Equal(t, dto.Span{Start: 10, End: 20}, cfg.Layout.DueDate)
	// untouched keys keep their defaults
	assert.Equal(t, dto.Span{Start: 0, End: 7}, cfg.Layout.Reference)
	assert.Equal(t, "KWH", cfg.Layout.UnitToken)
	assert.Equal(t, []string{"Energia", "Único"}, cfg.Layout.MeterKeywords)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("INVOICE_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidLayout(t *testing.T) {
	t.Setenv("INVOICE_CONFIG_FILE", "")
	t.Setenv("INVOICE_LAYOUT_VALUE_TOKEN", "-1")

	_, err := Load()
	assert.ErrorContains(t, err, "layout.value_token")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
}
