package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_ADD_SOURCE", "true")

	config := LoadConfig()
	assert.Equal(t, slog.LevelDebug, config.Level)
	assert.Equal(t, "json", config.Format)
	assert.True(t, config.AddSource)
}

func TestLoadConfigIgnoresInvalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("LOG_ADD_SOURCE", "sometimes")

	assert.Equal(t, DefaultConfig().Level, LoadConfig().Level)
	assert.Equal(t, "text", LoadConfig().Format)
	assert.False(t, LoadConfig().AddSource)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
		"-8":    slog.Level(-8),
	} {
		got, ok := ParseLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseLevel("verbose")
	assert.False(t, ok)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Level: slog.LevelInfo, Format: "json", Writer: &buf})

	log.Debug("hidden")
	log.Info("statement", "query", "SELECT 1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "statement", rec["msg"])
	assert.Equal(t, "SELECT 1", rec["query"])
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}
