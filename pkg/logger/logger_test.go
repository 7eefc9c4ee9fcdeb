package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, getLogLevel(in), in)
	}
}

func TestNewWithOptions_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions(Options{Level: "info", JSON: true, Output: &buf})

	l.LogCopyTradeToggled(context.Background(), "7", "trader_2", true)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Copy Trade Toggled", entry["msg"])
	assert.Equal(t, "trader_2", entry["trader_id"])
	assert.Equal(t, true, entry["following"])
}

func TestNewWithOptions_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOptions(Options{Level: "warn", Output: &buf})

	l.LogQuoteFetch(context.Background(), "mock", "AAPL", time.Millisecond, nil)
	assert.Empty(t, buf.String())

	l.LogQuoteFetch(context.Background(), "mock", "AAPL", time.Millisecond, errors.New("boom"))
	assert.Contains(t, buf.String(), "Quote Fetch Failed")
}

func TestNewWithOptions_RotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	var buf bytes.Buffer
	l := NewWithOptions(Options{Level: "info", JSON: true, Output: &buf, File: FileOptions{Path: path}})

	l.LogSignalsGenerated(context.Background(), 3, time.Second)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Signals Generated")
	assert.Contains(t, buf.String(), "Signals Generated")
}

func TestClose_WithoutFile(t *testing.T) {
	assert.NoError(t, Discard().Close())
}
