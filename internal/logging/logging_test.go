package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(Options{Level: slog.LevelInfo, Console: &buf})
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("shown", "count", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "count=2")
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twodo.log")
	var console bytes.Buffer

	logger, closer := New(Options{Level: slog.LevelDebug, Console: &console, File: path})
	logger.Warn("failed to mirror notes", "count", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "failed to mirror notes", line["msg"])
	assert.EqualValues(t, 3, line["count"])

	assert.Contains(t, console.String(), "failed to mirror notes")
}

func TestNew_Discard(t *testing.T) {
	logger, closer := New(Options{})
	defer closer.Close()

	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
