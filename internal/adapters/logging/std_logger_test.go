package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/adapters/logging"
	"github.com/andrescamacho/colonysim-go/internal/infrastructure/config"
)

var fixedTime = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func TestStdLogger_TextFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStdLogger(&buf, "info", "text").WithClock(func() time.Time { return fixedTime })

	logger.Log("DEBUG", "hidden", nil)
	logger.Log("INFO", "[Simulate] started", map[string]interface{}{"run_id": "simulate-1-abc", "colony_id": 1})
	logger.Log("ERROR", "boom", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2025-01-15T10:00:00Z INFO  [Simulate] started colony_id=1 run_id=simulate-1-abc", lines[0])
	assert.Equal(t, "2025-01-15T10:00:00Z ERROR boom", lines[1])
}

func TestStdLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStdLogger(&buf, "debug", "json").WithClock(func() time.Time { return fixedTime })

	logger.Log("debug", "tick", map[string]interface{}{"events": 3})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "tick", entry["message"])
	assert.Equal(t, "2025-01-15T10:00:00Z", entry["time"])
	assert.Equal(t, 3.0, entry["events"])
}

func TestNewStdLoggerFromConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colonysim.log")

	logger, closer, err := logging.NewStdLoggerFromConfig(config.LoggingConfig{
		Level: "warn", Format: "text", Output: "file", FilePath: path,
	})
	require.NoError(t, err)

	logger.Log("INFO", "dropped", nil)
	logger.Log("WARN", "kept", nil)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")
}
