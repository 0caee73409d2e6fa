package log

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestNewWithFileWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "chat.log")

	logger, closer, err := NewWithFile("warn", path)
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	logger.Warn().Str("client_id", "c1").Msg("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "c1", entry["client_id"])
	assert.Equal(t, "warn", entry["level"])
}

func TestNewWithFileWithoutPath(t *testing.T) {
	logger, closer, err := NewWithFile("debug", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	assert.NoError(t, closer.Close())
}
