package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LogConfig{Format: "json"})
	l.Info().Str("customer_id", "C-1").Msg("statement written")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "statement written", entry["message"])
	assert.Equal(t, "C-1", entry["customer_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewConsoleFallback(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LogConfig{Format: "pretty", TimeFormat: "15:04"})
	l.Warn().Msg("row skipped")

	assert.Contains(t, buf.String(), "row skipped")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestSetup(t *testing.T) {
	saved := log.Logger
	savedLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(savedLevel)
	})

	path := filepath.Join(t.TempDir(), "erp.log")
	require.NoError(t, Setup(LogConfig{Level: "DEBUG", Format: "json", Output: path}))
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	assert.Error(t, Setup(LogConfig{Level: "verbose"}))
}
