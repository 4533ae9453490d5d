package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftavenue/shiftavenue-code-samples/google-cloud-budget-alert-relay/internal/logging"
)

func TestSetupWriter_SeverityField(t *testing.T) {
	var buf bytes.Buffer
	logging.SetupWriter(&buf, "debug")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Warn().Str("budget", "Eng Budget").Msg("threshold exceeded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARNING", entry["severity"])
	assert.Equal(t, "Eng Budget", entry["budget"])
	assert.Equal(t, "threshold exceeded", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestSetupWriter_Levels(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	logging.SetupWriter(&buf, "ERROR")
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	logging.SetupWriter(&buf, "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	logging.SetupWriter(&buf, "")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetupFromEnv(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	t.Setenv("LOG_LEVEL", "debug")
	logging.SetupFromEnv()
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	t.Setenv("LOG_LEVEL", "")
	logging.SetupFromEnv()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		level zerolog.Level
		want  string
	}{
		{zerolog.TraceLevel, "DEBUG"},
		{zerolog.DebugLevel, "DEBUG"},
		{zerolog.InfoLevel, "INFO"},
		{zerolog.WarnLevel, "WARNING"},
		{zerolog.ErrorLevel, "ERROR"},
		{zerolog.FatalLevel, "CRITICAL"},
		{zerolog.PanicLevel, "ALERT"},
		{zerolog.NoLevel, "DEFAULT"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.Severity(tt.level))
		})
	}
}

func TestSetupWriter_TraceIsDebugSeverity(t *testing.T) {
	var buf bytes.Buffer
	logging.SetupWriter(&buf, "trace")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	log.Trace().Msg("details")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["severity"])
}
