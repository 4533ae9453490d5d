// Package logging configures the global zerolog logger for Cloud Logging.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at stdout. Cloud Logging reads the level
// from the "severity" field.
func Setup(level string) {
	SetupWriter(os.Stdout, level)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level string) {
	zerolog.LevelFieldName = "severity"
	zerolog.LevelFieldMarshalFunc = Severity
	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// Severity maps a zerolog level to a Cloud Logging LogSeverity.
// https://cloud.google.com/logging/docs/reference/v2/rest/v2/LogEntry#logseverity
func Severity(l zerolog.Level) string {
	switch l {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return "DEBUG"
	case zerolog.InfoLevel:
		return "INFO"
	case zerolog.WarnLevel:
		return "WARNING"
	case zerolog.ErrorLevel:
		return "ERROR"
	case zerolog.FatalLevel:
		return "CRITICAL"
	case zerolog.PanicLevel:
		return "ALERT"
	default:
		return "DEFAULT"
	}
}

type settings struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// SetupFromEnv calls Setup with the level named by LOG_LEVEL.
func SetupFromEnv() {
	var s settings
	if err := envconfig.Process("", &s); err != nil {
		s.Level = zerolog.InfoLevel.String()
	}
	Setup(s.Level)
}
