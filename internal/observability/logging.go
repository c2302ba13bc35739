package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a structured JSON logger for a component.
// Level comes from PKB_LOG_LEVEL, default info.
func NewLogger(component string) zerolog.Logger {
	return NewLoggerWithWriter(os.Stdout, component, ParseLogLevel(os.Getenv("PKB_LOG_LEVEL")))
}

// NewLoggerWithWriter creates a logger with an explicit sink and level
func NewLoggerWithWriter(w io.Writer, component string, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

// NopLogger is used by services constructed without a logger
func NopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// ParseLogLevel maps a level name to a zerolog level, unknown names fall back to info
func ParseLogLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
