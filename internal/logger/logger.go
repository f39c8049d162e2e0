// Package logger configures the application's logging.
//
// It uses *ZeroLog* for structured logging. Every logger
// built here carries the service name and environment so
// output from different runs can be told apart.
package logger

import (
	"io"
	"time"

	"github.com/deppfellow/go-schemacheck/internal/config"
	"github.com/rs/zerolog"
)

// New builds the application logger from observability config.
//
// Output goes to w as JSON, or through zerolog.ConsoleWriter when the
// configured format is "console". An unparseable level falls back to info.
func New(cfg *config.ObservabilityConfig, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Logger()
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}
