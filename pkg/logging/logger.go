// Package logging provides structured logging for cmdevents using zerolog.
//
// Libraries in this module never write logs unless given a logger; the
// emitter and program default to a disabled logger. Applications configure
// one logger at startup and pass it down:
//
//	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "debug"})
//	p := cmdevents.New(root, cmdevents.WithLogger(&logger))
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	defaultLogger = zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger()

	// Nop logger for discarding output.
	Nop = zerolog.Nop()
)

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a JSON logger writing to w at the global level.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// NewConsole creates a human-readable logger writing to w.
func NewConsole(w io.Writer, noColor bool) zerolog.Logger {
	return New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	})
}

// NopPtr returns a pointer to a fresh disabled logger.
func NopPtr() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
