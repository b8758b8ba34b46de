package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger returns the CLI logger writing console output to stderr.
func Logger() zerolog.Logger {
	return NewLogger(os.Stderr)
}

// NewLogger returns a console logger writing to w.
func NewLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}
