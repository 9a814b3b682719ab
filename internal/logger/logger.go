// Package logger builds the zerolog logger used across reportdash.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the sink and level.
type Options struct {
	Level string
	// File, when set, receives JSON lines instead of the console writer.
	File string
	// Interactive means the terminal is owned by the UI; without a File the
	// logger is disabled.
	Interactive bool
	NoColor     bool
}

// New returns a console logger writing to w.
func New(w io.Writer, level string, noColor bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    noColor,
		TimeFormat: time.RFC3339,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%-6s", i))
		},
	}

	return zerolog.New(output).
		Level(parseLogLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Open builds a logger for opts. The returned close func releases the log file
// and is never nil.
func Open(opts Options, stderr io.Writer) (zerolog.Logger, func() error, error) {
	noop := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return zerolog.Nop(), noop, fmt.Errorf("open log file: %w", err)
		}
		l := zerolog.New(f).Level(parseLogLevel(opts.Level)).With().Timestamp().Logger()
		return l, f.Close, nil
	}
	if opts.Interactive {
		return zerolog.Nop(), noop, nil
	}
	return New(stderr, opts.Level, opts.NoColor), noop, nil
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
