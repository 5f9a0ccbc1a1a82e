package cli

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// parseLogLevel maps config levels to zerolog; "off" disables logging.
func parseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "off", "none", "disabled":
		return zerolog.Disabled
	case "warning":
		return zerolog.WarnLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// newLogger writes to w, never stdout: stdout carries the stdio transport.
func newLogger(level, format string, w io.Writer) zerolog.Logger {
	out := w
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	return zerolog.New(out).Level(parseLogLevel(level)).With().Timestamp().Logger()
}
