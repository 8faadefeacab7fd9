// Package logging configures the diagnostic slog logger.
// Diagnostics go to stderr so they never mix with generated artifacts.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/runoshun/pcr-triage/internal/domain"
)

// LevelTrace is more verbose than debug; it logs external command lines.
const LevelTrace = slog.Level(-8)

// ParseLevel parses a --log-level value into slog.Level.
func ParseLevel(levelStr string) (slog.Level, error) {
	switch levelStr {
	case domain.LogLevelTrace:
		return LevelTrace, nil
	case domain.LogLevelDebug:
		return slog.LevelDebug, nil
	case domain.LogLevelInfo, "":
		return slog.LevelInfo, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", domain.ErrInvalidLogLevel, levelStr)
	}
}

// New creates a text logger writing to w at the given minimum level.
// Timestamps are omitted; the output is meant for an interactive terminal.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttr,
	}))
}

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.Attr{}
	case slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelToString(lvl))
		}
	}
	return a
}

func levelToString(level slog.Level) string {
	switch {
	case level <= LevelTrace:
		return "TRACE"
	case level <= slog.LevelDebug:
		return "DEBUG"
	case level <= slog.LevelInfo:
		return "INFO"
	case level <= slog.LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}
