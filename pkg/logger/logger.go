package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New builds a logger writing to w. The returned Redactor is the logger's handler;
// register resolved values on it to keep them out of the output.
func New(w io.Writer, lvl string, addSource bool, environment string) (*slog.Logger, *Redactor) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(lvl),
		AddSource: addSource,
	}

	var handler slog.Handler
	if strings.ToLower(environment) == "prod" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	redactor := NewRedactor(handler)

	return slog.New(redactor).With(
		slog.String("environment", environment),
	), redactor
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
