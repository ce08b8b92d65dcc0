package logger

import (
	"io"
	"log/slog"
	"os"
)

// Options controls the global logger.
type Options struct {
	Debug      bool
	JSON       bool
	ShowSource bool
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}

	hopts := &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.ShowSource,
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}
	return slog.New(handler)
}

// SetupGlobal installs a stdout logger as the slog default.
func SetupGlobal(opts Options) {
	slog.SetDefault(New(os.Stdout, opts))
}
