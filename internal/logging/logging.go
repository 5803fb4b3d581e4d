// Package logging configures the process-wide slog setup for the CLI.
//
// Four severities are used across the tool: Debug, Detail, Info and Warning.
// Detail sits between Debug and Info and carries output that is useful on a
// normal verbose run without drowning the user in debug traces.
package logging

import (
	"io"
	"log/slog"
)

// LevelDetail is the custom severity between Debug and Info.
const LevelDetail = slog.Level(-2)

// Options selects the log threshold. Debug wins over Verbose, Verbose over
// Quiet, so "-d -q" still produces full diagnostics.
type Options struct {
	Verbose bool
	Debug   bool
	Quiet   bool
}

// Level resolves the slog threshold for the given flag combination.
func (o Options) Level() slog.Level {
	switch {
	case o.Debug:
		return slog.LevelDebug
	case o.Verbose:
		return LevelDetail
	case o.Quiet:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds the text handler all commands log through. The custom
// Detail level would otherwise render as "DEBUG+2".
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: renameDetail,
	})
}

// Setup installs the default logger. Called once from CLI bootstrap.
func Setup(w io.Writer, opts Options) *slog.Logger {
	logger := slog.New(NewHandler(w, opts.Level()))
	slog.SetDefault(logger)
	return logger
}

func renameDetail(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if level, ok := a.Value.Any().(slog.Level); ok && level == LevelDetail {
			a.Value = slog.StringValue("DETAIL")
		}
	}
	return a
}
