// Package logging builds the debug logger shared by the session store and
// the task API clients.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w at debug level when debug is set,
// and a logger that discards everything otherwise.
func New(w io.Writer, debug bool) *slog.Logger {
	if !debug || w == nil {
		return Discard()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Discard returns a logger that drops all records.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
