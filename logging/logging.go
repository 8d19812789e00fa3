// Package logging builds the structured loggers handed to the match and its
// systems. There is no package-level logger; every component that logs takes
// one at construction.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w whose threshold follows level. A nil
// level logs at info.
func New(w io.Writer, level *slog.LevelVar) *slog.Logger {
	if w == nil {
		return Discard()
	}
	opts := &slog.HandlerOptions{}
	if level != nil {
		opts.Level = level
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Level returns a LevelVar at debug when debug is set and info otherwise.
func Level(debug bool) *slog.LevelVar {
	lv := &slog.LevelVar{}
	if debug {
		lv.Set(slog.LevelDebug)
	}
	return lv
}

// Toggle flips lv between debug and info and reports whether debug is now on.
func Toggle(lv *slog.LevelVar) bool {
	if lv == nil {
		return false
	}
	if lv.Level() == slog.LevelDebug {
		lv.Set(slog.LevelInfo)
		return false
	}
	lv.Set(slog.LevelDebug)
	return true
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
