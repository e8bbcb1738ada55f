package scene

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false so callers skip
// formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by sessions. By default nothing is logged.
// Pass nil to go back to silence.
//
// Levels:
//   - [slog.LevelDebug]: commands (reroll, reset, freeze, theme)
//   - [slog.LevelInfo]: session start and resizes
//   - [slog.LevelWarn]: recovered problems (DPR fallback, rasterizer and
//     preference errors)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// NewTextLogger returns a text logger writing to w at Info, or Debug when
// verbose is set.
func NewTextLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
