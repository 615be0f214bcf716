package logging

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
// attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger shared by the internal packages.
// By default nothing is logged. Passing nil restores the silent default.
//
// Levels in use:
//   - [slog.LevelDebug]: per-pass and per-job diagnostics
//   - [slog.LevelInfo]: published assets
//   - [slog.LevelWarn]: skipped assets, non-fatal write failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Init installs a text logger writing to w at info level, or debug level
// when verbose is set. The command-line tools call it once at startup.
func Init(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
