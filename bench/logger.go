package bench

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the diagnostic logger. By default nothing is
// logged; benchmark output proper always goes to the Runner's writer.
// Pass nil to restore the silent default.
//
// Levels used:
//   - [slog.LevelDebug]: kernel and tag selection, verification details
//   - [slog.LevelInfo]: run start/finish, report files written
//   - [slog.LevelWarn]: verification mismatches, interrupted runs
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current diagnostic logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
