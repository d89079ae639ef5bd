package core

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// formatting entirely.
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

// SetLogger configures the logger shared by all dsp packages. By default
// nothing is logged. Pass nil to restore the silent default.
//
// Only configuration paths log (rejected targets and parameters, at
// [slog.LevelDebug]). Per-sample processing never logs.
//
//	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}

	loggerPtr.Store(l)
}

// Logger returns the current logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LogRejected records a rejected configuration change and returns err
// unchanged, so call sites can write `return core.LogRejected(...)`.
func LogRejected(component, op string, err error) error {
	l := Logger()
	if l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("rejected configuration", "component", component, "op", op, "err", err)
	}

	return err
}
