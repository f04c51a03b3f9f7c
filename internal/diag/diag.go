// Package diag is the shared diagnostic sink. Failures that were degraded to
// an empty result are reported here so they stay observable.
package diag

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled returns false so callers skip
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

// SetLogger installs l as the diagnostic logger. By default nothing is
// logged; pass nil to restore that.
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

// LogFailure records that op in component failed with err and that the
// caller fell back to a safe default. It never blocks or fails.
func LogFailure(component, op string, err error) {
	if err == nil {
		return
	}
	Logger().Warn("operation degraded",
		slog.String("component", component),
		slog.String("op", op),
		slog.Any("err", err),
	)
}
