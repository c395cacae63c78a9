package geobind

import (
	"log/slog"
	"sync/atomic"
)

var logger atomic.Pointer[slog.Logger]

// Logger returns the logger used for gdal messages that are not turned into errors
// (warnings by default, and anything emitted outside of a geobind call).
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// SetLogger replaces the package logger. Passing nil reverts to slog.Default().
func SetLogger(l *slog.Logger) {
	if l != nil {
		l = l.With("lib", "gdal")
	}
	logger.Store(l)
}
