// Package logging provides the synthesizer's structured logger, a thin
// interface over zap so components depend on a small surface rather than
// the zap API directly.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// Logger is the structured logging surface every component accepts.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Logger
	Sync() error
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger builds a development-mode zap logger named for the component
// that owns it, e.g. logging.NewLogger("pipeline").
func NewLogger(name string) Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	l, err := cfg.Build()
	if err != nil {
		// Development config construction only fails on invalid encoder
		// settings, which are fixed above; a panic here would indicate a
		// programming error, not a runtime condition to recover from.
		panic(err)
	}
	return &zapLogger{sugar: l.Named(name).Sugar()}
}

// NewTestLogger builds a logger that writes through testing.TB.Log, the way
// the teacher's test suites construct loggers per-test.
func NewTestLogger(t testing.TB) Logger {
	return &zapLogger{sugar: zaptest.NewLogger(t).Sugar()}
}

func (l *zapLogger) Debugw(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }
func (l *zapLogger) Infow(msg string, kv ...interface{})  { l.sugar.Infow(msg, kv...) }
func (l *zapLogger) Warnw(msg string, kv ...interface{})  { l.sugar.Warnw(msg, kv...) }
func (l *zapLogger) Errorw(msg string, kv ...interface{}) { l.sugar.Errorw(msg, kv...) }
func (l *zapLogger) Sync() error                          { return l.sugar.Sync() }

func (l *zapLogger) With(kv ...interface{}) Logger {
	return &zapLogger{sugar: l.sugar.With(kv...)}
}
