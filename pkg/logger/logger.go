package logger

import (
	"os"
	"sort"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is the structured logging interface passed to services and clients.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger
}

// New builds the process logger writing to stderr. format "json" emits one
// object per line; anything else uses the console encoder. An unknown level
// falls back to info.
func New(level, format string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl)
	// Skip one frame so the caller is the code using Logger, not this package.
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))
}

type fieldLogger struct {
	z *zap.Logger
}

func (l *fieldLogger) Debug(msg string, fields map[string]interface{}) {
	l.z.Debug(msg, zapFields(fields)...)
}

func (l *fieldLogger) Info(msg string, fields map[string]interface{}) {
	l.z.Info(msg, zapFields(fields)...)
}

func (l *fieldLogger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warn(msg, zapFields(fields)...)
}

func (l *fieldLogger) Error(msg string, fields map[string]interface{}) {
	l.z.Error(msg, zapFields(fields)...)
}

func (l *fieldLogger) WithFields(fields map[string]interface{}) Logger {
	return &fieldLogger{z: l.z.With(zapFields(fields)...)}
}

func (l *fieldLogger) WithError(err error) Logger {
	return &fieldLogger{z: l.z.With(zap.Error(err))}
}

// zapFields converts a field map in key order, so repeated log lines list
// their fields identically.
func zapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

// NewStructured returns the process Logger configured by level and format.
func NewStructured(level, format string) Logger {
	return &fieldLogger{z: New(level, format)}
}

// NewTestLogger writes through testing.TB so output is attached to the failing test.
func NewTestLogger(t testing.TB) Logger {
	return &fieldLogger{z: zaptest.NewLogger(t)}
}

// NewObserved records every entry at or above level in memory.
func NewObserved(level zapcore.Level) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &fieldLogger{z: zap.New(core)}, logs
}

func NewNoOpLogger() Logger {
	return &fieldLogger{z: zap.NewNop()}
}
