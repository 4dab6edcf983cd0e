// Package log provides structured logging carrying run identity
// (challenge, program, run number) through every entry, adapted from
// the teacher's run/attempt/job-scoped logger to the engine's
// challenge/program/run-number scoping.
package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger with bound run-identity fields.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a logger writing JSON-encoded entries to stderr.
func NewLogger() *Logger {
	return newLoggerWithWriter(os.Stderr)
}

// WithOutput returns a new logger writing to a different destination.
// Fields bound on l with With are not carried over to the new logger.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	core := zapcore.NewCore(jsonEncoder(), zapcore.AddSync(w), zapcore.DebugLevel)
	return &Logger{sugar: l.sugar.Desugar().WithOptions(zap.WrapCore(func(zapcore.Core) zapcore.Core { return core })).Sugar()}
}

func jsonEncoder() zapcore.Encoder {
	return zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	})
}

func newLoggerWithWriter(w io.Writer) *Logger {
	core := zapcore.NewCore(jsonEncoder(), zapcore.AddSync(w), zapcore.DebugLevel)
	return &Logger{sugar: zap.New(core).Sugar()}
}

// With returns a Logger with additional bound key/value fields, e.g.
// logger.With("challenge", id, "program", name).
func (l *Logger) With(args ...any) *Logger {
	return &Logger{sugar: l.sugar.With(args...)}
}

func (l *Logger) Debugw(message string, args ...any) { l.sugar.Debugw(message, args...) }
func (l *Logger) Infow(message string, args ...any)  { l.sugar.Infow(message, args...) }
func (l *Logger) Warnw(message string, args ...any)  { l.sugar.Warnw(message, args...) }
func (l *Logger) Errorw(message string, args ...any) { l.sugar.Errorw(message, args...) }
