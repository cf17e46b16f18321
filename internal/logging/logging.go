// Package logging provides a simple leveled logger backed by zap.
package logging

import (
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		// Above any level we emit.
		return zapcore.FatalLevel
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled printf-style logger.
type Logger struct {
	mu     sync.Mutex
	level  zap.AtomicLevel
	fields []interface{}
	sugar  *zap.SugaredLogger
}

// New creates a new logger writing to stderr.
func New(level Level) *Logger {
	l := &Logger{
		level: zap.NewAtomicLevelAt(level.zapLevel()),
	}
	l.sugar = l.build(os.Stderr)
	return l
}

func (l *Logger) build(w io.Writer) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.EncodeCaller = nil
	encCfg.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		l.level,
	)
	return zap.New(core).Sugar().With(l.fields...)
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sugar = l.build(w)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}

// With returns a child logger that adds key/value pairs to every entry.
// The child shares the parent's level.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	fields := append(append([]interface{}{}, l.fields...), keysAndValues...)
	return &Logger{
		level:  l.level,
		fields: fields,
		sugar:  l.sugar.With(keysAndValues...),
	}
}

func (l *Logger) logger() *zap.SugaredLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger().Debugf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger().Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logger().Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger().Errorf(format, args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.logger().Sync()
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{
		level: zap.NewAtomicLevelAt(zapcore.FatalLevel),
		sugar: zap.NewNop().Sugar(),
	}
}
