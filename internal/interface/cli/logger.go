package cli

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/YoshitsuguKoike/potionlab/internal/app"
)

// LogLevel is the minimum severity a Logger writes
type LogLevel = zapcore.Level

const (
	LogLevelDebug = zapcore.DebugLevel
	LogLevelInfo  = zapcore.InfoLevel
	LogLevelWarn  = zapcore.WarnLevel
	LogLevelError = zapcore.ErrorLevel
	// LogLevelOff silences every message
	LogLevelOff = zapcore.FatalLevel + 1
)

// Logger provides centralized logging with level control on top of zap
type Logger struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
}

// NewLogger creates a console logger writing to output
func NewLogger(minLevel LogLevel, output io.Writer) *Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zap.NewAtomicLevelAt(minLevel)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(output), level)
	return &Logger{level: level, sugar: zap.New(core).Sugar()}
}

// SetLevel changes the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.level.SetLevel(level)
}

// GetLevel returns the current minimum log level
func (l *Logger) GetLevel() LogLevel {
	return l.level.Level()
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// LogLevelFromString converts a string to LogLevel, defaulting to WARN
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	case "off", "none":
		return LogLevelOff
	default:
		return LogLevelWarn
	}
}

// Global logger instance
var globalLogger *Logger

// InitGlobalLogger initializes the global logger; a nil w means stderr
func InitGlobalLogger(level string, w io.Writer) *Logger {
	if level == "" {
		level = "warn"
	}
	if w == nil {
		w = os.Stderr
	}
	globalLogger = NewLogger(LogLevelFromString(level), w)
	return globalLogger
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	if globalLogger == nil {
		InitGlobalLogger("warn", nil)
	}
	return globalLogger
}

var _ app.Logger = (*Logger)(nil)

// InitializeLoggers installs logger for the layers below the CLI and
// returns it as an app.Logger
func InitializeLoggers(logger *Logger) app.Logger {
	app.SetLogger(logger)
	return logger
}
