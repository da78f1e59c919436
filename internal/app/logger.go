package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger is the logging surface handed to the use case, stores and HTTP
// host. The CLI installs a zap-backed implementation at startup.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

var levelNames = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// lineLogger writes "LEVEL: message" lines at or above min. It is what
// runs before the CLI has read its settings.
type lineLogger struct {
	mu  sync.Mutex
	w   io.Writer
	min int
}

// NewLineLogger returns a plain Logger writing to w. minLevel is one of
// debug, info, warn or error; anything else means warn.
func NewLineLogger(w io.Writer, minLevel string) Logger {
	min := 2
	for i, name := range levelNames {
		if strings.EqualFold(name, minLevel) {
			min = i
		}
	}
	return &lineLogger{w: w, min: min}
}

func (l *lineLogger) log(level int, format string, args []interface{}) {
	if level < l.min {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s: %s\n", levelNames[level], fmt.Sprintf(format, args...))
}

func (l *lineLogger) Debug(format string, args ...interface{}) { l.log(0, format, args) }
func (l *lineLogger) Info(format string, args ...interface{})  { l.log(1, format, args) }
func (l *lineLogger) Warn(format string, args ...interface{})  { l.log(2, format, args) }
func (l *lineLogger) Error(format string, args ...interface{}) { l.log(3, format, args) }

var (
	globalMu     sync.RWMutex
	globalLogger = NewLineLogger(os.Stderr, "warn")
)

// SetLogger replaces the process-wide logger; nil is ignored
func SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	globalMu.Lock()
	globalLogger = logger
	globalMu.Unlock()
}

// GetLogger returns the process-wide logger
func GetLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}
