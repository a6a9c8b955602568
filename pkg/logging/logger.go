// Package logging provides the leveled, structured logger used across
// moralreport. It is a thin layer over logrus with printf-style methods.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
	LogOff
)

func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	case LogOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) logrus() logrus.Level {
	switch l {
	case LogDebug:
		return logrus.DebugLevel
	case LogInfo:
		return logrus.InfoLevel
	case LogWarn:
		return logrus.WarnLevel
	case LogError:
		return logrus.ErrorLevel
	default:
		// nothing is ever logged at panic level
		return logrus.PanicLevel
	}
}

// ParseLevel parses debug, info, warn, error or off
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogDebug, nil
	case "info", "":
		return LogInfo, nil
	case "warn", "warning":
		return LogWarn, nil
	case "error":
		return LogError, nil
	case "off":
		return LogOff, nil
	}
	return LogInfo, fmt.Errorf("unknown log level %q", s)
}

// Format selects the line format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

const timestampFormat = "2006-01-02 15:04:05"

type Fields map[string]interface{}

type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
	level *levelState
}

type levelState struct {
	mu    sync.Mutex
	level LogLevel
}

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
)

func init() {
	globalLogger = NewLogger(os.Stderr, LogInfo)
}

// NewLogger returns a text logger writing to w
func NewLogger(w io.Writer, level LogLevel) *Logger {
	return New(w, level, FormatText)
}

// New returns a logger writing lines of the given format to w
func New(w io.Writer, level LogLevel, format Format) *Logger {
	if w == nil {
		w = io.Discard
	}
	base := logrus.New()
	base.SetOutput(w)
	if format == FormatJSON {
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timestampFormat})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
			DisableColors:   true,
		})
	}
	base.SetLevel(level.logrus())
	return &Logger{
		base:  base,
		entry: logrus.NewEntry(base),
		level: &levelState{level: level},
	}
}

// SetLevel changes the level of l and of every logger derived from it
func (l *Logger) SetLevel(level LogLevel) {
	l.level.mu.Lock()
	defer l.level.mu.Unlock()
	l.level.level = level
	l.base.SetLevel(level.logrus())
}

func (l *Logger) Level() LogLevel {
	l.level.mu.Lock()
	defer l.level.mu.Unlock()
	return l.level.level
}

func (l *Logger) IsDebugMode() bool {
	return l.Level() == LogDebug
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithField(key, value), level: l.level}
}

func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithFields(logrus.Fields(fields)), level: l.level}
}

// WithError attaches err under the "error" field
func (l *Logger) WithError(err error) *Logger {
	return &Logger{base: l.base, entry: l.entry.WithError(err), level: l.level}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Writer returns a writer whose lines are logged at error level. The caller
// closes it when done.
func (l *Logger) Writer() *io.PipeWriter {
	return l.entry.WriterLevel(logrus.ErrorLevel)
}

// Global logging functions
func SetLogger(logger *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

func GetLogger() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

func Debug(format string, args ...interface{}) {
	GetLogger().Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	GetLogger().Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	GetLogger().Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	GetLogger().Error(format, args...)
}

func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

func WithFields(fields Fields) *Logger {
	return GetLogger().WithFields(fields)
}
