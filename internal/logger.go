package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	globalLogger *Logger
	once         sync.Once
)

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

type Component string
type LogLevel int

const (
	ComponentSession     Component = "Session"
	ComponentTransaction Component = "Trans"
	ComponentHTTP        Component = "HTTP"
	ComponentTerminal    Component = "Terminal"
	ComponentNATS        Component = "NATS"
	ComponentConfig      Component = "Config"
	ComponentService     Component = "Service"
	ComponentCLI         Component = "CLI"
	ComponentGeneral     Component = "General"
)

// AllComponents lists every component the default logger enables
var AllComponents = []Component{
	ComponentSession,
	ComponentTransaction,
	ComponentHTTP,
	ComponentTerminal,
	ComponentNATS,
	ComponentConfig,
	ComponentService,
	ComponentCLI,
	ComponentGeneral,
}

// Logger is a zerolog logger that tags every line with a component and can
// silence components individually.
type Logger struct {
	mu                sync.RWMutex
	zl                zerolog.Logger
	enabledComponents map[Component]bool
}

// ParseLogLevel maps a config string such as "debug" or "warn" to a LogLevel
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LogLevelDebug, nil
	case "", "info":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "fatal":
		return LogLevelFatal, nil
	default:
		return LogLevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

func (l LogLevel) zerologLevel() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelInfo:
		return zerolog.InfoLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	case LogLevelFatal:
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// InitGlobalLogger installs the process-wide logger once
func InitGlobalLogger(w io.Writer, level LogLevel, components []Component) {
	once.Do(func() {
		globalLogger = NewLogger(w, level, components)
	})
}

// GetLogger returns the global logger, falling back to a console logger on stderr
func GetLogger() *Logger {
	once.Do(func() {
		globalLogger = NewLogger(ConsoleWriter(os.Stderr), LogLevelInfo, AllComponents)
	})
	return globalLogger
}

// ConsoleWriter renders log lines for a human reading a terminal
func ConsoleWriter(w io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
}

// NewLogger creates a logger writing to w
func NewLogger(w io.Writer, level LogLevel, components []Component) *Logger {
	enabledComponents := make(map[Component]bool)
	for _, component := range components {
		enabledComponents[component] = true
	}

	return &Logger{
		zl:                zerolog.New(w).Level(level.zerologLevel()).With().Timestamp().Logger(),
		enabledComponents: enabledComponents,
	}
}

// NopLogger discards everything; used by tests
func NopLogger() *Logger {
	return &Logger{zl: zerolog.Nop(), enabledComponents: map[Component]bool{}}
}

func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.zl = l.zl.Level(level.zerologLevel())
}

func (l *Logger) EnableComponent(component Component) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabledComponents[component] = true
}

func (l *Logger) DisableComponent(component Component) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabledComponents[component] = false
}

func (l *Logger) IsComponentEnabled(component Component) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabledComponents[component]
}

// EnableOnly logs components and silences every other known component
func (l *Logger) EnableOnly(components []Component) {
	keep := make(map[Component]bool, len(components))
	for _, component := range components {
		keep[component] = true
	}
	for _, component := range AllComponents {
		if keep[component] {
			l.EnableComponent(component)
		} else {
			l.DisableComponent(component)
		}
	}
}

// ParseComponent resolves a component name such as "http" or "Trans"
func ParseComponent(name string) (Component, error) {
	for _, component := range AllComponents {
		if strings.EqualFold(strings.TrimSpace(name), string(component)) {
			return component, nil
		}
	}
	return "", fmt.Errorf("unknown log component %q", name)
}

// For returns a structured zerolog logger for component. Disabled components
// get a no-op logger.
func (l *Logger) For(component Component) zerolog.Logger {
	if !l.IsComponentEnabled(component) {
		return zerolog.Nop()
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.zl.With().Str("component", string(component)).Logger()
}

func (l *Logger) log(level LogLevel, component Component, format string, args ...interface{}) {
	zl := l.For(component)
	var ev *zerolog.Event
	switch level {
	case LogLevelDebug:
		ev = zl.Debug()
	case LogLevelInfo:
		ev = zl.Info()
	case LogLevelWarn:
		ev = zl.Warn()
	case LogLevelError:
		ev = zl.Error()
	case LogLevelFatal:
		// zerolog exits the process after writing
		ev = zl.Fatal()
	default:
		ev = zl.Info()
	}
	ev.Msgf(format, args...)
}

func (l *Logger) Debug(component Component, format string, args ...interface{}) {
	l.log(LogLevelDebug, component, format, args...)
}

func (l *Logger) Info(component Component, format string, args ...interface{}) {
	l.log(LogLevelInfo, component, format, args...)
}

func (l *Logger) Warn(component Component, format string, args ...interface{}) {
	l.log(LogLevelWarn, component, format, args...)
}

func (l *Logger) Error(component Component, format string, args ...interface{}) {
	l.log(LogLevelError, component, format, args...)
}

func (l *Logger) Fatal(component Component, format string, args ...interface{}) {
	l.log(LogLevelFatal, component, format, args...)
}
