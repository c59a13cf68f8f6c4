// debug.go
// Diagnostic logging for lintmigrate internals
package internal

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	globalLogger Logger
	loggerMutex  sync.Mutex
)

// SetGlobalLogger sets the global logger for lintmigrate.
func SetGlobalLogger(logger Logger) {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	globalLogger = logger
}

// GetGlobalLogger retrieves the global logger.
// The default logger is a StreamLogger that writes errors to os.Stderr.
func GetGlobalLogger() Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	if globalLogger == nil {
		globalLogger = &StreamLogger{out: os.Stderr, level: "error"}
	}
	return globalLogger
}

// LoggingConfig encapsulates logging-related options.
type LoggingConfig struct {
	LogLevel  string    // "silent", "error", "warn", "info", "debug"
	Output    io.Writer // os.Stderr, os.Stdout, or custom
	UseHCLog  bool      // If true, emit through go-hclog
	JSONLines bool      // hclog JSON output
}

// Logger interface defines logging methods.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	SetLevel(level string)
}

// NoopLogger is a no-op logger for "silent" log level.
type NoopLogger struct{}

func (n *NoopLogger) Debug(format string, args ...any) {}
func (n *NoopLogger) Info(format string, args ...any)  {}
func (n *NoopLogger) Warn(format string, args ...any)  {}
func (n *NoopLogger) Error(format string, args ...any) {}
func (n *NoopLogger) SetLevel(level string)            {}

// HCLogger adapts a go-hclog Logger to the printf-style Logger interface.
type HCLogger struct {
	log hclog.Logger
}

// NewHCLogger wraps an existing hclog.Logger.
func NewHCLogger(l hclog.Logger) *HCLogger {
	return &HCLogger{log: l}
}

func (h *HCLogger) Debug(format string, args ...any) { h.log.Debug(fmt.Sprintf(format, args...)) }
func (h *HCLogger) Info(format string, args ...any)  { h.log.Info(fmt.Sprintf(format, args...)) }
func (h *HCLogger) Warn(format string, args ...any)  { h.log.Warn(fmt.Sprintf(format, args...)) }
func (h *HCLogger) Error(format string, args ...any) { h.log.Error(fmt.Sprintf(format, args...)) }

func (h *HCLogger) SetLevel(level string) {
	h.log.SetLevel(hclogLevel(level))
}

// StreamLogger writes logs directly to an io.Writer.
type StreamLogger struct {
	out   io.Writer
	level string
}

// NewStreamLogger returns a StreamLogger at the given level.
func NewStreamLogger(out io.Writer, level string) *StreamLogger {
	return &StreamLogger{out: out, level: level}
}

func (s *StreamLogger) Debug(format string, args ...any) {
	if s.level == "debug" {
		fmt.Fprintf(s.out, "[DEBUG] "+format+"\n", args...)
	}
}

func (s *StreamLogger) Info(format string, args ...any) {
	if s.level == "info" || s.level == "debug" {
		fmt.Fprintf(s.out, "[INFO] "+format+"\n", args...)
	}
}

func (s *StreamLogger) Warn(format string, args ...any) {
	if s.level == "warn" || s.level == "info" || s.level == "debug" {
		fmt.Fprintf(s.out, "[WARN] "+format+"\n", args...)
	}
}

func (s *StreamLogger) Error(format string, args ...any) {
	if s.level != "silent" {
		fmt.Fprintf(s.out, "[ERROR] "+format+"\n", args...)
	}
}

func (s *StreamLogger) SetLevel(level string) {
	s.level = level
}

var validLevels = map[string]bool{"silent": true, "error": true, "warn": true, "info": true, "debug": true}

// ValidLogLevel reports whether level is one of the accepted log levels.
func ValidLogLevel(level string) bool {
	return validLevels[level]
}

// SetupLogger initializes a Logger based on LoggingConfig.
func SetupLogger(cfg *LoggingConfig) Logger {
	if cfg == nil || cfg.LogLevel == "silent" {
		return &NoopLogger{}
	}

	if !validLevels[cfg.LogLevel] {
		cfg.LogLevel = "info"
	}
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	if cfg.UseHCLog {
		return &HCLogger{log: hclog.New(&hclog.LoggerOptions{
			Name:       "lintmigrate",
			Level:      hclogLevel(cfg.LogLevel),
			Output:     cfg.Output,
			JSONFormat: cfg.JSONLines,
		})}
	}
	return &StreamLogger{out: cfg.Output, level: cfg.LogLevel}
}

func hclogLevel(level string) hclog.Level {
	switch strings.ToLower(level) {
	case "silent":
		return hclog.Off
	case "error":
		return hclog.Error
	case "warn":
		return hclog.Warn
	case "debug":
		return hclog.Debug
	default:
		return hclog.Info
	}
}
