// logger.go
// User-facing logging for programs that embed lintmigrate.
//
// This file defines the Logger interface and adapters for routing lintmigrate's
// log output into the host program's logging. The command's own diagnostic
// logging is configured in internal/debug.go.

package lintmigrate

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/YakDriver/lintmigrate/internal"
	"github.com/hashicorp/go-hclog"
)

// Logger is the interface for logs lintmigrate emits to its host program.
type Logger interface {
	Debug(ctx context.Context, msg string, keyvals map[string]any)
	Info(ctx context.Context, msg string, keyvals map[string]any)
	Warn(ctx context.Context, msg string, keyvals map[string]any)
	Error(ctx context.Context, msg string, keyvals map[string]any)
}

// SetLogger routes lintmigrate's logs to logger. A nil logger silences them.
func SetLogger(logger Logger) {
	if logger == nil {
		internal.SetGlobalLogger(&internal.NoopLogger{})
		return
	}
	internal.SetGlobalLogger(bridge{logger})
}

// bridge adapts a Logger to the printf-style internal logger.
type bridge struct {
	l Logger
}

func (b bridge) Debug(format string, args ...any) {
	b.l.Debug(context.Background(), fmt.Sprintf(format, args...), nil)
}
func (b bridge) Info(format string, args ...any) {
	b.l.Info(context.Background(), fmt.Sprintf(format, args...), nil)
}
func (b bridge) Warn(format string, args ...any) {
	b.l.Warn(context.Background(), fmt.Sprintf(format, args...), nil)
}
func (b bridge) Error(format string, args ...any) {
	b.l.Error(context.Background(), fmt.Sprintf(format, args...), nil)
}
func (b bridge) SetLevel(string) {}

// StdLogger is an adapter that emits logs using the standard Go log package.
type StdLogger struct{}

func (l StdLogger) Debug(ctx context.Context, msg string, keyvals map[string]any) {
	logPrint("DEBUG", msg, keyvals)
}
func (l StdLogger) Info(ctx context.Context, msg string, keyvals map[string]any) {
	logPrint("INFO", msg, keyvals)
}
func (l StdLogger) Warn(ctx context.Context, msg string, keyvals map[string]any) {
	logPrint("WARN", msg, keyvals)
}
func (l StdLogger) Error(ctx context.Context, msg string, keyvals map[string]any) {
	logPrint("ERROR", msg, keyvals)
}

// logPrint formats and prints a log message using the standard log package.
func logPrint(level, msg string, keyvals map[string]any) {
	logMsg := level + ": " + msg
	if len(keyvals) > 0 {
		var parts []string
		for _, k := range sortedKeys(keyvals) {
			parts = append(parts, k+"="+fmt.Sprint(keyvals[k]))
		}
		logMsg += " | " + strings.Join(parts, " ")
	}
	log.Println(logMsg)
}

// HCLogLogger is an adapter that emits logs through a go-hclog logger.
type HCLogLogger struct {
	Logger hclog.Logger
}

func (l HCLogLogger) Debug(ctx context.Context, msg string, keyvals map[string]any) {
	l.Logger.Debug(msg, hclogArgs(keyvals)...)
}
func (l HCLogLogger) Info(ctx context.Context, msg string, keyvals map[string]any) {
	l.Logger.Info(msg, hclogArgs(keyvals)...)
}
func (l HCLogLogger) Warn(ctx context.Context, msg string, keyvals map[string]any) {
	l.Logger.Warn(msg, hclogArgs(keyvals)...)
}
func (l HCLogLogger) Error(ctx context.Context, msg string, keyvals map[string]any) {
	l.Logger.Error(msg, hclogArgs(keyvals)...)
}

func hclogArgs(keyvals map[string]any) []any {
	args := make([]any, 0, 2*len(keyvals))
	for _, k := range sortedKeys(keyvals) {
		args = append(args, k, keyvals[k])
	}
	return args
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
