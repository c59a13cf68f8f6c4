package internal

import (
	"bytes"
	"strings"
	"testing"
)

func TestStreamLoggerLevels(t *testing.T) {
	testCases := []struct {
		level    string
		expected string
	}{
		{level: "silent", expected: ""},
		{level: "error", expected: "[ERROR] e\n"},
		{level: "warn", expected: "[WARN] w\n[ERROR] e\n"},
		{level: "info", expected: "[INFO] i\n[WARN] w\n[ERROR] e\n"},
		{level: "debug", expected: "[DEBUG] d\n[INFO] i\n[WARN] w\n[ERROR] e\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			l := NewStreamLogger(buf, tc.level)
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")
			if got := buf.String(); got != tc.expected {
				t.Errorf("level %s: expected %q, got %q", tc.level, tc.expected, got)
			}
		})
	}
}

func TestSetupLogger(t *testing.T) {
	if _, ok := SetupLogger(nil).(*NoopLogger); !ok {
		t.Error("a nil config should give a NoopLogger")
	}
	if _, ok := SetupLogger(&LoggingConfig{LogLevel: "silent"}).(*NoopLogger); !ok {
		t.Error("silent should give a NoopLogger")
	}

	buf := &bytes.Buffer{}
	l := SetupLogger(&LoggingConfig{LogLevel: "loud", Output: buf})
	l.Info("wrote %s", ".oxlintrc.json")
	if got := buf.String(); got != "[INFO] wrote .oxlintrc.json\n" {
		t.Errorf("an unknown level should fall back to info, got %q", got)
	}

	buf.Reset()
	l = SetupLogger(&LoggingConfig{LogLevel: "debug", Output: buf, UseHCLog: true, JSONLines: true})
	l.Debug("renamed %s", "react-hooks/exhaustive-deps")
	if got := buf.String(); !strings.Contains(got, `"@message":"renamed react-hooks/exhaustive-deps"`) {
		t.Errorf("expected hclog JSON output, got %q", got)
	}
}

func TestGlobalLogger(t *testing.T) {
	defer SetGlobalLogger(nil)

	buf := &bytes.Buffer{}
	SetGlobalLogger(NewStreamLogger(buf, "warn"))
	GetGlobalLogger().Warn("no %s found", "Prettier")
	if got := buf.String(); got != "[WARN] no Prettier found\n" {
		t.Errorf("expected the installed logger to be used, got %q", got)
	}

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*StreamLogger); !ok {
		t.Error("expected the default StreamLogger after reset")
	}
}
