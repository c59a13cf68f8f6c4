package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YakDriver/lintmigrate/internal"
	"github.com/YakDriver/lintmigrate/internal/migrate"
)

// execute runs the root command with args against a fresh flag state and
// returns everything written to stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { internal.SetGlobalLogger(nil) })

	dirFlag, yesFlag, dryRunFlag, verboseFlag, debugFlag, logLevelFlag = ".", false, false, false, false, ""
	patchOxlintConfig, patchFactories = "", nil

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// project writes files into a temporary project directory.
func project(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLogLevel(t *testing.T) {
	defer func() { debugFlag, verboseFlag, logLevelFlag = false, false, "" }()

	configured := "error"
	cfg := &internal.Config{Settings: &internal.Settings{LogLevel: &configured}}

	tests := []struct {
		name     string
		debug    bool
		verbose  bool
		level    string
		expected string
	}{
		{name: "config", expected: "error"},
		{name: "verbose", verbose: true, expected: "info"},
		{name: "flag beats verbose", verbose: true, level: "warn", expected: "warn"},
		{name: "debug beats everything", debug: true, verbose: true, level: "silent", expected: "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debugFlag, verboseFlag, logLevelFlag = tt.debug, tt.verbose, tt.level
			if got := logLevel(cfg); got != tt.expected {
				t.Errorf("logLevel() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "config")
	if err == nil || !strings.Contains(err.Error(), "loud") {
		t.Fatalf("expected an invalid log level error, got %v", err)
	}
}

func TestEveryWorkflowHasACommand(t *testing.T) {
	for _, w := range migrate.Workflows() {
		cmd, _, err := rootCmd.Find([]string{w.Name})
		if err != nil || cmd.Name() != w.Name {
			t.Errorf("no subcommand for workflow %q", w.Name)
			continue
		}
		if cmd.Short != w.Description {
			t.Errorf("%s: Short = %q, want the workflow description", w.Name, cmd.Short)
		}
	}
}

func TestWorkflowDryRun(t *testing.T) {
	dir := project(t, map[string]string{
		"package.json": `{"name":"app","devDependencies":{"prettier":"^3.0.0"}}`,
		".prettierrc":  `{"semi": false}`,
	})

	out, err := execute(t, "--dir", dir, "--yes", "--dry-run", "oxfmt")
	if err != nil {
		t.Fatalf("oxfmt --dry-run: %v\n%s", err, out)
	}

	for _, want := range []string{"Dry run", "write .oxfmtrc.json", "run npm install --save-dev oxfmt"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, ".oxfmtrc.json")); !os.IsNotExist(err) {
		t.Error("a dry run must not write .oxfmtrc.json")
	}
	if _, err := os.Stat(filepath.Join(dir, ".prettierrc")); err != nil {
		t.Error("a dry run must not remove .prettierrc")
	}
}

func TestWorkflowHalts(t *testing.T) {
	dir := project(t, map[string]string{"package.json": `{"name":"app"}`})

	out, err := execute(t, "--dir", dir, "--yes", "oxfmt")
	if err != nil {
		t.Fatalf("oxfmt: %v", err)
	}
	if !strings.Contains(out, "No Prettier found") {
		t.Errorf("expected the halt reason, got:\n%s", out)
	}
}

func TestInvalidProjectConfig(t *testing.T) {
	dir := project(t, map[string]string{
		"package.json":         `{"name":"app"}`,
		internal.ConfigFileName: "settings {\n  package_manager = \"bun\"\n}\n",
	})

	_, err := execute(t, "--dir", dir, "--yes", "oxlint")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Fatalf("expected an invalid configuration error, got %v", err)
	}
}
