package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigAccessors(t *testing.T) {
	cfg := &Config{
		Factories: []Factory{
			{Name: "OBEslintCfg"},
			{Name: "defineConfig", Enabled: boolPtr(false)},
			{Name: "tseslint.config", Enabled: boolPtr(true)},
		},
		UnsupportedKey: []UnsupportedKey{{Tool: "oxfmt", Keys: []string{"plugins"}}},
		LintStaged:     []LintStaged{{Tool: "oxfmt", Command: "oxfmt --write"}},
		CommentMarkers: []CommentMarker{{Token: "注释"}, {Token: "note"}},
	}

	if got := strings.Join(cfg.FactoryNames(), ","); got != "OBEslintCfg,tseslint.config" {
		t.Errorf("FactoryNames() = %s", got)
	}
	if got := cfg.UnsupportedKeys("oxfmt"); len(got) != 1 || got[0] != "plugins" {
		t.Errorf("UnsupportedKeys(oxfmt) = %v", got)
	}
	if got := cfg.UnsupportedKeys("oxlint"); got != nil {
		t.Errorf("UnsupportedKeys(oxlint) = %v", got)
	}
	if l, ok := cfg.LintStagedFor("oxfmt"); !ok || l.Command != "oxfmt --write" {
		t.Errorf("LintStagedFor(oxfmt) = %+v, %v", l, ok)
	}
	if _, ok := cfg.LintStagedFor("eslint"); ok {
		t.Error("LintStagedFor(eslint) should not be found")
	}
	if got := strings.Join(cfg.Markers(), ","); got != "注释,note" {
		t.Errorf("Markers() = %s", got)
	}
}

func TestSettingsDefaults(t *testing.T) {
	cfg := &Config{}
	if cfg.PackageManager() != "" || cfg.AssumeYes() || cfg.LogLevel() != "warn" {
		t.Errorf("unexpected defaults: pm=%q yes=%v level=%q", cfg.PackageManager(), cfg.AssumeYes(), cfg.LogLevel())
	}
	if cfg.OxlintConfigPath() != ".oxlintrc.json" || cfg.OxfmtConfigPath() != ".oxfmtrc.json" {
		t.Errorf("unexpected config paths: %q %q", cfg.OxlintConfigPath(), cfg.OxfmtConfigPath())
	}

	cfg.Settings = &Settings{OxfmtConfig: strPtr(".oxfmtrc.jsonc"), AssumeYes: boolPtr(true)}
	if cfg.OxfmtConfigPath() != ".oxfmtrc.jsonc" || !cfg.AssumeYes() {
		t.Errorf("settings not honoured: %+v", cfg.Settings)
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      *Config
		expected []string
	}{
		{
			name: "built-in defaults",
			cfg:  mustLoadDefaults(t),
		},
		{
			name:     "bad settings",
			cfg:      &Config{Settings: &Settings{PackageManager: strPtr("bun"), LogLevel: strPtr("loud")}},
			expected: []string{`package_manager "bun"`, `log_level "loud"`},
		},
		{
			name: "bad renames",
			cfg: &Config{RuleRenames: []RuleRename{
				{From: "a", To: "a"},
				{From: "b", To: ""},
				{From: "c", To: "d"},
				{From: "d", To: "e"},
			}},
			expected: []string{`"a" renames a rule to itself`, `"b" has an empty target`, `"c" targets "d" which is renamed again`},
		},
		{
			name: "empty labels and commands",
			cfg: &Config{
				Factories:      []Factory{{Name: ""}},
				LintStaged:     []LintStaged{{Tool: "oxlint"}},
				CommentMarkers: []CommentMarker{{Token: ""}},
			},
			expected: []string{"factory block has an empty label", `"oxlint" has an empty pattern`, `"oxlint" has an empty command`, "comment_marker block has an empty label"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.cfg)
			if len(tc.expected) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			for _, want := range tc.expected {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q missing %q", err, want)
				}
			}
			var joined interface{ Unwrap() []error }
			if !errors.As(err, &joined) || len(joined.Unwrap()) != len(tc.expected) {
				t.Errorf("expected %d joined errors, got %v", len(tc.expected), err)
			}
		})
	}
}

func mustLoadDefaults(t *testing.T) *Config {
	t.Helper()
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	return cfg
}
