// types.go
// Core HCL struct definitions for lintmigrate
package internal

const (
	// ConfigFileName is the name of the project or user configuration file.
	ConfigFileName = "lintmigrate.hcl"
)

// Config represents the top-level configuration for lintmigrate.
type Config struct {
	Settings       *Settings        `hcl:"settings,block"`
	Factories      []Factory        `hcl:"factory,block"`
	RuleRenames    []RuleRename     `hcl:"rule_rename,block"`
	UnsupportedKey []UnsupportedKey `hcl:"unsupported_key,block"`
	LintStaged     []LintStaged     `hcl:"lint_staged,block"`
	CommentMarkers []CommentMarker  `hcl:"comment_marker,block"`
}

// Settings holds run-wide switches. Unset attributes leave lower layers in place.
type Settings struct {
	PackageManager *string `hcl:"package_manager,optional"` // "npm", "yarn", "pnpm"
	AssumeYes      *bool   `hcl:"assume_yes,optional"`
	LogLevel       *string `hcl:"log_level,optional"` // "silent", "error", "warn", "info", "debug"
	OxlintConfig   *string `hcl:"oxlint_config,optional"`
	OxfmtConfig    *string `hcl:"oxfmt_config,optional"`
}

// Factory names a configuration-factory identifier whose call the patch
// engine may append arguments to, e.g. OBEslintCfg.
type Factory struct {
	Name    string `hcl:"name,label"`
	Enabled *bool  `hcl:"enabled,optional"`
}

// RuleRename maps a rule identifier onto the one the target tool uses.
type RuleRename struct {
	From string `hcl:"from,label"`
	To   string `hcl:"to"`
}

// UnsupportedKey lists config keys a target tool rejects.
type UnsupportedKey struct {
	Tool string   `hcl:"tool,label"`
	Keys []string `hcl:"keys"`
}

// LintStaged describes how a tool's command is merged into lint-staged.
type LintStaged struct {
	Tool            string   `hcl:"tool,label"`
	Pattern         string   `hcl:"pattern"`
	Command         string   `hcl:"command"`
	Replaces        string   `hcl:"replaces"`
	PartialPatterns []string `hcl:"partial_patterns,optional"`
}

// CommentMarker is a token whose presence in a rule's string value marks
// the entry as a pseudo-comment.
type CommentMarker struct {
	Token string `hcl:"token,label"`
}

// FactoryNames returns the enabled factory identifiers in declaration order.
func (c *Config) FactoryNames() []string {
	var names []string
	for _, f := range c.Factories {
		if f.Enabled != nil && !*f.Enabled {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

// UnsupportedKeys returns the keys rejected by tool.
func (c *Config) UnsupportedKeys(tool string) []string {
	for _, u := range c.UnsupportedKey {
		if u.Tool == tool {
			return u.Keys
		}
	}
	return nil
}

// LintStagedFor returns the lint-staged rule for tool, if configured.
func (c *Config) LintStagedFor(tool string) (LintStaged, bool) {
	for _, l := range c.LintStaged {
		if l.Tool == tool {
			return l, true
		}
	}
	return LintStaged{}, false
}

// Markers returns the configured comment marker tokens.
func (c *Config) Markers() []string {
	out := make([]string, 0, len(c.CommentMarkers))
	for _, m := range c.CommentMarkers {
		out = append(out, m.Token)
	}
	return out
}

// PackageManager returns the configured package manager override, or "".
func (c *Config) PackageManager() string {
	if c.Settings == nil || c.Settings.PackageManager == nil {
		return ""
	}
	return *c.Settings.PackageManager
}

// AssumeYes reports whether prompts should be auto-confirmed.
func (c *Config) AssumeYes() bool {
	return c.Settings != nil && c.Settings.AssumeYes != nil && *c.Settings.AssumeYes
}

// LogLevel returns the configured log level, defaulting to "warn".
func (c *Config) LogLevel() string {
	if c.Settings == nil || c.Settings.LogLevel == nil {
		return "warn"
	}
	return *c.Settings.LogLevel
}

// OxlintConfigPath returns the Oxlint config file name.
func (c *Config) OxlintConfigPath() string {
	if c.Settings == nil || c.Settings.OxlintConfig == nil {
		return ".oxlintrc.json"
	}
	return *c.Settings.OxlintConfig
}

// OxfmtConfigPath returns the Oxfmt config file name.
func (c *Config) OxfmtConfigPath() string {
	if c.Settings == nil || c.Settings.OxfmtConfig == nil {
		return ".oxfmtrc.json"
	}
	return *c.Settings.OxfmtConfig
}
