package detect

import (
	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
)

// StylelintConfigFiles in lookup order.
var StylelintConfigFiles = []string{
	".stylelintrc",
	".stylelintrc.json",
	".stylelintrc.js",
	".stylelintrc.cjs",
	".stylelintrc.mjs",
	".stylelintrc.yaml",
	".stylelintrc.yml",
	"stylelint.config.js",
	"stylelint.config.cjs",
	"stylelint.config.mjs",
	"stylelint.config.json",
}

// FindStylelintConfig returns the first Stylelint config file, package.json
// when the manifest carries a "stylelint" field, or "" when there is none.
func FindStylelintConfig(fsys filesystem.FileSystem, m *pkgjson.Manifest) string {
	for _, f := range StylelintConfigFiles {
		if fsys.Exists(f) {
			return f
		}
	}
	if m != nil && m.Has("stylelint") {
		return pkgjson.FileName
	}
	return ""
}

// StylelintRules is what can be carried over from an existing Stylelint config.
type StylelintRules struct {
	Rules   *confmerge.Object
	Extends []string
}

// ReadStylelintRules extracts the rules and extends list of a declarative
// Stylelint config.
func ReadStylelintRules(fsys filesystem.FileSystem, file string) (*StylelintRules, error) {
	cfg, err := ReadObject(fsys, file, "stylelint")
	if err != nil {
		return nil, err
	}
	out := &StylelintRules{Rules: confmerge.New()}
	if rules, ok := confmerge.GetObject(cfg, "rules"); ok {
		out.Rules = rules
	}
	if v, ok := cfg.Get("extends"); ok {
		switch e := v.(type) {
		case string:
			out.Extends = []string{e}
		case []any:
			for _, item := range e {
				if s, ok := item.(string); ok {
					out.Extends = append(out.Extends, s)
				}
			}
		}
	}
	return out, nil
}
