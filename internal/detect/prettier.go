package detect

import (
	"strings"

	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
)

// PrettierPackages are the packages that make up a Prettier setup.
var PrettierPackages = []string{"prettier", "eslint-config-prettier", "eslint-plugin-prettier"}

// PrettierConfigFiles in lookup order.
var PrettierConfigFiles = []string{
	".prettierrc",
	".prettierrc.json",
	".prettierrc.js",
	".prettierrc.cjs",
	".prettierrc.mjs",
	".prettierrc.yaml",
	".prettierrc.yml",
	".prettierrc.toml",
	"prettier.config.js",
	"prettier.config.cjs",
	"prettier.config.mjs",
	"prettier.config.json",
}

const (
	PrettierIgnoreFile = ".prettierignore"
	EditorConfigFile   = ".editorconfig"
)

// Prettier describes an existing Prettier setup.
type Prettier struct {
	Packages     []string
	ConfigFile   string
	PackageField bool
	EditorConfig bool
	IgnoreFile   bool
}

// Found reports whether there is anything to migrate.
func (p *Prettier) Found() bool {
	return len(p.Packages) > 0 || p.ConfigFile != ""
}

// ConfigFormat returns the format of ConfigFile.
func (p *Prettier) ConfigFormat() Format {
	return formatOf(p.ConfigFile)
}

// DetectPrettier looks for Prettier packages and config files. m may be nil.
func DetectPrettier(fsys filesystem.FileSystem, m *pkgjson.Manifest) *Prettier {
	p := &Prettier{
		EditorConfig: fsys.Exists(EditorConfigFile),
		IgnoreFile:   fsys.Exists(PrettierIgnoreFile),
	}
	if m != nil {
		p.Packages = m.Dependencies(PrettierPackages...)
		p.PackageField = m.Has("prettier")
	}
	for _, f := range PrettierConfigFiles {
		if fsys.Exists(f) {
			p.ConfigFile = f
			break
		}
	}
	return p
}

// PrettierIgnorePatterns returns the non-empty, non-comment lines of
// .prettierignore.
func PrettierIgnorePatterns(fsys filesystem.FileSystem) ([]string, error) {
	data, err := readFile(fsys, PrettierIgnoreFile)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// PrettierWarnings lists the options of cfg that Oxfmt does not support.
func PrettierWarnings(cfg *confmerge.Object) []string {
	var out []string
	for _, opt := range []string{"experimentalTernaries", "experimentalOperatorPosition"} {
		if confmerge.Has(cfg, opt) {
			out = append(out, opt+": not supported by oxfmt")
		}
	}
	if confmerge.Has(cfg, "overrides") {
		out = append(out, "overrides: oxfmt does not support nested configuration")
	}
	if confmerge.Has(cfg, "plugins") {
		out = append(out, "plugins: oxfmt does not load Prettier plugins (use experimentalSortImports for import sorting)")
	}
	return out
}
