// Package detect inspects a project directory for the lint and format
// tooling it already uses.
package detect

import (
	"path"
	"strings"

	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/jsedit"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
)

// ESLintKind classifies an ESLint configuration.
type ESLintKind int

const (
	ESLintNone ESLintKind = iota
	ESLintLegacy
	ESLintFlat
	ESLintFactory
)

func (k ESLintKind) String() string {
	switch k {
	case ESLintLegacy:
		return "legacy"
	case ESLintFlat:
		return "flat"
	case ESLintFactory:
		return "factory"
	default:
		return "none"
	}
}

// Format is the on-disk syntax of a config file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
	FormatJS
	FormatPackageJSON
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJS:
		return "js"
	case FormatPackageJSON:
		return "package.json"
	default:
		return "unknown"
	}
}

// Declarative reports whether the format can be read without executing code.
func (f Format) Declarative() bool {
	return f != FormatJS
}

// Order selects which family of ESLint config files wins when both exist.
type Order int

const (
	// LegacyFirst matches what the migration tools expect: .eslintrc* files,
	// then eslint.config.*, then package.json#eslintConfig.
	LegacyFirst Order = iota
	// FlatFirst prefers eslint.config.* over .eslintrc*.
	FlatFirst
)

var (
	LegacyESLintFiles = []string{
		".eslintrc",
		".eslintrc.js",
		".eslintrc.cjs",
		".eslintrc.mjs",
		".eslintrc.json",
		".eslintrc.yaml",
		".eslintrc.yml",
	}
	FlatESLintFiles = []string{
		"eslint.config.js",
		"eslint.config.cjs",
		"eslint.config.mjs",
	}
)

// ESLintPackageField is the package.json field holding an inline legacy config.
const ESLintPackageField = "eslintConfig"

// factoryMarkers identify a flat config built by @oceanbase/lint-config.
var factoryMarkers = []string{"OBEslintCfg", "@oceanbase/lint-config"}

// ESLintConfig describes the ESLint configuration found in a project.
type ESLintConfig struct {
	File    string
	Kind    ESLintKind
	Format  Format
	Module  jsedit.ModuleKind
	Content string
}

// InPackageJSON reports whether the config lives in package.json#eslintConfig.
func (c *ESLintConfig) InPackageJSON() bool {
	return c.Format == FormatPackageJSON
}

// FindESLintConfig returns the first ESLint config in the given order, or nil
// when the project has none. m may be nil.
func FindESLintConfig(fsys filesystem.FileSystem, m *pkgjson.Manifest, order Order) (*ESLintConfig, error) {
	files := append(append([]string{}, LegacyESLintFiles...), FlatESLintFiles...)
	if order == FlatFirst {
		files = append(append([]string{}, FlatESLintFiles...), LegacyESLintFiles...)
	}

	for _, name := range files {
		if !fsys.Exists(name) {
			continue
		}
		data, err := readFile(fsys, name)
		if err != nil {
			return nil, err
		}
		cfg := &ESLintConfig{
			File:    name,
			Kind:    ESLintLegacy,
			Format:  formatOf(name),
			Content: string(data),
		}
		if strings.HasPrefix(name, "eslint.config.") {
			cfg.Kind = ESLintFlat
			if containsAny(cfg.Content, factoryMarkers) {
				cfg.Kind = ESLintFactory
			}
		}
		if cfg.Format == FormatJS {
			cfg.Module = jsedit.ModuleKindFor(name, cfg.Content, m != nil && m.IsModule())
		}
		return cfg, nil
	}

	if m != nil && m.Has(ESLintPackageField) {
		return &ESLintConfig{
			File:   pkgjson.FileName,
			Kind:   ESLintLegacy,
			Format: FormatPackageJSON,
		}, nil
	}
	return nil, nil
}

// ESLintMajorVersion returns the major version of the eslint dependency, or 0.
func ESLintMajorVersion(m *pkgjson.Manifest) int {
	return m.MajorVersion("eslint")
}

// ESLintPackages are the ESLint and Prettier integration packages removed
// when a project moves to Oxlint.
var ESLintPackages = []string{
	"eslint",
	"@eslint/js",
	"typescript-eslint",
	"@typescript-eslint/parser",
	"@typescript-eslint/eslint-plugin",
	"eslint-config-prettier",
	"eslint-plugin-prettier",
	"eslint-plugin-react",
	"eslint-plugin-react-hooks",
	"eslint-plugin-import",
	"eslint-import-resolver-typescript",
	"eslint-flat-config-utils",
	"prettier",
}

// formatOf infers the format from a config file name. Extensionless rc files
// are JSON unless the reader finds otherwise.
func formatOf(name string) Format {
	if name == pkgjson.FileName {
		return FormatPackageJSON
	}
	switch path.Ext(name) {
	case ".js", ".cjs", ".mjs", ".ts", ".cts", ".mts":
		return FormatJS
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ReadESLintRules returns the rules of a declarative legacy config so they can
// be carried into a generated flat config. JavaScript configs yield
// ErrNotDeclarative.
func ReadESLintRules(fsys filesystem.FileSystem, cfg *ESLintConfig) (*confmerge.Object, error) {
	obj, err := ReadObject(fsys, cfg.File, ESLintPackageField)
	if err != nil {
		return nil, err
	}
	if rules, ok := confmerge.GetObject(obj, "rules"); ok {
		return rules, nil
	}
	return confmerge.New(), nil
}
