package detect

import (
	"testing"

	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/jsedit"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(t *testing.T, files map[string]string) (filesystem.FileSystem, *pkgjson.Manifest) {
	t.Helper()
	fsys := filesystem.NewDirFS(t.TempDir())
	for name, content := range files {
		require.NoError(t, fsys.WriteFile(name, []byte(content), 0o644))
	}
	if !fsys.Exists(pkgjson.FileName) {
		return fsys, nil
	}
	m, err := pkgjson.Load(fsys)
	require.NoError(t, err)
	return fsys, m
}

func TestFindESLintConfig_Order(t *testing.T) {
	fsys, m := project(t, map[string]string{
		"package.json":      `{"type":"module"}`,
		".eslintrc.json":    `{"extends":["eslint:recommended"]}`,
		"eslint.config.mjs": "import { OBEslintCfg } from '@oceanbase/lint-config';\nexport default OBEslintCfg();\n",
	})

	legacy, err := FindESLintConfig(fsys, m, LegacyFirst)
	require.NoError(t, err)
	require.NotNil(t, legacy)
	assert.Equal(t, ".eslintrc.json", legacy.File)
	assert.Equal(t, ESLintLegacy, legacy.Kind)
	assert.Equal(t, FormatJSON, legacy.Format)

	flat, err := FindESLintConfig(fsys, m, FlatFirst)
	require.NoError(t, err)
	require.NotNil(t, flat)
	assert.Equal(t, "eslint.config.mjs", flat.File)
	assert.Equal(t, ESLintFactory, flat.Kind)
	assert.Equal(t, jsedit.ModuleESM, flat.Module)
}

func TestFindESLintConfig_Kinds(t *testing.T) {
	testCases := []struct {
		name   string
		files  map[string]string
		file   string
		kind   ESLintKind
		format Format
		module jsedit.ModuleKind
	}{
		{
			name:   "commonjs flat config",
			files:  map[string]string{"eslint.config.js": "module.exports = [];\n"},
			file:   "eslint.config.js",
			kind:   ESLintFlat,
			format: FormatJS,
			module: jsedit.ModuleCommonJS,
		},
		{
			name:   "yaml legacy",
			files:  map[string]string{".eslintrc.yml": "extends: eslint:recommended\n"},
			file:   ".eslintrc.yml",
			kind:   ESLintLegacy,
			format: FormatYAML,
		},
		{
			name:   "package.json field",
			files:  map[string]string{"package.json": `{"eslintConfig":{"extends":"eslint:recommended"}}`},
			file:   "package.json",
			kind:   ESLintLegacy,
			format: FormatPackageJSON,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys, m := project(t, tc.files)
			cfg, err := FindESLintConfig(fsys, m, LegacyFirst)
			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, tc.file, cfg.File)
			assert.Equal(t, tc.kind, cfg.Kind)
			assert.Equal(t, tc.format, cfg.Format)
			if tc.format == FormatJS {
				assert.Equal(t, tc.module, cfg.Module)
			}
		})
	}
}

func TestFindESLintConfig_None(t *testing.T) {
	fsys, m := project(t, map[string]string{"package.json": `{}`})
	cfg, err := FindESLintConfig(fsys, m, FlatFirst)
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestReadESLintRules(t *testing.T) {
	fsys, m := project(t, map[string]string{
		"package.json": `{"eslintConfig":{"rules":{"semi":"error","quotes":["error","single"]}}}`,
	})
	cfg, err := FindESLintConfig(fsys, m, LegacyFirst)
	require.NoError(t, err)

	rules, err := ReadESLintRules(fsys, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"semi", "quotes"}, rules.Keys())
}

func TestReadObject(t *testing.T) {
	testCases := []struct {
		name string
		file string
		body string
		keys []string
	}{
		{"json", ".prettierrc.json", `{"semi":false,"printWidth":100}`, []string{"semi", "printWidth"}},
		{"bare rc as yaml", ".prettierrc", "semi: false\nsingleQuote: true\n", []string{"semi", "singleQuote"}},
		{"yaml keeps order", ".prettierrc.yaml", "tabWidth: 4\nsemi: true\n", []string{"tabWidth", "semi"}},
		{"toml sorts keys", ".prettierrc.toml", "tabWidth = 4\nsemi = false\n", []string{"semi", "tabWidth"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys, _ := project(t, map[string]string{tc.file: tc.body})
			obj, err := ReadObject(fsys, tc.file, "prettier")
			require.NoError(t, err)
			assert.Equal(t, tc.keys, obj.Keys())
		})
	}
}

func TestReadObject_Errors(t *testing.T) {
	fsys, _ := project(t, map[string]string{
		"prettier.config.js": "module.exports = { semi: false };\n",
		".prettierrc.json":   `{"semi": `,
	})

	_, err := ReadObject(fsys, "prettier.config.js", "prettier")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotDeclarative)
	assert.Equal(t, internal.KindShapeMismatch, internal.KindOf(err))

	_, err = ReadObject(fsys, ".prettierrc.json", "prettier")
	require.Error(t, err)
	assert.Equal(t, internal.KindParse, internal.KindOf(err))
}

func TestDetectPrettier(t *testing.T) {
	fsys, m := project(t, map[string]string{
		"package.json":     `{"prettier":{"semi":false},"devDependencies":{"prettier":"^3.0.0","eslint-config-prettier":"^9.0.0"}}`,
		".prettierrc.yaml": "semi: false\n",
		".prettierrc.toml": "semi = false\n",
		".editorconfig":    "root = true\n",
		".prettierignore":  "# build output\ndist\n\ncoverage\n",
	})

	p := DetectPrettier(fsys, m)
	assert.True(t, p.Found())
	assert.Equal(t, []string{"prettier", "eslint-config-prettier"}, p.Packages)
	assert.Equal(t, ".prettierrc.yaml", p.ConfigFile)
	assert.Equal(t, FormatYAML, p.ConfigFormat())
	assert.True(t, p.PackageField)
	assert.True(t, p.EditorConfig)
	assert.True(t, p.IgnoreFile)

	patterns, err := PrettierIgnorePatterns(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"dist", "coverage"}, patterns)
}

func TestPrettierWarnings(t *testing.T) {
	cfg := confmerge.FromPairs(
		"semi", false,
		"experimentalTernaries", true,
		"plugins", []any{"prettier-plugin-organize-imports"},
	)
	warnings := PrettierWarnings(cfg)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "experimentalTernaries")
	assert.Contains(t, warnings[1], "plugins")
}

func TestStylelint(t *testing.T) {
	fsys, m := project(t, map[string]string{
		"package.json":        `{}`,
		".stylelintrc.yml":    "extends: stylelint-config-standard\nrules:\n  color-no-invalid-hex: true\n  max-nesting-depth: 3\n",
		"stylelint.config.js": "module.exports = {};\n",
	})

	file := FindStylelintConfig(fsys, m)
	assert.Equal(t, ".stylelintrc.yml", file)

	rules, err := ReadStylelintRules(fsys, file)
	require.NoError(t, err)
	assert.Equal(t, []string{"stylelint-config-standard"}, rules.Extends)
	assert.Equal(t, []string{"color-no-invalid-hex", "max-nesting-depth"}, rules.Rules.Keys())

	_, err = ReadStylelintRules(fsys, "stylelint.config.js")
	assert.ErrorIs(t, err, ErrNotDeclarative)
}

func TestDetectProject(t *testing.T) {
	fsys, m := project(t, map[string]string{
		"package.json":   `{"type":"module","dependencies":{"react":"^18.0.0"}}`,
		"tsconfig.json":  `{}`,
		"pnpm-lock.yaml": "lockfileVersion: '9.0'\n",
		"yarn.lock":      "",
	})

	p := DetectProject(fsys, m, "")
	assert.True(t, p.TypeScript)
	assert.True(t, p.React)
	assert.True(t, p.Module)
	assert.Equal(t, "pnpm", p.PackageManager)

	assert.Equal(t, "yarn", DetectProject(fsys, m, "yarn").PackageManager)
}

func TestPackageManager_Default(t *testing.T) {
	fsys, _ := project(t, nil)
	assert.Equal(t, "npm", PackageManager(fsys, ""))
}
