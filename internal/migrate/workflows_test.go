package migrate

import (
	"context"
	"strings"
	"testing"

	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/generate"
	"github.com/YakDriver/lintmigrate/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writes makes the runner create name with content when a command containing
// substr runs, standing in for the npx tools.
func (e *testEnv) writes(t *testing.T, substr, name, content string, out runner.Output) {
	t.Helper()
	e.runner.Respond = func(c runner.Command) (runner.Output, error) {
		if strings.Contains(c.String(), substr) {
			require.NoError(t, e.fs.WriteFile(name, []byte(content), 0o644))
			return out, nil
		}
		return runner.Output{}, nil
	}
}

func list(t *testing.T, o *confmerge.Object, key string) []any {
	t.Helper()
	l, ok := confmerge.GetList(o, key)
	require.True(t, ok, "%s is not a list", key)
	return l
}

func TestOxlintWorkflow_BaseConfig(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json":  `{"name":"app","dependencies":{"react":"^18.0.0"}}`,
		"tsconfig.json": `{}`,
	})
	env.run(t, OxlintWorkflow())

	cfg := env.json(t, ".oxlintrc.json")
	assert.Equal(t, []any{"typescript", "react", "oxc"}, list(t, cfg, "plugins"))

	m := env.json(t, "package.json")
	scripts, _ := confmerge.GetObject(m, "scripts")
	oxlint, _ := confmerge.GetString(scripts, "lint:oxlint")
	assert.Equal(t, "oxlint", oxlint)
	ls, ok := confmerge.GetObject(m, "lint-staged")
	require.True(t, ok)
	assert.Equal(t, []any{"oxlint --fix"}, list(t, ls, "*.{js,jsx,ts,tsx,json,jsonc}"))

	assert.True(t, env.fs.Exists(generate.VSCodeSettingsFile))
	assert.Contains(t, env.runner.Strings(), "npm install --save-dev oxlint")
	assert.Contains(t, env.runner.Strings(), "npm install --save-dev lint-staged")
	assert.False(t, env.fs.Exists(generate.PreCommitFile), "husky is opt-in")
	assert.NotContains(t, env.prompt.Asked, "Does this project use TypeScript?")
}

func TestOxlintWorkflow_ConvertsESLintConfig(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json":   `{"name":"app","devDependencies":{"eslint":"^8.57.0","prettier":"^3.0.0"}}`,
		".eslintrc.json": `{"rules":{"no-debugger":"error"}}`,
	})
	env.writes(t, runner.OxlintMigrateTool, ".oxlintrc.json",
		`{"rules":{"// team":"注释: team rules below","react-hooks/exhaustive-deps":"warn","no-debugger":"error"}}`,
		runner.Output{})
	env.run(t, OxlintWorkflow())

	assert.Contains(t, env.runner.Strings(), "npx @oxlint/migrate@latest .eslintrc.json --output-file .oxlintrc.json")
	cfg := env.json(t, ".oxlintrc.json")
	rules, ok := confmerge.GetObject(cfg, "rules")
	require.True(t, ok)
	assert.Equal(t, []string{"react/exhaustive-deps", "no-debugger"}, rules.Keys())
	assert.Contains(t, list(t, cfg, "plugins"), "oxc")

	// ESLint packages are only removed on request
	assert.NotContains(t, strings.Join(env.runner.Strings(), "\n"), "npm uninstall")
	assert.Contains(t, env.prompt.Asked, "Uninstall them? Recommended now that Oxlint does the linting.")
}

func TestOxlintWorkflow_ConverterFailureFallsBack(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json": `{"name":"app"}`,
		".eslintrc.js": "module.exports = { extends: [require.resolve('x')] };\n",
	})
	env.runner.Respond = runner.Fail(runner.OxlintMigrateTool, runner.Output{Stderr: "TypeError: cannot evaluate"})
	env.run(t, OxlintWorkflow())

	cfg := env.json(t, ".oxlintrc.json")
	assert.Equal(t, []any{"oxc"}, list(t, cfg, "plugins"))
	assert.Contains(t, env.out.String(), "How to fix it")
	assert.Contains(t, strings.Join(env.s.Summary.Warnings, "\n"), "could not convert")
}

func TestOxfmtWorkflow(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json":     `{"name":"app","devDependencies":{"prettier":"^3.0.0"}}`,
		".prettierrc.json": `{"semi":false,"singleQuote":false,"overrides":[{"files":"*.md","options":{"proseWrap":"always"}}],"plugins":["prettier-plugin-x"]}`,
		".prettierignore":  "dist\n# generated\n\ncoverage\n",
	})
	env.run(t, OxfmtWorkflow())

	cfg := env.json(t, ".oxfmtrc.json")
	semi, _ := cfg.Get("semi")
	assert.Equal(t, false, semi)
	single, _ := cfg.Get("singleQuote")
	assert.Equal(t, false, single)
	width, _ := cfg.Get("printWidth")
	assert.EqualValues(t, 80, width)
	assert.False(t, confmerge.Has(cfg, "overrides"))
	assert.False(t, confmerge.Has(cfg, "plugins"))
	assert.Equal(t, []any{"dist", "coverage"}, list(t, cfg, "ignorePatterns"))

	assert.ElementsMatch(t, []string{"overrides", "plugins"}, env.s.Summary.RemovedFields)
	assert.Contains(t, env.runner.Strings(), "npm install --save-dev oxfmt")
	assert.True(t, env.fs.Exists(".prettierrc.json"), "the old config is only deleted on request")
	assert.NotEmpty(t, env.s.Summary.Tips)

	m := env.json(t, "package.json")
	scripts, _ := confmerge.GetObject(m, "scripts")
	check, _ := confmerge.GetString(scripts, "format:check")
	assert.Equal(t, "oxfmt --check", check)
}

func TestOxfmtWorkflow_NoPrettier(t *testing.T) {
	env := newTestEnv(t, map[string]string{"package.json": `{"name":"app"}`})
	env.run(t, OxfmtWorkflow())

	assert.True(t, env.s.Summary.Halted)
	assert.False(t, env.s.Summary.Incomplete)
	assert.False(t, env.fs.Exists(".oxfmtrc.json"))
	assert.Empty(t, env.runner.Commands())
}

func TestOxfmtWorkflow_DeletesOldConfigWhenAsked(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json": `{"name":"app","devDependencies":{"prettier":"^3.0.0"}}`,
		".prettierrc":  "semi: false\n",
	})
	// start, delete the old config
	env.prompt.Confirms = []bool{true, true}
	env.run(t, OxfmtWorkflow())

	assert.False(t, env.fs.Exists(".prettierrc"))
	assert.Contains(t, env.s.Summary.Removed, ".prettierrc")
}

func TestESLintWorkflow(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json":   `{"name":"app"}`,
		".eslintrc.json": `{"rules":{"no-console":"warn"}}`,
	})
	env.run(t, ESLintWorkflow())

	content := env.read(t, generate.ESLintConfigFile)
	assert.Contains(t, content, "OBEslintCfg")
	assert.Contains(t, content, `"no-console"`)
	assert.False(t, env.fs.Exists(generate.StylelintConfigFile), "stylelint is opt-in")
	assert.Contains(t, env.runner.Strings(), "npm install --save-dev @oceanbase/lint-config eslint@^9.15.0 prettier@^3.4.2")

	m := env.json(t, "package.json")
	scripts, _ := confmerge.GetObject(m, "scripts")
	lint, _ := confmerge.GetString(scripts, "lint")
	assert.Equal(t, "eslint .", lint)
}

func TestESLintWorkflow_Stylelint(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json":      `{"name":"app"}`,
		".stylelintrc.json": `{"extends":["stylelint-config-standard"],"rules":{"color-no-invalid-hex":true}}`,
	})
	// typescript, react, stylelint
	env.prompt.Confirms = []bool{false, false, true}
	env.run(t, ESLintWorkflow())

	content := env.read(t, generate.StylelintConfigFile)
	assert.Contains(t, content, `"color-no-invalid-hex"`)
	assert.Contains(t, strings.Join(env.s.Summary.Warnings, "\n"), "stylelint-config-standard")

	m := env.json(t, "package.json")
	scripts, _ := confmerge.GetObject(m, "scripts")
	css, _ := confmerge.GetString(scripts, "lint:css")
	assert.Equal(t, "stylelint '**/*.{css,less}'", css)
}

func TestFlatConfigWorkflow(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json":   `{"name":"app"}`,
		".eslintrc.json": `{"extends":["eslint:recommended"]}`,
	})
	env.writes(t, runner.ESLintMigrateTool, generate.ESLintConfigFile, "export default [];\n", runner.Output{
		Stdout: "You will need to install the following packages to use the new config:\n- globals\n- @eslint/js\n\nnpm install globals @eslint/js -D\n",
	})
	env.run(t, FlatConfigWorkflow())

	assert.Equal(t, `{"extends":["eslint:recommended"]}`, env.read(t, ".eslintrc.json.backup"))
	assert.True(t, env.fs.Exists(generate.ESLintConfigFile))
	assert.True(t, env.fs.Exists(".eslintrc.json"), "the legacy config is only deleted on request")
	assert.Equal(t, []string{
		"npx @eslint/migrate-config@latest .eslintrc.json",
		"npm install --save-dev globals @eslint/js",
	}, env.runner.Strings())
	assert.False(t, env.s.Summary.Incomplete)
}

func TestFlatConfigWorkflow_Halts(t *testing.T) {
	testCases := []struct {
		name       string
		files      map[string]string
		fail       bool
		incomplete bool
		output     string
	}{
		{
			name:   "no config",
			files:  map[string]string{"package.json": `{"name":"app"}`},
			output: "nothing to migrate",
		},
		{
			name: "already flat",
			files: map[string]string{
				"package.json":     `{"name":"app"}`,
				"eslint.config.js": "export default [];\n",
			},
			output: "already a flat config",
		},
		{
			name:       "config in package.json",
			files:      map[string]string{"package.json": `{"name":"app","eslintConfig":{"extends":["eslint:recommended"]}}`},
			incomplete: true,
			output:     ".eslintrc.json first",
		},
		{
			name: "dynamic config",
			files: map[string]string{
				"package.json": `{"name":"app"}`,
				".eslintrc.js": "module.exports = { ...base };\n",
			},
			fail:       true,
			incomplete: true,
			output:     "How to fix it",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, tc.files)
			if tc.fail {
				env.runner.Respond = runner.Fail(runner.ESLintMigrateTool, runner.Output{Stderr: "TypeError: Cannot convert"})
			}
			env.run(t, FlatConfigWorkflow())

			assert.True(t, env.s.Summary.Halted)
			assert.Equal(t, tc.incomplete, env.s.Summary.Incomplete)
			assert.Contains(t, env.out.String(), tc.output)
			assert.False(t, env.fs.Exists(generate.ESLintConfigFile))
		})
	}
}

func TestPluginOxlintWorkflow_FlatConfig(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json":      `{"name":"app","type":"module","devDependencies":{"eslint":"^9.15.0"},"scripts":{"lint":"eslint ."}}`,
		".oxlintrc.json":    `{}`,
		"eslint.config.mjs": "import js from '@eslint/js';\n\nexport default [\n  js.configs.recommended,\n];\n",
	})
	env.run(t, PluginOxlintWorkflow())

	content := env.read(t, "eslint.config.mjs")
	assert.Contains(t, content, "import oxlint from 'eslint-plugin-oxlint';")
	assert.Contains(t, content, "...oxlint.buildFromOxlintConfigFile('./.oxlintrc.json')")
	assert.Contains(t, content, "js.configs.recommended,")
	assert.Contains(t, env.runner.Strings(), "npm install --save-dev eslint-plugin-oxlint")

	m := env.json(t, "package.json")
	scripts, _ := confmerge.GetObject(m, "scripts")
	lint, _ := confmerge.GetString(scripts, "lint")
	assert.Equal(t, "npx oxlint && eslint .", lint)
}

func TestPluginOxlintWorkflow_LegacyConfigs(t *testing.T) {
	testCases := []struct {
		name  string
		files map[string]string
		file  string
		want  string
	}{
		{
			name: "json",
			files: map[string]string{
				"package.json":   `{"name":"app"}`,
				".eslintrc.json": `{"extends":["eslint:recommended"]}`,
			},
			file: ".eslintrc.json",
			want: `"plugin:oxlint/recommended"`,
		},
		{
			name: "javascript",
			files: map[string]string{
				"package.json": `{"name":"app"}`,
				".eslintrc.js": "module.exports = {\n  extends: ['eslint:recommended'],\n};\n",
			},
			file: ".eslintrc.js",
			want: "'plugin:oxlint/recommended'",
		},
		{
			name: "yaml",
			files: map[string]string{
				"package.json":   `{"name":"app"}`,
				".eslintrc.yaml": "extends:\n  - eslint:recommended\n",
			},
			file: ".eslintrc.yaml",
			want: "plugin:oxlint/recommended",
		},
		{
			name:  "package.json",
			files: map[string]string{"package.json": `{"name":"app","eslintConfig":{"extends":["eslint:recommended"]}}`},
			file:  "package.json",
			want:  `"plugin:oxlint/recommended"`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, tc.files)
			env.run(t, PluginOxlintWorkflow())

			assert.Contains(t, env.read(t, tc.file), tc.want)
			assert.Contains(t, env.out.String(), "lintmigrate flat-config")
			assert.False(t, env.s.Summary.Incomplete)
		})
	}
}

func TestPluginOxlintWorkflow_UnsupportedExtends(t *testing.T) {
	testCases := []struct {
		name  string
		files map[string]string
		file  string
	}{
		{
			name: "json",
			files: map[string]string{
				"package.json":   `{"name":"app"}`,
				".eslintrc.json": `{"extends":{"bad":true}}`,
			},
			file: ".eslintrc.json",
		},
		{
			name:  "package.json",
			files: map[string]string{"package.json": `{"name":"app","eslintConfig":{"extends":{"bad":true}}}`},
			file:  "package.json",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t, tc.files)
			env.run(t, PluginOxlintWorkflow())

			assert.NotContains(t, env.read(t, tc.file), "plugin:oxlint/recommended")
			assert.NotContains(t, env.out.String(), "already extends")
			assert.Contains(t, env.out.String(), "extends list of")
			assert.Contains(t, strings.Join(env.s.Summary.Warnings, "\n"), "by hand")
		})
	}
}

func TestPluginOxlintWorkflow_Abandons(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		env := newTestEnv(t, map[string]string{"package.json": `{"name":"app"}`})
		env.prompt.Confirms = []bool{false}
		env.run(t, PluginOxlintWorkflow())

		assert.True(t, env.s.Summary.Incomplete)
		assert.Empty(t, env.runner.Commands())
	})
	t.Run("no eslint config", func(t *testing.T) {
		env := newTestEnv(t, map[string]string{"package.json": `{"name":"app"}`})
		env.run(t, PluginOxlintWorkflow())

		assert.True(t, env.s.Summary.Incomplete)
		assert.Contains(t, env.out.String(), "No ESLint config found")
	})
	t.Run("install fails", func(t *testing.T) {
		env := newTestEnv(t, map[string]string{
			"package.json":      `{"name":"app"}`,
			"eslint.config.mjs": "export default [];\n",
		})
		env.runner.Respond = runner.Fail("eslint-plugin-oxlint", runner.Output{Stderr: "ERR! 404"})
		env.run(t, PluginOxlintWorkflow())

		assert.True(t, env.s.Summary.Incomplete)
		assert.Equal(t, "export default [];\n", env.read(t, "eslint.config.mjs"))
	})
}

func TestLookup(t *testing.T) {
	var names []string
	for _, w := range Workflows() {
		names = append(names, w.Name)
	}
	assert.Equal(t, []string{"oxlint", "oxfmt", "eslint", "flat-config", "eslint-plugin-oxlint"}, names)

	w, err := Lookup("flat-config")
	require.NoError(t, err)
	assert.Equal(t, "flat-config", w.Name)

	_, err = Lookup("tslint")
	assert.ErrorContains(t, err, "unknown workflow")
}

func TestWizard(t *testing.T) {
	env := newTestEnv(t, map[string]string{"package.json": `{"name":"app"}`})
	env.prompt.Selects = []int{1}
	require.NoError(t, Wizard(context.Background(), env.s))

	assert.Equal(t, "What do you want to set up?", env.prompt.Asked[0])
	assert.Contains(t, env.out.String(), "No Prettier found")
}

func TestDryRunSkipsToolOutputChecks(t *testing.T) {
	env := newTestEnv(t, map[string]string{
		"package.json":   `{"name":"app"}`,
		".eslintrc.json": `{"rules":{}}`,
	})
	env.s.Options.DryRun = true
	env.run(t, OxlintWorkflow())

	assert.Contains(t, env.s.Summary.ConfigFiles, ".oxlintrc.json")
	assert.Empty(t, env.s.Summary.Warnings)
}
