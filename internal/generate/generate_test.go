package generate

import (
	"context"
	"testing"

	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/jsedit"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, o *confmerge.Object) string {
	t.Helper()
	data, err := confmerge.Marshal(o)
	require.NoError(t, err)
	return string(data)
}

func TestESLintConfig(t *testing.T) {
	testCases := []struct {
		name string
		opts ESLintOptions
		want string
	}{
		{
			name: "flags only",
			opts: ESLintOptions{TypeScript: true, React: true},
			want: `// eslint.config.mjs
import { OBEslintCfg } from '@oceanbase/lint-config';

export default OBEslintCfg(
  {
    typescript: true,
    react: true,
  }
);
`,
		},
		{
			name: "migrated rules",
			opts: ESLintOptions{
				Prettier: true,
				Rules: confmerge.FromPairs(
					"no-console", "warn",
					"max-len", []any{"error", confmerge.FromPairs("code", 120)},
				),
			},
			want: `// eslint.config.mjs
import { OBEslintCfg } from '@oceanbase/lint-config';

export default OBEslintCfg(
  {
    prettier: true,
  },
  {
    rules: {
      "no-console": "warn",
      "max-len": ["error",{"code":120}],
    },
  }
);
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ESLintConfig(tc.opts)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ESLintConfig() mismatch (-want +got):\n%s", diff)
			}
			assert.True(t, jsedit.ValidSyntax(context.Background(), got))
		})
	}
}

func TestStylelintConfig(t *testing.T) {
	got, err := StylelintConfig(confmerge.FromPairs("color-no-invalid-hex", true, "font-family-name-quotes", "always-where-recommended"))
	require.NoError(t, err)
	want := `// .stylelintrc.mjs
import { OBStylelintCfg } from '@oceanbase/lint-config';

export default OBStylelintCfg({
  rules: {
    "color-no-invalid-hex": true,
    "font-family-name-quotes": "always-where-recommended",
  }
});
`
	assert.Equal(t, want, got)
	assert.True(t, jsedit.ValidSyntax(context.Background(), got))
}

func TestBaseOxlintConfig(t *testing.T) {
	want := `{
  "$schema": "https://raw.githubusercontent.com/oxc-project/oxc/main/crates/oxc_linter/src/schemas/oxlintrc.schema.json",
  "plugins": [
    "typescript",
    "oxc"
  ],
  "rules": {}
}
`
	assert.Equal(t, want, marshal(t, BaseOxlintConfig(true, false)))
	assert.Equal(t, []any{"react", "oxc"}, OxlintPlugins(false, true))
}

func TestOxfmtDefaults(t *testing.T) {
	got := OxfmtDefaults()
	assert.Equal(t, []string{
		"$schema", "printWidth", "singleQuote", "trailingComma", "proseWrap", "endOfLine", "embeddedLanguageFormatting",
	}, got.Keys())
}

func TestVSCodeSettings(t *testing.T) {
	s := VSCodeSettings(VSCodeOptions{Oxlint: true, Stylelint: true})
	actions, ok := confmerge.GetObject(s, "editor.codeActionsOnSave")
	require.True(t, ok)
	assert.Equal(t, []string{"source.fixAll.oxc", "source.fixAll.stylelint"}, actions.Keys())
	assert.True(t, confmerge.Has(s, "[typescriptreact]"))
	assert.False(t, confmerge.Has(s, "editor.defaultFormatter"))

	withPrettier := VSCodeSettings(VSCodeOptions{ESLint: true, Prettier: true})
	formatter, _ := confmerge.GetString(withPrettier, "editor.defaultFormatter")
	assert.Equal(t, "esbenp.prettier-vscode", formatter)
	assert.False(t, confmerge.Has(withPrettier, "[javascript]"))
}

func TestVSCodeOptions_Extensions(t *testing.T) {
	got := VSCodeOptions{ESLint: true, Oxlint: true, Prettier: true}.Extensions()
	assert.Equal(t, []Extension{
		{"ESLint", "dbaeumer.vscode-eslint"},
		{"Oxc", "oxc.oxc-vscode"},
	}, got)
}

func TestOxfmtVSCodeSettings(t *testing.T) {
	s := OxfmtVSCodeSettings(".oxfmtrc.json")
	path, _ := confmerge.GetString(s, "oxc.fmt.configPath")
	assert.Equal(t, ".oxfmtrc.json", path)
	for _, lang := range []string{"[javascript]", "[typescript]", "[javascriptreact]", "[typescriptreact]", "[json]", "[jsonc]"} {
		assert.True(t, confmerge.Has(s, lang), lang)
	}
}

func TestPreCommitWithLintStaged(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		changed bool
	}{
		{
			name:    "husky v8 hook",
			input:   "#!/usr/bin/env sh\n. \"$(dirname -- \"$0\")/_/husky.sh\"\n\nnpm test\n",
			want:    PreCommitHook,
			changed: true,
		},
		{
			name:    "husky v9 hook",
			input:   "npm test\n",
			want:    "npx lint-staged\n",
			changed: true,
		},
		{
			name:    "already runs lint-staged",
			input:   "npx lint-staged\n",
			want:    "npx lint-staged\n",
			changed: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, changed := PreCommitWithLintStaged(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.changed, changed)
		})
	}
}

func TestSetupPackages(t *testing.T) {
	assert.Equal(t, []string{"@oceanbase/lint-config", "eslint@^9.15.0", "prettier@^3.4.2"},
		SetupPackages(PackageOptions{ESLint: true, Prettier: true}))
	assert.Equal(t, []string{"oxlint", "@oxlint/migrate"},
		SetupPackages(PackageOptions{Oxlint: true, OxlintMigrate: true}))
	assert.Len(t, SetupPackages(PackageOptions{Stylelint: true}), 5)
}
