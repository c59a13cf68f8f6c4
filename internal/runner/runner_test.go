package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/YakDriver/lintmigrate/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall(t *testing.T) {
	testCases := []struct {
		pm   string
		dev  bool
		want string
	}{
		{"npm", true, "npm install --save-dev oxlint husky"},
		{"npm", false, "npm install oxlint husky"},
		{"yarn", true, "yarn add --dev oxlint husky"},
		{"pnpm", true, "pnpm add --save-dev oxlint husky"},
		{"", true, "npm install --save-dev oxlint husky"},
	}
	for _, tc := range testCases {
		got := Install(tc.pm, []string{"oxlint", "husky"}, tc.dev).String()
		assert.Equal(t, tc.want, got)
	}
}

func TestUninstall(t *testing.T) {
	assert.Equal(t, "npm uninstall eslint prettier", Uninstall("npm", []string{"eslint", "prettier"}).String())
	assert.Equal(t, "yarn remove eslint", Uninstall("yarn", []string{"eslint"}).String())
	assert.Equal(t, "pnpm remove eslint", Uninstall("pnpm", []string{"eslint"}).String())
}

func TestToolCommands(t *testing.T) {
	assert.Equal(t, "npx @eslint/migrate-config@latest .eslintrc.json", MigrateESLintConfig(".eslintrc.json").String())
	assert.Equal(t, "npx @oxlint/migrate@latest eslint.config.mjs --output-file .oxlintrc.json",
		MigrateToOxlint("eslint.config.mjs", ".oxlintrc.json").String())
	assert.Equal(t, "npx husky init", HuskyInit().String())
}

func TestExtractRequiredPackages(t *testing.T) {
	testCases := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name: "list followed by install hint",
			output: `Migrating .eslintrc.json

Wrote new config to ./eslint.config.mjs

You will need to install the following packages to use the new config:
- globals
- @eslint/js
- @eslint/eslintrc

You can install them using the following command:

npm install globals @eslint/js @eslint/eslintrc -D
`,
			want: []string{"globals", "@eslint/js", "@eslint/eslintrc"},
		},
		{
			name:   "star bullets",
			output: "You will need to install the following packages:\n* globals\n* @eslint/compat\n",
			want:   []string{"globals", "@eslint/compat"},
		},
		{
			name:   "nothing to install",
			output: "Wrote new config to ./eslint.config.mjs\n- not a package\n",
			want:   nil,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractRequiredPackages(tc.output))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, FailureDynamicConfig, Classify(Output{Stderr: "TypeError: Cannot convert undefined"}, nil))
	assert.Equal(t, FailureDynamicConfig, Classify(Output{}, errors.New("Unexpected CallExpression")))
	assert.Equal(t, FailureResolve, Classify(Output{Stderr: "Error: require.resolve failed for 'x'"}, nil))
	assert.Equal(t, FailureUnknown, Classify(Output{Stdout: "ok"}, nil))
}

func TestRecordingRunner(t *testing.T) {
	r := &RecordingRunner{Respond: Fail("oxlint", Output{Stderr: "boom"})}

	_, err := r.Run(context.Background(), Install("npm", []string{"husky"}, true))
	require.NoError(t, err)

	out, err := r.Run(context.Background(), MigrateToOxlint(".eslintrc", ".oxlintrc.json"))
	require.Error(t, err)
	assert.Equal(t, internal.KindTool, internal.KindOf(err))
	assert.Equal(t, "boom", out.Stderr)

	assert.Equal(t, []string{
		"npm install --save-dev husky",
		"npx @oxlint/migrate@latest .eslintrc --output-file .oxlintrc.json",
	}, r.Strings())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx, HuskyInit())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, r.Commands(), 2)
}

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var echoed, echoedErr bytes.Buffer
	r := NewExecRunner(t.TempDir(), WithOutput(&echoed, &echoedErr), WithStdin(bytes.NewReader(nil)))

	out, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo hello; echo oops >&2"}})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.Stdout)
	assert.Equal(t, "oops\n", out.Stderr)
	assert.Equal(t, "hello\n", echoed.String())
	assert.Equal(t, "oops\n", echoedErr.String())

	out, err = r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo partial; exit 3"}})
	require.Error(t, err)
	assert.Equal(t, internal.KindTool, internal.KindOf(err))
	assert.Equal(t, "partial\n", out.Stdout)
}
