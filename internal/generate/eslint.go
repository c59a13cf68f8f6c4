// Package generate renders the configuration files lintmigrate writes from
// scratch: @oceanbase/lint-config entry points, Oxlint and Oxfmt defaults,
// editor settings and git hooks.
package generate

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"

	"github.com/YakDriver/lintmigrate/internal/confmerge"
)

const (
	ESLintConfigFile    = "eslint.config.mjs"
	StylelintConfigFile = ".stylelintrc.mjs"
)

var eslintTemplate = template.Must(template.New("eslint").Parse(`// eslint.config.mjs
import { OBEslintCfg } from '@oceanbase/lint-config';

export default OBEslintCfg(
  {
{{- range .Options}}
    {{.}}: true,
{{- end}}
  }
{{- if .Rules}},
  {
    rules: {
{{- range .Rules}}
      {{.Name}}: {{.Value}},
{{- end}}
    },
  }
{{- end}}
);
`))

var stylelintTemplate = template.Must(template.New("stylelint").Parse(`// .stylelintrc.mjs
import { OBStylelintCfg } from '@oceanbase/lint-config';

export default OBStylelintCfg({
  rules: {
{{- range .Rules}}
    {{.Name}}: {{.Value}},
{{- end}}
  }
});
`))

// ESLintOptions selects the OBEslintCfg feature flags.
type ESLintOptions struct {
	TypeScript bool
	React      bool
	Prettier   bool
	Import     bool
	// Rules carried over from a previous config, emitted as an override block.
	Rules *confmerge.Object
}

type ruleLine struct {
	Name  string
	Value string
}

// ESLintConfig renders eslint.config.mjs.
func ESLintConfig(opts ESLintOptions) (string, error) {
	var flags []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{opts.TypeScript, "typescript"},
		{opts.React, "react"},
		{opts.Prettier, "prettier"},
		{opts.Import, "import"},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}

	rules, err := ruleLines(opts.Rules)
	if err != nil {
		return "", err
	}
	return render(eslintTemplate, map[string]any{"Options": flags, "Rules": rules})
}

// StylelintConfig renders .stylelintrc.mjs with the given rules.
func StylelintConfig(rules *confmerge.Object) (string, error) {
	lines, err := ruleLines(rules)
	if err != nil {
		return "", err
	}
	return render(stylelintTemplate, map[string]any{"Rules": lines})
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func ruleLines(rules *confmerge.Object) ([]ruleLine, error) {
	if rules == nil {
		return nil, nil
	}
	var out []ruleLine
	for _, k := range rules.Keys() {
		v, _ := rules.Get(k)
		name, err := jsLiteral(k)
		if err != nil {
			return nil, err
		}
		value, err := jsLiteral(v)
		if err != nil {
			return nil, err
		}
		out = append(out, ruleLine{Name: name, Value: value})
	}
	return out, nil
}

// jsLiteral renders v as compact JSON, which is also a valid JavaScript
// expression.
func jsLiteral(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// PackageOptions are the tools chosen in the setup wizard.
type PackageOptions struct {
	ESLint    bool
	Oxlint    bool
	Stylelint bool
	Prettier  bool
	// OxlintMigrate adds @oxlint/migrate when an existing ESLint config with
	// rules is being converted.
	OxlintMigrate bool
}

// SetupPackages lists the devDependencies to install for opts.
func SetupPackages(opts PackageOptions) []string {
	var pkgs []string
	if opts.ESLint {
		pkgs = append(pkgs, "@oceanbase/lint-config", "eslint@^9.15.0")
		if opts.Prettier {
			pkgs = append(pkgs, "prettier@^3.4.2")
		}
	}
	if opts.Oxlint {
		pkgs = append(pkgs, "oxlint")
		if opts.OxlintMigrate {
			pkgs = append(pkgs, "@oxlint/migrate")
		}
	}
	if opts.Stylelint {
		pkgs = append(pkgs,
			"stylelint@^16.18.0",
			"stylelint-config-standard@^38.0.0",
			"stylelint-config-recommended-less@^3.0.1",
			"stylelint-less@^3.0.1",
			"postcss-less@^6.0.0",
		)
	}
	return pkgs
}
