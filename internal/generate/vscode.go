package generate

import "github.com/YakDriver/lintmigrate/internal/confmerge"

const (
	VSCodeDir          = ".vscode"
	VSCodeSettingsFile = ".vscode/settings.json"
	oxcFormatter       = "oxc.oxc-vscode"
)

// VSCodeOptions selects the tools the editor integrates with.
type VSCodeOptions struct {
	ESLint    bool
	Oxlint    bool
	Stylelint bool
	Prettier  bool
}

// Extension is a recommended editor extension.
type Extension struct {
	Name string
	ID   string
}

// Extensions lists the extensions the generated settings rely on.
func (o VSCodeOptions) Extensions() []Extension {
	var out []Extension
	if o.ESLint {
		out = append(out, Extension{"ESLint", "dbaeumer.vscode-eslint"})
	}
	if o.Oxlint {
		out = append(out, Extension{"Oxc", oxcFormatter})
	}
	if o.Stylelint {
		out = append(out, Extension{"Stylelint", "stylelint.vscode-stylelint"})
	}
	if o.Prettier && !o.Oxlint {
		out = append(out, Extension{"Prettier", "esbenp.prettier-vscode"})
	}
	return out
}

// VSCodeSettings builds .vscode/settings.json entries for the chosen tools.
func VSCodeSettings(o VSCodeOptions) *confmerge.Object {
	actions := confmerge.New()
	s := confmerge.FromPairs(
		"editor.formatOnSave", true,
		"editor.codeActionsOnSave", actions,
	)

	if o.ESLint {
		s.Set("eslint.enable", true)
		s.Set("eslint.validate", []any{"javascript", "javascriptreact", "typescript", "typescriptreact", "jsx"})
		s.Set("eslint.useFlatConfig", true)
		s.Set("eslint.format.enable", true)
		s.Set("eslint.run", "onSave")
		s.Set("eslint.debug", true)
		actions.Set("source.fixAll.eslint", "explicit")
	}

	if o.Oxlint {
		s.Set("oxc.enable", true)
		s.Set("oxc.lint.run", "onSave")
		actions.Set("source.fixAll.oxc", "always")
		if !o.Prettier {
			setFormatter(s, "javascript", "typescript", "javascriptreact", "typescriptreact")
		}
	}

	if o.Stylelint {
		actions.Set("source.fixAll.stylelint", "explicit")
		s.Set("stylelint.validate", []any{"css", "less", "scss"})
	}

	if o.Prettier && !o.Oxlint {
		s.Set("editor.defaultFormatter", "esbenp.prettier-vscode")
		s.Set("prettier.enable", true)
	}
	return s
}

// OxfmtVSCodeSettings makes Oxc the formatter for script and JSON files.
func OxfmtVSCodeSettings(configPath string) *confmerge.Object {
	s := confmerge.FromPairs(
		"editor.formatOnSave", true,
		"editor.defaultFormatter", oxcFormatter,
		"oxc.enable", true,
		"oxc.fmt.experimental", true,
		"oxc.fmt.configPath", configPath,
	)
	setFormatter(s, "javascript", "typescript", "javascriptreact", "typescriptreact", "json", "jsonc")
	return s
}

func setFormatter(s *confmerge.Object, languages ...string) {
	for _, lang := range languages {
		s.Set("["+lang+"]", confmerge.FromPairs("editor.defaultFormatter", oxcFormatter))
	}
}
