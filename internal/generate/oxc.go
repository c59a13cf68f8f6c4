package generate

import "github.com/YakDriver/lintmigrate/internal/confmerge"

const (
	OxlintSchema = "https://raw.githubusercontent.com/oxc-project/oxc/main/crates/oxc_linter/src/schemas/oxlintrc.schema.json"
	OxfmtSchema  = "./node_modules/oxfmt/configuration_schema.json"
)

// OxlintPlugins returns the plugin list for a project: typescript and react
// when used, oxc always.
func OxlintPlugins(typescript, react bool) []any {
	var plugins []any
	if typescript {
		plugins = append(plugins, "typescript")
	}
	if react {
		plugins = append(plugins, "react")
	}
	return append(plugins, "oxc")
}

// BaseOxlintConfig is written when no ESLint config can be migrated.
func BaseOxlintConfig(typescript, react bool) *confmerge.Object {
	return confmerge.FromPairs(
		"$schema", OxlintSchema,
		"plugins", OxlintPlugins(typescript, react),
		"rules", confmerge.New(),
	)
}

// OxfmtDefaults is the starting .oxfmtrc.json that Prettier options override.
func OxfmtDefaults() *confmerge.Object {
	return confmerge.FromPairs(
		"$schema", OxfmtSchema,
		"printWidth", 80,
		"singleQuote", true,
		"trailingComma", "all",
		"proseWrap", "never",
		"endOfLine", "lf",
		"embeddedLanguageFormatting", "auto",
	)
}
