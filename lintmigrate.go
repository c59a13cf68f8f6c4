// Package lintmigrate exposes the config patching used by the lintmigrate
// command, so other tools can apply the same edits to ESLint configs.
package lintmigrate

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/YakDriver/lintmigrate/internal"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/jsedit"
)

const (
	// PluginOxlintPackage is the npm package that turns off ESLint rules Oxlint covers.
	PluginOxlintPackage = "eslint-plugin-oxlint"
	// PluginOxlintExtends is its preset for legacy configs.
	PluginOxlintExtends = "plugin:oxlint/recommended"
)

// Result describes the outcome of a patch. When Modified is false, Content is
// the input unchanged and Reason says why.
type Result = jsedit.Result

// Object is an insertion-ordered JSON object.
type Object = confmerge.Object

// PatchOptions configures Patch.
type PatchOptions struct {
	// Factories are config factory calls whose arguments are config entries.
	// Empty means OBEslintCfg, tseslint.config and defineConfig.
	Factories []string
	// TypeModule reports that package.json has "type": "module".
	TypeModule bool
	// OxlintConfig, when set, makes flat configs read the rules to turn off
	// from this Oxlint config instead of the recommended preset.
	OxlintConfig string
}

// OxlintFragment is what a flat config gains from Patch.
func OxlintFragment(oxlintConfig string) jsedit.Fragment {
	entry := "...oxlint.configs['flat/recommended']"
	if oxlintConfig != "" {
		entry = fmt.Sprintf("...oxlint.buildFromOxlintConfigFile('./%s')", oxlintConfig)
	}
	return jsedit.Fragment{
		Marker: PluginOxlintPackage,
		Import: jsedit.ImportSpec{Module: PluginOxlintPackage, Name: "oxlint"},
		Entry:  entry,
	}
}

// Patch adds eslint-plugin-oxlint to src, the content of the ESLint config
// file name. Flat configs get an import and a config entry; legacy configs
// get the preset added to extends. Only the edited spans change. A config
// the engines cannot place the plugin in is returned unmodified with a
// Reason; err is reserved for input that could not be read at all.
func Patch(ctx context.Context, name, src string, opts PatchOptions) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Content: src, Reason: fmt.Sprintf("patch engine panic: %v", r)}
			err = internal.NewError(internal.KindShapeMismatch, name, fmt.Errorf("%v", r))
		}
	}()

	base := path.Base(name)
	switch ext := path.Ext(base); {
	case strings.HasPrefix(base, "eslint.config."):
		p := jsedit.NewPatcher(jsedit.Options{
			Factories: opts.Factories,
			Module:    jsedit.ModuleKindFor(name, src, opts.TypeModule),
		})
		return p.Apply(ctx, src, OxlintFragment(opts.OxlintConfig)), nil
	case ext == ".js" || ext == ".cjs" || ext == ".mjs":
		return jsedit.EnsureExtends(ctx, src, PluginOxlintExtends), nil
	case ext == ".yaml" || ext == ".yml":
		return jsedit.EnsureYAMLExtends(src, PluginOxlintExtends), nil
	}

	obj, perr := confmerge.ParseObject([]byte(src))
	if perr != nil {
		if base == ".eslintrc" {
			// a bare .eslintrc may hold YAML
			return jsedit.EnsureYAMLExtends(src, PluginOxlintExtends), nil
		}
		return Result{Content: src, Reason: "not valid JSON"}, internal.NewError(internal.KindParse, name, perr)
	}
	added, ok := confmerge.EnsureListMembership(obj, "extends", []any{PluginOxlintExtends})
	if !ok {
		return Result{Content: src, Shape: jsedit.ShapeUnrecognized, Reason: "extends is neither a list nor a string"}, nil
	}
	if len(added) == 0 {
		return Result{Content: src, Reason: fmt.Sprintf("already extends %q", PluginOxlintExtends)}, nil
	}
	out, merr := confmerge.Marshal(obj)
	if merr != nil {
		return Result{Content: src, Reason: merr.Error()}, internal.NewError(internal.KindParse, name, merr)
	}
	return Result{Content: string(out), Modified: true, Shape: jsedit.ShapeObjectLiteral}, nil
}
