package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/YakDriver/lintmigrate"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/detect"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
)

// PluginOxlintWorkflow adds eslint-plugin-oxlint to an existing ESLint
// config, so rules Oxlint already checks are turned off in ESLint.
func PluginOxlintWorkflow() Workflow {
	return Workflow{
		Name:        "eslint-plugin-oxlint",
		Title:       "eslint-plugin-oxlint setup",
		Description: "eslint-plugin-oxlint (run ESLint v9 and Oxlint together; ESLint rules Oxlint covers are turned off)",
		Steps: []Step{
			projectStep(Tools{}),
			{Name: "install", Order: orderDetect - 5, Run: runInstallPluginOxlint},
			{Name: "detect-eslint", Order: orderDetect, Run: runDetectPluginTarget},
			{Name: "patch", Order: orderConfig, Run: runPatchPluginOxlint},
			{Name: "lint-script", Order: orderScripts, Run: runPluginLintScript},
			{Name: "usage", Order: orderUsage, Run: func(_ context.Context, s *Session) error {
				s.Summary.AddUsage("Lint with Oxlint, then ESLint", s.RunScript("lint"))
				return nil
			}},
			completionStep(),
		},
	}
}

func runInstallPluginOxlint(ctx context.Context, s *Session) error {
	ok, err := s.Confirm(ctx, "Install %s?", lintmigrate.PluginOxlintPackage)
	if err != nil {
		return err
	}
	if !ok {
		return abandon("Cancelled before installing " + lintmigrate.PluginOxlintPackage)
	}
	if !s.Install(ctx, lintmigrate.PluginOxlintPackage) {
		return abandon(lintmigrate.PluginOxlintPackage + " could not be installed")
	}
	if s.FS.Exists(s.Config.OxlintConfigPath()) {
		s.Out.Info("Found %s; the plugin will turn off the rules it enables.", s.Config.OxlintConfigPath())
	} else {
		s.Out.Info("No %s found; the plugin will use its recommended preset.", s.Config.OxlintConfigPath())
	}
	return nil
}

func runDetectPluginTarget(_ context.Context, s *Session) error {
	m, err := s.Manifest()
	if err != nil {
		return err
	}
	cfg, err := detect.FindESLintConfig(s.FS, m, detect.FlatFirst)
	if err != nil {
		return err
	}
	if cfg == nil {
		s.Out.Plain("Set up ESLint first, for example with:")
		s.Out.Code("lintmigrate eslint")
		return abandon("No ESLint config found")
	}
	s.ESLint = cfg

	version := "unknown"
	if v := detect.ESLintMajorVersion(m); v > 0 {
		version = fmt.Sprintf("v%d", v)
	}
	s.Out.Info("ESLint config %s (%s, eslint %s)", cfg.File, cfg.Kind, version)
	if cfg.Kind == detect.ESLintLegacy {
		s.Out.Plain("Legacy configs work, but ESLint v9 expects a flat config. To migrate:")
		s.Out.Code("lintmigrate flat-config")
	}
	return nil
}

func runPatchPluginOxlint(ctx context.Context, s *Session) error {
	cfg := s.ESLint
	if cfg.InPackageJSON() {
		return s.patchPackageJSONExtends()
	}
	res, err := lintmigrate.Patch(ctx, cfg.File, cfg.Content, s.patchOptions())
	if err != nil {
		return err
	}
	return s.writePatch(res)
}

func (s *Session) patchOptions() lintmigrate.PatchOptions {
	opts := lintmigrate.PatchOptions{
		Factories:  s.factories(),
		TypeModule: s.Project != nil && s.Project.Module,
	}
	if path := s.Config.OxlintConfigPath(); s.FS.Exists(path) {
		opts.OxlintConfig = path
	}
	return opts
}

func (s *Session) patchPackageJSONExtends() error {
	supported := true
	changed, err := s.UpdateManifest(func(m *pkgjson.Manifest) bool {
		field, ok := m.Field(detect.ESLintPackageField)
		if !ok {
			return false
		}
		added, ok := confmerge.EnsureListMembership(field, "extends", []any{lintmigrate.PluginOxlintExtends})
		supported = ok
		return len(added) > 0
	})
	if err != nil {
		return err
	}
	if !supported {
		s.Out.Warn("package.json#%s was not changed: extends is neither a list nor a string", detect.ESLintPackageField)
		s.printPluginManual()
		return nil
	}
	if !changed {
		s.Out.Info("package.json#%s already extends %s", detect.ESLintPackageField, lintmigrate.PluginOxlintExtends)
		return nil
	}
	s.Summary.AddConfig(pkgjson.FileName + " (" + detect.ESLintPackageField + ")")
	s.Out.Success("Added %s to package.json#%s", lintmigrate.PluginOxlintExtends, detect.ESLintPackageField)
	return nil
}

func (s *Session) writePatch(res lintmigrate.Result) error {
	file := s.ESLint.File
	if !res.Modified && strings.HasPrefix(res.Reason, "already") {
		s.Out.Info("%s %s", file, res.Reason)
		return nil
	}
	if !res.Modified {
		s.Out.Warn("%s was not changed: %s", file, res.Reason)
		s.printPluginManual()
		return nil
	}
	if err := s.WriteFile(file, res.Content); err != nil {
		return err
	}
	s.Summary.AddConfig(file)
	s.Out.Success("Added %s to %s", lintmigrate.PluginOxlintPackage, file)
	if res.BestEffort {
		s.Summary.Warn("%s was edited as text, check that its extends list is correct", file)
	}
	return nil
}

func (s *Session) printPluginManual() {
	s.Summary.Warn("add %s to %s by hand", lintmigrate.PluginOxlintPackage, s.ESLint.File)
	if s.ESLint.Kind == detect.ESLintLegacy {
		s.Out.Plain("Add this to the extends list of %s by hand:", s.ESLint.File)
		s.Out.Code(fmt.Sprintf("%q", lintmigrate.PluginOxlintExtends))
		return
	}
	frag := lintmigrate.OxlintFragment(s.patchOptions().OxlintConfig)
	s.Out.Plain("Add the plugin to %s by hand, last in the config array:", s.ESLint.File)
	s.Out.Code(frag.Import.Statement(s.ESLint.Module) + "\n\n" + frag.Entry + ",")
}

func runPluginLintScript(ctx context.Context, s *Session) error {
	ok, err := s.Confirm(ctx, "Run Oxlint before ESLint in the lint script? (recommended)")
	if err != nil || !ok {
		return err
	}
	var script string
	changed, err := s.UpdateManifest(func(m *pkgjson.Manifest) bool {
		var changed bool
		script, changed = m.PrefixLintScript("npx oxlint", "npx oxlint && npx eslint")
		return changed
	})
	if err != nil {
		return err
	}
	if !changed {
		s.Out.Info("The lint script already runs Oxlint: %s", script)
		return nil
	}
	s.Summary.AddScripts("lint: " + script)
	s.Out.Success("lint: %s", script)
	return nil
}
