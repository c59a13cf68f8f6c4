package migrate

import (
	"context"
	"errors"
	"strings"

	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/detect"
	"github.com/YakDriver/lintmigrate/internal/generate"
)

// OxfmtWorkflow replaces Prettier with oxfmt.
func OxfmtWorkflow() Workflow {
	return Workflow{
		Name:        "oxfmt",
		Title:       "Prettier to oxfmt",
		Description: "Oxfmt (formatter migration, replaces Prettier)",
		Steps: []Step{
			projectStep(Tools{Oxfmt: true}),
			{Name: "detect-prettier", Order: orderDetect, Run: runDetectPrettier},
			{Name: "oxfmt-config", Order: orderConfig, Run: runOxfmtConfig},
			{Name: "remove-prettier", Order: orderInstall - 5, Run: runRemovePrettier},
			{Name: "install", Order: orderInstall, Run: func(ctx context.Context, s *Session) error {
				s.Install(ctx, "oxfmt")
				return nil
			}},
			{Name: "format-scripts", Order: orderScripts, Run: runFormatScripts},
			lintStagedStep("oxfmt", nil),
			{Name: "vscode", Order: orderVSCode, Run: runOxfmtVSCode},
			usageStep(),
			{Name: "tips", Order: orderUsage + 1, Run: runOxfmtTips},
			completionStep(),
		},
	}
}

func runDetectPrettier(ctx context.Context, s *Session) error {
	m, err := s.Manifest()
	if err != nil {
		return err
	}
	p := detect.DetectPrettier(s.FS, m)
	if !p.Found() {
		return stop("No Prettier found. Install Prettier or add a Prettier config first.")
	}
	s.Prettier = p

	s.Out.Section("Prettier")
	s.Out.Rule()
	if len(p.Packages) > 0 {
		s.Out.Plain("Installed packages: %s", strings.Join(p.Packages, ", "))
	}
	if p.ConfigFile != "" {
		s.Out.Plain("Config file: %s", p.ConfigFile)
	}
	s.Out.Rule()
	s.Out.Info("oxfmt is the Oxc formatter. It is faster than Prettier, compatible with it and pairs with Oxlint.")

	ok, err := s.Confirm(ctx, "Start the migration?")
	if err != nil {
		return err
	}
	if !ok {
		return stop("Cancelled")
	}
	return nil
}

// oxfmtConfig builds the oxfmt config: defaults, overlaid with the
// declarative Prettier config, minus keys oxfmt rejects, plus the
// .prettierignore patterns.
func (s *Session) oxfmtConfig() *confmerge.Object {
	p := s.Prettier
	if p.PackageField {
		s.Summary.Warn("the prettier field in package.json is not read by oxfmt, migrate it by hand")
	}
	if p.EditorConfig {
		s.Summary.Warn(".editorconfig is not applied by oxfmt")
	}

	cfg := generate.OxfmtDefaults()
	if p.ConfigFile != "" {
		prettier, err := detect.ReadObject(s.FS, p.ConfigFile, "")
		switch {
		case errors.Is(err, detect.ErrNotDeclarative):
			s.Out.Warn("%s is JavaScript and is not executed, using defaults", p.ConfigFile)
			s.Summary.Warn("%s was not migrated, copy its options into %s by hand", p.ConfigFile, s.Config.OxfmtConfigPath())
		case err != nil:
			s.Out.Warn("Could not read %s, using defaults: %v", p.ConfigFile, err)
			s.Summary.Warn("%s could not be read: %v", p.ConfigFile, err)
		default:
			for _, w := range detect.PrettierWarnings(prettier) {
				s.Summary.Warn("%s", w)
			}
			cfg = confmerge.MergeDefaults(cfg, prettier)
		}
	}

	if removed := confmerge.RemoveUnsupportedKeys(cfg, s.Config.UnsupportedKeys("oxfmt")); len(removed) > 0 {
		s.Summary.AddRemovedFields(removed...)
		s.Summary.Warn("removed unsupported fields: %s", strings.Join(removed, ", "))
	}

	patterns, err := detect.PrettierIgnorePatterns(s.FS)
	if err != nil {
		s.Out.Warn("Could not read %s: %v", detect.PrettierIgnoreFile, err)
	} else if len(patterns) > 0 {
		members := make([]any, len(patterns))
		for i, pat := range patterns {
			members[i] = pat
		}
		if _, ok := confmerge.EnsureListMembership(cfg, "ignorePatterns", members); ok {
			s.Out.Success("Copied ignore patterns from %s", detect.PrettierIgnoreFile)
		} else {
			s.Summary.Warn("ignorePatterns is not a list, copy %s by hand", detect.PrettierIgnoreFile)
		}
	}
	return cfg
}

func runOxfmtConfig(ctx context.Context, s *Session) error {
	target := s.Config.OxfmtConfigPath()
	cfg := s.oxfmtConfig()
	ok, err := s.ConfirmOverwrite(ctx, target)
	if err != nil {
		return err
	}
	if !ok {
		s.Out.Warn("Keeping the existing %s", target)
		return nil
	}
	if err := s.WriteJSON(target, cfg); err != nil {
		return err
	}
	s.Summary.AddConfig(target)
	s.Out.Success("Wrote %s", target)

	old := s.Prettier.ConfigFile
	if old == "" {
		return nil
	}
	remove, err := s.ConfirmRisky(ctx, "Delete the old Prettier config %s?", old)
	if err != nil || !remove {
		return err
	}
	if err := s.RemoveFile(old); err != nil {
		return err
	}
	s.Out.Success("Deleted %s", old)
	return nil
}

func runRemovePrettier(ctx context.Context, s *Session) error {
	pkgs := s.Prettier.Packages
	if len(pkgs) == 0 {
		return nil
	}
	ok, err := s.ConfirmRisky(ctx, "Uninstall the Prettier packages (%s)?", strings.Join(pkgs, ", "))
	if err != nil || !ok {
		return err
	}
	s.Uninstall(ctx, pkgs...)
	return nil
}

func runFormatScripts(ctx context.Context, s *Session) error {
	ok, err := s.Confirm(ctx, "Add format scripts to package.json? (recommended)")
	if err != nil || !ok {
		return err
	}
	changed, err := s.addScripts([]script{
		{"format", "oxfmt"},
		{"format:check", "oxfmt --check"},
	})
	if err != nil {
		return err
	}
	if len(changed) > 0 {
		s.Out.Success("Added scripts: %s", strings.Join(changed, ", "))
	}
	return nil
}

func runOxfmtVSCode(ctx context.Context, s *Session) error {
	ok, err := s.Confirm(ctx, "Generate VSCode/Cursor settings (%s)? (recommended)", generate.VSCodeSettingsFile)
	if err != nil || !ok {
		return err
	}
	return s.mergeVSCode(
		generate.OxfmtVSCodeSettings(s.Config.OxfmtConfigPath()),
		generate.VSCodeOptions{Oxlint: true}.Extensions(),
	)
}

func runOxfmtTips(_ context.Context, s *Session) error {
	if len(s.Summary.Warnings) == 0 && len(s.Summary.RemovedFields) == 0 {
		return nil
	}
	s.Summary.AddTips(
		"printWidth defaults to 100 in oxfmt and 80 in Prettier; the generated config pins 80",
		"for import sorting, use the experimentalSortImports option",
		"formatter docs: https://oxc.rs/docs/guide/usage/formatting",
	)
	return nil
}
