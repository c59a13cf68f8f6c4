package migrate

import (
	"context"
	"strings"

	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/detect"
	"github.com/YakDriver/lintmigrate/internal/generate"
	"github.com/YakDriver/lintmigrate/internal/runner"
)

// OxlintWorkflow sets up Oxlint, converting an existing ESLint config when
// there is one.
func OxlintWorkflow() Workflow {
	return Workflow{
		Name:        "oxlint",
		Title:       "Oxlint setup",
		Description: "Oxlint (fast linting)",
		Steps: []Step{
			projectStep(Tools{Oxlint: true, Prettier: true}),
			languageStep(),
			detectESLintStep(detect.LegacyFirst),
			{Name: "oxlint-config", Order: orderConfig, Run: runOxlintConfig},
			installStep(),
			scriptsStep(),
			lintStagedStep("oxlint", nil),
			vscodeStep(),
			cleanupStep(),
			usageStep(),
			completionStep(),
		},
	}
}

// detectESLintStep records the project's ESLint config, if any.
func detectESLintStep(order detect.Order) Step {
	return Step{
		Name:  "detect-eslint",
		Order: orderDetect,
		Run: func(_ context.Context, s *Session) error {
			m, err := s.Manifest()
			if err != nil {
				return err
			}
			cfg, err := detect.FindESLintConfig(s.FS, m, order)
			if err != nil {
				return err
			}
			s.ESLint = cfg
			if cfg != nil {
				s.Log.Info("eslint config: %s (%s, %s)", cfg.File, cfg.Kind, cfg.Format)
			}
			return nil
		},
	}
}

func runOxlintConfig(ctx context.Context, s *Session) error {
	target := s.Config.OxlintConfigPath()
	if s.ESLint == nil {
		ok, err := s.ConfirmOverwrite(ctx, target)
		if err != nil {
			return err
		}
		if !ok {
			s.Out.Warn("Keeping the existing %s", target)
			return nil
		}
		return s.writeBaseOxlintConfig(target, false)
	}

	s.Out.Section("ESLint config " + s.ESLint.File)
	s.Out.Info("Converting it to %s with %s", target, runner.OxlintMigrateTool)
	if s.FS.Exists(target) {
		ok, err := s.ConfirmRisky(ctx, "%s already exists. Overwrite it?", target)
		if err != nil {
			return err
		}
		if !ok {
			s.Out.Warn("Skipped the conversion, keeping %s", target)
			return nil
		}
	}
	if found := NewMigrationDetector().Find(s.ESLint.Content); len(found) > 0 {
		s.Out.Warn("%s uses %s, which the converter may not evaluate", s.ESLint.File, strings.Join(found, ", "))
	}

	if _, err := s.Runner.Run(ctx, runner.MigrateToOxlint(s.ESLint.File, target)); err != nil {
		s.Log.Warn("oxlint migration failed: %v", err)
		return s.oxlintFallback(target)
	}
	if s.Options.DryRun && !s.FS.Exists(target) {
		s.Summary.AddConfig(target)
		return nil
	}
	if err := s.fixOxlintConfig(target); err != nil {
		s.Log.Warn("post-processing %s failed: %v", target, err)
		return s.oxlintFallback(target)
	}
	s.Summary.AddConfig(target)
	s.Out.Success("Converted %s to %s", s.ESLint.File, target)
	return nil
}

// fixOxlintConfig cleans up the converter's output: pseudo-comment rules go,
// rules Oxlint names differently are renamed and the plugins the project
// needs are listed.
func (s *Session) fixOxlintConfig(target string) error {
	cfg, err := s.ReadJSON(target)
	if err != nil {
		return err
	}
	purged := confmerge.PurgeCommentPseudoKeys(cfg, s.Config.Markers()...)
	renamed := confmerge.RenameRuleKeys(cfg, s.ruleRenames())
	plugins := generate.OxlintPlugins(s.TypeScript, s.React)
	added, ok := confmerge.EnsureListMembership(cfg, "plugins", plugins)
	if !ok {
		s.Summary.Warn("plugins in %s is not a list, add %v by hand", target, plugins)
	}
	if len(purged) == 0 && !renamed && len(added) == 0 {
		return nil
	}
	if len(purged) > 0 {
		s.Out.Info("Removed %d comment entries from the rules", len(purged))
	}
	return s.WriteJSON(target, cfg)
}

func (s *Session) oxlintFallback(target string) error {
	s.printOxlintRemediation()
	s.Summary.Warn("%s could not convert %s, a base config was written instead", runner.OxlintMigrateTool, s.ESLint.File)
	return s.writeBaseOxlintConfig(target, true)
}

func (s *Session) writeBaseOxlintConfig(target string, fallback bool) error {
	if err := s.WriteJSON(target, generate.BaseOxlintConfig(s.TypeScript, s.React)); err != nil {
		return err
	}
	s.Summary.AddConfig(target)
	s.Out.Success("Wrote a base Oxlint config to %s", target)
	if fallback {
		s.Out.Plain("Move your rules into %s by hand later.", target)
	}
	return nil
}

func (s *Session) printOxlintRemediation() {
	s.Out.Warn("%s could not convert the ESLint config", runner.OxlintMigrateTool)
	s.Out.Rule()
	s.Out.Plain("Likely cause: the config contains dynamic logic such as require.resolve().")
	s.Out.Rule()
	s.Out.Section("How to fix it")
	s.Out.Plain("1. Replace require.resolve() calls with plain strings, for example")
	s.Out.Code(`require.resolve("@alipay/bigfish/eslint")  becomes  "@alipay/bigfish/eslint"`)
	s.Out.Plain("2. Simplify the config and remove function calls.")
	s.Out.Plain("3. Or migrate to a flat config first and convert that:")
	s.Out.Code("lintmigrate flat-config\nnpx " + runner.OxlintMigrateTool + " " + generate.ESLintConfigFile)
}
