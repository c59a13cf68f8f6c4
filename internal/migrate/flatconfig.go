package migrate

import (
	"context"
	"strings"

	"github.com/YakDriver/lintmigrate/internal/detect"
	"github.com/YakDriver/lintmigrate/internal/generate"
	"github.com/YakDriver/lintmigrate/internal/runner"
)

const migrationGuideURL = "https://eslint.org/docs/latest/use/configure/migration-guide"

// FlatConfigWorkflow converts a legacy .eslintrc* config to an ESLint v9 flat
// config with @eslint/migrate-config.
func FlatConfigWorkflow() Workflow {
	return Workflow{
		Name:        "flat-config",
		Title:       "ESLint flat config migration",
		Description: "ESLint upgrade (migrate a legacy config to v9 flat config)",
		Steps: []Step{
			projectStep(Tools{}),
			{Name: "detect-legacy", Order: orderDetect, Run: runDetectLegacy},
			{Name: "review", Order: orderDetect + 5, Run: runReviewLegacy},
			{Name: "backup", Order: orderConfig - 5, Run: runBackupLegacy},
			{Name: "convert", Order: orderConfig, Run: runConvertLegacy},
			{
				Name:  "install",
				Order: orderInstall,
				When:  func(s *Session) bool { return len(s.requiredPackages) > 0 },
				Run:   runInstallRequired,
			},
			{Name: "remove-legacy", Order: orderCleanup, Run: runRemoveLegacy},
			{Name: "next-steps", Order: orderUsage, Run: runFlatNextSteps},
			completionStep(),
		},
	}
}

func runDetectLegacy(_ context.Context, s *Session) error {
	m, err := s.Manifest()
	if err != nil {
		return err
	}
	cfg, err := detect.FindESLintConfig(s.FS, m, detect.LegacyFirst)
	if err != nil {
		return err
	}
	switch {
	case cfg == nil:
		return stop("No ESLint config found, nothing to migrate.")
	case cfg.Kind != detect.ESLintLegacy:
		return stop(cfg.File + " is already a flat config.")
	case cfg.InPackageJSON():
		s.Out.Info("The config lives in package.json#%s.", detect.ESLintPackageField)
		s.Out.Plain("Move it into .eslintrc.json first, then run this again.")
		return abandon("@eslint/migrate-config needs a standalone config file")
	}
	s.ESLint = cfg
	s.Out.Section("Found " + cfg.File)
	return nil
}

func runReviewLegacy(ctx context.Context, s *Session) error {
	cfg := s.ESLint
	if cfg.Format == detect.FormatJS {
		s.Out.Warn("%s is JavaScript. The converter evaluates it, so the result may need manual edits.", cfg.File)
		ok, err := s.Confirm(ctx, "Continue anyway?")
		if err != nil {
			return err
		}
		if !ok {
			return stop("Cancelled")
		}
	}
	if found := NewMigrationDetector().Find(cfg.Content); len(found) > 0 {
		s.Out.Warn("The config uses %s; check those parts of the result by hand.", strings.Join(found, ", "))
		s.Summary.Warn("%s uses %s, review the converted config", cfg.File, strings.Join(found, ", "))
	}

	s.Out.Plain("Current config:")
	s.Out.Preview(cfg.Content, 20)

	ok, err := s.Confirm(ctx, "Migrate %s to %s?", cfg.File, generate.ESLintConfigFile)
	if err != nil {
		return err
	}
	if !ok {
		return stop("Cancelled")
	}
	return nil
}

func runBackupLegacy(ctx context.Context, s *Session) error {
	ok, err := s.Confirm(ctx, "Back up %s first? (recommended)", s.ESLint.File)
	if err != nil || !ok {
		return err
	}
	backup := s.ESLint.File + ".backup"
	if err := s.WriteFile(backup, s.ESLint.Content); err != nil {
		return err
	}
	s.backupFile = backup
	s.Out.Success("Backed up to %s", backup)
	return nil
}

func runConvertLegacy(ctx context.Context, s *Session) error {
	target := generate.ESLintConfigFile
	ok, err := s.ConfirmOverwrite(ctx, target)
	if err != nil {
		return err
	}
	if !ok {
		return abandon("Keeping the existing " + target + ", migration not run")
	}

	s.Out.Info("Running %s", runner.ESLintMigrateTool)
	out, err := s.Runner.Run(ctx, runner.MigrateESLintConfig(s.ESLint.File))
	if err != nil {
		s.Log.Warn("eslint migration failed: %v", err)
		if runner.Classify(out, err) != runner.FailureUnknown {
			s.printFlatRemediation()
			return abandon("The config could not be converted automatically")
		}
		s.Out.Error("%v", err)
		return abandon(runner.ESLintMigrateTool + " failed")
	}
	if !s.Options.DryRun && !s.FS.Exists(target) {
		return abandon(runner.ESLintMigrateTool + " finished without writing " + target)
	}
	s.Summary.AddConfig(target)
	s.Out.Success("Wrote %s", target)
	s.requiredPackages = runner.ExtractRequiredPackages(out.Combined())
	return nil
}

func (s *Session) printFlatRemediation() {
	s.Out.Warn("The config uses dynamic logic the converter cannot evaluate.")
	s.Out.Section("How to fix it")
	s.Out.Plain("1. Replace require.resolve() and other calls with plain strings.")
	s.Out.Plain("2. Inline spread or computed values.")
	s.Out.Plain("3. Run this again, or write %s by hand:", generate.ESLintConfigFile)
	s.Out.Code(migrationGuideURL)
}

func runInstallRequired(ctx context.Context, s *Session) error {
	pkgs := s.requiredPackages
	s.Out.Section("The new config needs these packages")
	for _, p := range pkgs {
		s.Out.Bullet("%s", p)
	}
	ok, err := s.Confirm(ctx, "Install them now?")
	if err != nil {
		return err
	}
	if !ok {
		cmd := runner.Install(s.PackageManager(), pkgs, true)
		s.Out.Plain("Install them later with:")
		s.Out.Code(cmd.String())
		s.Summary.AddTips("install the packages the flat config needs: " + cmd.String())
		return nil
	}
	s.Install(ctx, pkgs...)
	return nil
}

func runRemoveLegacy(ctx context.Context, s *Session) error {
	old := s.ESLint.File
	ok, err := s.ConfirmRisky(ctx, "Delete the old config %s?", old)
	if err != nil || !ok {
		return err
	}
	if err := s.RemoveFile(old); err != nil {
		return err
	}
	s.Out.Success("Deleted %s", old)
	return nil
}

func runFlatNextSteps(_ context.Context, s *Session) error {
	s.Summary.AddUsage("Check the new config", "npx eslint .")
	if s.backupFile != "" {
		s.Summary.AddTips("the original config is saved as " + s.backupFile + ", delete it once the new config works")
	}
	s.Summary.AddTips(
		"review "+generate.ESLintConfigFile+" and drop compatibility shims you no longer need",
		"migration guide: "+migrationGuideURL,
	)
	return nil
}
