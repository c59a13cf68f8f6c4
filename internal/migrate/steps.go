package migrate

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/YakDriver/lintmigrate/internal"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/detect"
	"github.com/YakDriver/lintmigrate/internal/generate"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
	"github.com/YakDriver/lintmigrate/internal/runner"
)

// Step orders shared by the workflows. Workflow-specific steps slot in
// between.
const (
	orderProject    = 0
	orderLanguage   = 10
	orderDetect     = 20
	orderConfig     = 30
	orderInstall    = 40
	orderScripts    = 50
	orderLintStaged = 60
	orderVSCode     = 70
	orderCleanup    = 80
	orderUsage      = 90
	orderComplete   = 100
)

// projectStep loads package.json and inspects the project. A missing or
// unreadable manifest is fatal.
func projectStep(use Tools) Step {
	return Step{
		Name:  "project",
		Order: orderProject,
		Run: func(_ context.Context, s *Session) error {
			m, err := s.Manifest()
			if err != nil {
				if internal.KindOf(err) == internal.KindParse {
					return internal.WithHint(internal.NewError(internal.KindPrecondition, pkgjson.FileName, err),
						"fix the JSON syntax in package.json and run again")
				}
				return err
			}
			s.Project = detect.DetectProject(s.FS, m, s.Config.PackageManager())
			s.Use = use
			s.Log.Info("project: typescript=%t react=%t module=%t package manager=%s",
				s.Project.TypeScript, s.Project.React, s.Project.Module, s.Project.PackageManager)
			if s.Options.DryRun {
				s.Out.Info("Dry run: nothing is written and no commands are run.")
			}
			return nil
		},
	}
}

// languageStep settles TypeScript and React support, asking only when the
// project does not show it.
func languageStep() Step {
	return Step{
		Name:  "language",
		Order: orderLanguage,
		Run: func(ctx context.Context, s *Session) error {
			var err error
			if s.TypeScript = s.Project.TypeScript; !s.TypeScript {
				if s.TypeScript, err = s.ConfirmRisky(ctx, "Does this project use TypeScript?"); err != nil {
					return err
				}
			}
			if s.React = s.Project.React; !s.React {
				if s.React, err = s.ConfirmRisky(ctx, "Does this project use React?"); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// installStep installs the packages the chosen tools need.
func installStep() Step {
	return Step{
		Name:  "install",
		Order: orderInstall,
		Run: func(ctx context.Context, s *Session) error {
			pkgs := generate.SetupPackages(generate.PackageOptions{
				ESLint:    s.Use.ESLint,
				Oxlint:    s.Use.Oxlint,
				Stylelint: s.Use.Stylelint,
				Prettier:  s.Use.Prettier,
			})
			if len(pkgs) == 0 {
				return nil
			}
			s.Out.Section("Dependencies")
			for _, p := range pkgs {
				s.Out.Bullet("%s", p)
			}
			ok, err := s.Confirm(ctx, "Install these packages now?")
			if err != nil || !ok {
				return err
			}
			s.Install(ctx, pkgs...)
			return nil
		},
	}
}

type script struct {
	Name    string
	Command string
}

// lintScripts lists the package.json scripts for the chosen tools.
func lintScripts(use Tools) []script {
	var out []script
	if use.ESLint {
		lint := "eslint ."
		if use.Oxlint {
			lint = "oxlint && eslint ."
		}
		out = append(out, script{"lint", lint}, script{"lint:fix", "eslint . --fix"})
	}
	if use.Oxlint {
		out = append(out, script{"lint:oxlint", "oxlint"}, script{"lint:oxlint:fix", "oxlint --fix"})
	}
	if use.Stylelint {
		out = append(out,
			script{"lint:css", "stylelint '**/*.{css,less}'"},
			script{"lint:fix:css", "stylelint '**/*.{css,less}' --fix"},
		)
	}
	return out
}

// addScripts sets scripts in package.json and records the changed names.
func (s *Session) addScripts(scripts []script) ([]string, error) {
	var changed []string
	_, err := s.UpdateManifest(func(m *pkgjson.Manifest) bool {
		for _, sc := range scripts {
			if m.SetScript(sc.Name, sc.Command) {
				changed = append(changed, sc.Name)
			}
		}
		return len(changed) > 0
	})
	if err != nil {
		return nil, err
	}
	s.Summary.AddScripts(changed...)
	return changed, nil
}

func scriptsStep() Step {
	return Step{
		Name:  "scripts",
		Order: orderScripts,
		Run: func(ctx context.Context, s *Session) error {
			scripts := lintScripts(s.Use)
			if len(scripts) == 0 {
				return nil
			}
			ok, err := s.Confirm(ctx, "Add lint scripts to package.json?")
			if err != nil || !ok {
				return err
			}
			changed, err := s.addScripts(scripts)
			if err != nil {
				return err
			}
			if len(changed) > 0 {
				s.Out.Success("Added scripts: %s", strings.Join(changed, ", "))
			}
			return nil
		},
	}
}

// lintStagedRule returns the configured lint-staged rule for tool.
func (s *Session) lintStagedRule(tool string) (confmerge.LintStagedRule, error) {
	ls, ok := s.Config.LintStagedFor(tool)
	if !ok {
		return confmerge.LintStagedRule{}, fmt.Errorf("no lint_staged block configured for %s", tool)
	}
	return confmerge.LintStagedRule{
		Pattern:         ls.Pattern,
		Command:         ls.Command,
		Replaces:        ls.Replaces,
		PartialPatterns: ls.PartialPatterns,
	}, nil
}

// lintStagedStep merges tool's command into lint-staged and wires a husky
// pre-commit hook.
func lintStagedStep(tool string, when func(s *Session) bool) Step {
	return Step{
		Name:  "lint-staged",
		Order: orderLintStaged,
		When:  when,
		Run: func(ctx context.Context, s *Session) error {
			rule, err := s.lintStagedRule(tool)
			if err != nil {
				return err
			}
			ok, err := s.Confirm(ctx, "Configure lint-staged to run %s on staged files before each commit?", tool)
			if err != nil || !ok {
				return err
			}

			m, err := s.Manifest()
			if err != nil {
				return err
			}
			if !m.HasDependency("lint-staged") {
				install, err := s.Confirm(ctx, "lint-staged is not installed. Install it now?")
				if err != nil {
					return err
				}
				if install {
					s.Install(ctx, "lint-staged")
				}
			}

			changed, err := s.UpdateManifest(func(m *pkgjson.Manifest) bool {
				return confmerge.MergeLintStaged(m.LintStaged(), rule)
			})
			if err != nil {
				return err
			}
			if changed {
				s.Summary.AddConfig(pkgjson.FileName + " (lint-staged)")
				s.Out.Success("Updated lint-staged: %s runs %q", rule.Pattern, rule.Command)
			}
			return s.setupHusky(ctx)
		},
	}
}

// setupHusky makes the pre-commit hook run lint-staged, installing husky
// first when the user wants it.
func (s *Session) setupHusky(ctx context.Context) error {
	m, err := s.Manifest()
	if err != nil {
		return err
	}

	if !m.HasDependency("husky") {
		s.Out.Info("lint-staged runs on commit only through a git hook, which husky manages.")
		ok, err := s.ConfirmRisky(ctx, "Install husky? (optional)")
		if err != nil || !ok {
			return err
		}
		if !s.Install(ctx, "husky") {
			return nil
		}
		if err := s.addPrepareScript(); err != nil {
			return err
		}
		if _, err := s.Runner.Run(ctx, runner.HuskyInit()); err != nil {
			s.Out.Warn("husky init failed, run it manually: %s", runner.HuskyInit())
			s.Summary.Warn("husky init failed, run it manually: %s", runner.HuskyInit())
			return nil
		}
		if err := s.WriteHook(generate.PreCommitFile, generate.PreCommitHook); err != nil {
			return err
		}
		s.Summary.AddConfig(generate.PreCommitFile)
		s.Out.Success("Initialized husky with a pre-commit hook")
		return nil
	}

	if err := s.addPrepareScript(); err != nil {
		return err
	}
	if !s.FS.Exists(generate.PreCommitFile) {
		if err := s.WriteHook(generate.PreCommitFile, generate.PreCommitHook); err != nil {
			return err
		}
		s.Summary.AddConfig(generate.PreCommitFile)
		s.Out.Success("Created %s", generate.PreCommitFile)
		return nil
	}
	current, err := s.ReadFile(generate.PreCommitFile)
	if err != nil {
		return err
	}
	next, changed := generate.PreCommitWithLintStaged(current)
	if !changed {
		return nil
	}
	if err := s.WriteHook(generate.PreCommitFile, next); err != nil {
		return err
	}
	s.Summary.AddConfig(generate.PreCommitFile)
	s.Out.Success("Updated %s", generate.PreCommitFile)
	return nil
}

func (s *Session) addPrepareScript() error {
	changed, err := s.UpdateManifest(func(m *pkgjson.Manifest) bool {
		if _, ok := m.Script("prepare"); ok {
			return false
		}
		return m.SetScript("prepare", "husky")
	})
	if err != nil {
		return err
	}
	if changed {
		s.Summary.AddScripts("prepare")
		s.Out.Success("Added the prepare script to package.json")
	}
	return nil
}

// mergeVSCode merges generated into .vscode/settings.json. An unreadable
// existing file is replaced.
func (s *Session) mergeVSCode(generated *confmerge.Object, exts []generate.Extension) error {
	existing := confmerge.New()
	if s.FS.Exists(generate.VSCodeSettingsFile) {
		obj, err := s.ReadJSON(generate.VSCodeSettingsFile)
		if err != nil {
			s.Out.Warn("Could not read %s, writing a new one: %v", generate.VSCodeSettingsFile, err)
		} else {
			existing = obj
		}
	}
	merged := confmerge.MergeVSCodeSettings(existing, generated)
	if err := s.WriteJSON(generate.VSCodeSettingsFile, merged); err != nil {
		return err
	}
	s.VSCode = true
	s.Summary.AddConfig(generate.VSCodeSettingsFile)
	s.Summary.AddExtensions(exts...)
	s.Out.Success("Wrote %s", generate.VSCodeSettingsFile)
	return nil
}

func vscodeStep() Step {
	return Step{
		Name:  "vscode",
		Order: orderVSCode,
		Run: func(ctx context.Context, s *Session) error {
			ok, err := s.Confirm(ctx, "Generate VSCode settings (%s)?", generate.VSCodeSettingsFile)
			if err != nil || !ok {
				return err
			}
			opts := generate.VSCodeOptions{
				ESLint:    s.Use.ESLint,
				Oxlint:    s.Use.Oxlint,
				Stylelint: s.Use.Stylelint,
				Prettier:  s.Use.Prettier && !s.Use.Oxfmt,
			}
			return s.mergeVSCode(generate.VSCodeSettings(opts), opts.Extensions())
		},
	}
}

// cleanupStep offers to uninstall ESLint packages once Oxlint replaces
// ESLint. Prettier and its ESLint bridges stay.
func cleanupStep() Step {
	return Step{
		Name:  "cleanup",
		Order: orderCleanup,
		When:  func(s *Session) bool { return s.Use.Oxlint && !s.Use.ESLint },
		Run: func(ctx context.Context, s *Session) error {
			m, err := s.Manifest()
			if err != nil {
				return err
			}
			var pkgs []string
			for _, p := range m.Dependencies(detect.ESLintPackages...) {
				if !slices.Contains(detect.PrettierPackages, p) {
					pkgs = append(pkgs, p)
				}
			}
			if len(pkgs) == 0 {
				return nil
			}
			s.Out.Info("Found ESLint packages: %s", strings.Join(pkgs, ", "))
			ok, err := s.ConfirmRisky(ctx, "Uninstall them? Recommended now that Oxlint does the linting.")
			if err != nil || !ok {
				return err
			}
			s.Uninstall(ctx, pkgs...)
			return nil
		},
	}
}

// usageStep records how to run the tools that were set up.
func usageStep() Step {
	return Step{
		Name:  "usage",
		Order: orderUsage,
		Run: func(_ context.Context, s *Session) error {
			if s.Use.ESLint {
				s.Summary.AddUsage("ESLint check", s.RunScript("lint"))
				s.Summary.AddUsage("ESLint fix", s.RunScript("lint:fix"))
			}
			if s.Use.Oxlint {
				s.Summary.AddUsage("Oxlint check", s.RunScript("lint:oxlint"))
				s.Summary.AddUsage("Oxlint fix", s.RunScript("lint:oxlint:fix"))
			}
			if s.Use.Stylelint {
				s.Summary.AddUsage("Stylelint check", s.RunScript("lint:css"))
				s.Summary.AddUsage("Stylelint fix", s.RunScript("lint:fix:css"))
			}
			if s.Use.Oxfmt {
				s.Summary.AddUsage("Format", s.RunScript("format"))
				s.Summary.AddUsage("Check formatting", s.RunScript("format:check"))
			}
			return nil
		},
	}
}

func completionStep() Step {
	return Step{
		Name:  "complete",
		Order: orderComplete,
		Run: func(_ context.Context, s *Session) error {
			s.Summary.Print(s.Out)
			return nil
		},
	}
}
