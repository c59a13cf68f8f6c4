package migrate

import (
	"context"
	"errors"
	"strings"

	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/detect"
	"github.com/YakDriver/lintmigrate/internal/generate"
)

// ESLintWorkflow sets up ESLint v9 through @oceanbase/lint-config, with
// optional Stylelint.
func ESLintWorkflow() Workflow {
	return Workflow{
		Name:        "eslint",
		Title:       "@oceanbase/lint-config setup",
		Description: "@oceanbase/lint-config (ESLint v9 & Stylelint v16)",
		Steps: []Step{
			projectStep(Tools{ESLint: true, Prettier: true}),
			languageStep(),
			detectESLintStep(detect.LegacyFirst),
			{Name: "eslint-config", Order: orderConfig, Run: runESLintConfig},
			{Name: "stylelint-config", Order: orderConfig + 5, Run: runStylelintConfig},
			installStep(),
			scriptsStep(),
			vscodeStep(),
			usageStep(),
			completionStep(),
		},
	}
}

// carriedRules asks whether to bring the rules of the existing legacy config
// into the generated one. JavaScript configs are not executed, so their
// rules stay behind.
func (s *Session) carriedRules(ctx context.Context) (*confmerge.Object, error) {
	old := s.ESLint
	if old == nil || old.Kind != detect.ESLintLegacy {
		return nil, nil
	}
	rules, err := detect.ReadESLintRules(s.FS, old)
	switch {
	case errors.Is(err, detect.ErrNotDeclarative):
		s.Out.Info("%s is JavaScript; copy its rules into %s by hand.", old.File, generate.ESLintConfigFile)
		return nil, nil
	case err != nil:
		s.Out.Warn("Could not read rules from %s: %v", old.File, err)
		s.Summary.Warn("rules in %s were not carried over: %v", old.File, err)
		return nil, nil
	case len(rules.Keys()) == 0:
		return nil, nil
	}
	ok, err := s.Confirm(ctx, "Carry over %d rules from %s?", len(rules.Keys()), old.File)
	if err != nil || !ok {
		return nil, err
	}
	return rules, nil
}

func runESLintConfig(ctx context.Context, s *Session) error {
	s.Out.Section("Options (on by default, change them in the config file)")
	if s.TypeScript {
		s.Out.Bullet("TypeScript support")
	}
	if s.React {
		s.Out.Bullet("React support")
	}
	s.Out.Bullet("Prettier formatting")
	s.Out.Bullet("import rules")

	rules, err := s.carriedRules(ctx)
	if err != nil {
		return err
	}
	content, err := generate.ESLintConfig(generate.ESLintOptions{
		TypeScript: s.TypeScript,
		React:      s.React,
		Prettier:   s.Use.Prettier,
		Import:     true,
		Rules:      rules,
	})
	if err != nil {
		return err
	}

	ok, err := s.ConfirmOverwrite(ctx, generate.ESLintConfigFile)
	if err != nil {
		return err
	}
	if !ok {
		s.Out.Warn("Keeping the existing %s", generate.ESLintConfigFile)
		return nil
	}
	if err := s.WriteFile(generate.ESLintConfigFile, content); err != nil {
		return err
	}
	s.Summary.AddConfig(generate.ESLintConfigFile)
	s.Out.Success("Wrote %s", generate.ESLintConfigFile)
	return nil
}

func runStylelintConfig(ctx context.Context, s *Session) error {
	ok, err := s.ConfirmRisky(ctx, "Set up Stylelint for CSS/Less?")
	if err != nil || !ok {
		return err
	}
	s.Use.Stylelint = true

	m, err := s.Manifest()
	if err != nil {
		return err
	}
	rules := confmerge.New()
	if old := detect.FindStylelintConfig(s.FS, m); old != "" && old != generate.StylelintConfigFile {
		s.Out.Info("Found Stylelint config %s", old)
		carry, err := s.Confirm(ctx, "Carry over its rules?")
		if err != nil {
			return err
		}
		if carry {
			found, err := detect.ReadStylelintRules(s.FS, old)
			switch {
			case errors.Is(err, detect.ErrNotDeclarative):
				s.Out.Info("%s is JavaScript; copy its rules into %s by hand.", old, generate.StylelintConfigFile)
			case err != nil:
				s.Out.Warn("Could not read %s: %v", old, err)
				s.Summary.Warn("Stylelint rules in %s were not carried over: %v", old, err)
			default:
				rules = found.Rules
				if len(found.Extends) > 0 {
					s.Summary.Warn("%s extended %s; check those presets are still wanted alongside OBStylelintCfg",
						old, strings.Join(found.Extends, ", "))
				}
			}
		}
	}

	content, err := generate.StylelintConfig(rules)
	if err != nil {
		return err
	}
	ok, err = s.ConfirmOverwrite(ctx, generate.StylelintConfigFile)
	if err != nil {
		return err
	}
	if !ok {
		s.Out.Warn("Keeping the existing %s", generate.StylelintConfigFile)
		return nil
	}
	if err := s.WriteFile(generate.StylelintConfigFile, content); err != nil {
		return err
	}
	s.Summary.AddConfig(generate.StylelintConfigFile)
	s.Out.Success("Wrote %s", generate.StylelintConfigFile)
	return nil
}
