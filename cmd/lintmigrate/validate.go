package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/YakDriver/lintmigrate/internal"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate lintmigrate configuration for a project",
	Long:  `Validate the merged lintmigrate configuration for a project. Checks for parse errors, config loading issues and values a migration would trip over.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		dir, cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config load error: %v\n", err)
			return fmt.Errorf("config validation failed")
		}
		fmt.Fprintf(w, "Validating configuration...\nProject dir: %s\n", dir)

		allErrs := unjoin(internal.Validate(cfg))
		allWarnings := validateTools(cfg)
		allWarnings = append(allWarnings, validateFactories(cfg)...)

		fmt.Fprintln(w, "Merged config:")
		hclBytes, err := convertConfigToHCL(cfg)
		if err != nil {
			return fmt.Errorf("failed to convert config to HCL: %w", err)
		}
		fmt.Fprintln(w, string(hclBytes))

		if len(allWarnings) > 0 {
			fmt.Fprintln(w, "\nWarnings:")
			for _, warning := range allWarnings {
				fmt.Fprintf(w, "  - %s\n", warning)
			}
		}
		if len(allErrs) > 0 {
			fmt.Fprintln(w, "\nErrors:")
			for _, e := range allErrs {
				fmt.Fprintf(w, "  - %s\n", e)
			}
			return fmt.Errorf("config validation failed (%d error(s))", len(allErrs))
		}

		fmt.Fprintln(w, "Config loaded and validated successfully.")
		return nil
	},
}

// knownTools are the tool labels the workflows look up.
var knownTools = []string{"oxlint", "oxfmt", "eslint", "stylelint", "prettier"}

func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

// validateTools warns about unsupported_key and lint_staged blocks no
// workflow will read.
func validateTools(cfg *internal.Config) (warnings []string) {
	for _, u := range cfg.UnsupportedKey {
		if !slices.Contains(knownTools, u.Tool) {
			warnings = append(warnings, fmt.Sprintf("unsupported_key %q is not a tool lintmigrate configures", u.Tool))
		}
	}
	for _, l := range cfg.LintStaged {
		if !slices.Contains(knownTools, l.Tool) {
			warnings = append(warnings, fmt.Sprintf("lint_staged %q is not a tool lintmigrate configures", l.Tool))
		}
		if l.Replaces != "" && !slices.Contains(knownTools, l.Replaces) {
			warnings = append(warnings, fmt.Sprintf("lint_staged %q replaces unknown tool %q", l.Tool, l.Replaces))
		}
	}
	return warnings
}

// validateFactories warns about settings that turn patching into a no-op.
func validateFactories(cfg *internal.Config) (warnings []string) {
	if len(cfg.Factories) > 0 && len(cfg.FactoryNames()) == 0 {
		warnings = append(warnings, "every factory is disabled; configs exported through a factory call will not be patched")
	}
	if cfg.OxlintConfigPath() == "" {
		warnings = append(warnings, "settings.oxlint_config is empty, the Oxlint config will not be found")
	}
	return warnings
}
