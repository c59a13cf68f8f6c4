package main

import (
	"fmt"

	"github.com/YakDriver/lintmigrate/internal"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective lintmigrate configuration for a project",
	Long: `This command prints the merged lintmigrate configuration that would apply
in the project directory: the built-in defaults, the user config, the project
lintmigrate.hcl and LINTMIGRATE_* environment overrides. It helps debug layered
config resolution.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Loading configuration...\nProject dir: %s\n", dir)
		if verboseFlag {
			fmt.Fprintf(w, "Raw merged config: %+v\n", cfg)
		}

		fmt.Fprintln(w, "Merged config:")
		hclBytes, err := convertConfigToHCL(cfg)
		if err != nil {
			return fmt.Errorf("failed to convert config to HCL: %w", err)
		}
		fmt.Fprintln(w, string(hclBytes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func convertConfigToHCL(cfg *internal.Config) ([]byte, error) {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	if s := cfg.Settings; s != nil {
		b := body.AppendNewBlock("settings", nil).Body()
		if s.PackageManager != nil {
			b.SetAttributeValue("package_manager", cty.StringVal(*s.PackageManager))
		}
		if s.AssumeYes != nil {
			b.SetAttributeValue("assume_yes", cty.BoolVal(*s.AssumeYes))
		}
		if s.LogLevel != nil {
			b.SetAttributeValue("log_level", cty.StringVal(*s.LogLevel))
		}
		if s.OxlintConfig != nil {
			b.SetAttributeValue("oxlint_config", cty.StringVal(*s.OxlintConfig))
		}
		if s.OxfmtConfig != nil {
			b.SetAttributeValue("oxfmt_config", cty.StringVal(*s.OxfmtConfig))
		}
	}

	for _, f := range cfg.Factories {
		block := body.AppendNewBlock("factory", []string{f.Name})
		if f.Enabled != nil {
			block.Body().SetAttributeValue("enabled", cty.BoolVal(*f.Enabled))
		}
	}

	for _, r := range cfg.RuleRenames {
		block := body.AppendNewBlock("rule_rename", []string{r.From})
		block.Body().SetAttributeValue("to", cty.StringVal(r.To))
	}

	for _, u := range cfg.UnsupportedKey {
		block := body.AppendNewBlock("unsupported_key", []string{u.Tool})
		block.Body().SetAttributeValue("keys", stringList(u.Keys))
	}

	for _, l := range cfg.LintStaged {
		block := body.AppendNewBlock("lint_staged", []string{l.Tool})
		b := block.Body()
		b.SetAttributeValue("pattern", cty.StringVal(l.Pattern))
		b.SetAttributeValue("command", cty.StringVal(l.Command))
		b.SetAttributeValue("replaces", cty.StringVal(l.Replaces))
		if len(l.PartialPatterns) > 0 {
			b.SetAttributeValue("partial_patterns", stringList(l.PartialPatterns))
		}
	}

	for _, m := range cfg.CommentMarkers {
		body.AppendNewBlock("comment_marker", []string{m.Token})
	}

	return file.Bytes(), nil
}

func stringList(values []string) cty.Value {
	if len(values) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(values))
	for i, v := range values {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
