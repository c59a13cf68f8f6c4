package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/YakDriver/lintmigrate"
	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
	"github.com/spf13/cobra"
)

var (
	patchOxlintConfig string
	patchFactories    []string
)

func init() {
	patchCmd.Flags().StringVar(&patchOxlintConfig, "oxlint-config", "", "Build the plugin config from this Oxlint config (default: the configured oxlint_config, when it exists)")
	patchCmd.Flags().StringSliceVar(&patchFactories, "factory", nil, "Factory call to patch, e.g. OBEslintCfg (default: the configured factories)")
	rootCmd.AddCommand(patchCmd)
}

var patchCmd = &cobra.Command{
	Use:   "patch <file>...",
	Short: "Add eslint-plugin-oxlint to ESLint config files",
	Long: `Adds eslint-plugin-oxlint to ESLint config files without installing anything.

Flat configs get an import and the plugin's recommended config appended to the
exported array or factory call. Legacy configs get "plugin:oxlint/recommended"
appended to extends. Files that already use the plugin are left alone.

Example:
  lintmigrate patch eslint.config.mjs
  lintmigrate patch --dry-run -v packages/*/eslint.config.js`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		fsys := filesystem.NewDirFS(dir)

		opts := lintmigrate.PatchOptions{Factories: cfg.FactoryNames()}
		if len(patchFactories) > 0 {
			opts.Factories = patchFactories
		}
		switch {
		case patchOxlintConfig != "":
			opts.OxlintConfig = patchOxlintConfig
		case fsys.Exists(cfg.OxlintConfigPath()):
			opts.OxlintConfig = cfg.OxlintConfigPath()
		}
		if m, err := pkgjson.Load(fsys); err == nil {
			opts.TypeModule = m.IsModule()
		}

		var failed int
		for _, arg := range args {
			name, err := projectPath(dir, arg)
			if err == nil {
				err = patchFile(cmd.Context(), cmd.OutOrStdout(), fsys, name, opts)
			}
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) could not be patched", failed, len(args))
		}
		return nil
	},
}

// projectPath returns arg relative to the project directory. Relative args
// are taken from the project directory; neither form may leave it.
func projectPath(dir, arg string) (string, error) {
	abs := arg
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(dir, arg)
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", arg, dir)
	}
	return rel, nil
}

func patchFile(ctx context.Context, w io.Writer, fsys filesystem.FileSystem, name string, opts lintmigrate.PatchOptions) error {
	if verboseFlag {
		fmt.Fprintf(w, "Processing: %s\n", name)
	}

	content, err := fsys.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}

	res, err := lintmigrate.Patch(ctx, name, string(content), opts)
	if err != nil {
		return err
	}

	if !res.Modified {
		if strings.HasPrefix(res.Reason, "already") {
			if verboseFlag {
				fmt.Fprintf(w, "Skipped: %s (%s)\n", name, res.Reason)
			}
			return nil
		}
		return fmt.Errorf("%s was not patched: %s", name, res.Reason)
	}
	if res.BestEffort {
		fmt.Fprintf(w, "Warning: %s was patched by text insertion, check the result\n", name)
	}

	if dryRunFlag {
		fmt.Fprintf(w, "Would patch: %s\n", name)
		if verboseFlag {
			fmt.Fprintln(w, res.Content)
		}
		return nil
	}

	if err := fsys.WriteFile(name, []byte(res.Content), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(w, "Patched: %s\n", name)
	return nil
}
