package main

import (
	"github.com/YakDriver/lintmigrate/internal/migrate"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose a setup interactively",
	Long: `Asks which setup to run and runs it. Every choice is also available as its
own subcommand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSession(cmd, migrate.Wizard)
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
	rootCmd.RunE = setupCmd.RunE
}
