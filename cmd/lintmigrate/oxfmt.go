package main

var oxfmtCmd = workflowCommand("oxfmt", `Replaces Prettier with Oxfmt.

This command will:
- Read the Prettier config and write .oxfmtrc.json without options Oxfmt rejects
- Uninstall Prettier packages and install oxfmt
- Point format scripts, lint-staged and VS Code at Oxfmt

Example:
  lintmigrate oxfmt --dry-run`)

func init() {
	rootCmd.AddCommand(oxfmtCmd)
}
