package main

var eslintCmd = workflowCommand("eslint", `Sets up @oceanbase/lint-config for ESLint v9 and Stylelint v16.

Example:
  lintmigrate eslint`)

func init() {
	rootCmd.AddCommand(eslintCmd)
}
