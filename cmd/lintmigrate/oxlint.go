package main

var oxlintCmd = workflowCommand("oxlint", `Sets up Oxlint next to or instead of ESLint.

This command will:
- Convert an existing ESLint config with @oxlint/migrate, or write a base .oxlintrc.json
- Rename rules Oxlint knows under another name
- Install oxlint and add lint scripts
- Optionally add Oxlint to husky and lint-staged

Example:
  lintmigrate oxlint --dir ./web`)

func init() {
	rootCmd.AddCommand(oxlintCmd)
}
