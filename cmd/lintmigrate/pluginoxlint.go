package main

var pluginOxlintCmd = workflowCommand("eslint-plugin-oxlint", `Installs eslint-plugin-oxlint and adds it to the ESLint config, so ESLint
skips the rules Oxlint already checks. Use "lintmigrate patch" to patch a
single file without installing anything.

Example:
  lintmigrate eslint-plugin-oxlint --yes`)

func init() {
	rootCmd.AddCommand(pluginOxlintCmd)
}
