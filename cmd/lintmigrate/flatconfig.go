package main

var flatConfigCmd = workflowCommand("flat-config", `Migrates a legacy .eslintrc config to an ESLint v9 flat config.

The legacy file is backed up to <file>.backup before @eslint/migrate-config
runs, and packages the generated config imports are installed afterwards.

Example:
  lintmigrate flat-config --dir ./packages/app`)

func init() {
	rootCmd.AddCommand(flatConfigCmd)
}
