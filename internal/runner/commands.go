package runner

import (
	"regexp"
	"strings"
)

// Tools invoked through npx.
const (
	ESLintMigrateTool = "@eslint/migrate-config@latest"
	OxlintMigrateTool = "@oxlint/migrate@latest"
)

// Install adds packages with the given package manager.
func Install(pm string, packages []string, dev bool) Command {
	var args []string
	switch pm {
	case "pnpm":
		args = []string{"add"}
		if dev {
			args = append(args, "--save-dev")
		}
	case "yarn":
		args = []string{"add"}
		if dev {
			args = append(args, "--dev")
		}
	default:
		pm = "npm"
		args = []string{"install"}
		if dev {
			args = append(args, "--save-dev")
		}
	}
	return Command{Name: pm, Args: append(args, packages...)}
}

// Uninstall removes packages with the given package manager.
func Uninstall(pm string, packages []string) Command {
	switch pm {
	case "pnpm", "yarn":
		return Command{Name: pm, Args: append([]string{"remove"}, packages...)}
	default:
		return Command{Name: "npm", Args: append([]string{"uninstall"}, packages...)}
	}
}

func Npx(args ...string) Command {
	return Command{Name: "npx", Args: args}
}

// HuskyInit creates the .husky directory and a sample pre-commit hook.
func HuskyInit() Command {
	return Npx("husky", "init")
}

// MigrateESLintConfig converts a legacy config into eslint.config.mjs.
func MigrateESLintConfig(file string) Command {
	return Npx(ESLintMigrateTool, file)
}

// MigrateToOxlint converts an ESLint config into an Oxlint config.
func MigrateToOxlint(file, output string) Command {
	return Npx(OxlintMigrateTool, file, "--output-file", output)
}

var listItemRe = regexp.MustCompile(`^[-*]\s+(.+)$`)

// ExtractRequiredPackages parses the "You will need to install the following
// packages" list printed by @eslint/migrate-config.
func ExtractRequiredPackages(output string) []string {
	var packages []string
	lines := strings.Split(output, "\n")
	started := false
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if !started {
			started = strings.Contains(line, "You will need to install")
			continue
		}
		if m := listItemRe.FindStringSubmatch(line); m != nil {
			if name := strings.TrimSpace(m[1]); name != "" {
				packages = append(packages, name)
			}
		}
		if isInstallHint(line) {
			break
		}
		if line == "" && len(packages) > 0 && i+1 < len(lines) && isInstallHint(strings.TrimSpace(lines[i+1])) {
			break
		}
	}
	return packages
}

func isInstallHint(line string) bool {
	for _, s := range []string{"You can install", "npm install", "yarn add", "pnpm add"} {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

// Failure classifies a tool failure by the remediation it needs.
type Failure int

const (
	FailureUnknown Failure = iota
	// FailureDynamicConfig: the config uses calls or spreads the migration
	// tool cannot evaluate statically.
	FailureDynamicConfig
	// FailureResolve: @oxlint/migrate could not resolve a module referenced
	// by the config.
	FailureResolve
)

// Classify matches known error text in a tool's output and error message.
func Classify(out Output, err error) Failure {
	text := out.Combined()
	if err != nil {
		text += "\n" + err.Error()
	}
	switch {
	case strings.Contains(text, "require.resolve"):
		return FailureResolve
	case strings.Contains(text, "Cannot convert"),
		strings.Contains(text, "CallExpression"),
		strings.Contains(text, "TypeError"):
		return FailureDynamicConfig
	default:
		return FailureUnknown
	}
}
