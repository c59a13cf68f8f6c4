package generate

import "strings"

const (
	HuskyDir      = ".husky"
	PreCommitFile = ".husky/pre-commit"
	PreCommitHook = "#!/usr/bin/env sh\n. \"$(dirname -- \"$0\")/_/husky.sh\"\n\nnpx lint-staged\n"
)

// PreCommitWithLintStaged rewrites an existing pre-commit hook to run
// lint-staged, keeping its shebang and husky.sh bootstrap lines. A hook that
// already runs lint-staged is returned unchanged with false.
func PreCommitWithLintStaged(existing string) (string, bool) {
	if strings.Contains(existing, "lint-staged") {
		return existing, false
	}
	var header []string
	for _, line := range strings.Split(existing, "\n") {
		if strings.HasPrefix(line, "#!") || strings.Contains(line, "husky.sh") {
			header = append(header, line)
		}
	}
	if len(header) == 0 {
		return "npx lint-staged\n", true
	}
	return strings.Join(header, "\n") + "\n\nnpx lint-staged\n", true
}
