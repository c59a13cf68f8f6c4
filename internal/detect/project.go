package detect

import (
	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
)

// Project summarizes the facts the setup wizard needs before it asks anything.
type Project struct {
	TypeScript     bool
	React          bool
	Module         bool
	PackageManager string
}

// DetectProject inspects tsconfig.json, the manifest and lock files.
// override, when set, replaces lock-file based package manager detection.
func DetectProject(fsys filesystem.FileSystem, m *pkgjson.Manifest, override string) *Project {
	p := &Project{
		TypeScript:     fsys.Exists("tsconfig.json"),
		PackageManager: PackageManager(fsys, override),
	}
	if m != nil {
		p.React = m.HasDependency("react")
		p.Module = m.IsModule()
	}
	return p
}

// PackageManager picks pnpm or yarn from their lock files, npm otherwise.
func PackageManager(fsys filesystem.FileSystem, override string) string {
	switch {
	case override != "":
		return override
	case fsys.Exists("pnpm-lock.yaml"):
		return "pnpm"
	case fsys.Exists("yarn.lock"):
		return "yarn"
	default:
		return "npm"
	}
}
