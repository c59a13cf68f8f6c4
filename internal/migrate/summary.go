package migrate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/YakDriver/lintmigrate/internal/generate"
	"github.com/YakDriver/lintmigrate/internal/ui"
)

// DocsURL points at the shared lint config documentation.
const DocsURL = "https://github.com/oceanbase/fe-lint-config"

// Usage is a command the user can run once setup is done.
type Usage struct {
	Label   string
	Command string
}

// Summary accumulates what a run changed and what the user should know.
type Summary struct {
	ConfigFiles   []string
	Removed       []string
	Installed     []string
	Uninstalled   []string
	Scripts       []string
	Warnings      []string
	RemovedFields []string
	Tips          []string
	Usage         []Usage
	Extensions    []generate.Extension

	// Halted is set when a step ended the workflow early. Incomplete is set
	// when it did so before the setup was usable.
	Halted     bool
	Incomplete bool
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		if !slices.Contains(list, item) {
			list = append(list, item)
		}
	}
	return list
}

func (s *Summary) AddConfig(names ...string) { s.ConfigFiles = appendUnique(s.ConfigFiles, names...) }
func (s *Summary) AddInstalled(pkgs ...string) { s.Installed = appendUnique(s.Installed, pkgs...) }
func (s *Summary) AddUninstalled(pkgs ...string) { s.Uninstalled = appendUnique(s.Uninstalled, pkgs...) }
func (s *Summary) AddScripts(names ...string) { s.Scripts = appendUnique(s.Scripts, names...) }
func (s *Summary) AddRemovedFields(keys ...string) { s.RemovedFields = appendUnique(s.RemovedFields, keys...) }
func (s *Summary) AddTips(tips ...string) { s.Tips = appendUnique(s.Tips, tips...) }

// AddUsage records a command shown in the usage section.
func (s *Summary) AddUsage(label, command string) {
	u := Usage{Label: label, Command: command}
	if !slices.Contains(s.Usage, u) {
		s.Usage = append(s.Usage, u)
	}
}

// AddExtensions records editor extensions the user should install.
func (s *Summary) AddExtensions(exts ...generate.Extension) {
	for _, e := range exts {
		if !slices.Contains(s.Extensions, e) {
			s.Extensions = append(s.Extensions, e)
		}
	}
}

// Warn records a limitation or failure the user has to follow up on.
func (s *Summary) Warn(format string, args ...any) {
	s.Warnings = appendUnique(s.Warnings, fmt.Sprintf(format, args...))
}

// Changed reports whether anything was written, installed or removed.
func (s *Summary) Changed() bool {
	return len(s.ConfigFiles)+len(s.Removed)+len(s.Installed)+len(s.Uninstalled)+len(s.Scripts) > 0
}

// Print renders the summary.
func (s *Summary) Print(p *ui.Printer) {
	if s.Incomplete {
		p.Section("Setup did not finish")
		p.Warn("Complete the remaining steps manually.")
	} else {
		p.Section("Done")
	}

	if s.Changed() {
		p.Section("Summary")
		printList(p, "Config files:", s.ConfigFiles)
		printList(p, "Removed files:", s.Removed)
		printList(p, "Installed packages:", s.Installed)
		printList(p, "Uninstalled packages:", s.Uninstalled)
		printList(p, "Scripts:", s.Scripts)
	}

	if len(s.Usage) > 0 {
		p.Section("Usage")
		for _, u := range s.Usage {
			p.Plain("%s: %s", u.Label, u.Command)
		}
	}

	if len(s.Extensions) > 0 {
		p.Section("Install these editor extensions")
		for _, e := range s.Extensions {
			p.Bullet("%s (%s)", e.Name, e.ID)
		}
	}

	if len(s.Warnings) > 0 {
		p.Section("Limitations and things to check")
		p.Rule()
		for _, w := range s.Warnings {
			p.Warn("%s", w)
		}
		p.Rule()
	}

	if len(s.RemovedFields) > 0 {
		p.Warn("Removed fields the target tool does not support: %s", strings.Join(s.RemovedFields, ", "))
		p.Plain("Adjust the new config by hand if you relied on them.")
	}

	if len(s.Tips) > 0 {
		p.Section("Tips")
		for _, t := range s.Tips {
			p.Bullet("%s", t)
		}
	}

	p.Info("See %s for more configuration options.", DocsURL)
}

func printList(p *ui.Printer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	p.Plain("%s", title)
	for _, item := range items {
		p.Success("%s", item)
	}
}
