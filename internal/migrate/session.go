package migrate

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/detect"
	"github.com/YakDriver/lintmigrate/internal/jsedit"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
	"github.com/YakDriver/lintmigrate/internal/prompt"
	"github.com/YakDriver/lintmigrate/internal/runner"
	"github.com/YakDriver/lintmigrate/internal/ui"
)

const (
	filePerm = 0o644
	hookPerm = 0o755
)

// Tools records which tools the current run sets up.
type Tools struct {
	ESLint    bool
	Oxlint    bool
	Stylelint bool
	Prettier  bool
	Oxfmt     bool
}

// Session is the state shared by the steps of one run. A session is used by
// a single goroutine.
type Session struct {
	FS      filesystem.FileSystem
	Prompt  prompt.Prompter
	Runner  runner.Runner
	Out     *ui.Printer
	Config  *internal.Config
	Log     internal.Logger
	Options MigratorOptions
	Summary *Summary

	Project    *detect.Project
	Use        Tools
	TypeScript bool
	React      bool

	// ESLint is the config found when the run started, if any.
	ESLint   *detect.ESLintConfig
	Prettier *detect.Prettier
	// VSCode reports whether .vscode/settings.json was written.
	VSCode bool

	backupFile       string
	requiredPackages []string
}

// NewSession wires the collaborators of one run. A nil cfg means the
// built-in defaults.
func NewSession(fsys filesystem.FileSystem, p prompt.Prompter, r runner.Runner, out *ui.Printer, cfg *internal.Config, opts MigratorOptions) *Session {
	if cfg == nil {
		var err error
		if cfg, err = internal.LoadConfig(); err != nil {
			cfg = &internal.Config{}
		}
	}
	return &Session{
		FS:      fsys,
		Prompt:  p,
		Runner:  r,
		Out:     out,
		Config:  cfg,
		Log:     internal.GetGlobalLogger(),
		Options: opts,
		Summary: &Summary{},
	}
}

// PackageManager returns the package manager used for installs.
func (s *Session) PackageManager() string {
	if s.Project != nil && s.Project.PackageManager != "" {
		return s.Project.PackageManager
	}
	return detect.PackageManager(s.FS, s.Config.PackageManager())
}

// RunScript renders the command that runs a package.json script.
func (s *Session) RunScript(name string) string {
	return s.PackageManager() + " run " + name
}

func (s *Session) factories() []string {
	if names := s.Config.FactoryNames(); len(names) > 0 {
		return names
	}
	return jsedit.DefaultFactories
}

func (s *Session) ruleRenames() []confmerge.Rename {
	renames := make([]confmerge.Rename, 0, len(s.Config.RuleRenames))
	for _, r := range s.Config.RuleRenames {
		renames = append(renames, confmerge.Rename{From: r.From, To: r.To})
	}
	return renames
}

// Confirm asks a yes/no question whose answer defaults to yes.
func (s *Session) Confirm(ctx context.Context, format string, args ...any) (bool, error) {
	return s.Prompt.Confirm(ctx, fmt.Sprintf(format, args...), true)
}

// ConfirmRisky asks a yes/no question whose answer defaults to no.
func (s *Session) ConfirmRisky(ctx context.Context, format string, args ...any) (bool, error) {
	return s.Prompt.Confirm(ctx, fmt.Sprintf(format, args...), false)
}

// ConfirmOverwrite returns true when name does not exist or the user agrees
// to replace it.
func (s *Session) ConfirmOverwrite(ctx context.Context, name string) (bool, error) {
	if !s.FS.Exists(name) {
		return true, nil
	}
	return s.ConfirmRisky(ctx, "%s already exists. Overwrite it?", name)
}

// Manifest re-reads package.json. Every mutation starts from a fresh read
// because package managers rewrite the file during installs.
func (s *Session) Manifest() (*pkgjson.Manifest, error) {
	return pkgjson.Load(s.FS)
}

// UpdateManifest applies fn to a fresh copy of package.json and saves it when
// fn reports a change.
func (s *Session) UpdateManifest(fn func(m *pkgjson.Manifest) bool) (bool, error) {
	m, err := s.Manifest()
	if err != nil {
		return false, err
	}
	if !fn(m) {
		return false, nil
	}
	if err := m.Save(s.FS); err != nil {
		return false, err
	}
	return true, nil
}

// Install adds packages as devDependencies. A failed install prints the
// command to run by hand, is recorded as a warning, and returns false.
func (s *Session) Install(ctx context.Context, pkgs ...string) bool {
	if len(pkgs) == 0 {
		return true
	}
	cmd := runner.Install(s.PackageManager(), pkgs, true)
	s.Out.Info("Installing %s", strings.Join(pkgs, ", "))
	if _, err := s.Runner.Run(ctx, cmd); err != nil {
		s.Out.Error("Install failed: %v", err)
		s.Out.Plain("Install manually with:")
		s.Out.Code(cmd.String())
		s.Summary.Warn("install failed, run manually: %s", cmd)
		return false
	}
	s.Out.Success("Installed %s", strings.Join(pkgs, ", "))
	s.Summary.AddInstalled(pkgs...)
	return true
}

// Uninstall removes packages, reporting failures like Install.
func (s *Session) Uninstall(ctx context.Context, pkgs ...string) bool {
	if len(pkgs) == 0 {
		return true
	}
	cmd := runner.Uninstall(s.PackageManager(), pkgs)
	s.Out.Info("Uninstalling %s", strings.Join(pkgs, ", "))
	if _, err := s.Runner.Run(ctx, cmd); err != nil {
		s.Out.Error("Uninstall failed: %v", err)
		s.Out.Plain("Uninstall manually with:")
		s.Out.Code(cmd.String())
		s.Summary.Warn("uninstall failed, run manually: %s", cmd)
		return false
	}
	s.Out.Success("Uninstalled %s", strings.Join(pkgs, ", "))
	s.Summary.AddUninstalled(pkgs...)
	return true
}

// ReadFile reads name from the project.
func (s *Session) ReadFile(name string) (string, error) {
	data, err := s.FS.ReadFile(name)
	if err != nil {
		return "", internal.NewError(internal.KindIO, name, err)
	}
	return string(data), nil
}

// WriteFile replaces name, creating its parent directory when needed.
func (s *Session) WriteFile(name string, content string) error {
	if dir := filepath.Dir(name); dir != "." && !s.FS.DirExists(dir) {
		if err := s.FS.MkdirAll(dir); err != nil {
			return internal.NewError(internal.KindIO, dir, err)
		}
	}
	if err := s.FS.WriteFile(name, []byte(content), filePerm); err != nil {
		return internal.NewError(internal.KindIO, name, err)
	}
	s.Log.Debug("wrote %s (%d bytes)", name, len(content))
	return nil
}

// ReadJSON reads a JSON object file keeping key order.
func (s *Session) ReadJSON(name string) (*confmerge.Object, error) {
	content, err := s.ReadFile(name)
	if err != nil {
		return nil, err
	}
	obj, err := confmerge.ParseObject([]byte(content))
	if err != nil {
		return nil, internal.NewError(internal.KindParse, name, err)
	}
	return obj, nil
}

// WriteJSON writes obj with two-space indentation.
func (s *Session) WriteJSON(name string, obj *confmerge.Object) error {
	data, err := confmerge.Marshal(obj)
	if err != nil {
		return internal.NewError(internal.KindParse, name, err)
	}
	return s.WriteFile(name, string(data))
}

// RemoveFile deletes name.
func (s *Session) RemoveFile(name string) error {
	if err := s.FS.Remove(name); err != nil {
		return internal.NewError(internal.KindIO, name, err)
	}
	s.Summary.Removed = appendUnique(s.Summary.Removed, name)
	return nil
}

// WriteHook writes an executable git hook script.
func (s *Session) WriteHook(name, content string) error {
	if err := s.WriteFile(name, content); err != nil {
		return err
	}
	if err := s.FS.Chmod(name, hookPerm); err != nil {
		return internal.NewError(internal.KindIO, name, err)
	}
	return nil
}
