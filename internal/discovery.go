// discovery.go
// Config discovery and loading logic for lintmigrate
package internal

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

//go:embed defaults.hcl
var defaultsHCL []byte

// Source is one configuration layer. Layers are merged in the order given,
// later layers taking precedence.
type Source struct {
	FS       fs.FS
	Path     string
	Optional bool
}

// Environment variables that override settings after all files are merged.
const (
	EnvPackageManager = "LINTMIGRATE_PACKAGE_MANAGER"
	EnvLogLevel       = "LINTMIGRATE_LOG_LEVEL"
	EnvAssumeYes      = "LINTMIGRATE_ASSUME_YES"
)

// DefaultSources returns the user-level and project-level config layers for
// projectDir. Both are optional.
func DefaultSources(projectDir string) []Source {
	var sources []Source
	if dir, err := os.UserConfigDir(); err == nil {
		sources = append(sources, Source{
			FS:       os.DirFS(dir),
			Path:     filepath.ToSlash(filepath.Join("lintmigrate", ConfigFileName)),
			Optional: true,
		})
	}
	sources = append(sources, Source{FS: os.DirFS(projectDir), Path: ConfigFileName, Optional: true})
	return sources
}

// LoadConfig parses the embedded defaults and every source, merges them by
// block label, then applies environment overrides.
func LoadConfig(sources ...Source) (*Config, error) {
	defaults, err := parseConfig(defaultsHCL, "defaults.hcl")
	if err != nil {
		return nil, fmt.Errorf("error loading built-in defaults: %w", err)
	}
	configs := []*Config{defaults}

	for _, src := range sources {
		data, err := fs.ReadFile(src.FS, src.Path)
		if err != nil {
			if src.Optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, NewError(KindIO, src.Path, err)
		}
		cfg, err := parseConfig(data, src.Path)
		if err != nil {
			return nil, fmt.Errorf("error loading config %s: %w", src.Path, err)
		}
		GetGlobalLogger().Debug("loaded config layer %s", src.Path)
		configs = append(configs, cfg)
	}

	merged := mergeConfigs(configs)
	applyEnv(merged, os.LookupEnv)
	return merged, nil
}

// LoadEnvFile loads projectDir/.env into the process environment. A missing
// file is not an error.
func LoadEnvFile(projectDir string) {
	_ = godotenv.Load(filepath.Join(projectDir, ".env"))
}

// parseConfig parses a single HCL document into a Config.
func parseConfig(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, NewError(KindParse, filename, fmt.Errorf("parse error: %s", diags.Error()))
	}
	var partial Config
	decodeDiags := gohcl.DecodeBody(file.Body, nil, &partial)
	if decodeDiags.HasErrors() {
		return nil, NewError(KindParse, filename, fmt.Errorf("decode error: %s", decodeDiags.Error()))
	}
	return &partial, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	set := func() *Settings {
		if cfg.Settings == nil {
			cfg.Settings = &Settings{}
		}
		return cfg.Settings
	}
	if v, ok := lookup(EnvPackageManager); ok && v != "" {
		set().PackageManager = &v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		set().LogLevel = &v
	}
	if v, ok := lookup(EnvAssumeYes); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			set().AssumeYes = &b
		}
	}
}
