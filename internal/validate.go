// validate.go
// Static validation of a merged Config
package internal

import (
	"errors"
	"fmt"
	"slices"
)

// Supported package managers.
var PackageManagers = []string{"npm", "yarn", "pnpm"}

// Validate checks a merged Config for mistakes that would otherwise only
// surface half way through a migration. All problems are reported together.
func Validate(cfg *Config) error {
	var errs []error

	if pm := cfg.PackageManager(); pm != "" && !slices.Contains(PackageManagers, pm) {
		errs = append(errs, fmt.Errorf("settings.package_manager %q must be one of %v", pm, PackageManagers))
	}
	if cfg.Settings != nil && cfg.Settings.LogLevel != nil && !ValidLogLevel(*cfg.Settings.LogLevel) {
		errs = append(errs, fmt.Errorf("settings.log_level %q is not a valid level", *cfg.Settings.LogLevel))
	}

	for _, f := range cfg.Factories {
		if f.Name == "" {
			errs = append(errs, errors.New("factory block has an empty label"))
		}
	}

	for _, r := range cfg.RuleRenames {
		if r.To == "" {
			errs = append(errs, fmt.Errorf("rule_rename %q has an empty target", r.From))
		}
		if r.To == r.From {
			errs = append(errs, fmt.Errorf("rule_rename %q renames a rule to itself", r.From))
		}
	}
	// Renames are applied once, in order; a target that is itself renamed
	// later would silently be renamed twice.
	for i, r := range cfg.RuleRenames {
		for _, later := range cfg.RuleRenames[i+1:] {
			if later.From == r.To {
				errs = append(errs, fmt.Errorf("rule_rename %q targets %q which is renamed again", r.From, r.To))
			}
		}
	}

	for _, l := range cfg.LintStaged {
		if l.Pattern == "" {
			errs = append(errs, fmt.Errorf("lint_staged %q has an empty pattern", l.Tool))
		}
		if l.Command == "" {
			errs = append(errs, fmt.Errorf("lint_staged %q has an empty command", l.Tool))
		}
	}

	for _, m := range cfg.CommentMarkers {
		if m.Token == "" {
			errs = append(errs, errors.New("comment_marker block has an empty label"))
		}
	}

	return errors.Join(errs...)
}
