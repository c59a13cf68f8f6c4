// merge.go
// Config merging logic for lintmigrate
package internal

// mergeConfigs merges a slice of Configs, from least to most specific.
func mergeConfigs(configs []*Config) *Config {
	if len(configs) == 0 {
		return &Config{}
	}
	merged := configs[0]
	for i := 1; i < len(configs); i++ {
		mergeConfigsPair(merged, configs[i])
	}
	return merged
}

// mergeConfigsPair merges two Config objects: add takes precedence over base.
//
// 1. Settings attributes are overwritten individually when set in add.
// 2. Factories, rule renames, unsupported keys, lint-staged rules and
// comment markers are merged by label.
func mergeConfigsPair(base *Config, add *Config) {
	if add.Settings != nil {
		if base.Settings == nil {
			base.Settings = &Settings{}
		}
		mergeSettings(base.Settings, add.Settings)
	}

	base.Factories = mergeByName(base.Factories, add.Factories, func(f Factory) string { return f.Name })
	base.RuleRenames = mergeByName(base.RuleRenames, add.RuleRenames, func(r RuleRename) string { return r.From })
	base.UnsupportedKey = mergeByName(base.UnsupportedKey, add.UnsupportedKey, func(u UnsupportedKey) string { return u.Tool })
	base.LintStaged = mergeByName(base.LintStaged, add.LintStaged, func(l LintStaged) string { return l.Tool })
	base.CommentMarkers = mergeByName(base.CommentMarkers, add.CommentMarkers, func(m CommentMarker) string { return m.Token })
}

func mergeSettings(base, add *Settings) {
	if add.PackageManager != nil {
		base.PackageManager = add.PackageManager
	}
	if add.AssumeYes != nil {
		base.AssumeYes = add.AssumeYes
	}
	if add.LogLevel != nil {
		base.LogLevel = add.LogLevel
	}
	if add.OxlintConfig != nil {
		base.OxlintConfig = add.OxlintConfig
	}
	if add.OxfmtConfig != nil {
		base.OxfmtConfig = add.OxfmtConfig
	}
}

// mergeByName replaces base entries that share a name with an add entry
// and appends the rest, keeping base order.
func mergeByName[T any](base, add []T, name func(T) string) []T {
	index := map[string]int{}
	for i, b := range base {
		index[name(b)] = i
	}
	for _, a := range add {
		if i, ok := index[name(a)]; ok {
			base[i] = a
			continue
		}
		base = append(base, a)
		index[name(a)] = len(base) - 1
	}
	return base
}
