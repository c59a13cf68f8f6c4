package confmerge

import (
	"regexp"
	"strings"
)

// LintStagedRule describes how one tool's command lands in a lint-staged map.
type LintStagedRule struct {
	Pattern         string   // glob the command should run on, e.g. "*.{js,jsx,ts,tsx}"
	Command         string   // e.g. "oxlint --fix"
	Replaces        string   // tool name whose commands are rewritten, e.g. "eslint"
	PartialPatterns []string // substrings identifying an existing glob to merge into
}

// MergeLintStaged rewrites commands of the replaced tool to rule.Command and
// makes sure rule.Command runs for rule.Pattern, or for the first existing
// glob that partially matches it. It reports whether ls changed.
func MergeLintStaged(ls *Object, rule LintStagedRule) bool {
	before, _ := Marshal(ls)

	if rule.Replaces != "" {
		re := regexp.MustCompile(regexp.QuoteMeta(rule.Replaces) + `[^"]*`)
		for _, k := range ls.Keys() {
			v, _ := ls.Get(k)
			switch t := v.(type) {
			case []any:
				for i, cmd := range t {
					if s, ok := cmd.(string); ok && strings.Contains(s, rule.Replaces) {
						t[i] = re.ReplaceAllString(s, rule.Command)
					}
				}
			case string:
				if strings.Contains(t, rule.Replaces) {
					ls.Set(k, re.ReplaceAllString(t, rule.Command))
				}
			}
		}
	}

	target := ""
	if Has(ls, rule.Pattern) {
		target = rule.Pattern
	} else {
		for _, k := range ls.Keys() {
			if matchesAny(k, rule.PartialPatterns) {
				target = k
				break
			}
		}
	}

	if target == "" {
		ls.Set(rule.Pattern, []any{rule.Command})
	} else {
		v, _ := ls.Get(target)
		ls.Set(target, mergeCommands(v, rule))
	}

	after, _ := Marshal(ls)
	return string(before) != string(after)
}

func mergeCommands(v any, rule LintStagedRule) []any {
	var cmds []any
	switch t := v.(type) {
	case []any:
		cmds = t
	case nil:
	default:
		cmds = []any{t}
	}

	out := make([]any, 0, len(cmds)+1)
	seen := map[string]bool{}
	for _, c := range cmds {
		s, isStr := c.(string)
		if isStr {
			if rule.Replaces != "" && strings.Contains(s, rule.Replaces) {
				continue
			}
			if seen[s] {
				continue
			}
			seen[s] = true
		}
		out = append(out, c)
	}
	if !seen[rule.Command] {
		out = append(out, rule.Command)
	}
	return out
}

func matchesAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
