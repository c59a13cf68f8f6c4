package confmerge

import (
	"reflect"
	"strings"
)

// DefaultCommentMarkers are tokens that mark a rule entry's string value as a
// pseudo-comment rather than a severity.
var DefaultCommentMarkers = []string{"注释"}

// Rename is one old→new key pair. Renames are applied in slice order.
type Rename struct {
	From string
	To   string
}

// MergeDefaults overlays override onto base, key by key. Neither input is
// modified. Keys keep base's order; keys new in override follow.
func MergeDefaults(base, override *Object) *Object {
	out := CloneObject(base)
	for _, k := range override.Keys() {
		v, _ := override.Get(k)
		out.Set(k, Clone(v))
	}
	return out
}

// RemoveUnsupportedKeys deletes every key of keys from cfg and from each
// element of cfg's overrides list. It returns the removed key names in the
// order of keys, each once.
func RemoveUnsupportedKeys(cfg *Object, keys []string) []string {
	removed := map[string]bool{}
	drop := func(o *Object) {
		for _, k := range keys {
			if Has(o, k) {
				o.Delete(k)
				removed[k] = true
			}
		}
	}

	drop(cfg)
	forEachOverride(cfg, drop)

	var out []string
	for _, k := range keys {
		if removed[k] {
			out = append(out, k)
			delete(removed, k)
		}
	}
	return out
}

// RenameKeys renames keys of obj and of each element of obj's overrides list.
// A renamed key keeps its position. It reports whether anything changed.
func RenameKeys(obj *Object, renames []Rename) bool {
	changed := renameAll(obj, renames)
	forEachOverride(obj, func(o *Object) {
		if renameAll(o, renames) {
			changed = true
		}
	})
	return changed
}

// RenameRuleKeys applies renames to cfg.rules and to every overrides[i].rules.
func RenameRuleKeys(cfg *Object, renames []Rename) bool {
	changed := false
	forEachRules(cfg, func(rules *Object) {
		if renameAll(rules, renames) {
			changed = true
		}
	})
	return changed
}

func renameAll(o *Object, renames []Rename) bool {
	changed := false
	for _, r := range renames {
		if renameKey(o, r.From, r.To) {
			changed = true
		}
	}
	return changed
}

// renameKey moves o[from] to o[to] at from's position. An existing "to" entry
// is replaced.
func renameKey(o *Object, from, to string) bool {
	v, ok := o.Get(from)
	if !ok || from == to {
		return false
	}
	keys := append([]string(nil), o.Keys()...)
	values := make(map[string]any, len(keys))
	for _, k := range keys {
		values[k], _ = o.Get(k)
	}
	for _, k := range keys {
		o.Delete(k)
	}
	for _, k := range keys {
		switch k {
		case from:
			o.Set(to, v)
		case to:
		default:
			o.Set(k, values[k])
		}
	}
	return true
}

// EnsureListMembership makes cfg[listKey] a list containing every member,
// appending the missing ones in order. A scalar string value is first turned
// into a one-element list. It returns the members that were added. ok is false,
// and cfg is left alone, when the existing value is neither a list nor a string.
func EnsureListMembership(cfg *Object, listKey string, members []any) (added []any, ok bool) {
	var list []any
	switch v, _ := cfg.Get(listKey); t := v.(type) {
	case []any:
		list = t
	case string:
		list = []any{t}
	case nil:
		list = []any{}
	default:
		return nil, false
	}

	for _, m := range members {
		if containsValue(list, m) {
			continue
		}
		list = append(list, m)
		added = append(added, m)
	}
	cfg.Set(listKey, list)
	return added, true
}

// PurgeCommentPseudoKeys deletes pseudo-comment entries from cfg.rules and
// every overrides[i].rules. markers default to DefaultCommentMarkers. It
// returns the deleted keys.
func PurgeCommentPseudoKeys(cfg *Object, markers ...string) []string {
	if len(markers) == 0 {
		markers = DefaultCommentMarkers
	}
	var removed []string
	forEachRules(cfg, func(rules *Object) {
		for _, k := range append([]string(nil), rules.Keys()...) {
			v, _ := rules.Get(k)
			if IsCommentKey(k, v, markers) {
				rules.Delete(k)
				removed = append(removed, k)
			}
		}
	})
	return removed
}

// IsCommentKey reports whether a rules entry is a comment in disguise.
func IsCommentKey(key string, value any, markers []string) bool {
	if strings.HasPrefix(key, "//") || strings.Contains(key, "=====") {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	lower := strings.ToLower(s)
	for _, m := range markers {
		if m != "" && strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

func forEachOverride(cfg *Object, fn func(*Object)) {
	list, ok := GetList(cfg, "overrides")
	if !ok {
		return
	}
	for _, e := range list {
		if o, ok := e.(*Object); ok {
			fn(o)
		}
	}
}

func forEachRules(cfg *Object, fn func(*Object)) {
	if rules, ok := GetObject(cfg, "rules"); ok {
		fn(rules)
	}
	forEachOverride(cfg, func(o *Object) {
		if rules, ok := GetObject(o, "rules"); ok {
			fn(rules)
		}
	})
}

func containsValue(list []any, v any) bool {
	for _, e := range list {
		if reflect.DeepEqual(e, v) {
			return true
		}
	}
	return false
}
