package confmerge

import "strings"

// codeActionsKey holds per-source fix-on-save actions in VSCode settings.
const codeActionsKey = "editor.codeActionsOnSave"

// MergeVSCodeSettings overlays generated onto existing. Top-level keys are
// replaced, except editor.codeActionsOnSave and "[language]" blocks, whose
// entries are merged so user actions and per-language settings survive.
func MergeVSCodeSettings(existing, generated *Object) *Object {
	out := CloneObject(existing)
	for _, k := range generated.Keys() {
		v, _ := generated.Get(k)
		incoming, isObj := v.(*Object)
		if isObj && (k == codeActionsKey || isLanguageKey(k)) {
			if current, ok := GetObject(out, k); ok {
				merged := CloneObject(current)
				for _, kk := range incoming.Keys() {
					vv, _ := incoming.Get(kk)
					merged.Set(kk, Clone(vv))
				}
				out.Set(k, merged)
				continue
			}
		}
		out.Set(k, Clone(v))
	}
	return out
}

func isLanguageKey(k string) bool {
	return strings.HasPrefix(k, "[") && strings.HasSuffix(k, "]")
}
