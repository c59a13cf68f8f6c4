// Package confmerge merges fragments into JSON-shaped configuration objects
// (Oxlint and Oxfmt configs, package.json, VSCode settings) while keeping the
// key order of the original document.
package confmerge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/iancoleman/orderedmap"
	"gopkg.in/yaml.v3"
)

// Object is an insertion-ordered JSON object. Nested objects are always held
// as *Object; lists as []any.
type Object = orderedmap.OrderedMap

// New returns an empty Object that serializes without HTML escaping.
func New() *Object {
	o := orderedmap.New()
	o.SetEscapeHTML(false)
	return o
}

// FromPairs builds an Object from alternating key/value arguments.
func FromPairs(kv ...any) *Object {
	o := New()
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1])
	}
	return o
}

// ParseObject decodes a JSON document whose top level must be an object.
func ParseObject(data []byte) (*Object, error) {
	o := New()
	if err := json.Unmarshal(data, o); err != nil {
		return nil, err
	}
	normalizeObject(o)
	return o, nil
}

// Marshal encodes o with two-space indentation and a trailing newline.
func Marshal(o *Object) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeObject replaces the by-value nested maps produced by decoding with
// pointers so that in-place edits reach the parent.
func normalizeObject(o *Object) {
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		o.Set(k, normalizeValue(v))
	}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case orderedmap.OrderedMap:
		p := &t
		p.SetEscapeHTML(false)
		normalizeObject(p)
		return p
	case *orderedmap.OrderedMap:
		normalizeObject(t)
		return t
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	default:
		return v
	}
}

// Clone deep-copies a value tree made of *Object, []any and scalars.
func Clone(v any) any {
	switch t := v.(type) {
	case *Object:
		return CloneObject(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}

// CloneObject deep-copies o.
func CloneObject(o *Object) *Object {
	out := New()
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		out.Set(k, Clone(v))
	}
	return out
}

// GetObject returns o[key] when it is an object.
func GetObject(o *Object, key string) (*Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

// GetList returns o[key] when it is a list.
func GetList(o *Object, key string) ([]any, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	return list, ok
}

// GetString returns o[key] when it is a string.
func GetString(o *Object, key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// EnsureObject returns o[key], creating an empty object when the key is
// absent or holds a non-object.
func EnsureObject(o *Object, key string) *Object {
	if obj, ok := GetObject(o, key); ok {
		return obj
	}
	obj := New()
	o.Set(key, obj)
	return obj
}

// Has reports whether key is present.
func Has(o *Object, key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Equal reports whether two value trees are structurally equal, including key order.
func Equal(a, b any) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(a, b)
	}
	return bytes.Equal(ja, jb)
}

// FromYAML converts a decoded YAML document or mapping node into an Object,
// keeping mapping order.
func FromYAML(node *yaml.Node) (*Object, error) {
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return New(), nil
		}
		node = node.Content[0]
	}
	v, err := yamlValue(node)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("yaml document is not a mapping (line %d)", node.Line)
	}
	return obj, nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		o := New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := yamlValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			o.Set(node.Content[i].Value, v)
		}
		return o, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, c := range node.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return yamlValue(node.Alias)
	default:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

// FromMap converts an unordered map (e.g. decoded TOML) into an Object with
// keys sorted, since the source order is not available.
func FromMap(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o := New()
	for _, k := range keys {
		o.Set(k, fromGo(m[k]))
	}
	return o
}

func fromGo(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return FromMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fromGo(e)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = FromMap(e)
		}
		return out
	default:
		return v
	}
}
