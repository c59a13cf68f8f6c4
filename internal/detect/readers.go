// readers.go
// Declarative config readers (JSON, YAML, TOML, package.json fields)
package detect

import (
	"errors"
	"fmt"

	"github.com/YakDriver/lintmigrate/filesystem"
	"github.com/YakDriver/lintmigrate/internal"
	"github.com/YakDriver/lintmigrate/internal/confmerge"
	"github.com/YakDriver/lintmigrate/internal/pkgjson"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrNotDeclarative is returned for config files that can only be evaluated
// by running JavaScript. lintmigrate never executes project code.
var ErrNotDeclarative = errors.New("config is JavaScript and is not executed")

func readFile(fsys filesystem.FileSystem, name string) ([]byte, error) {
	data, err := fsys.ReadFile(name)
	if err != nil {
		return nil, internal.NewError(internal.KindIO, name, err)
	}
	return data, nil
}

// ReadObject decodes a declarative config file into an ordered object. For a
// package.json field, field names it (e.g. "prettier", "stylelint").
// Extensionless rc files are tried as JSON first, then YAML.
func ReadObject(fsys filesystem.FileSystem, name, field string) (*confmerge.Object, error) {
	format := formatOf(name)
	if format == FormatJS {
		return nil, internal.WithHint(
			internal.NewError(internal.KindShapeMismatch, name, ErrNotDeclarative),
			"convert it to JSON or migrate its options by hand",
		)
	}

	if format == FormatPackageJSON {
		m, err := pkgjson.Load(fsys)
		if err != nil {
			return nil, err
		}
		obj, ok := m.Field(field)
		if !ok {
			return nil, internal.NewError(internal.KindShapeMismatch, name,
				fmt.Errorf("field %q is missing or not an object", field))
		}
		return obj, nil
	}

	data, err := readFile(fsys, name)
	if err != nil {
		return nil, err
	}
	obj, err := decode(data, format, isBareRC(name))
	if err != nil {
		return nil, internal.NewError(internal.KindParse, name, err)
	}
	return obj, nil
}

func decode(data []byte, format Format, lenient bool) (*confmerge.Object, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return confmerge.FromMap(m), nil
	default:
		obj, err := confmerge.ParseObject(data)
		if err != nil && lenient {
			if yobj, yerr := decodeYAML(data); yerr == nil {
				return yobj, nil
			}
		}
		return obj, err
	}
}

func decodeYAML(data []byte) (*confmerge.Object, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return confmerge.FromYAML(&node)
}

func isBareRC(name string) bool {
	switch name {
	case ".eslintrc", ".prettierrc", ".stylelintrc":
		return true
	}
	return false
}
