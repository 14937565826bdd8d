package goguard

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// SchemaFromJSON decodes a schema document: an object whose values are
// shorthand strings or descriptor objects. Descriptors are checked by Wrap,
// not here.
func SchemaFromJSON(data []byte) (Schema, error) {
	var raw map[string]any
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("goguard: decode schema JSON: %w", err)
	}
	return Schema(raw), nil
}

// SchemaFromYAML decodes a YAML schema document. YAML maps may decode with
// any-typed keys, so values are normalized into JSON-like map[string]any
// before use. A schema file holds exactly one mapping document.
func SchemaFromYAML(data []byte) (Schema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var node any
	if err := dec.Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("goguard: schema YAML is empty")
		}
		return nil, fmt.Errorf("goguard: decode schema YAML: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("goguard: schema YAML must hold a single document")
	}
	m := yamlAnyToStringMap(node)
	if m == nil {
		return nil, errors.New("goguard: schema YAML root is not a mapping")
	}
	return Schema(m), nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
