package goguard

import (
	"errors"
	"fmt"
	"sort"
)

// Schema maps parameter names to field descriptors. A descriptor is either a
// shorthand string ("string|optional|default:user"), a Field or *Field, or a
// map[string]any as produced by SchemaFromJSON / SchemaFromYAML.
type Schema map[string]any

// Field is the structured descriptor form.
//
// Min and Max follow the declared type: value bounds for number, length
// bounds for string, item-count bounds for array. A nil Default means no
// default; mark the field Optional to accept absence without one.
type Field struct {
	Type     string
	Optional bool
	Default  any
	Props    Schema // object properties
	Items    *Field // array element descriptor
	Enum     []any
	Min      *float64
	Max      *float64
	Pattern  string
}

// fieldSpec is the compiled descriptor every later pass works on. Nested
// props are normalized once here so default extraction, projection and the
// pre-check never revisit descriptor syntax.
type fieldSpec struct {
	typ       string
	optional  bool
	def       any
	props     map[string]*fieldSpec
	propOrder []string
	items     *fieldSpec
	enum      []any
	min       *float64
	max       *float64
	pattern   string
}

// normalizeSchema compiles every descriptor. The returned order is the sorted
// key list; guards substitute their declared parameter order for the top
// level and keep this one for nested props.
func normalizeSchema(s Schema) (map[string]*fieldSpec, []string, error) {
	out := make(map[string]*fieldSpec, len(s))
	order := sortedKeys(s)
	for _, name := range order {
		f, err := normalizeDescriptor(s[name])
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = f
	}
	return out, order, nil
}

func normalizeDescriptor(d any) (*fieldSpec, error) {
	switch t := d.(type) {
	case string:
		return parseShorthand(t), nil
	case Field:
		return specFromField(t)
	case *Field:
		if t == nil {
			return nil, errors.New("nil descriptor")
		}
		return specFromField(*t)
	case map[string]any:
		return specFromMap(t)
	default:
		return nil, fmt.Errorf("unsupported descriptor %T", d)
	}
}

func specFromField(f Field) (*fieldSpec, error) {
	spec := &fieldSpec{
		typ:      f.Type,
		optional: f.Optional,
		def:      f.Default,
		enum:     f.Enum,
		min:      f.Min,
		max:      f.Max,
		pattern:  f.Pattern,
	}
	if spec.typ == "" {
		spec.typ = TypeAny
	}
	if f.Props != nil {
		if spec.typ != TypeObject {
			return nil, fmt.Errorf("props on %q descriptor", spec.typ)
		}
		props, order, err := normalizeSchema(f.Props)
		if err != nil {
			return nil, err
		}
		spec.props, spec.propOrder = props, order
	}
	if f.Items != nil {
		if spec.typ != TypeArray {
			return nil, fmt.Errorf("items on %q descriptor", spec.typ)
		}
		items, err := specFromField(*f.Items)
		if err != nil {
			return nil, err
		}
		spec.items = items
	}
	return spec, nil
}

// specFromMap reads the document form of a descriptor. Unknown keys are
// ignored so documents can carry engine-owned vocabulary without tripping
// normalization.
func specFromMap(m map[string]any) (*fieldSpec, error) {
	spec := &fieldSpec{typ: TypeAny}
	if t, ok := m["type"].(string); ok && t != "" {
		spec.typ = t
	}
	if b, ok := m["optional"].(bool); ok {
		spec.optional = b
	}
	if v, ok := m["default"]; ok {
		spec.def = v
	}
	if v, ok := m["min"]; ok {
		if n, ok := toFloat(v); ok {
			spec.min = &n
		}
	}
	if v, ok := m["max"]; ok {
		if n, ok := toFloat(v); ok {
			spec.max = &n
		}
	}
	if p, ok := m["pattern"].(string); ok {
		spec.pattern = p
	}
	if v, ok := m["enum"]; ok {
		spec.enum, _ = v.([]any)
	} else if v, ok := m["values"]; ok {
		spec.enum, _ = v.([]any)
	}
	if v, ok := m["props"]; ok {
		pm, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("props must be an object, got %T", v)
		}
		if spec.typ != TypeObject {
			return nil, fmt.Errorf("props on %q descriptor", spec.typ)
		}
		props, order, err := normalizeSchema(Schema(pm))
		if err != nil {
			return nil, err
		}
		spec.props, spec.propOrder = props, order
	}
	if v, ok := m["items"]; ok {
		if spec.typ != TypeArray {
			return nil, fmt.Errorf("items on %q descriptor", spec.typ)
		}
		items, err := normalizeDescriptor(v)
		if err != nil {
			return nil, err
		}
		spec.items = items
	}
	return spec, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func sortedKeys(s Schema) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
