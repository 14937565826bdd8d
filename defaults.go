package goguard

import "github.com/mohae/deepcopy"

// defaultTree assembles the default value tree for a compiled schema. Keys
// contribute only when they carry an explicit default or, for objects, when
// their nested props assemble a non-empty tree of their own; everything else
// is omitted entirely. The walk is pure: same schema, same tree.
func defaultTree(fields map[string]*fieldSpec, order []string) map[string]any {
	out := make(map[string]any)
	for _, name := range order {
		if v, ok := fieldDefault(fields[name]); ok {
			out[name] = v
		}
	}
	return out
}

func fieldDefault(f *fieldSpec) (any, bool) {
	if f.def != nil {
		return f.def, true
	}
	if f.typ == TypeObject && len(f.props) > 0 {
		nested := make(map[string]any)
		for _, name := range f.propOrder {
			if v, ok := fieldDefault(f.props[name]); ok {
				nested[name] = v
			}
		}
		if len(nested) > 0 {
			return nested, true
		}
	}
	return nil, false
}

// cloneValue deep-copies a default before it crosses an API boundary, so the
// stored tree never aliases caller-visible data.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	return deepcopy.Copy(v)
}
