package goguard

import js "github.com/reoring/goguard/jsonschema"

// projectSchema assembles the engine input document for a guard: one object
// schema whose properties are the declared parameters. Parameters without the
// optional flag are required. The top level closes additionalProperties since
// only declared names ever reach the engine; nested objects stay open so
// undeclared nested keys pass through untouched.
func projectSchema(fields map[string]*fieldSpec, order []string) *js.Schema {
	doc := &js.Schema{
		Type:                 "object",
		Properties:           make(map[string]*js.Schema, len(fields)),
		AdditionalProperties: false,
	}
	for _, name := range order {
		f := fields[name]
		doc.Properties[name] = projectField(f)
		if !f.optional {
			doc.Required = append(doc.Required, name)
		}
	}
	return doc
}

// projectField maps one compiled descriptor onto JSON Schema keywords. Types
// outside the known vocabulary stay unconstrained rather than guessed.
func projectField(f *fieldSpec) *js.Schema {
	out := &js.Schema{Default: f.def}
	if len(f.enum) > 0 {
		out.Enum = append([]any(nil), f.enum...)
	}
	switch f.typ {
	case TypeString:
		out.Type = "string"
		out.MinLength = intPtr(f.min)
		out.MaxLength = intPtr(f.max)
		out.Pattern = f.pattern
	case TypeNumber:
		out.Type = "number"
		out.Minimum = f.min
		out.Maximum = f.max
	case TypeBoolean:
		out.Type = "boolean"
	case TypeObject:
		out.Type = "object"
		if len(f.props) > 0 {
			out.Properties = make(map[string]*js.Schema, len(f.props))
			for _, name := range f.propOrder {
				p := f.props[name]
				out.Properties[name] = projectField(p)
				if !p.optional {
					out.Required = append(out.Required, name)
				}
			}
		}
	case TypeArray:
		out.Type = "array"
		if f.items != nil {
			out.Items = projectField(f.items)
		}
		out.MinItems = intPtr(f.min)
		out.MaxItems = intPtr(f.max)
	case TypeEnum:
		// enum keyword set above; no type keyword on purpose
	case TypeEmail:
		out.Type = "string"
		out.Format = "email"
	case TypeURL:
		out.Type = "string"
		out.Format = "uri"
	case TypeUUID:
		out.Type = "string"
		out.Format = "uuid"
	case TypeDate:
		out.Type = "string"
		out.Format = "date-time"
	}
	return out
}

func intPtr(f *float64) *int {
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
