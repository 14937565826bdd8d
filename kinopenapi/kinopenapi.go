// Package kinopenapi adapts github.com/getkin/kin-openapi value validation
// as a goguard engine. It exists to keep the engine seam honest: the built-in
// JSON Schema engine stays the default, this one can be injected through
// Options.Engine when a codebase already lives on OpenAPI tooling.
package kinopenapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	goguard "github.com/reoring/goguard"
	js "github.com/reoring/goguard/jsonschema"
)

// Options controls check behavior.
type Options struct {
	// MultiError collects every failure instead of stopping at the first.
	MultiError bool
}

// New returns an engine backed by kin-openapi schema value validation.
func New(opts Options) goguard.Engine { return &engine{opts: opts} }

type engine struct{ opts Options }

func (e *engine) Compile(ctx context.Context, doc *js.Schema) (goguard.CheckFunc, error) {
	root := convert(doc)
	if err := root.Validate(ctx, openapi3.EnableSchemaPatternValidation()); err != nil {
		return nil, fmt.Errorf("kinopenapi: schema rejected: %w", err)
	}
	var vopts []openapi3.SchemaValidationOption
	if e.opts.MultiError {
		vopts = append(vopts, openapi3.MultiErrors())
	}
	return func(ctx context.Context, args map[string]any) goguard.Issues {
		err := root.VisitJSON(args, vopts...)
		if err == nil {
			return nil
		}
		return issuesFromErr(err)
	}, nil
}

func issuesFromErr(err error) goguard.Issues {
	switch t := err.(type) {
	case openapi3.MultiError:
		var iss goguard.Issues
		for _, e := range t {
			iss = goguard.AppendIssues(iss, issuesFromErr(e)...)
		}
		return iss
	case *openapi3.SchemaError:
		return goguard.Issues{issueFromSchemaError(t)}
	default:
		return goguard.Issues{{Type: "schema", Message: err.Error()}}
	}
}

func issueFromSchemaError(se *openapi3.SchemaError) goguard.Issue {
	field := strings.Join(se.JSONPointer(), ".")
	msg := se.Reason
	if msg == "" {
		msg = se.Error()
	}
	if field == "" && se.SchemaField == "required" {
		// some failure shapes point at the enclosing object, the offending
		// name then only shows up inside the reason text
		field = doubleQuoted(msg)
	}
	return goguard.Issue{Field: field, Type: se.SchemaField, Message: msg}
}

func doubleQuoted(s string) string {
	i := strings.IndexByte(s, '"')
	if i < 0 {
		return ""
	}
	j := strings.IndexByte(s[i+1:], '"')
	if j < 0 {
		return ""
	}
	return s[i+1 : i+1+j]
}

// convert maps the projected document onto kin-openapi's schema model.
// additionalProperties stays unmapped: positional assembly only ever emits
// declared names, so there is nothing for an open top level to let through.
func convert(in *js.Schema) *openapi3.Schema {
	out := &openapi3.Schema{}
	if in == nil {
		return out
	}
	if in.Type != "" {
		out.Type = &openapi3.Types{in.Type}
	}
	out.Format = in.Format
	out.Default = in.Default
	if len(in.Enum) > 0 {
		out.Enum = append([]any(nil), in.Enum...)
	}
	if len(in.Properties) > 0 {
		out.Properties = make(openapi3.Schemas, len(in.Properties))
		for name, p := range in.Properties {
			out.Properties[name] = openapi3.NewSchemaRef("", convert(p))
		}
	}
	if len(in.Required) > 0 {
		out.Required = append([]string(nil), in.Required...)
	}
	if in.Items != nil {
		out.Items = openapi3.NewSchemaRef("", convert(in.Items))
	}
	if in.MinItems != nil {
		out.MinItems = uint64(*in.MinItems)
	}
	if in.MaxItems != nil {
		u := uint64(*in.MaxItems)
		out.MaxItems = &u
	}
	out.Min = in.Minimum
	out.Max = in.Maximum
	if in.MinLength != nil {
		out.MinLength = uint64(*in.MinLength)
	}
	if in.MaxLength != nil {
		u := uint64(*in.MaxLength)
		out.MaxLength = &u
	}
	out.Pattern = in.Pattern
	return out
}
