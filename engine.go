package goguard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"
	jschema "github.com/santhosh-tekuri/jsonschema/v5"

	js "github.com/reoring/goguard/jsonschema"
)

// CheckFunc validates an assembled named-argument map, already normalized to
// decoded-JSON shapes. A nil result means the arguments passed; otherwise the
// issues describe every failure the engine reported.
type CheckFunc func(ctx context.Context, args map[string]any) Issues

// Engine compiles a projected schema document into a CheckFunc. Engines are
// injected at wrap time; the package never holds a shared validator instance.
type Engine interface {
	Compile(ctx context.Context, doc *js.Schema) (CheckFunc, error)
}

// NewEngine returns the built-in engine backed by
// github.com/santhosh-tekuri/jsonschema (draft 2020-12).
func NewEngine(cfg EngineConfig) Engine { return &jsonSchemaEngine{cfg: cfg} }

type jsonSchemaEngine struct{ cfg EngineConfig }

// The resource URL must be hierarchical: the jsonschema v5 compiler resolves
// the root "#" fragment through net/url.ResolveReference, which drops the
// opaque part of non-urn opaque URIs ("mem:x" becomes "mem:").
const engineResourceURL = "mem://goguard"

func (e *jsonSchemaEngine) Compile(ctx context.Context, doc *js.Schema) (CheckFunc, error) {
	raw, err := gojson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("goguard: marshal schema document: %w", err)
	}
	c := jschema.NewCompiler()
	c.Draft = jschema.Draft2020
	c.AssertFormat = e.cfg.AssertFormat
	if err := c.AddResource(engineResourceURL, strings.NewReader(string(raw))); err != nil {
		return nil, fmt.Errorf("goguard: register schema document: %w", err)
	}
	compiled, err := c.Compile(engineResourceURL)
	if err != nil {
		return nil, fmt.Errorf("goguard: compile schema: %w", err)
	}
	return func(ctx context.Context, args map[string]any) Issues {
		err := compiled.Validate(args)
		if err == nil {
			return nil
		}
		var ve *jschema.ValidationError
		if errors.As(err, &ve) {
			return issuesFromValidationError(ve)
		}
		return Issues{{Type: "schema", Message: err.Error()}}
	}, nil
}

// issuesFromValidationError flattens the engine's cause tree into one issue
// per leaf failure.
func issuesFromValidationError(ve *jschema.ValidationError) Issues {
	var iss Issues
	var walk func(e *jschema.ValidationError)
	walk = func(e *jschema.ValidationError) {
		if len(e.Causes) == 0 {
			iss = append(iss, issueFromLeaf(e))
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return iss
}

func issueFromLeaf(e *jschema.ValidationError) Issue {
	kind := keywordKind(e.KeywordLocation)
	field := fieldFromPointer(e.InstanceLocation)
	if field == "" && kind == CodeRequired {
		field = singleQuoted(e.Message)
	}
	return Issue{Field: field, Type: kind, Message: e.Message}
}

// keywordKind keeps the last keyword segment, so error types read the way the
// schema was written ("required", "type", "minimum", ...).
func keywordKind(loc string) string {
	if loc == "" {
		return "schema"
	}
	segs := strings.Split(loc, "/")
	return segs[len(segs)-1]
}

// fieldFromPointer converts a JSON pointer over the named-argument map into
// the dotted field form used by validation error records. Array positions
// keep their index as a path segment ("tags.0").
func fieldFromPointer(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	segs := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	for i, s := range segs {
		s = strings.ReplaceAll(s, "~1", "/")
		s = strings.ReplaceAll(s, "~0", "~")
		segs[i] = s
	}
	return strings.Join(segs, ".")
}

// singleQuoted pulls the first 'quoted' token out of an engine message. The
// built-in engine reports missing properties only at the object level, so the
// offending name has to come back out of the message text.
func singleQuoted(msg string) string {
	i := strings.IndexByte(msg, '\'')
	if i < 0 {
		return ""
	}
	j := strings.IndexByte(msg[i+1:], '\'')
	if j < 0 {
		return ""
	}
	return msg[i+1 : i+1+j]
}
