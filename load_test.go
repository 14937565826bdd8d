package goguard_test

import (
	"context"
	"strings"
	"testing"

	goguard "github.com/reoring/goguard"
)

// TestSchemaFromYAML_Document covers YAML schema documents: shorthand values,
// structured descriptors, normalization of YAML map shapes, and the loaded
// schema behaving like an inline one.
func TestSchemaFromYAML_Document(t *testing.T) {
	ctx := context.Background()
	doc := []byte(`
role: string|optional|default:user
options:
  type: object
  optional: true
  default:
    notify: true
    retries: 3
`)
	schema, err := goguard.SchemaFromYAML(doc)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	g, err := goguard.Wrap(
		func(role string, options map[string]any) (string, map[string]any) { return role, options },
		[]string{"role", "options"},
		schema,
	)
	if err != nil {
		t.Fatalf("unexpected wrap err: %v", err)
	}

	out, err := g.Call(ctx, goguard.Omitted, map[string]any{"notify": false})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out[0] != "user" {
		t.Fatalf("expected default role, got %v", out[0])
	}
	opts := out[1].(map[string]any)
	if opts["notify"] != false || opts["retries"] != 3 {
		t.Fatalf("expected merged options, got %v", opts)
	}
}

// TestSchemaFromYAML_Rejections covers the document shape rules: empty input,
// non-mapping roots and multi-document files.
func TestSchemaFromYAML_Rejections(t *testing.T) {
	if _, err := goguard.SchemaFromYAML(nil); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty-document error, got %v", err)
	}
	if _, err := goguard.SchemaFromYAML([]byte("- a\n- b\n")); err == nil || !strings.Contains(err.Error(), "mapping") {
		t.Fatalf("expected mapping error, got %v", err)
	}
	if _, err := goguard.SchemaFromYAML([]byte("a: string\n---\nb: string\n")); err == nil || !strings.Contains(err.Error(), "single document") {
		t.Fatalf("expected single-document error, got %v", err)
	}
}

// TestSchemaFromJSON_Document covers the JSON form, including min/max keys on
// a structured descriptor.
func TestSchemaFromJSON_Document(t *testing.T) {
	ctx := context.Background()
	doc := []byte(`{
		"age":  {"type": "number", "min": 18},
		"role": "string|optional|default:user"
	}`)
	schema, err := goguard.SchemaFromJSON(doc)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	g, err := goguard.Wrap(
		func(age float64, role string) (float64, string) { return age, role },
		[]string{"age", "role"},
		schema,
	)
	if err != nil {
		t.Fatalf("unexpected wrap err: %v", err)
	}

	if _, err := g.Call(ctx, 30.0); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	_, err = g.Call(ctx, 10.0)
	iss, ok := goguard.AsIssues(err)
	if !ok || iss[0].Type != goguard.CodeMinimum {
		t.Fatalf("expected minimum issue, got %v", err)
	}

	if _, err := goguard.SchemaFromJSON([]byte("[1,2]")); err == nil {
		t.Fatalf("expected decode error for non-object document")
	}
}
