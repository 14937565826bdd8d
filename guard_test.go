package goguard_test

import (
	"strings"
	"testing"

	goguard "github.com/reoring/goguard"
)

func noop(string) {}

// TestWrap_SchemaParamsMustMatch covers the one-to-one rule between schema
// keys and declared parameter names, in both directions.
func TestWrap_SchemaParamsMustMatch(t *testing.T) {
	// parameter without schema entry
	_, err := goguard.Wrap(noop, []string{"name"}, goguard.Schema{})
	if err == nil || !strings.Contains(err.Error(), "no schema entry") {
		t.Fatalf("expected missing-entry error, got %v", err)
	}

	// schema field without parameter
	_, err = goguard.Wrap(noop, []string{"name"}, goguard.Schema{
		"name": "string",
		"age":  "number",
	})
	if err == nil || !strings.Contains(err.Error(), "does not match any parameter") {
		t.Fatalf("expected orphan-field error, got %v", err)
	}
}

// TestWrap_RejectsBadTargets covers non-function targets, variadic functions
// and wrong name counts.
func TestWrap_RejectsBadTargets(t *testing.T) {
	if _, err := goguard.Wrap(nil, nil, goguard.Schema{}); err == nil {
		t.Fatalf("expected error for nil function")
	}
	if _, err := goguard.Wrap(42, nil, goguard.Schema{}); err == nil {
		t.Fatalf("expected error for non-function")
	}
	if _, err := goguard.Wrap(func(...string) {}, []string{"v"}, goguard.Schema{"v": "string"}); err == nil {
		t.Fatalf("expected error for variadic function")
	}
	if _, err := goguard.Wrap(noop, []string{"a", "b"}, goguard.Schema{"a": "string", "b": "string"}); err == nil {
		t.Fatalf("expected error for name count mismatch")
	}
	if _, err := goguard.Wrap(func(string, string) {}, []string{"a", "a"}, goguard.Schema{"a": "string"}); err == nil {
		t.Fatalf("expected error for duplicate names")
	}
}

// TestWrap_BadDescriptorFailsEarly covers local descriptor validation: props
// on a non-object descriptor never reaches an engine.
func TestWrap_BadDescriptorFailsEarly(t *testing.T) {
	_, err := goguard.Wrap(noop, []string{"v"}, goguard.Schema{
		"v": goguard.Field{Type: "string", Props: goguard.Schema{"x": "string"}},
	})
	if err == nil || !strings.Contains(err.Error(), "props") {
		t.Fatalf("expected props error, got %v", err)
	}

	_, err = goguard.Wrap(noop, []string{"v"}, goguard.Schema{"v": 12})
	if err == nil || !strings.Contains(err.Error(), "unsupported descriptor") {
		t.Fatalf("expected descriptor error, got %v", err)
	}
}

// TestWrap_StructuralSchemaErrorAtWrapTime covers engine compilation: a
// pattern that is not a valid regular expression fails Wrap, not Call.
func TestWrap_StructuralSchemaErrorAtWrapTime(t *testing.T) {
	_, err := goguard.Wrap(noop, []string{"v"}, goguard.Schema{
		"v": goguard.Field{Type: "string", Pattern: "("},
	})
	if err == nil {
		t.Fatalf("expected compile error for broken pattern")
	}
}

// TestMustWrap_PanicsOnError covers the Must variant.
func TestMustWrap_PanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	goguard.MustWrap(noop, []string{"name"}, goguard.Schema{})
}

// TestGuard_ParamsCopy covers the accessor: callers cannot reorder the
// guard's view of its parameters.
func TestGuard_ParamsCopy(t *testing.T) {
	g := goguard.MustWrap(func(a, b string) {}, []string{"a", "b"}, goguard.Schema{
		"a": "string|optional",
		"b": "string|optional",
	})
	p := g.Params()
	p[0] = "zzz"
	if got := g.Params(); got[0] != "a" || got[1] != "b" {
		t.Fatalf("params leaked: %v", got)
	}
}
