package goguard_test

import (
	"context"
	"testing"

	goguard "github.com/reoring/goguard"
)

// TestTyped_RoundTrip covers the MakeFunc view: same-shape signature, results
// conformed, validation running underneath.
func TestTyped_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g := goguard.MustWrap(
		func(role string) string { return "hello " + role },
		[]string{"role"},
		goguard.Schema{"role": "string|optional|default:user"},
	)

	f, err := goguard.Typed[func(context.Context, string) (string, error)](g)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	out, err := f(ctx, "admin")
	if err != nil || out != "hello admin" {
		t.Fatalf("expected greeting, got out=%q err=%v", out, err)
	}
}

// TestTyped_ValidationErrorSurfaces covers failure flow through the typed
// view: loosely typed parameters still pass through the full pipeline.
func TestTyped_ValidationErrorSurfaces(t *testing.T) {
	ctx := context.Background()
	g := goguard.MustWrap(
		func(age float64) float64 { return age },
		[]string{"age"},
		goguard.Schema{"age": "number"},
	)

	f, err := goguard.Typed[func(context.Context, any) (float64, error)](g)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = f(ctx, "20")
	iss, ok := goguard.AsIssues(err)
	if !ok || iss[0].Type != goguard.CodeTypeError {
		t.Fatalf("expected typeError through typed view, got %v", err)
	}
}

// TestTyped_NoContextSignature covers a view without a leading context; a
// background context backs the call.
func TestTyped_NoContextSignature(t *testing.T) {
	g := goguard.MustWrap(
		func(n float64) float64 { return n * 2 },
		[]string{"n"},
		goguard.Schema{"n": "number"},
	)

	double, err := goguard.Typed[func(float64) (float64, error)](g)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out, err := double(21); err != nil || out != 42 {
		t.Fatalf("expected 42, got out=%v err=%v", out, err)
	}
}

// TestTyped_SignatureChecks covers the rejected shapes: wrong parameter
// count, no trailing error, result count drift, non-func type.
func TestTyped_SignatureChecks(t *testing.T) {
	g := goguard.MustWrap(
		func(role string) string { return role },
		[]string{"role"},
		goguard.Schema{"role": "string"},
	)

	if _, err := goguard.Typed[func(string, string) (string, error)](g); err == nil {
		t.Fatalf("expected parameter count error")
	}
	if _, err := goguard.Typed[func(string) string](g); err == nil {
		t.Fatalf("expected missing error result to be rejected")
	}
	if _, err := goguard.Typed[func(string) (string, string, error)](g); err == nil {
		t.Fatalf("expected result count error")
	}
	if _, err := goguard.Typed[int](g); err == nil {
		t.Fatalf("expected non-func to be rejected")
	}
}
