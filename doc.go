package goguard

// Package goguard wraps ordinary functions with schema-driven argument
// validation, default injection and type checks.
//
// - Declarative Schema per parameter (shorthand strings or Field descriptors)
// - Defaults extracted once at wrap time, deep-copied on every use
// - A cheap local type pre-check; everything rule-shaped is delegated to a
//   pluggable validation engine (JSON Schema by default)
// - A stable error model via Issues (field, type, message) serialized as a
//   validationErrors payload
//
// Design policy:
// - Keep public APIs in the root package; alternative engine adapters live in
//   their own packages (kinopenapi/).
// - Engines are injected at wrap time; no package-global validator state.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	g, err := goguard.Wrap(createUser, []string{"role"}, goguard.Schema{
//	    "role": "string|optional|default:user",
//	})
//	out, err := g.Call(ctx, "admin")
//
//	typed, err := goguard.Typed[func(context.Context, string) (string, error)](g)
//	name, err := typed(ctx, "admin")
