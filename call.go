package goguard

import (
	"context"
	"fmt"
	"reflect"

	gojson "github.com/goccy/go-json"
)

// Call validates args against the schema and, on success, invokes the wrapped
// function exactly once with the validated values in their original
// positional order. Omitted trailing arguments and Omitted sentinels take
// their declared defaults. The returned error is Issues for validation
// failures and a plain error for arity or binding problems.
func (g *Guard) Call(ctx context.Context, args ...any) ([]any, error) {
	named, err := g.resolve(ctx, args)
	if err != nil {
		return nil, err
	}
	return g.invoke(ctx, named)
}

// CallNamed is Call for map-shaped callers. Keys must be declared parameter
// names; Omitted values count as omitted.
func (g *Guard) CallNamed(ctx context.Context, named map[string]any) ([]any, error) {
	args, err := g.positional(named)
	if err != nil {
		return nil, err
	}
	return g.Call(ctx, args...)
}

// Resolve runs assembly, default injection, the pre-check and the engine,
// and returns the validated named-argument map without invoking the wrapped
// function.
func (g *Guard) Resolve(ctx context.Context, args ...any) (map[string]any, error) {
	return g.resolve(ctx, args)
}

func (g *Guard) positional(named map[string]any) ([]any, error) {
	for name := range named {
		if _, ok := g.fields[name]; !ok {
			return nil, fmt.Errorf("goguard: unknown argument %q", name)
		}
	}
	args := make([]any, len(g.params))
	for i, name := range g.params {
		v, ok := named[name]
		if !ok {
			args[i] = Omitted
			continue
		}
		args[i] = v
	}
	return args, nil
}

func (g *Guard) resolve(ctx context.Context, args []any) (map[string]any, error) {
	if len(args) > len(g.params) {
		return nil, fmt.Errorf("goguard: %d arguments for %d parameters", len(args), len(g.params))
	}
	named := make(map[string]any, len(g.params))
	for i, name := range g.params {
		f := g.fields[name]
		supplied := i < len(args)
		var v any
		if supplied {
			v = args[i]
			if _, omit := v.(OmittedValue); omit {
				supplied = false
			}
		}
		if !supplied {
			if d, ok := g.defaults[name]; ok {
				named[name] = cloneValue(d)
			}
			continue
		}
		if !plausible(v, f.typ) {
			return nil, Issues{issueAt(name, CodeTypeError, map[string]string{
				"expected": f.typ,
				"got":      fmt.Sprintf("%T", v),
			})}
		}
		if vm, ok := v.(map[string]any); ok {
			if d, ok := g.defaults[name].(map[string]any); ok {
				merged := cloneValue(d).(map[string]any)
				for k, vv := range vm {
					merged[k] = vv
				}
				named[name] = merged
				continue
			}
		}
		named[name] = v
	}
	norm, err := normalizeNamed(named)
	if err != nil {
		return nil, err
	}
	if iss := g.check(ctx, norm); len(iss) > 0 {
		return nil, iss
	}
	return named, nil
}

// normalizeNamed rewrites argument values into decoded-JSON shapes, the only
// thing engines are expected to understand. Absent keys stay absent so
// required checks see true absence.
func normalizeNamed(named map[string]any) (map[string]any, error) {
	raw, err := gojson.Marshal(named)
	if err != nil {
		return nil, fmt.Errorf("goguard: arguments are not serializable: %w", err)
	}
	var out map[string]any
	if err := gojson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("goguard: normalize arguments: %w", err)
	}
	return out, nil
}

func (g *Guard) invoke(ctx context.Context, named map[string]any) ([]any, error) {
	in := make([]reflect.Value, 0, g.fnType.NumIn())
	if g.takesCtx {
		if ctx == nil {
			ctx = context.Background()
		}
		in = append(in, reflect.ValueOf(ctx))
	}
	base := len(in)
	for i, name := range g.params {
		pt := g.fnType.In(base + i)
		v, ok := named[name]
		if !ok {
			// absent and legitimately optional: the parameter binds its zero value
			in = append(in, reflect.Zero(pt))
			continue
		}
		rv, err := conformValue(v, pt)
		if err != nil {
			return nil, fmt.Errorf("goguard: parameter %q: %w", name, err)
		}
		in = append(in, rv)
	}
	return splitResults(g.fn.Call(in), g.fnType)
}

// conformValue adapts a validated argument to the declared Go parameter type.
// Assignable values pass through; same-kind and numeric conversions cover
// named types and JSON-shaped float64 defaults feeding int parameters.
func conformValue(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		switch t.Kind() {
		case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Kind() == t.Kind() && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	if isNumericKind(rv.Kind()) && isNumericKind(t.Kind()) && rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", v, t)
}

// splitResults unpacks reflect call results, splitting off a trailing error
// result when the function declares one.
func splitResults(outs []reflect.Value, ft reflect.Type) ([]any, error) {
	n := ft.NumOut()
	hasErr := n > 0 && ft.Out(n-1) == errType
	vals := outs
	var callErr error
	if hasErr {
		if e := outs[n-1]; !e.IsNil() {
			callErr = e.Interface().(error)
		}
		vals = outs[:n-1]
	}
	res := make([]any, len(vals))
	for i := range vals {
		res[i] = vals[i].Interface()
	}
	return res, callErr
}
