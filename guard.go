package goguard

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Guard owns a wrapped function, its compiled schema and the extracted
// default value tree. Construct with Wrap; the zero Guard is not usable.
type Guard struct {
	fn       reflect.Value
	fnType   reflect.Type
	takesCtx bool
	params   []string
	fields   map[string]*fieldSpec
	defaults map[string]any
	check    CheckFunc
}

// Wrap compiles schema against the configured engine and returns a Guard
// around fn. params names fn's parameters in declaration order; when fn's
// first parameter is a context.Context it is threaded through by Call and
// excluded from params. Schema keys and params must match one to one.
//
// Structural schema problems surface here, not at call time.
func Wrap(fn any, params []string, schema Schema, opts ...Options) (*Guard, error) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if fn == nil {
		return nil, errors.New("goguard: nil function")
	}
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return nil, fmt.Errorf("goguard: want a function, got %T", fn)
	}
	if ft.IsVariadic() {
		return nil, errors.New("goguard: variadic functions are not supported")
	}
	takesCtx := ft.NumIn() > 0 && ft.In(0) == ctxType
	want := ft.NumIn()
	if takesCtx {
		want--
	}
	if len(params) != want {
		return nil, fmt.Errorf("goguard: %d parameter names for a function with %d parameters", len(params), want)
	}
	seen := make(map[string]bool, len(params))
	for _, name := range params {
		if name == "" {
			return nil, errors.New("goguard: empty parameter name")
		}
		if seen[name] {
			return nil, fmt.Errorf("goguard: duplicate parameter name %q", name)
		}
		seen[name] = true
	}
	fields, fieldOrder, err := normalizeSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("goguard: %w", err)
	}
	for _, name := range params {
		if _, ok := fields[name]; !ok {
			return nil, fmt.Errorf("goguard: parameter %q has no schema entry", name)
		}
	}
	if len(fields) != len(params) {
		for _, name := range fieldOrder {
			if !seen[name] {
				return nil, fmt.Errorf("goguard: schema field %q does not match any parameter", name)
			}
		}
	}
	g := &Guard{
		fn:       fv,
		fnType:   ft,
		takesCtx: takesCtx,
		params:   append([]string(nil), params...),
		fields:   fields,
	}
	g.defaults = defaultTree(fields, g.params)
	eng := opt.Engine
	if eng == nil {
		eng = NewEngine(EngineConfig{})
	}
	check, err := eng.Compile(context.Background(), projectSchema(fields, g.params))
	if err != nil {
		return nil, err
	}
	g.check = check
	return g, nil
}

// MustWrap is Wrap panicking on error, for wiring at package init time.
func MustWrap(fn any, params []string, schema Schema, opts ...Options) *Guard {
	g, err := Wrap(fn, params, schema, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Params returns the declared parameter names in call order.
func (g *Guard) Params() []string { return append([]string(nil), g.params...) }

// Defaults returns a fresh deep copy of the extracted default value tree.
// Mutating the result never changes what later calls receive.
func (g *Guard) Defaults() map[string]any {
	out := make(map[string]any, len(g.defaults))
	for k, v := range g.defaults {
		out[k] = cloneValue(v)
	}
	return out
}
