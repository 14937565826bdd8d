package goguard

import (
	"context"
	"fmt"
	"reflect"
)

// Typed returns a strongly typed view of g with signature F, built with
// reflect.MakeFunc. F must be a non-variadic func whose parameters mirror the
// guarded ones (an optional leading context.Context is threaded into Call)
// and whose final result is an error, since validation failures need a
// channel out. Value results are conformed the same way arguments are.
//
// Arguments of a typed view are always supplied; parameters that should fall
// back to their defaults have to go through Call or CallNamed with Omitted.
func Typed[F any](g *Guard) (F, error) {
	var zero F
	ft := reflect.TypeOf((*F)(nil)).Elem()
	if ft.Kind() != reflect.Func {
		return zero, fmt.Errorf("goguard: Typed wants a func type, got %s", ft)
	}
	if ft.IsVariadic() {
		return zero, fmt.Errorf("goguard: Typed does not support variadic signatures")
	}
	fTakesCtx := ft.NumIn() > 0 && ft.In(0) == ctxType
	want := len(g.params)
	if fTakesCtx {
		want++
	}
	if ft.NumIn() != want {
		return zero, fmt.Errorf("goguard: signature has %d parameters, guard declares %d", ft.NumIn(), want)
	}
	if ft.NumOut() == 0 || ft.Out(ft.NumOut()-1) != errType {
		return zero, fmt.Errorf("goguard: signature must end in an error result")
	}
	fnVals := g.fnType.NumOut()
	if fnVals > 0 && g.fnType.Out(fnVals-1) == errType {
		fnVals--
	}
	if ft.NumOut()-1 != fnVals {
		return zero, fmt.Errorf("goguard: signature has %d value results, function has %d", ft.NumOut()-1, fnVals)
	}

	impl := reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		ctx := context.Background()
		rest := in
		if fTakesCtx {
			if c, ok := in[0].Interface().(context.Context); ok && c != nil {
				ctx = c
			}
			rest = in[1:]
		}
		args := make([]any, len(rest))
		for i := range rest {
			args[i] = rest[i].Interface()
		}
		outs := make([]reflect.Value, ft.NumOut())
		for i := range outs {
			outs[i] = reflect.Zero(ft.Out(i))
		}
		res, err := g.Call(ctx, args...)
		if err != nil {
			outs[ft.NumOut()-1] = errValue(err)
			return outs
		}
		for i := 0; i < ft.NumOut()-1 && i < len(res); i++ {
			rv, cerr := conformValue(res[i], ft.Out(i))
			if cerr != nil {
				outs[ft.NumOut()-1] = errValue(fmt.Errorf("goguard: result %d: %w", i, cerr))
				return outs
			}
			outs[i] = rv
		}
		return outs
	})
	return impl.Interface().(F), nil
}

// MustTyped is Typed panicking on error, for wiring at package init time.
func MustTyped[F any](g *Guard) F {
	f, err := Typed[F](g)
	if err != nil {
		panic(err)
	}
	return f
}

func errValue(err error) reflect.Value {
	ev := reflect.New(errType).Elem()
	ev.Set(reflect.ValueOf(err))
	return ev
}
