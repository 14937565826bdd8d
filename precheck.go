package goguard

import (
	"encoding/json"
	"reflect"
)

// plausible reports whether a supplied value could possibly satisfy the
// declared type. Only string, number, boolean and object get a local check;
// every other declared type is the engine's business. A true result is
// provisional (the engine may still reject), a false result is final, so the
// check stays conservative: anything carrying a custom JSON marshaler is
// waved through for the engine to judge.
func plausible(v any, typ string) bool {
	switch typ {
	case TypeString, TypeNumber, TypeBoolean, TypeObject:
	default:
		return true
	}
	if v == nil {
		return false
	}
	if _, ok := v.(json.Marshaler); ok {
		return true
	}
	rv := derefValue(v)
	if !rv.IsValid() {
		return false
	}
	switch typ {
	case TypeString:
		return rv.Kind() == reflect.String
	case TypeBoolean:
		return rv.Kind() == reflect.Bool
	case TypeNumber:
		if _, ok := v.(json.Number); ok {
			return true
		}
		return isNumericKind(rv.Kind())
	case TypeObject:
		switch rv.Kind() {
		case reflect.Struct:
			return true
		case reflect.Map:
			return rv.Type().Key().Kind() == reflect.String
		}
		return false
	}
	return true
}
