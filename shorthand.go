package goguard

import (
	"math"
	"strconv"
	"strings"
)

// parseShorthand expands a delimited descriptor such as
// "string|optional|default:user" into its compiled form. The first segment is
// the type, later segments are flags or key:value pairs. Unknown segments are
// ignored, so no error is possible at this stage.
func parseShorthand(s string) *fieldSpec {
	spec := &fieldSpec{typ: TypeAny}
	for i, seg := range strings.Split(s, "|") {
		seg = strings.TrimSpace(seg)
		if i == 0 {
			if seg != "" {
				spec.typ = seg
			}
			continue
		}
		switch {
		case seg == "optional":
			spec.optional = true
		case strings.HasPrefix(seg, "default:"):
			spec.def = coerceLiteral(seg[len("default:"):])
		case strings.HasPrefix(seg, "min:"):
			if n, ok := parseNumberLiteral(seg[len("min:"):]); ok {
				spec.min = &n
			}
		case strings.HasPrefix(seg, "max:"):
			if n, ok := parseNumberLiteral(seg[len("max:"):]); ok {
				spec.max = &n
			}
		case strings.HasPrefix(seg, "pattern:"):
			spec.pattern = seg[len("pattern:"):]
		}
	}
	return spec
}

// coerceLiteral applies the shorthand default coercion: the exact literals
// true and false become booleans, fully numeric literals become numbers,
// anything else stays the literal string.
func coerceLiteral(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, ok := parseNumberLiteral(s); ok {
		return n
	}
	return s
}

// parseNumberLiteral is strconv.ParseFloat without the NaN/Inf spellings,
// which shorthand never means as numbers.
func parseNumberLiteral(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
