package goguard

import (
	"errors"

	gojson "github.com/goccy/go-json"
)

// Issue types (exported consts for IDE completion and type safety by convention).
// CodeTypeError is the only type this package raises on its own; the rest are
// the kinds engines commonly report, passed through verbatim.
const (
	CodeTypeError = "typeError"
	CodeRequired  = "required"
	CodeType      = "type"
	CodeEnum      = "enum"
	CodeMinimum   = "minimum"
	CodeMaximum   = "maximum"
	CodeMinLength = "minLength"
	CodeMaxLength = "maxLength"
	CodePattern   = "pattern"
	CodeFormat    = "format"
)

// Issue represents a single validation failure for one named argument.
type Issue struct {
	Field   string `json:"field"`   // Dotted path from the parameter name (for example: options.retries).
	Type    string `json:"type"`    // One of the codes above, or whatever kind the engine reported.
	Message string `json:"message"`
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// payload is the wire shape of a failed call.
type payload struct {
	ValidationErrors []Issue `json:"validationErrors"`
}

// Error renders the serialized validationErrors payload. Callers that want
// structure should go through AsIssues instead of parsing the string.
func (iss Issues) Error() string {
	p := payload{ValidationErrors: iss}
	if p.ValidationErrors == nil {
		p.ValidationErrors = []Issue{}
	}
	b, err := gojson.Marshal(p)
	if err != nil {
		return `{"validationErrors":[]}`
	}
	return string(b)
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
