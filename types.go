package goguard

// Descriptor types understood by the schema projection. Anything else is
// handed to the engine as an unconstrained value.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
	TypeEnum    = "enum"
	TypeEmail   = "email"
	TypeURL     = "url"
	TypeUUID    = "uuid"
	TypeDate    = "date"
	TypeAny     = "any"
)

// OmittedValue is the type of the Omitted sentinel.
type OmittedValue struct{}

// Omitted marks a positional argument as intentionally absent, so that the
// declared default applies when one exists. Trailing arguments may be left
// off instead. A nil argument is an explicit null, not an omission.
var Omitted = OmittedValue{}

// Options bundles wrap-time options. When several Options values are passed,
// the last one wins.
type Options struct {
	// Engine validates the assembled named arguments. Nil selects the
	// built-in JSON Schema engine with a default EngineConfig.
	Engine Engine
}

// EngineConfig tunes the built-in JSON Schema engine.
type EngineConfig struct {
	// AssertFormat turns format keywords (email, uuid, ...) into assertions.
	// The 2020-12 draft treats them as annotations otherwise.
	AssertFormat bool
}
