package schema

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema2020 is the default $schema URL emitted when Options.IncludeSchema
// is true and no explicit SchemaVersion override is given.
const Schema2020 = "https://json-schema.org/draft/2020-12/schema"

// Draft07 is the $schema URL used internally when a batch entry's
// "definitions" shape is rendered against draft-07, per spec 4.5.2B.
const Draft07 = "http://json-schema.org/draft-07/schema#"

// True returns the schema that validates everything, i.e. the JSON value
// `true`.
func True() *jsonschema.Schema {
	return &jsonschema.Schema{}
}

// False returns the schema that validates nothing, i.e. the JSON value
// `false`.
func False() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

// Ref builds a `{"$ref": pointer}` schema.
func Ref(pointer string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: pointer}
}

// Const builds a `{"const": v}` schema.
func Const(v any) *jsonschema.Schema {
	return &jsonschema.Schema{Const: jsonschema.Ptr(v)}
}

// RawValue marshals v to a json.RawMessage, returning nil on failure
// rather than propagating an error; callers use it for "best effort"
// fields like `default` and `example` that tolerate silent omission.
func RawValue(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return b
}

// DefPointer returns the internal $ref fragment for name under the
// 2020-12 single-document shape.
func DefPointer(name string) string {
	return "#/$defs/" + name
}

// DefinitionPointer returns the internal $ref fragment for name under
// the draft-07 batch shape.
func DefinitionPointer(name string) string {
	return "#/definitions/" + name
}
