package emit

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/schema"
)

// emitReference implements the Reference row of spec 4.5.3's mapping
// table: the Date built-in, then the utility-type registry, then
// generic instantiation of a user declaration, else a plain $ref.
func (e *emitter) emitReference(ref *ast.Reference) *jsonschema.Schema {
	if ref.Name == "Date" && len(ref.TypeArgs) == 0 {
		return &jsonschema.Schema{Type: "string", Format: "date-time"}
	}

	if len(ref.TypeArgs) > 0 {
		if fn, ok := utilityRegistry[ref.Name]; ok {
			if s, ok := fn(e, ref.TypeArgs); ok {
				return s
			}
		}

		if decl, ok := e.byName[ref.Name]; ok {
			if body, ok := instantiateGeneric(decl, ref.TypeArgs); ok {
				return e.emitType(body)
			}
		}
	}

	return schema.Ref(schema.DefPointer(e.outputName(ref.Name)))
}
