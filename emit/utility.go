package emit

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.typeforge.dev/ts2schema/ast"
)

// utilityFunc resolves a built-in generic utility type given its type
// arguments. ok is false when the utility doesn't apply (wrong arity,
// or a base type that doesn't resolve to an object). When a Pick/Omit
// key argument can't be statically extracted, the utility itself emits
// the base type unchanged and reports ok, per spec 4.5.6.
type utilityFunc func(e *emitter, args []ast.TypeNode) (*jsonschema.Schema, bool)

// utilityRegistry is the name -> resolver lookup for the built-in
// generic utility types of spec 4.5.6, mirroring the shape of a
// pluggable, priority-ordered annotator table: a name is either known
// here or it falls through to the generic-instantiation/$ref path.
var utilityRegistry = map[string]utilityFunc{
	"Partial":     utilityPartial,
	"Required":    utilityRequired,
	"Pick":        utilityPick,
	"Omit":        utilityOmit,
	"Readonly":    utilityPassThrough,
	"NonNullable": utilityPassThrough,
	"Record":      utilityRecord,
	"Set":         utilitySet,
	"Map":         utilityMap,
	"Promise":     utilityPassThrough,
}

// resolveObjectLike resolves t to its underlying *ast.Object, following
// a reference to a declared interface, or into a type alias's body,
// when t itself isn't already an inline object type.
func (e *emitter) resolveObjectLike(t ast.TypeNode) (*ast.Object, bool) {
	switch v := t.(type) {
	case *ast.Object:
		return v, true
	case *ast.Parenthesized:
		return e.resolveObjectLike(v.Inner)
	case *ast.Reference:
		decl, ok := e.byName[v.Name]
		if !ok {
			return nil, false
		}

		switch d := decl.(type) {
		case *ast.Interface:
			return &ast.Object{Properties: d.Properties, Index: d.Index}, true
		case *ast.TypeAlias:
			return e.resolveObjectLike(d.Type)
		}
	}

	return nil, false
}

func utilityPartial(e *emitter, args []ast.TypeNode) (*jsonschema.Schema, bool) {
	if len(args) != 1 {
		return nil, false
	}

	obj, ok := e.resolveObjectLike(args[0])
	if !ok {
		return nil, false
	}

	s := e.emitObject(obj, nil)
	s.Required = nil

	return s, true
}

func utilityRequired(e *emitter, args []ast.TypeNode) (*jsonschema.Schema, bool) {
	if len(args) != 1 {
		return nil, false
	}

	obj, ok := e.resolveObjectLike(args[0])
	if !ok {
		return nil, false
	}

	s := e.emitObject(obj, nil)
	s.Required = append([]string(nil), s.PropertyOrder...)

	return s, true
}

func utilityPick(e *emitter, args []ast.TypeNode) (*jsonschema.Schema, bool) {
	return pickOrOmit(e, args, true)
}

func utilityOmit(e *emitter, args []ast.TypeNode) (*jsonschema.Schema, bool) {
	return pickOrOmit(e, args, false)
}

func pickOrOmit(e *emitter, args []ast.TypeNode, keep bool) (*jsonschema.Schema, bool) {
	if len(args) != 2 {
		return nil, false
	}

	obj, ok := e.resolveObjectLike(args[0])
	if !ok {
		return nil, false
	}

	keys, ok := stringLiteralUnion(args[1])
	if !ok {
		// Keys not statically extractable: emit the base type unchanged.
		return e.emitType(args[0]), true
	}

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}

	filtered := make([]ast.Property, 0, len(obj.Properties))

	for _, p := range obj.Properties {
		if want[p.Name] == keep {
			filtered = append(filtered, p)
		}
	}

	return e.emitObject(&ast.Object{Properties: filtered, Index: obj.Index}, nil), true
}

func utilityPassThrough(e *emitter, args []ast.TypeNode) (*jsonschema.Schema, bool) {
	if len(args) != 1 {
		return nil, false
	}

	return e.emitType(args[0]), true
}

func utilityRecord(e *emitter, args []ast.TypeNode) (*jsonschema.Schema, bool) {
	if len(args) != 2 {
		return nil, false
	}

	return e.emitRecord(args[0], args[1]), true
}

func utilitySet(e *emitter, args []ast.TypeNode) (*jsonschema.Schema, bool) {
	if len(args) != 1 {
		return nil, false
	}

	return &jsonschema.Schema{Type: "array", Items: e.emitType(args[0]), UniqueItems: true}, true
}

func utilityMap(e *emitter, args []ast.TypeNode) (*jsonschema.Schema, bool) {
	if len(args) != 2 {
		return nil, false
	}

	return &jsonschema.Schema{Type: "object", AdditionalProperties: e.emitType(args[1])}, true
}
