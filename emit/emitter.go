package emit

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/jsonschema-go/jsonschema"

	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/schema"
)

var (
	// ErrNameCollision is the sentinel wrapped by NameCollisionError.
	ErrNameCollision = errors.New("defineNameTransform: name collision")
	// ErrCallback is the sentinel wrapped by CallbackError.
	ErrCallback = errors.New("callback panicked")
	// ErrDuplicateID is the sentinel wrapped by DuplicateIDError.
	ErrDuplicateID = errors.New("defineId: duplicate id")
)

// NameCollisionError is returned when DefineNameTransform maps two
// distinct original declaration names to the same transformed name.
type NameCollisionError struct {
	Transformed string
	Names       []string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("defineNameTransform: %q and %q both transform to %q", e.Names[0], e.Names[1], e.Transformed)
}

func (e *NameCollisionError) Unwrap() error { return ErrNameCollision }

// CallbackError wraps a panic recovered from a user-supplied callback
// (DefineNameTransform or DefineID), with the declaration name that was
// being processed when it occurred.
type CallbackError struct {
	TypeName string
	Cause    any
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("callback error while processing %q: %v", e.TypeName, e.Cause)
}

func (e *CallbackError) Unwrap() error { return ErrCallback }

// DuplicateIDError is returned when DefineID produces the same id for
// two different declarations.
type DuplicateIDError struct {
	ID    string
	Names []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("defineId: %q and %q both produced id %q", e.Names[0], e.Names[1], e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

// emitter holds the state shared across one Emit/EmitAll call: the
// original declarations keyed by name, the name-transform bijection,
// and the utility-type/generic-instantiation machinery that needs to
// look declarations up by name while emitting a Reference.
type emitter struct {
	opts      Options
	byName    map[string]ast.Declaration
	order     []string
	transform map[string]string // original -> output name
	ids       map[string]string // original -> external $id, when DefineID set
}

func newEmitter(decls []ast.Declaration, opts Options) (*emitter, error) {
	e := &emitter{
		opts:   opts,
		byName: make(map[string]ast.Declaration, len(decls)),
	}

	for _, d := range decls {
		name := d.DeclName()
		if _, exists := e.byName[name]; !exists {
			e.order = append(e.order, name)
		}

		e.byName[name] = d
	}

	if err := e.buildNameTransform(); err != nil {
		return nil, err
	}

	if err := e.buildIDs(); err != nil {
		return nil, err
	}

	return e, nil
}

// buildNameTransform applies DefineNameTransform to every known
// declaration up front, per spec 4.5.10, detecting collisions before
// any emission happens.
func (e *emitter) buildNameTransform() error {
	e.transform = make(map[string]string, len(e.order))

	if e.opts.DefineNameTransform == nil {
		for _, name := range e.order {
			e.transform[name] = name
		}

		return nil
	}

	reverse := make(map[string]string, len(e.order))

	for _, name := range e.order {
		out, err := e.callNameTransform(name)
		if err != nil {
			return err
		}

		if existing, dup := reverse[out]; dup {
			return &NameCollisionError{Transformed: out, Names: []string{existing, name}}
		}

		reverse[out] = name
		e.transform[name] = out
	}

	return nil
}

func (e *emitter) callNameTransform(name string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CallbackError{TypeName: name, Cause: r}
		}
	}()

	decl := e.byName[name]

	var fileCtx *FileContext
	if sf := sourceFileOf(decl); sf != "" {
		fileCtx = &FileContext{Path: sf}
	}

	return e.opts.DefineNameTransform(name, decl, fileCtx), nil
}

func (e *emitter) buildIDs() error {
	if e.opts.DefineID == nil {
		return nil
	}

	e.ids = make(map[string]string, len(e.order))
	seen := make(map[string]string, len(e.order))

	for _, name := range e.order {
		id, err := e.callDefineID(name)
		if err != nil {
			return err
		}

		if existing, dup := seen[id]; dup {
			return &DuplicateIDError{ID: id, Names: []string{existing, name}}
		}

		seen[id] = name
		e.ids[name] = id
	}

	return nil
}

func (e *emitter) callDefineID(name string) (id string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &CallbackError{TypeName: name, Cause: r}
		}
	}()

	return e.opts.DefineID(name, e.byName[name]), nil
}

func sourceFileOf(d ast.Declaration) string {
	switch v := d.(type) {
	case *ast.Interface:
		return v.SourceFile
	case *ast.TypeAlias:
		return v.SourceFile
	case *ast.Enum:
		return v.SourceFile
	}

	return ""
}

func (e *emitter) outputName(original string) string {
	if out, ok := e.transform[original]; ok {
		return out
	}

	return original
}

// emitDeclaration converts a single top-level declaration to a schema,
// without any $ref/$defs wrapping.
func (e *emitter) emitDeclaration(d ast.Declaration) *jsonschema.Schema {
	switch v := d.(type) {
	case *ast.Interface:
		return e.emitInterface(v)
	case *ast.TypeAlias:
		return e.emitTypeAlias(v)
	case *ast.Enum:
		return e.emitEnum(v)
	default:
		return schema.True()
	}
}

func (e *emitter) emitTypeAlias(a *ast.TypeAlias) *jsonschema.Schema {
	s := e.emitType(a.Type)

	if e.opts.includeJSDoc() && a.Description != "" && s.Description == "" {
		s.Description = a.Description
	}

	return s
}

func (e *emitter) emitEnum(en *ast.Enum) *jsonschema.Schema {
	allStrings := true
	allNumbers := true

	for _, m := range en.Members {
		switch m.Value.(type) {
		case string:
			allNumbers = false
		case float64:
			allStrings = false
		default:
			allStrings = false
			allNumbers = false
		}
	}

	s := &jsonschema.Schema{}

	values := make([]any, 0, len(en.Members))
	for _, m := range en.Members {
		values = append(values, m.Value)
	}

	switch {
	case allStrings:
		s.Type = "string"
	case allNumbers:
		s.Type = "number"
	}

	s.Enum = values

	if e.opts.includeJSDoc() && en.Description != "" {
		s.Description = en.Description
	}

	return s
}

func (e *emitter) emitInterface(iface *ast.Interface) *jsonschema.Schema {
	obj := &ast.Object{Properties: iface.Properties, Index: iface.Index}

	s := e.emitObject(obj, declTags(iface))

	if len(iface.Extends) > 0 {
		s = e.mergeExtends(s, iface.Extends)
	}

	if e.opts.includeJSDoc() && iface.Description != "" && s.Description == "" {
		s.Description = iface.Description
	}

	return s
}

func declTags(d ast.Declaration) map[string]string {
	switch v := d.(type) {
	case *ast.Interface:
		return v.Tags
	case *ast.TypeAlias:
		return v.Tags
	case *ast.Enum:
		return v.Tags
	}

	return nil
}

// emitType implements the TypeNode -> schema mapping table of spec
// 4.5.3.
func (e *emitter) emitType(t ast.TypeNode) *jsonschema.Schema {
	switch v := t.(type) {
	case *ast.Primitive:
		return e.emitPrimitive(v.Kind)
	case *ast.LiteralString:
		return schema.Const(v.Value)
	case *ast.LiteralNumber:
		return schema.Const(v.Value)
	case *ast.LiteralBoolean:
		return schema.Const(v.Value)
	case *ast.Object:
		return e.emitObject(v, nil)
	case *ast.Array:
		return &jsonschema.Schema{Type: "array", Items: e.emitType(v.Element)}
	case *ast.Tuple:
		return e.emitTuple(v)
	case *ast.Union:
		return e.emitUnion(v.Members)
	case *ast.Intersection:
		return e.emitIntersection(v.Members)
	case *ast.Parenthesized:
		return e.emitType(v.Inner)
	case *ast.Record:
		return e.emitRecord(v.Key, v.Value)
	case *ast.TemplateLiteral:
		return &jsonschema.Schema{Type: "string"}
	case *ast.Mapped:
		return &jsonschema.Schema{Type: "object"}
	case *ast.Reference:
		return e.emitReference(v)
	default:
		return schema.True()
	}
}

func (e *emitter) emitPrimitive(k ast.PrimitiveKind) *jsonschema.Schema {
	switch k {
	case ast.PrimString:
		return &jsonschema.Schema{Type: "string"}
	case ast.PrimNumber:
		return &jsonschema.Schema{Type: "number"}
	case ast.PrimBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case ast.PrimNull:
		return &jsonschema.Schema{Type: "null"}
	case ast.PrimBigint:
		return &jsonschema.Schema{Type: "integer"}
	case ast.PrimObject:
		return &jsonschema.Schema{Type: "object"}
	case ast.PrimNever:
		return schema.False()
	case ast.PrimUndefined, ast.PrimVoid, ast.PrimAny, ast.PrimUnknown:
		return schema.True()
	default:
		return schema.True()
	}
}

func (e *emitter) emitTuple(t *ast.Tuple) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "array"}

	prefix := make([]*jsonschema.Schema, 0, len(t.Elements))
	minItems := 0
	hasRest := false

	for _, el := range t.Elements {
		if el.Rest {
			hasRest = true

			// A rest element "...T[]" describes each remaining item as T.
			restType := el.Type
			if arr, ok := restType.(*ast.Array); ok {
				restType = arr.Element
			}

			s.Items = e.emitType(restType)

			continue
		}

		prefix = append(prefix, e.emitType(el.Type))

		if !el.Optional {
			minItems++
		}
	}

	s.PrefixItems = prefix

	if minItems > 0 {
		n := minItems
		s.MinItems = &n
	}

	if !hasRest {
		n := len(prefix)
		s.MaxItems = &n
	}

	return s
}

func (e *emitter) emitRecord(key, value ast.TypeNode) *jsonschema.Schema {
	if lits, ok := stringLiteralUnion(key); ok {
		s := &jsonschema.Schema{
			Type:       "object",
			Properties: make(map[string]*jsonschema.Schema, len(lits)),
			Required:   append([]string(nil), lits...),
		}

		for _, lit := range lits {
			s.Properties[lit] = e.emitType(value)
		}

		return s
	}

	return &jsonschema.Schema{Type: "object", AdditionalProperties: e.emitType(value)}
}

// stringLiteralUnion reports whether t is a single string literal or a
// union consisting entirely of string literals, returning the literal
// values in source order.
func stringLiteralUnion(t ast.TypeNode) ([]string, bool) {
	switch v := t.(type) {
	case *ast.LiteralString:
		return []string{v.Value}, true
	case *ast.Union:
		out := make([]string, 0, len(v.Members))

		for _, m := range v.Members {
			lit, ok := m.(*ast.LiteralString)
			if !ok {
				return nil, false
			}

			out = append(out, lit.Value)
		}

		return out, true
	default:
		return nil, false
	}
}

func (e *emitter) emitIntersection(members []ast.TypeNode) *jsonschema.Schema {
	if len(members) == 1 {
		return e.emitType(members[0])
	}

	all := make([]*jsonschema.Schema, 0, len(members))

	for _, m := range members {
		all = append(all, e.emitType(m))
	}

	return &jsonschema.Schema{AllOf: all}
}

// formatNumber renders a float64 enum/const member the way TypeScript
// source would have written an integer literal, avoiding a trailing
// ".0" in generated output for whole numbers.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}

	return strconv.FormatFloat(f, 'g', -1, 64)
}
