package ast

// PrimitiveKind names one of the built-in TypeScript primitive types
// recognized by the tokenizer and parser.
type PrimitiveKind string

// Recognized primitive kinds.
const (
	PrimString    PrimitiveKind = "string"
	PrimNumber    PrimitiveKind = "number"
	PrimBoolean   PrimitiveKind = "boolean"
	PrimNull      PrimitiveKind = "null"
	PrimUndefined PrimitiveKind = "undefined"
	PrimAny       PrimitiveKind = "any"
	PrimUnknown   PrimitiveKind = "unknown"
	PrimNever     PrimitiveKind = "never"
	PrimVoid      PrimitiveKind = "void"
	PrimObject    PrimitiveKind = "object"
	PrimBigint    PrimitiveKind = "bigint"
)

// TypeNode is the recursive type-expression tree. Implementations are the
// exported *Type structs below; the private marker method keeps the
// variant set closed to this package.
type TypeNode interface {
	typeNode()
}

// Primitive is a built-in scalar type keyword, e.g. string, number, any.
type Primitive struct {
	Kind PrimitiveKind
}

// LiteralString is a string literal type, e.g. "active".
type LiteralString struct {
	Value string
}

// LiteralNumber is a numeric literal type, e.g. 42.
type LiteralNumber struct {
	Value float64
}

// LiteralBoolean is a boolean literal type: true or false.
type LiteralBoolean struct {
	Value bool
}

// Object is an inline object type: { prop: T; ... }.
type Object struct {
	Properties []Property
	Index      *IndexSignature // nil if no index signature is present
}

// Array is T[].
type Array struct {
	Element TypeNode
}

// Tuple is [T, U, ...]. At most one element has Rest set, and it is last.
type Tuple struct {
	Elements []TupleElement
}

// Union is A | B | .... Members always has length >= 2; a parsed
// singleton union is unwrapped to its single member instead of producing
// a Union node.
type Union struct {
	Members []TypeNode
}

// Intersection is A & B & .... Members always has length >= 2.
type Intersection struct {
	Members []TypeNode
}

// Reference names another declaration (or a built-in utility type),
// optionally instantiated with type arguments. TypeArgs, when non-nil,
// always has length >= 1.
type Reference struct {
	Name     string
	TypeArgs []TypeNode
}

// Parenthesized is (T), kept distinct from T so precedence is explicit in
// the tree even though emission always recurses straight through it.
type Parenthesized struct {
	Inner TypeNode
}

// Record is Record<K, V>.
type Record struct {
	Key   TypeNode
	Value TypeNode
}

// TemplateLiteral is a template literal type, e.g. `prefix-${string}`.
// Interpolated parts are not modeled individually; Parts holds the
// original source segments for diagnostic purposes only.
type TemplateLiteral struct {
	Parts []string
}

// Mapped is a mapped type, e.g. { [K in Keys]: V }. Supported only as a
// best-effort structural placeholder (see spec 4.5.3); Param/Constraint/
// Value are retained for possible future refinement but are not resolved
// by the emitter beyond producing an object schema.
type Mapped struct {
	Param      string
	Constraint TypeNode
	Value      TypeNode
	Optional   *bool // nil: unspecified, else true ('+?'/'?') or false ('-?')
}

func (*Primitive) typeNode()       {}
func (*LiteralString) typeNode()   {}
func (*LiteralNumber) typeNode()   {}
func (*LiteralBoolean) typeNode()  {}
func (*Object) typeNode()          {}
func (*Array) typeNode()           {}
func (*Tuple) typeNode()           {}
func (*Union) typeNode()           {}
func (*Intersection) typeNode()    {}
func (*Reference) typeNode()       {}
func (*Parenthesized) typeNode()   {}
func (*Record) typeNode()          {}
func (*TemplateLiteral) typeNode() {}
func (*Mapped) typeNode()          {}

// Property is a single member of an Object type or Interface body.
type Property struct {
	Name        string
	Type        TypeNode
	Optional    bool
	Readonly    bool
	Description string
	Tags        map[string]string
}

// TupleElement is one position within a Tuple.
type TupleElement struct {
	Type     TypeNode
	Optional bool
	Label    string // empty if unlabeled
	Rest     bool
}

// IndexSignature is [key: K]: V on an object type.
type IndexSignature struct {
	KeyType   TypeNode
	ValueType TypeNode
}
