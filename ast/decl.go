package ast

// Declaration is a top-level named entity: an Interface, a TypeAlias, or
// an Enum. Implementations are the exported *Declaration structs below.
type Declaration interface {
	declNode()
	DeclName() string
}

// Base holds the fields shared by every declaration kind. Embed it
// (by value) in a new declaration kind to satisfy Declaration's DeclName.
type Base struct {
	Name        string
	Description string
	Tags        map[string]string
	Exported    bool
	// SourceFile is the absolute path of the file this declaration was
	// parsed from. Empty for declarations parsed from a bare string via
	// ParseDeclarations / ToJSONSchema rather than a file-based entry
	// point.
	SourceFile string
}

// DeclName returns the declaration's name.
func (b Base) DeclName() string { return b.Name }

// Interface is a TypeScript interface declaration.
type Interface struct {
	Base
	Properties []Property
	Index      *IndexSignature
	Extends    []TypeNode
	// TypeParams holds the names of the interface's type parameter list,
	// if any (e.g. ["T", "U"]), in declaration order. Emission
	// substitutes type arguments for these names by position.
	TypeParams []string
}

// TypeAlias is `type Name = T`.
type TypeAlias struct {
	Base
	Type       TypeNode
	TypeParams []string
}

// EnumMember is one member of an Enum declaration.
type EnumMember struct {
	Name  string
	Value any // string or float64
}

// Enum is a TypeScript enum declaration.
type Enum struct {
	Base
	Members []EnumMember
}

func (*Interface) declNode() {}
func (*TypeAlias) declNode() {}
func (*Enum) declNode()      {}

// SetSourceFile attaches the absolute source file path a declaration was
// parsed from, used by the module resolver to populate the Base.SourceFile
// back-reference that the defineNameTransform callback (spec 4.5.10) can
// inspect.
func SetSourceFile(d Declaration, path string) {
	switch v := d.(type) {
	case *Interface:
		v.SourceFile = path
	case *TypeAlias:
		v.SourceFile = path
	case *Enum:
		v.SourceFile = path
	}
}
