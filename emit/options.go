package emit

import (
	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/resolve"
	"go.typeforge.dev/ts2schema/schema"
)

// FileContext describes the originating file of a declaration, passed
// to DefineNameTransform so the callback can make cross-file decisions.
type FileContext struct {
	Path string
}

// Options configures Emit and EmitAll, per spec 4.5.1.
type Options struct {
	// IncludeSchema prepends $schema to the root schema. Nil defaults
	// to true.
	IncludeSchema *bool

	// SchemaVersion overrides the $schema URL. Empty uses schema.Schema2020
	// for Emit and schema.Draft07 for EmitAll.
	SchemaVersion string

	// StrictObjects sets additionalProperties:false on object schemas
	// where nothing more specific applies.
	StrictObjects bool

	// AdditionalProperties is the fallback additionalProperties value
	// when nothing more specific applies. Nil means "unset".
	AdditionalProperties *bool

	// RootType, if non-empty, names the declaration emitted as the
	// document root; all others go under $defs/definitions.
	RootType string

	// IncludeJSDoc controls whether descriptions and JSDoc-derived
	// constraints are emitted. Nil defaults to true. Structural fields
	// (type, properties, required, readOnly, index signatures) are
	// always emitted regardless of this flag.
	IncludeJSDoc *bool

	// OnDuplicateDeclarations is the resolver's collision policy,
	// threaded through so a single Options value configures the whole
	// pipeline. Empty defaults to resolve.PolicyError.
	OnDuplicateDeclarations resolve.DuplicatePolicy

	// DefineNameTransform renames declarations in $defs/definitions keys
	// and in every $ref pointer. fileCtx is nil for declarations with no
	// known source file (parsed from a bare string).
	DefineNameTransform func(originalName string, decl ast.Declaration, fileCtx *FileContext) string

	// DefineID produces an external $id for each schema. When set,
	// EmitAll's output omits "definitions" and inter-schema references
	// become absolute "$ref: id" instead of internal pointers.
	DefineID func(name string, decl ast.Declaration) string
}

// includeSchema reports the effective value of IncludeSchema.
func (o Options) includeSchema() bool {
	return o.IncludeSchema == nil || *o.IncludeSchema
}

// includeJSDoc reports the effective value of IncludeJSDoc.
func (o Options) includeJSDoc() bool {
	return o.IncludeJSDoc == nil || *o.IncludeJSDoc
}

// schemaVersion returns the effective $schema URL.
func (o Options) schemaVersion() string {
	if o.SchemaVersion != "" {
		return o.SchemaVersion
	}

	return schema.Schema2020
}

// DuplicatePolicy returns the effective duplicate-declaration policy,
// used by file-based entry points to configure their resolve.Resolver.
func (o Options) DuplicatePolicy() resolve.DuplicatePolicy {
	if o.OnDuplicateDeclarations != "" {
		return o.OnDuplicateDeclarations
	}

	return resolve.PolicyError
}
