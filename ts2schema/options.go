package ts2schema

import (
	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/emit"
	"go.typeforge.dev/ts2schema/resolve"
)

// config is the fully-resolved configuration built from a caller's
// Option list: an emit.Options plus the module-resolution settings
// file-based entry points need.
type config struct {
	emit       emit.Options
	followMode resolve.FollowMode
	baseDir    string
}

func newConfig(opts []Option) config {
	cfg := config{followMode: resolve.FollowLocal}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Option configures a conversion call. Construct with the With*
// functions; the unexported config they fill is never exposed directly, the
// way the teacher's Config is always built through NewConfig plus
// setters rather than a bare struct literal.
type Option func(*config)

// WithRootType emits the named declaration as the document root.
func WithRootType(name string) Option {
	return func(c *config) { c.emit.RootType = name }
}

// WithIncludeSchema controls whether $schema is prepended to the root
// schema. Default true.
func WithIncludeSchema(v bool) Option {
	return func(c *config) { c.emit.IncludeSchema = &v }
}

// WithSchemaVersion overrides the $schema URL.
func WithSchemaVersion(url string) Option {
	return func(c *config) { c.emit.SchemaVersion = url }
}

// WithStrictObjects sets additionalProperties:false on object schemas
// where nothing more specific applies.
func WithStrictObjects(v bool) Option {
	return func(c *config) { c.emit.StrictObjects = v }
}

// WithAdditionalProperties sets the additionalProperties fallback
// value used when nothing more specific applies.
func WithAdditionalProperties(v bool) Option {
	return func(c *config) { c.emit.AdditionalProperties = &v }
}

// WithIncludeJSDoc controls whether JSDoc-derived descriptions and
// constraints are emitted. Default true.
func WithIncludeJSDoc(v bool) Option {
	return func(c *config) { c.emit.IncludeJSDoc = &v }
}

// WithOnDuplicateDeclarations sets the module resolver's collision
// policy for file-based entry points.
func WithOnDuplicateDeclarations(policy resolve.DuplicatePolicy) Option {
	return func(c *config) { c.emit.OnDuplicateDeclarations = policy }
}

// WithDefineNameTransform installs a callback renaming declarations in
// $defs/definitions keys and every $ref pointer.
func WithDefineNameTransform(fn func(originalName string, decl ast.Declaration, fileCtx *emit.FileContext) string) Option {
	return func(c *config) { c.emit.DefineNameTransform = fn }
}

// WithDefineID installs a callback producing an external $id for each
// schema, switching batch output to external-id references.
func WithDefineID(fn func(name string, decl ast.Declaration) string) Option {
	return func(c *config) { c.emit.DefineID = fn }
}

// WithFollowImports sets the module resolver's follow mode for
// file-based entry points. Default resolve.FollowLocal.
func WithFollowImports(mode resolve.FollowMode) Option {
	return func(c *config) { c.followMode = mode }
}

// WithBaseDir anchors relative entry paths and relative glob patterns.
// The default filesystem resolver's node_modules ascent does not use
// it; the ascent starts from each importing file's directory.
func WithBaseDir(dir string) Option {
	return func(c *config) { c.baseDir = dir }
}
