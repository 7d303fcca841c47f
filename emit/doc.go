// Package emit implements the conversion of a parsed declaration list
// into JSON Schema values, the last stage of the conversion pipeline
// (spec 4.5). It depends on package ast for its input tree and package
// schema for the *jsonschema.Schema value model, and produces either a
// single document ($defs-keyed, for Emit) or a batch of self-contained
// documents ("definitions"-keyed, for EmitAll).
package emit
