// Package schema is a thin domain layer over [jsonschema.Schema], the
// value model emit builds. It supplies the handful of schema
// constructors (true/false/const/ref) the teacher's magicschema package
// keeps as helpers, the 2020-12 and draft-07 $schema URLs, and pointer
// helpers for the two definition locations ($defs and definitions). The
// single-document and batch output shapes are assembled by package emit.
package schema
