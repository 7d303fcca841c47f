// Package ast defines the declaration and type-expression tree produced by
// package parser and consumed by package emit.
//
// Nodes are immutable after parsing. TypeNode is a tagged variant
// implemented as an interface with a private marker method; callers use a
// type switch to discriminate cases. Declarations reference each other only
// by name (through Reference type nodes), never by pointer, so that
// mutually recursive types never require cyclic Go values.
package ast
