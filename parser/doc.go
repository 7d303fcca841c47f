// Package parser implements the recursive-descent parser: a Token
// sequence in, an ordered []ast.Declaration out.
//
// The parser holds a single pending-JSDoc slot consumed by whichever
// declaration or property rule next fires; it is never cleared by
// "export"/"declare" modifiers or by newlines, so a doc comment separated
// from its declaration only by those is still attached correctly.
package parser
