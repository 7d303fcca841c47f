// Package tsimport extracts import/export-from statements from a token
// stream, independently of package parser. It never fails the overall
// pipeline: on the first token it cannot classify within a statement it
// is looking at, it simply stops extracting and moves on.
package tsimport
