// Package resolve implements the module resolver: depth-first traversal
// of imports across files, merging per-file declaration lists into one,
// with configurable follow-mode and duplicate-name policies (spec 4.4).
//
// The traversal algorithm (Resolver) is pure core logic; it depends only
// on the FileReader and ModuleResolver interfaces, not on any concrete
// filesystem. FSResolver is the default filesystem-backed implementation
// of both, performing the node_modules ascent and package.json
// types/exports lookup spec 4.4 describes — this is the "external
// collaborator" spec.md 1 calls out, kept in this package because nothing
// else in the module needs to implement those interfaces differently.
package resolve
