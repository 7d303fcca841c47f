// Package ts2schema is the public API façade of the conversion
// pipeline: tokenize, extract imports, parse, resolve (for file-based
// entry points), and emit, wired together behind the small function
// surface spec 6.1 specifies. Option is a functional option, mirroring
// the teacher's Config/Option pattern; a call's Option list assembles an
// emit.Options and a resolve.Resolver configuration from one call site.
package ts2schema
