package emit

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/schema"
)

// Emit produces the single-document shape of spec 4.5.2A: one root
// schema with every other declaration grouped under $defs.
func Emit(decls []ast.Declaration, opts Options) (*jsonschema.Schema, error) {
	e, err := newEmitter(decls, opts)
	if err != nil {
		return nil, err
	}

	defs := make(map[string]*jsonschema.Schema, len(e.order))
	for _, name := range e.order {
		defs[e.outputName(name)] = e.emitDeclaration(e.byName[name])
	}

	rootName, hasRoot, err := e.rootDeclarationName()
	if err != nil {
		return nil, err
	}

	var root *jsonschema.Schema

	if hasRoot {
		rootOutput := e.outputName(rootName)
		graph := buildGraph(defs)

		if reachesSelf(graph, rootOutput) {
			root = schema.Ref(schema.DefPointer(rootOutput))
		} else {
			root = defs[rootOutput]
			delete(defs, rootOutput)
		}
	} else {
		root = schema.True()
	}

	if len(defs) > 0 {
		root.Defs = defs
	}

	if e.opts.includeSchema() {
		root.Schema = e.opts.schemaVersion()
	}

	return root, nil
}

// EmitAll produces the batch shape of spec 4.5.2B: one self-contained
// document per declared name, each with its own minimal "definitions"
// block (or, with DefineID set, external-id $refs and no definitions
// block at all).
func EmitAll(decls []ast.Declaration, opts Options) (map[string]*jsonschema.Schema, error) {
	e, err := newEmitter(decls, opts)
	if err != nil {
		return nil, err
	}

	defs := make(map[string]*jsonschema.Schema, len(e.order))
	for _, name := range e.order {
		defs[e.outputName(name)] = e.emitDeclaration(e.byName[name])
	}

	graph := buildGraph(defs)

	var idOf map[string]string

	if e.opts.DefineID != nil {
		idOf = make(map[string]string, len(e.order))
		for _, name := range e.order {
			idOf[e.outputName(name)] = e.ids[name]
		}
	}

	rewriteAllRefs(defs, idOf)

	result := make(map[string]*jsonschema.Schema, len(defs))

	for outputName, body := range defs {
		deps := transitiveDeps(graph, outputName)
		entry := shallowCopy(body)

		switch {
		case idOf != nil:
			entry.ID = idOf[outputName]
		default:
			if len(deps) > 0 {
				sub := make(map[string]*jsonschema.Schema, len(deps))
				for dep := range deps {
					sub[dep] = defs[dep]
				}

				entry.Definitions = sub
			}

			if e.opts.includeSchema() {
				entry.Schema = e.batchSchemaVersion()
			}
		}

		result[outputName] = entry
	}

	return result, nil
}

// rootDeclarationName resolves which declaration (by original name)
// should be pulled out as the document root. An explicit RootType must
// name a known declaration. With no RootType, a single-declaration
// input implicitly roots on that declaration; a multi-declaration
// input with no RootType has no root and the document's top level is
// the permissive "true" schema with every declaration under $defs.
func (e *emitter) rootDeclarationName() (string, bool, error) {
	if e.opts.RootType != "" {
		if _, ok := e.byName[e.opts.RootType]; !ok {
			return "", false, fmt.Errorf("rootType %q: no such declaration", e.opts.RootType)
		}

		return e.opts.RootType, true, nil
	}

	if len(e.order) == 1 {
		return e.order[0], true, nil
	}

	return "", false, nil
}

// batchSchemaVersion returns the effective $schema URL for a batch
// entry, defaulting to draft-07 (spec 4.5.2B's "wide validator
// compatibility" intent) rather than the single-document default.
func (e *emitter) batchSchemaVersion() string {
	if e.opts.SchemaVersion != "" {
		return e.opts.SchemaVersion
	}

	return schema.Draft07
}
