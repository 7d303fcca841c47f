package emit

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.typeforge.dev/ts2schema/ast"
)

// emitUnion implements spec 4.5.5: flatten nested unions, collapse an
// all-string-literal or all-number-literal union to an enum, special-case
// a single non-nullish member unioned with null/undefined, else anyOf.
func (e *emitter) emitUnion(members []ast.TypeNode) *jsonschema.Schema {
	flat := flattenUnion(members)

	if lits, ok := allStringLiterals(flat); ok {
		return &jsonschema.Schema{Type: "string", Enum: lits}
	}

	if lits, ok := allNumberLiterals(flat); ok {
		return &jsonschema.Schema{Type: "number", Enum: lits}
	}

	rest, nullable := extractNullish(flat)

	if len(rest) == 1 {
		s := e.emitType(rest[0])
		if nullable && isSingleStringType(s) {
			return &jsonschema.Schema{Types: []string{s.Type, "null"}}
		}

		if nullable {
			return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{s, {Type: "null"}}}
		}

		return s
	}

	all := make([]*jsonschema.Schema, 0, len(rest))
	for _, m := range rest {
		all = append(all, e.emitType(m))
	}

	if nullable {
		all = append(all, &jsonschema.Schema{Type: "null"})
	}

	return &jsonschema.Schema{AnyOf: all}
}

// flattenUnion recursively flattens nested Union members into one slice.
func flattenUnion(members []ast.TypeNode) []ast.TypeNode {
	out := make([]ast.TypeNode, 0, len(members))

	for _, m := range members {
		if u, ok := m.(*ast.Union); ok {
			out = append(out, flattenUnion(u.Members)...)

			continue
		}

		if p, ok := m.(*ast.Parenthesized); ok {
			out = append(out, flattenUnion([]ast.TypeNode{p.Inner})...)

			continue
		}

		out = append(out, m)
	}

	return out
}

func allStringLiterals(members []ast.TypeNode) ([]any, bool) {
	out := make([]any, 0, len(members))

	for _, m := range members {
		lit, ok := m.(*ast.LiteralString)
		if !ok {
			return nil, false
		}

		out = append(out, lit.Value)
	}

	return out, true
}

func allNumberLiterals(members []ast.TypeNode) ([]any, bool) {
	out := make([]any, 0, len(members))

	for _, m := range members {
		lit, ok := m.(*ast.LiteralNumber)
		if !ok {
			return nil, false
		}

		out = append(out, lit.Value)
	}

	return out, true
}

// extractNullish splits off null/undefined primitive members, reporting
// whether any were present.
func extractNullish(members []ast.TypeNode) (rest []ast.TypeNode, nullable bool) {
	for _, m := range members {
		if p, ok := m.(*ast.Primitive); ok && (p.Kind == ast.PrimNull || p.Kind == ast.PrimUndefined) {
			nullable = true

			continue
		}

		rest = append(rest, m)
	}

	return rest, nullable
}

func isSingleStringType(s *jsonschema.Schema) bool {
	return s.Type != "" && len(s.Types) == 0
}
