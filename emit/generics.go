package emit

import "go.typeforge.dev/ts2schema/ast"

// instantiateGeneric builds a substitution map from decl's type
// parameters to the given arguments (by position) and returns a fresh
// TypeNode with every Reference to a parameter name replaced by its
// argument, along with whether decl actually had type parameters to
// substitute.
func instantiateGeneric(decl ast.Declaration, args []ast.TypeNode) (ast.TypeNode, bool) {
	params, body := genericShape(decl)
	if len(params) == 0 || len(args) == 0 {
		return nil, false
	}

	subst := make(map[string]ast.TypeNode, len(params))

	for i, p := range params {
		if i >= len(args) {
			break
		}

		subst[p] = args[i]
	}

	return substituteType(body, subst), true
}

// genericShape extracts a declaration's type parameters and the type
// expression substitution should walk: a type alias's own Type, or a
// synthetic Object built from an interface's body.
func genericShape(decl ast.Declaration) ([]string, ast.TypeNode) {
	switch d := decl.(type) {
	case *ast.TypeAlias:
		return d.TypeParams, d.Type
	case *ast.Interface:
		return d.TypeParams, &ast.Object{Properties: d.Properties, Index: d.Index}
	default:
		return nil, nil
	}
}

// substituteType returns a copy of t with every Reference whose Name
// matches a key in subst (and which carries no further type arguments
// of its own) replaced by the mapped argument.
func substituteType(t ast.TypeNode, subst map[string]ast.TypeNode) ast.TypeNode {
	if t == nil {
		return nil
	}

	switch v := t.(type) {
	case *ast.Reference:
		if len(v.TypeArgs) == 0 {
			if repl, ok := subst[v.Name]; ok {
				return repl
			}

			return v
		}

		args := make([]ast.TypeNode, len(v.TypeArgs))
		for i, a := range v.TypeArgs {
			args[i] = substituteType(a, subst)
		}

		return &ast.Reference{Name: v.Name, TypeArgs: args}

	case *ast.Array:
		return &ast.Array{Element: substituteType(v.Element, subst)}

	case *ast.Tuple:
		elems := make([]ast.TupleElement, len(v.Elements))
		for i, el := range v.Elements {
			elems[i] = ast.TupleElement{
				Type:     substituteType(el.Type, subst),
				Optional: el.Optional,
				Label:    el.Label,
				Rest:     el.Rest,
			}
		}

		return &ast.Tuple{Elements: elems}

	case *ast.Union:
		return &ast.Union{Members: substituteAll(v.Members, subst)}

	case *ast.Intersection:
		return &ast.Intersection{Members: substituteAll(v.Members, subst)}

	case *ast.Parenthesized:
		return &ast.Parenthesized{Inner: substituteType(v.Inner, subst)}

	case *ast.Record:
		return &ast.Record{Key: substituteType(v.Key, subst), Value: substituteType(v.Value, subst)}

	case *ast.Object:
		props := make([]ast.Property, len(v.Properties))
		for i, p := range v.Properties {
			props[i] = p
			props[i].Type = substituteType(p.Type, subst)
		}

		var idx *ast.IndexSignature
		if v.Index != nil {
			idx = &ast.IndexSignature{
				KeyType:   substituteType(v.Index.KeyType, subst),
				ValueType: substituteType(v.Index.ValueType, subst),
			}
		}

		return &ast.Object{Properties: props, Index: idx}

	default:
		return t
	}
}

func substituteAll(ts []ast.TypeNode, subst map[string]ast.TypeNode) []ast.TypeNode {
	out := make([]ast.TypeNode, len(ts))
	for i, t := range ts {
		out[i] = substituteType(t, subst)
	}

	return out
}
