package emit

import (
	"github.com/google/jsonschema-go/jsonschema"

	"go.typeforge.dev/ts2schema/ast"
)

// mergeExtends folds the object schemas of an interface's extends
// targets into its own already-emitted object schema: own properties
// win on conflict, required sets union, and the first resolvable
// index-signature value type supplies additionalProperties when the
// interface has none of its own. This generalizes the teacher's
// YAML-merge-schemas shape (union of independently-inferred documents)
// to a union of statically-resolved extends targets plus own body.
func (e *emitter) mergeExtends(own *jsonschema.Schema, extends []ast.TypeNode) *jsonschema.Schema {
	result := own

	for _, ext := range extends {
		parent := e.emitExtendsTarget(ext)
		if parent == nil {
			continue
		}

		result = mergeObjectSchemas(parent, result)
	}

	return result
}

// emitExtendsTarget resolves one extends-clause member to an object
// schema, following generic instantiation when the target carries type
// arguments.
func (e *emitter) emitExtendsTarget(t ast.TypeNode) *jsonschema.Schema {
	ref, ok := t.(*ast.Reference)
	if !ok {
		return nil
	}

	if len(ref.TypeArgs) > 0 {
		if fn, ok := utilityRegistry[ref.Name]; ok {
			if s, ok := fn(e, ref.TypeArgs); ok {
				return s
			}
		}

		if decl, ok := e.byName[ref.Name]; ok {
			if body, ok := instantiateGeneric(decl, ref.TypeArgs); ok {
				return e.emitType(body)
			}
		}
	}

	obj, ok := e.resolveObjectLike(t)
	if !ok {
		return nil
	}

	return e.emitObject(obj, nil)
}

// mergeObjectSchemas merges parent into child: child's own properties
// take precedence on name conflicts, required names union, and
// additionalProperties from child wins unless child left it unset.
func mergeObjectSchemas(parent, child *jsonschema.Schema) *jsonschema.Schema {
	if parent.Properties == nil && parent.AdditionalProperties == nil {
		return child
	}

	result := &jsonschema.Schema{Type: "object"}

	if len(parent.Properties) > 0 || len(child.Properties) > 0 {
		result.Properties = make(map[string]*jsonschema.Schema, len(parent.Properties)+len(child.Properties))

		var order []string

		for _, k := range parent.PropertyOrder {
			result.Properties[k] = parent.Properties[k]
			order = append(order, k)
		}

		for _, k := range child.PropertyOrder {
			result.Properties[k] = child.Properties[k]

			if _, already := indexOf(order, k); !already {
				order = append(order, k)
			}
		}

		result.PropertyOrder = order
	}

	result.Required = unionStrings(parent.Required, child.Required)

	switch {
	case child.AdditionalProperties != nil:
		result.AdditionalProperties = child.AdditionalProperties
	case parent.AdditionalProperties != nil:
		result.AdditionalProperties = parent.AdditionalProperties
	}

	if child.Description != "" {
		result.Description = child.Description
	} else {
		result.Description = parent.Description
	}

	return result
}

func indexOf(s []string, v string) (int, bool) {
	for i, x := range s {
		if x == v {
			return i, true
		}
	}

	return -1, false
}

func unionStrings(a, b []string) []string {
	if len(a) == 0 {
		return b
	}

	if len(b) == 0 {
		return a
	}

	seen := make(map[string]bool, len(a)+len(b))

	var out []string

	for _, s := range a {
		if !seen[s] {
			seen[s] = true

			out = append(out, s)
		}
	}

	for _, s := range b {
		if !seen[s] {
			seen[s] = true

			out = append(out, s)
		}
	}

	return out
}
