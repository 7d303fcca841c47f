package emit

import (
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"go.typeforge.dev/ts2schema/ast"
)

// emitObject builds a {type:"object", properties, required, ...}
// schema per spec 4.5.4. declTags carries the declaration-level JSDoc
// tags (for the @additionalProperties tag's declaration-level form);
// nil when emitting an inline object type with no enclosing
// declaration.
func (e *emitter) emitObject(obj *ast.Object, declTags map[string]string) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "object"}

	if len(obj.Properties) > 0 {
		s.Properties = make(map[string]*jsonschema.Schema, len(obj.Properties))

		var (
			order    []string
			required []string
		)

		for _, p := range obj.Properties {
			propSchema := e.emitType(p.Type)

			if p.Readonly {
				propSchema.ReadOnly = true
			}

			if e.opts.includeJSDoc() {
				if p.Description != "" {
					propSchema.Description = p.Description
				}

				applyJSDocTags(propSchema, p.Tags)
			}

			s.Properties[p.Name] = propSchema
			order = append(order, p.Name)

			if !p.Optional {
				required = append(required, p.Name)
			}
		}

		s.PropertyOrder = order
		s.Required = required
	}

	s.AdditionalProperties = e.additionalProperties(obj, s, declTags)

	return s
}

// additionalProperties resolves additionalProperties by the strict
// precedence order of spec 4.5.4.
func (e *emitter) additionalProperties(obj *ast.Object, s *jsonschema.Schema, declTags map[string]string) *jsonschema.Schema {
	// 1. Index signature.
	if obj.Index != nil {
		return e.emitType(obj.Index.ValueType)
	}

	// 2. @additionalProperties JSDoc tag on the declaration (declTags).
	// A property-level tag is applied to that property's own schema by
	// applyJSDocTags, not here.
	if e.opts.includeJSDoc() {
		if v, ok := additionalPropertiesTag(declTags); ok {
			return boolSchema(v)
		}
	}

	// 3. strictObjects.
	if e.opts.StrictObjects {
		return boolSchema(false)
	}

	// 4. additionalProperties option.
	if e.opts.AdditionalProperties != nil {
		return boolSchema(*e.opts.AdditionalProperties)
	}

	// 5. Absent.
	return nil
}

func boolSchema(v bool) *jsonschema.Schema {
	if v {
		return &jsonschema.Schema{}
	}

	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

// additionalPropertiesTag looks up the "additionalProperties" JSDoc tag
// case-insensitively and parses it as a boolean.
func additionalPropertiesTag(tags map[string]string) (bool, bool) {
	for k, v := range tags {
		if !strings.EqualFold(k, "additionalProperties") {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}

	return false, false
}
