package emit

import (
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// refPrefix is the internal pointer prefix every Reference emits
// before EmitAll's batch rewrite pass runs (spec 4.5.2B).
const refPrefix = "#/$defs/"

// buildGraph extracts the directed $ref graph among a $defs map: an
// edge name -> dep exists if name's schema contains a pointer to dep.
func buildGraph(defs map[string]*jsonschema.Schema) map[string][]string {
	graph := make(map[string][]string, len(defs))

	for name, s := range defs {
		seen := make(map[string]bool)
		collectRefs(s, seen)

		deps := make([]string, 0, len(seen))
		for dep := range seen {
			deps = append(deps, dep)
		}

		graph[name] = deps
	}

	return graph
}

// collectRefs walks s and records every referenced $defs name.
func collectRefs(s *jsonschema.Schema, out map[string]bool) {
	if s == nil {
		return
	}

	if s.Ref != "" && strings.HasPrefix(s.Ref, refPrefix) {
		out[strings.TrimPrefix(s.Ref, refPrefix)] = true
	}

	for _, p := range s.Properties {
		collectRefs(p, out)
	}

	collectRefs(s.Items, out)

	for _, p := range s.PrefixItems {
		collectRefs(p, out)
	}

	collectRefs(s.AdditionalProperties, out)

	for _, p := range s.AllOf {
		collectRefs(p, out)
	}

	for _, p := range s.AnyOf {
		collectRefs(p, out)
	}

	for _, p := range s.OneOf {
		collectRefs(p, out)
	}

	collectRefs(s.Not, out)
}

// reachesSelf reports whether name can reach itself through one or
// more $ref hops in graph, per spec 4.5.9's transitive self-reference
// test.
func reachesSelf(graph map[string][]string, name string) bool {
	return transitiveDeps(graph, name)[name]
}

// transitiveDeps returns every name transitively reachable from
// start's direct references (start itself is included only if a cycle
// leads back to it).
func transitiveDeps(graph map[string][]string, start string) map[string]bool {
	visited := make(map[string]bool)
	stack := append([]string(nil), graph[start]...)

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[n] {
			continue
		}

		visited[n] = true
		stack = append(stack, graph[n]...)
	}

	return visited
}

// rewriteAllRefs mutates every $defs-style ref across defs in place.
// When idOf is nil, refs become #/definitions/<name> pointers. When
// idOf is non-nil, refs become the external id registered for their
// target name.
func rewriteAllRefs(defs map[string]*jsonschema.Schema, idOf map[string]string) {
	visited := make(map[*jsonschema.Schema]bool)

	for _, s := range defs {
		rewriteRefs(s, idOf, visited)
	}
}

func rewriteRefs(s *jsonschema.Schema, idOf map[string]string, visited map[*jsonschema.Schema]bool) {
	if s == nil || visited[s] {
		return
	}

	visited[s] = true

	if s.Ref != "" && strings.HasPrefix(s.Ref, refPrefix) {
		name := strings.TrimPrefix(s.Ref, refPrefix)

		if idOf != nil {
			if id, ok := idOf[name]; ok {
				s.Ref = id
			}
		} else {
			s.Ref = "#/definitions/" + name
		}
	}

	for _, p := range s.Properties {
		rewriteRefs(p, idOf, visited)
	}

	rewriteRefs(s.Items, idOf, visited)

	for _, p := range s.PrefixItems {
		rewriteRefs(p, idOf, visited)
	}

	rewriteRefs(s.AdditionalProperties, idOf, visited)

	for _, p := range s.AllOf {
		rewriteRefs(p, idOf, visited)
	}

	for _, p := range s.AnyOf {
		rewriteRefs(p, idOf, visited)
	}

	for _, p := range s.OneOf {
		rewriteRefs(p, idOf, visited)
	}

	rewriteRefs(s.Not, idOf, visited)
}

func shallowCopy(s *jsonschema.Schema) *jsonschema.Schema {
	c := *s

	return &c
}
