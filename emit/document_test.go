package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/emit"
)

func TestEmit_SingleDeclarationImplicitlyRoots(t *testing.T) {
	t.Parallel()

	root, err := emit.Emit(decls(t, `interface Pet { name: string; }`), emit.Options{})
	require.NoError(t, err)

	assert.Equal(t, "object", root.Type)
	assert.Empty(t, root.Defs)
}

func TestEmit_MultiDeclarationNoRootTypeYieldsTrueRootWithDefs(t *testing.T) {
	t.Parallel()

	root, err := emit.Emit(decls(t, `interface A { a: string; }
	interface B { b: string; }`), emit.Options{})
	require.NoError(t, err)

	assert.Empty(t, root.Type)
	assert.Nil(t, root.Not)
	require.Len(t, root.Defs, 2)
	assert.Contains(t, root.Defs, "A")
	assert.Contains(t, root.Defs, "B")
}

func TestEmit_ExplicitRootTypePullsDeclarationOutOfDefs(t *testing.T) {
	t.Parallel()

	root, err := emit.Emit(decls(t, `interface A { a: string; }
	interface B { b: string; }`), emit.Options{RootType: "B"})
	require.NoError(t, err)

	assert.Equal(t, "object", root.Type)
	assert.Contains(t, root.Properties, "b")
	require.Len(t, root.Defs, 1)
	assert.Contains(t, root.Defs, "A")
	assert.NotContains(t, root.Defs, "B")
}

func TestEmit_UnknownRootTypeIsError(t *testing.T) {
	t.Parallel()

	_, err := emit.Emit(decls(t, `interface A { a: string; }`), emit.Options{RootType: "NoSuchType"})
	assert.Error(t, err)
}

func TestEmit_TransitivelySelfReferentialRootStaysUnderDefs(t *testing.T) {
	t.Parallel()

	root, err := emit.Emit(decls(t, `interface Node { next?: Node; }`), emit.Options{})
	require.NoError(t, err)

	assert.Equal(t, "#/$defs/Node", root.Ref)
	require.Contains(t, root.Defs, "Node")
	assert.Equal(t, "object", root.Defs["Node"].Type)
}

func TestEmit_IndirectSelfReferenceAlsoStaysUnderDefs(t *testing.T) {
	t.Parallel()

	root, err := emit.Emit(decls(t, `interface A { b?: B; }
	interface B { a?: A; }`), emit.Options{RootType: "A"})
	require.NoError(t, err)

	assert.Equal(t, "#/$defs/A", root.Ref)
	require.Contains(t, root.Defs, "A")
	require.Contains(t, root.Defs, "B")
}

func TestEmitAll_ProducesOneDocumentPerDeclaration(t *testing.T) {
	t.Parallel()

	out, err := emit.EmitAll(decls(t, `interface Pet { _id: string; name: string; }
	interface Req extends Omit<Pet, "_id"> {}`), emit.Options{})
	require.NoError(t, err)

	require.Contains(t, out, "Pet")
	require.Contains(t, out, "Req")
	assert.Contains(t, out["Req"].Properties, "name")
	assert.NotContains(t, out["Req"].Properties, "_id")
}

func TestEmitAll_EachEntryCarriesOnlyItsOwnTransitiveDeps(t *testing.T) {
	t.Parallel()

	out, err := emit.EmitAll(decls(t, `interface Pet { name: string; }
	interface Standalone { x: string; }
	type PetBox = { value: Pet };`), emit.Options{})
	require.NoError(t, err)

	require.Contains(t, out["PetBox"].Definitions, "Pet")
	assert.NotContains(t, out["PetBox"].Definitions, "Standalone")
	assert.Empty(t, out["Standalone"].Definitions)
}

func TestEmitAll_DefaultSchemaVersionIsDraft07(t *testing.T) {
	t.Parallel()

	out, err := emit.EmitAll(decls(t, `interface Pet { name: string; }`), emit.Options{})
	require.NoError(t, err)

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", out["Pet"].Schema)
}

func TestEmitAll_RefsRewrittenToDefinitionsPointer(t *testing.T) {
	t.Parallel()

	out, err := emit.EmitAll(decls(t, `interface Pet { name: string; }
	type PetBox = { value: Pet };`), emit.Options{})
	require.NoError(t, err)

	assert.Equal(t, "#/definitions/Pet", out["PetBox"].Properties["value"].Ref)
}

func TestEmitAll_DefineIDOmitsDefinitionsAndUsesExternalRefs(t *testing.T) {
	t.Parallel()

	opts := emit.Options{
		DefineID: func(name string, _ ast.Declaration) string {
			return "https://example.com/schemas/" + name + ".json"
		},
	}

	out, err := emit.EmitAll(decls(t, `interface Pet { name: string; }
	type PetBox = { value: Pet };`), opts)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/schemas/Pet.json", out["Pet"].ID)
	assert.Equal(t, "https://example.com/schemas/Pet.json", out["PetBox"].Properties["value"].Ref)
	assert.Empty(t, out["PetBox"].Definitions)
}

func TestEmit_DefineNameTransformRenamesDefsAndRefs(t *testing.T) {
	t.Parallel()

	opts := emit.Options{
		DefineNameTransform: func(name string, _ ast.Declaration, _ *emit.FileContext) string {
			return name + "Schema"
		},
	}

	root, err := emit.Emit(decls(t, `interface Pet { name: string; }
	type PetBox = { value: Pet };`), opts)
	require.NoError(t, err)

	require.Contains(t, root.Defs, "PetSchema")
	assert.Equal(t, "#/$defs/PetSchema", root.Defs["PetBoxSchema"].Properties["value"].Ref)
}

func TestEmit_DefineNameTransformCollisionIsError(t *testing.T) {
	t.Parallel()

	opts := emit.Options{
		DefineNameTransform: func(name string, _ ast.Declaration, _ *emit.FileContext) string {
			return "SameName"
		},
	}

	_, err := emit.Emit(decls(t, `interface A { a: string; }
	interface B { b: string; }`), opts)

	require.Error(t, err)

	var collErr *emit.NameCollisionError
	require.ErrorAs(t, err, &collErr)
}

func TestEmit_DeterminismAcrossRepeatedCalls(t *testing.T) {
	t.Parallel()

	d := decls(t, `interface Pet { _id: string; name: string; tags: string[]; }
	type Status = "active" | "inactive";`)

	first, err := emit.Emit(d, emit.Options{})
	require.NoError(t, err)

	second, err := emit.Emit(d, emit.Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
