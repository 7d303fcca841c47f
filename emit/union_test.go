package emit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.typeforge.dev/ts2schema/emit"
)

func TestEmit_NestedUnionFlattensToSingleLevel(t *testing.T) {
	t.Parallel()

	root, err := emit.Emit(decls(t, `type Status = "a" | ("b" | "c");`), emit.Options{})
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b", "c"}, root.Enum)
}

func TestEmit_UnionOfLiteralAndTypeIsNotCollapsedToEnum(t *testing.T) {
	t.Parallel()

	root, err := emit.Emit(decls(t, `type Mixed = "a" | number;`), emit.Options{})
	require.NoError(t, err)

	assert.Empty(t, root.Enum)
	require.Len(t, root.AnyOf, 2)
}

func TestEmit_SingletonUnionIsUnwrappedByParser(t *testing.T) {
	t.Parallel()

	root, err := emit.Emit(decls(t, `type Just = "only";`), emit.Options{})
	require.NoError(t, err)

	require.NotNil(t, root.Const)
	assert.Equal(t, "only", *root.Const)
}

func TestEmit_ThreeWayNullableNonStringUnion(t *testing.T) {
	t.Parallel()

	root, err := emit.Emit(decls(t, `type Result = string | number | null;`), emit.Options{})
	require.NoError(t, err)

	require.Len(t, root.AnyOf, 3)
	assert.Equal(t, "null", root.AnyOf[2].Type)
}
