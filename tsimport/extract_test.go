package tsimport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.typeforge.dev/ts2schema/stringtest"
	"go.typeforge.dev/ts2schema/token"
	"go.typeforge.dev/ts2schema/tsimport"
)

func extract(t *testing.T, src string) []tsimport.Import {
	t.Helper()

	return tsimport.Extract(token.Tokenize(src))
}

func TestExtract_NamedImport(t *testing.T) {
	imports := extract(t, `import { X, Y } from "./path";`)

	require.Len(t, imports, 1)
	assert.Equal(t, []string{"X", "Y"}, imports[0].Names)
	assert.Equal(t, "./path", imports[0].ModulePath)
	assert.False(t, imports[0].IsDefault)
}

func TestExtract_NamedImportWithRenameKeepsOriginalName(t *testing.T) {
	imports := extract(t, `import { X as Z } from "./path";`)

	require.Len(t, imports, 1)
	assert.Equal(t, []string{"X"}, imports[0].Names)
}

func TestExtract_DefaultImport(t *testing.T) {
	imports := extract(t, `import Foo from "./foo";`)

	require.Len(t, imports, 1)
	assert.True(t, imports[0].IsDefault)
	assert.Equal(t, []string{"Foo"}, imports[0].Names)
}

func TestExtract_NamespaceImport(t *testing.T) {
	imports := extract(t, `import * as NS from "./ns";`)

	require.Len(t, imports, 1)
	assert.True(t, imports[0].IsNamespace)
	assert.Equal(t, "NS", imports[0].NamespaceAlias)
}

func TestExtract_TypeOnlyImport(t *testing.T) {
	imports := extract(t, `import type { X } from "./path";`)

	require.Len(t, imports, 1)
	assert.Equal(t, []string{"X"}, imports[0].Names)
}

func TestExtract_ExportFromNamed(t *testing.T) {
	imports := extract(t, `export { X } from "./path";`)

	require.Len(t, imports, 1)
	assert.Equal(t, []string{"X"}, imports[0].Names)
}

func TestExtract_ExportTypeFromNamed(t *testing.T) {
	imports := extract(t, `export type { X } from "./path";`)

	require.Len(t, imports, 1)
	assert.Equal(t, []string{"X"}, imports[0].Names)
}

func TestExtract_ExportStarFrom(t *testing.T) {
	imports := extract(t, `export * from "./path";`)

	require.Len(t, imports, 1)
	assert.True(t, imports[0].IsNamespace)
	assert.Equal(t, "./path", imports[0].ModulePath)
}

func TestExtract_MultipleStatements(t *testing.T) {
	src := stringtest.JoinLF(
		`import { Pet } from "./pet";`,
		`import Default from "./default";`,
		`export { Req } from "./req";`,
		"interface Unrelated {}",
	)

	imports := extract(t, src)
	require.Len(t, imports, 3)
	assert.Equal(t, "./pet", imports[0].ModulePath)
	assert.Equal(t, "./default", imports[1].ModulePath)
	assert.Equal(t, "./req", imports[2].ModulePath)
}

func TestExtract_FaultTolerantStopsAtFirstUnclassifiable(t *testing.T) {
	// A malformed import (missing closing brace) should not blow up the
	// extractor; it simply stops, returning whatever was found before.
	src := `import { X from "./path";`

	assert.NotPanics(t, func() {
		extract(t, src)
	})
}

func TestExtract_IgnoresNonImportDeclarations(t *testing.T) {
	imports := extract(t, "interface Foo { a: string; }")

	assert.Empty(t, imports)
}
