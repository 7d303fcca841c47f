package resolve_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/resolve"
)

// memFS is an in-memory FileReader/ModuleResolver used to test Resolver's
// traversal/merge algorithm without touching the real filesystem.
type memFS struct {
	files   map[string]string
	imports map[string]map[string]string // fromFile -> modulePath -> resolved path
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	src, ok := m.files[path]
	if !ok {
		return nil, errors.New("no such file: " + path)
	}

	return []byte(src), nil
}

func (m *memFS) Resolve(fromFile, modulePath string, mode resolve.FollowMode) (string, bool, error) {
	if mode == resolve.FollowNone {
		return "", false, nil
	}

	resolved, ok := m.imports[fromFile][modulePath]
	if !ok {
		return "", false, errors.New("cannot resolve " + modulePath)
	}

	return resolved, true, nil
}

func TestResolver_SingleFileNoImports(t *testing.T) {
	fs := &memFS{files: map[string]string{
		"/a.ts": "interface A { x: string; }",
	}}

	r := &resolve.Resolver{Reader: fs, Modules: fs, Mode: resolve.FollowLocal, Policy: resolve.PolicyError}

	decls, err := r.Resolve("/a.ts")
	require.NoError(t, err)
	require.Len(t, decls, 1)
	assert.Equal(t, "A", decls[0].DeclName())
}

func TestResolver_MultiFileMerge(t *testing.T) {
	fs := &memFS{
		files: map[string]string{
			"/pet.ts": "export interface Pet { _id: string; name: string; }",
			"/api.ts": `import { Pet } from "./pet"; export interface Req extends Omit<Pet, "_id"> {}`,
		},
		imports: map[string]map[string]string{
			"/api.ts": {"./pet": "/pet.ts"},
		},
	}

	r := &resolve.Resolver{Reader: fs, Modules: fs, Mode: resolve.FollowLocal, Policy: resolve.PolicyError}

	decls, err := r.Resolve("/api.ts")
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, "Req", decls[0].DeclName())
	assert.Equal(t, "Pet", decls[1].DeclName())
}

func TestResolver_CycleTerminatesAndVisitsOnce(t *testing.T) {
	fs := &memFS{
		files: map[string]string{
			"/a.ts": `import { B } from "./b"; export interface A { b: B; }`,
			"/b.ts": `import { A } from "./a"; export interface B { a: A; }`,
		},
		imports: map[string]map[string]string{
			"/a.ts": {"./b": "/b.ts"},
			"/b.ts": {"./a": "/a.ts"},
		},
	}

	r := &resolve.Resolver{Reader: fs, Modules: fs, Mode: resolve.FollowLocal, Policy: resolve.PolicyError}

	decls, err := r.Resolve("/a.ts")
	require.NoError(t, err)
	require.Len(t, decls, 2)
}

func TestResolver_DuplicateDeclaration_PolicyError(t *testing.T) {
	fs := &memFS{
		files: map[string]string{
			"/a.ts": `import { X } from "./b"; export interface X { a: string; }`,
			"/b.ts": "export interface X { b: string; }",
		},
		imports: map[string]map[string]string{
			"/a.ts": {"./b": "/b.ts"},
		},
	}

	r := &resolve.Resolver{Reader: fs, Modules: fs, Mode: resolve.FollowLocal, Policy: resolve.PolicyError}

	_, err := r.Resolve("/a.ts")
	require.Error(t, err)
	assert.True(t, errors.Is(err, resolve.ErrDuplicateDeclaration))
}

func TestResolver_DuplicateDeclaration_PolicySilentKeepsFirst(t *testing.T) {
	fs := &memFS{
		files: map[string]string{
			"/a.ts": `import { X } from "./b"; export interface X { a: string; }`,
			"/b.ts": "export interface X { b: string; }",
		},
		imports: map[string]map[string]string{
			"/a.ts": {"./b": "/b.ts"},
		},
	}

	r := &resolve.Resolver{Reader: fs, Modules: fs, Mode: resolve.FollowLocal, Policy: resolve.PolicySilent, Logger: slog.Default()}

	decls, err := r.Resolve("/a.ts")
	require.NoError(t, err)
	require.Len(t, decls, 1)

	iface, ok := decls[0].(*ast.Interface)
	require.True(t, ok)
	assert.Equal(t, "/a.ts", iface.SourceFile)
}

func TestResolver_FollowNoneSkipsAllImports(t *testing.T) {
	fs := &memFS{
		files: map[string]string{
			"/api.ts": `import { Pet } from "./pet"; export interface Req { a: string; }`,
		},
	}

	r := &resolve.Resolver{Reader: fs, Modules: fs, Mode: resolve.FollowNone, Policy: resolve.PolicyError}

	decls, err := r.Resolve("/api.ts")
	require.NoError(t, err)
	require.Len(t, decls, 1)
}

func TestResolver_UnresolvedImportIsHardError(t *testing.T) {
	fs := &memFS{
		files: map[string]string{
			"/api.ts": `import { Pet } from "./missing"; export interface Req { a: string; }`,
		},
		imports: map[string]map[string]string{},
	}

	r := &resolve.Resolver{Reader: fs, Modules: fs, Mode: resolve.FollowLocal, Policy: resolve.PolicyError}

	_, err := r.Resolve("/api.ts")
	require.Error(t, err)
	assert.True(t, errors.Is(err, resolve.ErrResolution))
}
