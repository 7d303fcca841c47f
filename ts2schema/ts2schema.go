package ts2schema

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/jsonschema-go/jsonschema"
	"golang.org/x/sync/errgroup"

	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/emit"
	"go.typeforge.dev/ts2schema/parser"
	"go.typeforge.dev/ts2schema/resolve"
	"go.typeforge.dev/ts2schema/token"
)

// ParseDeclarations exposes the AST for inspection: tokenize then parse
// source, with no import resolution or emission.
func ParseDeclarations(source string) ([]ast.Declaration, error) {
	return parser.New(token.Tokenize(source)).Parse()
}

// ToJSONSchema converts a single in-memory source string to one JSON
// Schema document (spec 4.5.2A).
func ToJSONSchema(source string, opts ...Option) (*jsonschema.Schema, error) {
	decls, err := ParseDeclarations(source)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(opts)

	return emit.Emit(decls, cfg.emit)
}

// ToJSONSchemas converts a single in-memory source string to the batch
// shape: one self-contained document per declared name (spec 4.5.2B).
func ToJSONSchemas(source string, opts ...Option) (map[string]*jsonschema.Schema, error) {
	decls, err := ParseDeclarations(source)
	if err != nil {
		return nil, err
	}

	cfg := newConfig(opts)

	return emit.EmitAll(decls, cfg.emit)
}

// ToJSONSchemaFromFile reads entryPath and everything it transitively
// imports (per WithFollowImports), then converts the merged
// declaration list to one JSON Schema document.
func ToJSONSchemaFromFile(entryPath string, opts ...Option) (*jsonschema.Schema, error) {
	cfg := newConfig(opts)

	decls, err := resolveEntry(entryPath, cfg)
	if err != nil {
		return nil, err
	}

	return emit.Emit(decls, cfg.emit)
}

// ToJSONSchemasFromFile is ToJSONSchemaFromFile's batch-shape
// counterpart.
func ToJSONSchemasFromFile(entryPath string, opts ...Option) (map[string]*jsonschema.Schema, error) {
	cfg := newConfig(opts)

	decls, err := resolveEntry(entryPath, cfg)
	if err != nil {
		return nil, err
	}

	return emit.EmitAll(decls, cfg.emit)
}

// ToJSONSchemasFromFiles converts a set of entry files to the batch
// shape. entries is either an explicit list of paths or a single glob
// pattern (supporting *, ?, **, expanded via doublestar). Each entry's
// own import graph is resolved independently and concurrently (bounded
// by GOMAXPROCS); the resulting declaration lists are then merged,
// single-threaded, before emission.
func ToJSONSchemasFromFiles(entries any, opts ...Option) (map[string]*jsonschema.Schema, error) {
	cfg := newConfig(opts)

	paths, err := expandEntries(entries, cfg.baseDir)
	if err != nil {
		return nil, err
	}

	lists := make([][]ast.Declaration, len(paths))

	group := new(errgroup.Group)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		i, path := i, path

		group.Go(func() error {
			decls, err := resolveEntry(path, cfg)
			if err != nil {
				return err
			}

			lists[i] = decls

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged, err := resolve.Merge(lists, cfg.emit.DuplicatePolicy(), slog.Default())
	if err != nil {
		return nil, err
	}

	return emit.EmitAll(merged, cfg.emit)
}

// expandEntries normalizes the ToJSONSchemasFromFiles entries argument
// into an absolute path list.
func expandEntries(entries any, baseDir string) ([]string, error) {
	switch v := entries.(type) {
	case string:
		pattern := v
		if baseDir != "" && !filepath.IsAbs(v) {
			pattern = filepath.Join(baseDir, v)
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", v, err)
		}

		return absolutize(matches, ""), nil

	case []string:
		return absolutize(v, baseDir), nil

	default:
		return nil, fmt.Errorf("entries: unsupported type %T, want string (glob) or []string", entries)
	}
}

func absolutize(paths []string, baseDir string) []string {
	out := make([]string, len(paths))

	for i, p := range paths {
		out[i] = resolvePath(p, baseDir)
	}

	return out
}

func resolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}

	if baseDir != "" {
		return filepath.Join(baseDir, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	return abs
}

// resolveEntry reads entryPath and its transitive imports through the
// default filesystem resolver.
func resolveEntry(entryPath string, cfg config) ([]ast.Declaration, error) {
	abs := resolvePath(entryPath, cfg.baseDir)

	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", resolve.ErrRead, abs, err)
	}

	fs := &resolve.FSResolver{RootDir: cfg.baseDir}

	r := &resolve.Resolver{
		Reader:  fs,
		Modules: fs,
		Mode:    cfg.followMode,
		Policy:  cfg.emit.DuplicatePolicy(),
	}

	return r.Resolve(abs)
}
