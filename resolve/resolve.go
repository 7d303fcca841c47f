package resolve

import (
	"errors"
	"fmt"
	"log/slog"

	"go.typeforge.dev/ts2schema/ast"
	"go.typeforge.dev/ts2schema/parser"
	"go.typeforge.dev/ts2schema/token"
	"go.typeforge.dev/ts2schema/tsimport"
)

// FollowMode governs whether the resolver descends into an imported file.
type FollowMode string

// Follow modes, per spec 4.4.
const (
	FollowNone  FollowMode = "none"
	FollowLocal FollowMode = "local"
	FollowAll   FollowMode = "all"
)

// DuplicatePolicy controls the resolver's behavior when two files declare
// the same top-level name.
type DuplicatePolicy string

// Duplicate-declaration policies, per spec 4.4.
const (
	PolicyError  DuplicatePolicy = "error"
	PolicyWarn   DuplicatePolicy = "warn"
	PolicySilent DuplicatePolicy = "silent"
)

// Sentinel errors, wrapped with context at the point of failure.
var (
	ErrResolution           = errors.New("import could not be resolved")
	ErrRead                 = errors.New("read error")
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
)

// FileReader abstracts reading file contents by path. The default
// implementation is FSResolver, backed by os.ReadFile.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// ModuleResolver computes the absolute path an import statement resolves
// to. ok=false (with err=nil) means the import was intentionally skipped
// per follow-mode rules (spec 4.4's table) and is not an error. A non-nil
// err means resolution was attempted and failed, which is always a hard
// error regardless of follow mode.
type ModuleResolver interface {
	Resolve(fromFile, modulePath string, mode FollowMode) (resolvedPath string, ok bool, err error)
}

// Resolver runs the depth-first traversal and merge algorithm of spec
// 4.4 over the FileReader/ModuleResolver abstractions.
type Resolver struct {
	Reader   FileReader
	Modules  ModuleResolver
	Mode     FollowMode
	Policy   DuplicatePolicy
	Logger   *slog.Logger
	visited  map[string]bool
	declFile map[string]string
	merged   []ast.Declaration
}

// Resolve walks entryPath and everything it transitively imports
// (subject to Mode), returning the merged, deduplicated declaration list
// in discovery order.
func (r *Resolver) Resolve(entryPath string) ([]ast.Declaration, error) {
	r.visited = make(map[string]bool)
	r.declFile = make(map[string]string)
	r.merged = nil

	if err := r.visit(entryPath); err != nil {
		return nil, err
	}

	return r.merged, nil
}

func (r *Resolver) visit(path string) error {
	if r.visited[path] {
		return nil
	}

	r.visited[path] = true

	data, err := r.Reader.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}

	toks := token.Tokenize(string(data))
	imports := tsimport.Extract(toks)

	decls, err := parser.New(toks).Parse()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := r.mergeDeclarations(path, decls); err != nil {
		return err
	}

	for _, imp := range imports {
		resolved, ok, err := r.Modules.Resolve(path, imp.ModulePath, r.Mode)
		if err != nil {
			return fmt.Errorf("%w: %s (from %s): %w", ErrResolution, imp.ModulePath, path, err)
		}

		if !ok {
			continue
		}

		if err := r.visit(resolved); err != nil {
			return err
		}
	}

	return nil
}

func (r *Resolver) mergeDeclarations(path string, decls []ast.Declaration) error {
	for _, d := range decls {
		ast.SetSourceFile(d, path)

		name := d.DeclName()

		existing, dup := r.declFile[name]
		if !dup {
			r.declFile[name] = path
			r.merged = append(r.merged, d)

			continue
		}

		switch r.Policy {
		case PolicyWarn:
			r.logger().Warn("duplicate declaration",
				slog.String("name", name),
				slog.String("first", existing),
				slog.String("second", path),
			)
		case PolicySilent:
			// keep first, no diagnostic
		case PolicyError:
			fallthrough
		default:
			return fmt.Errorf("%w: %q declared in both %s and %s", ErrDuplicateDeclaration, name, existing, path)
		}
	}

	return nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}

	return slog.Default()
}
