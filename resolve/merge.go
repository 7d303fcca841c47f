package resolve

import (
	"fmt"
	"log/slog"

	"go.typeforge.dev/ts2schema/ast"
)

// Merge combines several independently-produced declaration lists into
// one, applying policy exactly as Resolver does when two single-file
// declaration sets collide on a name. Used by batch entry points (e.g.
// converting an explicit file set or glob) that resolve each entry
// file's own import graph separately but still need one merged
// declaration list for emission.
func Merge(lists [][]ast.Declaration, policy DuplicatePolicy, logger *slog.Logger) ([]ast.Declaration, error) {
	if logger == nil {
		logger = slog.Default()
	}

	seen := make(map[string]string)

	var merged []ast.Declaration

	for _, list := range lists {
		for _, d := range list {
			name := d.DeclName()

			existing, dup := seen[name]
			if !dup {
				seen[name] = sourceLabel(d)
				merged = append(merged, d)

				continue
			}

			switch policy {
			case PolicyWarn:
				logger.Warn("duplicate declaration",
					slog.String("name", name),
					slog.String("first", existing),
					slog.String("second", sourceLabel(d)),
				)
			case PolicySilent:
				// keep first, no diagnostic
			case PolicyError:
				fallthrough
			default:
				return nil, fmt.Errorf("%w: %q declared in both %s and %s", ErrDuplicateDeclaration, name, existing, sourceLabel(d))
			}
		}
	}

	return merged, nil
}

func sourceLabel(d ast.Declaration) string {
	switch v := d.(type) {
	case *ast.Interface:
		return v.SourceFile
	case *ast.TypeAlias:
		return v.SourceFile
	case *ast.Enum:
		return v.SourceFile
	}

	return ""
}
