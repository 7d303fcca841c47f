package resolve

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// candidateExtensions is the ordered list of suffixes tried against a
// candidate path (a relative import's base path or a package entry
// path), per spec 4.4's extension resolution rule.
var candidateExtensions = []string{
	"",
	".ts",
	".tsx",
	".d.ts",
	"/index.ts",
	"/index.tsx",
	"/index.d.ts",
}

// FSResolver is the default filesystem-backed ModuleResolver and
// FileReader, implementing the node_modules ascent and package.json
// types/exports lookup spec 4.4 describes. The zero value is ready to
// use.
type FSResolver struct {
	// RootDir is not consulted by Resolve: the node_modules ascent
	// always starts from the importing file's own directory, whatever
	// RootDir holds.
	RootDir string
}

// ReadFile implements FileReader.
func (f *FSResolver) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Resolve implements ModuleResolver.
func (f *FSResolver) Resolve(fromFile, modulePath string, mode FollowMode) (string, bool, error) {
	if mode == FollowNone {
		return "", false, nil
	}

	isRelative := strings.HasPrefix(modulePath, "./") || strings.HasPrefix(modulePath, "../")

	if !isRelative && mode == FollowLocal {
		return "", false, nil
	}

	if isRelative {
		base := filepath.Join(filepath.Dir(fromFile), modulePath)

		path, ok := f.resolveCandidates(base)
		if !ok {
			return "", false, os.ErrNotExist
		}

		return path, true, nil
	}

	// mode == FollowAll and modulePath is a bare package specifier:
	// ascend node_modules directories looking for a package.json whose
	// types/typings/exports field names a declaration file.
	path, ok, err := f.resolvePackage(filepath.Dir(fromFile), modulePath)
	if err != nil {
		return "", false, err
	}

	if !ok {
		return "", false, os.ErrNotExist
	}

	return path, true, nil
}

// resolveCandidates tries base against candidateExtensions in order,
// returning the first path that exists as a regular file.
func (f *FSResolver) resolveCandidates(base string) (string, bool) {
	for _, ext := range candidateExtensions {
		candidate := base + ext
		if ext == "" {
			// base already has its own extension (e.g. "./foo.ts");
			// only accept it verbatim if it names a file directly.
			if fileExists(candidate) {
				return candidate, true
			}

			continue
		}

		if fileExists(candidate) {
			return candidate, true
		}
	}

	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

// packageJSON mirrors the subset of package.json fields spec 4.4 cares
// about. Exports may be a bare string or a conditional-exports map; we
// only need the "types"/"." entry.
type packageJSON struct {
	Types   string          `json:"types"`
	Typings string          `json:"typings"`
	Exports json.RawMessage `json:"exports"`
}

// resolvePackage ascends from dir through node_modules directories
// looking for <name>/package.json (or, without one, <name>'s index
// file), per Node's module resolution algorithm restricted to the
// types/typings/exports fields.
func (f *FSResolver) resolvePackage(dir, name string) (string, bool, error) {
	for {
		pkgDir := filepath.Join(dir, "node_modules", name)

		path, ok, err := f.resolveFromPackageJSON(pkgDir)
		if err != nil {
			return "", false, err
		}

		if ok {
			return path, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}

		dir = parent
	}
}

func (f *FSResolver) resolveFromPackageJSON(pkgDir string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// No package.json: only the package's index file can match.
			path, ok := f.resolveCandidates(filepath.Join(pkgDir, "index"))

			return path, ok, nil
		}

		return "", false, err
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", false, err
	}

	if entry := typesEntry(pkg); entry != "" {
		path, ok := f.resolveCandidates(filepath.Join(pkgDir, entry))
		if ok {
			return path, true, nil
		}
	}

	// Fall back to the package directory's index file, tried through the
	// same extension list (index.ts, index.tsx, index.d.ts, ...).
	path, ok := f.resolveCandidates(filepath.Join(pkgDir, "index"))

	return path, ok, nil
}

// typesEntry picks the declaration entry point out of a package.json,
// preferring "types", then "typings", then a "." condition inside
// "exports" if it resolves to a string.
func typesEntry(pkg packageJSON) string {
	if pkg.Types != "" {
		return pkg.Types
	}

	if pkg.Typings != "" {
		return pkg.Typings
	}

	if len(pkg.Exports) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(pkg.Exports, &asString); err == nil {
		return asString
	}

	var asMap map[string]json.RawMessage
	if err := json.Unmarshal(pkg.Exports, &asMap); err != nil {
		return ""
	}

	dot, ok := asMap["."]
	if !ok {
		return ""
	}

	var dotStr string
	if err := json.Unmarshal(dot, &dotStr); err == nil {
		return dotStr
	}

	var dotMap map[string]json.RawMessage
	if err := json.Unmarshal(dot, &dotMap); err != nil {
		return ""
	}

	for _, key := range []string{"types", "default", "import", "require"} {
		if v, ok := dotMap[key]; ok {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				return s
			}
		}
	}

	return ""
}
