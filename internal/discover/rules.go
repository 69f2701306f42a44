package discover

import (
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions is the script-family extension set: JavaScript and
// TypeScript, each in plain and JSX/TSX form.
var DefaultExtensions = []string{".js", ".jsx", ".ts", ".tsx"}

// DefaultExcludedDirs lists directory names that are never descended into:
// version-control metadata, build and cache output, and installed
// dependencies.
var DefaultExcludedDirs = []string{
	".git",
	".next",
	".turbo",
	".cache",
	"__pycache__",
	"_generated",
	"build",
	"coverage",
	"dist",
	"node_modules",
}

// DefaultPrivatePrefix prunes hidden tool directories such as .claude or .vscode.
const DefaultPrivatePrefix = "."

// Rules is the immutable configuration consulted while discovering files.
// The zero value matches nothing; build one with NewRules or DefaultRules.
type Rules struct {
	extensions    map[string]bool
	excluded      map[string]bool
	privatePrefix string
	maxDepth      int
}

// NewRules builds a Rules value. Extensions are compared case-insensitively
// and must include the leading dot. maxDepth limits how many directory
// levels below each target are visited; 0 means unlimited.
func NewRules(extensions, excludedDirs []string, privatePrefix string, maxDepth int) Rules {
	r := Rules{
		extensions:    make(map[string]bool, len(extensions)),
		excluded:      make(map[string]bool, len(excludedDirs)),
		privatePrefix: privatePrefix,
		maxDepth:      maxDepth,
	}
	for _, ext := range extensions {
		r.extensions[strings.ToLower(ext)] = true
	}
	for _, name := range excludedDirs {
		r.excluded[name] = true
	}
	return r
}

// DefaultRules returns Rules built from the package defaults.
func DefaultRules() Rules {
	return NewRules(DefaultExtensions, DefaultExcludedDirs, DefaultPrivatePrefix, 0)
}

// Matches reports whether path has a recognized extension.
func (r Rules) Matches(path string) bool {
	return r.extensions[strings.ToLower(filepath.Ext(path))]
}

// Prunes reports whether a subdirectory with the given base name is skipped.
func (r Rules) Prunes(name string) bool {
	return r.excluded[name] || r.Hides(name)
}

// Hides reports whether a file with the given base name is private and
// therefore skipped while walking a directory target.
func (r Rules) Hides(name string) bool {
	return r.privatePrefix != "" && strings.HasPrefix(name, r.privatePrefix)
}

// MaxDepth returns the depth limit (0 = unlimited).
func (r Rules) MaxDepth() int {
	return r.maxDepth
}

// Extensions returns the recognized extensions, sorted.
func (r Rules) Extensions() []string {
	return sortedKeys(r.extensions)
}

// ExcludedDirs returns the excluded directory names, sorted.
func (r Rules) ExcludedDirs() []string {
	return sortedKeys(r.excluded)
}

// PrivatePrefix returns the prefix marking private directories and files.
func (r Rules) PrivatePrefix() string {
	return r.privatePrefix
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
