// Package discover finds candidate source files beneath a set of target
// paths, applying extension filtering and directory pruning.
package discover

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File identifies a discovered source file.
type File struct {
	Path    string // absolute
	RelPath string // relative to the discovery root, slash-separated
}

// Discover returns the files under root/target for every target, deduplicated
// and sorted by RelPath. A target naming a file is included when its extension
// matches; a target naming a directory is walked recursively, skipping private
// files and the subdirectories that rules prune. Targets that do not exist are
// skipped.
//
// Unreadable subdirectories are skipped as well and reported to logger, which
// may be nil. The only error is a root that cannot be made absolute.
func Discover(root string, targets []string, rules Rules, logger *slog.Logger) ([]File, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %q: %w", root, err)
	}

	seen := make(map[string]bool)
	var paths []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	for _, target := range targets {
		start := target
		if !filepath.IsAbs(start) {
			start = filepath.Join(absRoot, start)
		}
		start = filepath.Clean(start)

		info, err := os.Stat(start)
		if err != nil {
			if logger != nil {
				logger.Debug("skipping missing target", "path", target)
			}
			continue
		}
		if !info.IsDir() {
			if rules.Matches(start) {
				add(start)
			}
			continue
		}
		walkTarget(start, rules, logger, add)
	}

	files := make([]File, 0, len(paths))
	for _, p := range paths {
		files = append(files, File{Path: p, RelPath: relPath(absRoot, p)})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}

// walkTarget walks one directory target, calling add for each matching file.
func walkTarget(start string, rules Rules, logger *slog.Logger, add func(string)) {
	_ = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if logger != nil {
				logger.Warn("skipping unreadable directory", "path", path, "error", err)
			}
			if d != nil && d.IsDir() && path != start {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path == start {
				return nil
			}
			if rules.Prunes(d.Name()) {
				return filepath.SkipDir
			}
			if limit := rules.MaxDepth(); limit > 0 && depth(start, path) >= limit {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() && !rules.Hides(d.Name()) && rules.Matches(path) {
			add(path)
		}
		return nil
	})
}

// depth returns how many directory levels path sits below start.
func depth(start, path string) int {
	rel, err := filepath.Rel(start, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
