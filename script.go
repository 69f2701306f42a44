package srcgraph

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/jward/srcgraph/internal/runtime"
)

// RunScript evaluates the Risor script at scriptPath against g. It returns the
// script's final value rendered as text, and ok=false when that value is nil.
// Imports inside the script resolve relative to the script's directory.
func (e *Engine) RunScript(ctx context.Context, g *Graph, scriptPath string) (text string, ok bool, err error) {
	rt := runtime.NewRuntime(graphSource{g}, filepath.Dir(scriptPath), runtime.WithLogger(e.logger))
	result, err := rt.RunScript(ctx, filepath.Base(scriptPath), nil)
	if err != nil {
		return "", false, err
	}
	text, ok = runtime.FormatResult(result)
	return text, ok, nil
}

// EvalScript evaluates inline Risor source against g, with the same result
// rules as RunScript. Imports inside the source are loaded from modules, which
// may be nil to disable them.
func (e *Engine) EvalScript(ctx context.Context, g *Graph, source string, modules fs.FS) (text string, ok bool, err error) {
	opts := []runtime.RuntimeOption{runtime.WithLogger(e.logger)}
	if modules != nil {
		opts = append(opts, runtime.WithRuntimeFS(modules))
	}
	rt := runtime.NewRuntime(graphSource{g}, "", opts...)
	result, err := rt.RunSource(ctx, source, nil)
	if err != nil {
		return "", false, err
	}
	text, ok = runtime.FormatResult(result)
	return text, ok, nil
}

// graphSource adapts a Graph to the script runtime.
type graphSource struct {
	g *Graph
}

func (s graphSource) Root() string {
	return s.g.Root
}

func (s graphSource) Files() []string {
	out := make([]string, 0, len(s.g.Files))
	for _, r := range s.g.Files {
		out = append(out, r.File.RelPath)
	}
	return out
}

func (s graphSource) Defs(relPath string) []string {
	return s.names(relPath, func(r *FileResult) Set { return r.Defs })
}

func (s graphSource) Calls(relPath string) []string {
	return s.names(relPath, func(r *FileResult) Set { return r.Calls })
}

func (s graphSource) Imports(relPath string) []string {
	return s.names(relPath, func(r *FileResult) Set { return r.Imports })
}

func (s graphSource) names(relPath string, pick func(*FileResult) Set) []string {
	r, ok := s.g.Lookup(relPath)
	if !ok {
		return []string{}
	}
	return pick(r).Sorted()
}
