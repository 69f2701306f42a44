package srcgraph

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := OpenIndex(filepath.Join(t.TempDir(), "graph.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })
	return ix
}

func indexedGraph(t *testing.T) (*Index, *Graph) {
	t.Helper()
	g := scanTree(t, map[string]string{
		"src/render.ts":  "export function render(node) { return paint(node) }\nconst paint = (n) => n\n",
		"src/app.tsx":    "import { render } from './render'\nimport React from 'react'\nrender(App())\n",
		"convex/jobs.ts": "import { render } from '../src/render'\nexport const run = (ctx) => render(ctx)\n",
	}, "src", "convex")
	ix := newTestIndex(t)
	require.NoError(t, ix.Write(g))
	return ix, g
}

// =============================================================================
// Index
// =============================================================================

func TestOpenIndex_InvalidPath(t *testing.T) {
	t.Parallel()
	_, err := OpenIndex("/nonexistent/dir/graph.db")
	require.Error(t, err)
}

func TestIndex_WriteRecordsFiles(t *testing.T) {
	t.Parallel()
	ix, g := indexedGraph(t)

	files, err := ix.Query().Files()
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "convex/jobs.ts", files[0].RelPath)
	assert.Equal(t, "src/app.tsx", files[1].RelPath)
	assert.Equal(t, "src/render.ts", files[2].RelPath)

	root, err := ix.Query().Root()
	require.NoError(t, err)
	assert.Equal(t, g.Root, root)
}

func TestIndex_WriteReplacesPreviousSnapshot(t *testing.T) {
	t.Parallel()
	ix, _ := indexedGraph(t)

	g := scanTree(t, map[string]string{"src/only.ts": "function only() {}"}, "src")
	require.NoError(t, ix.Write(g))

	files, err := ix.Query().Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "src/only.ts", files[0].RelPath)

	definers, err := ix.Query().Definers("render")
	require.NoError(t, err)
	assert.Empty(t, definers)
}

func TestIndex_WriteRecordsReadErrors(t *testing.T) {
	t.Parallel()
	g := &Graph{
		Root: "/repo",
		Files: []FileResult{{
			File:    SourceFile{Path: "/repo/src/gone.ts", RelPath: "src/gone.ts"},
			Defs:    make(Set),
			Calls:   make(Set),
			Imports: make(Set),
			Err:     assert.AnError,
		}},
	}
	ix := newTestIndex(t)
	require.NoError(t, ix.Write(g))

	files, err := ix.Query().Files()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, assert.AnError.Error(), files[0].Error)
}

// =============================================================================
// Queries
// =============================================================================

func TestQueryBuilder(t *testing.T) {
	t.Parallel()
	ix, _ := indexedGraph(t)
	q := ix.Query()

	tests := []struct {
		name string
		fn   func(string) ([]string, error)
		arg  string
		want []string
	}{
		{"definers", q.Definers, "paint", []string{"src/render.ts"}},
		{"definers of const arrow", q.Definers, "run", []string{"convex/jobs.ts"}},
		{"callers", q.Callers, "render", []string{"convex/jobs.ts", "src/app.tsx", "src/render.ts"}},
		{"dependents", q.Dependents, "./render", []string{"src/app.tsx"}},
		{"dependents are unresolved specifiers", q.Dependents, "../src/render", []string{"convex/jobs.ts"}},
		{"dependencies", q.Dependencies, "src/app.tsx", []string{"./render", "react"}},
		{"definitions", q.Definitions, "src/render.ts", []string{"paint", "render"}},
		{"calls", q.Calls, "src/app.tsx", []string{"App", "render"}},
		{"definitions of unknown file", q.Definitions, "src/nope.ts", []string{}},
		{"no match", q.Callers, "missing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
