package runtime

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"testing/fstest"

	"github.com/risor-io/risor/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory Source keyed by relative path.
type fakeSource struct {
	root    string
	defs    map[string][]string
	calls   map[string][]string
	imports map[string][]string
}

func (f *fakeSource) Root() string { return f.root }

func (f *fakeSource) Files() []string {
	seen := map[string]bool{}
	for _, m := range []map[string][]string{f.defs, f.calls, f.imports} {
		for k := range m {
			seen[k] = true
		}
	}
	out := []string{}
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (f *fakeSource) Defs(p string) []string    { return orEmpty(f.defs[p]) }
func (f *fakeSource) Calls(p string) []string   { return orEmpty(f.calls[p]) }
func (f *fakeSource) Imports(p string) []string { return orEmpty(f.imports[p]) }

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		root: "/repo",
		defs: map[string][]string{
			"src/app.ts": {"App", "Header"},
		},
		calls: map[string][]string{
			"src/app.ts":    {"App", "render"},
			"convex/job.ts": {"render"},
		},
		imports: map[string][]string{
			"src/app.ts": {"./render", "react"},
		},
	}
}

func runInline(t *testing.T, rt *Runtime, script string) object.Object {
	t.Helper()
	result, err := rt.RunSource(context.Background(), script, nil)
	require.NoError(t, err)
	return result
}

// =============================================================================
// Globals
// =============================================================================

func TestRunSource_RootAndFiles(t *testing.T) {
	t.Parallel()
	rt := NewRuntime(newFakeSource(), "")

	runInline(t, rt, `
assert(root == "/repo", 'unexpected root {root}')
assert(len(files) == 2, 'expected 2 files, got {len(files)}')
assert(files[0] == "convex/job.ts", 'unexpected first file {files[0]}')
assert(files[1] == "src/app.ts", 'unexpected second file {files[1]}')
`)
}

func TestRunSource_NameLookups(t *testing.T) {
	t.Parallel()
	rt := NewRuntime(newFakeSource(), "")

	runInline(t, rt, `
d := defs("src/app.ts")
assert(len(d) == 2, 'expected 2 defs, got {len(d)}')
assert(d[0] == "App")
assert(d[1] == "Header")

c := calls("convex/job.ts")
assert(len(c) == 1)
assert(c[0] == "render")

i := imports("src/app.ts")
assert(i[0] == "./render")
assert(i[1] == "react")
`)
}

func TestRunSource_UnknownPathYieldsEmptyList(t *testing.T) {
	t.Parallel()
	rt := NewRuntime(newFakeSource(), "")

	runInline(t, rt, `
assert(len(defs("nope.ts")) == 0)
assert(len(imports("nope.ts")) == 0)
`)
}

func TestRunSource_HostFunctionArgErrors(t *testing.T) {
	t.Parallel()
	rt := NewRuntime(newFakeSource(), "")

	tests := []struct {
		name   string
		script string
	}{
		{"no args", `defs()`},
		{"too many args", `calls("a", "b")`},
		{"non-string path", `imports(42)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rt.RunSource(context.Background(), tt.script, nil)
			require.Error(t, err)
		})
	}
}

func TestRunSource_NilSourceOnlyDefinesLog(t *testing.T) {
	t.Parallel()
	rt := NewRuntime(nil, "")

	globals := rt.buildGlobals(nil)
	assert.Contains(t, globals, "log")
	assert.NotContains(t, globals, "files")
	assert.NotContains(t, globals, "defs")
}

func TestRunSource_ExtraGlobals(t *testing.T) {
	t.Parallel()
	rt := NewRuntime(nil, "")

	_, err := rt.RunSource(context.Background(), `assert(target == "src")`, map[string]any{"target": "src"})
	require.NoError(t, err)
}

func TestLog_WritesThroughLogger(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rt := NewRuntime(newFakeSource(), "", WithLogger(logger))

	runInline(t, rt, `
log.Info("counted files")
log.Warn("odd file")
`)
	out := buf.String()
	assert.Contains(t, out, "counted files")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "source=script")
}

// =============================================================================
// Results
// =============================================================================

func TestRunSource_FinalValue(t *testing.T) {
	t.Parallel()
	rt := NewRuntime(newFakeSource(), "")

	result := runInline(t, rt, `len(files)`)
	text, ok := FormatResult(result)
	require.True(t, ok)
	assert.Equal(t, "2", text)
}

func TestFormatResult(t *testing.T) {
	t.Parallel()

	text, ok := FormatResult(object.NewString("src/app.ts"))
	assert.True(t, ok)
	assert.Equal(t, "src/app.ts", text)

	_, ok = FormatResult(object.Nil)
	assert.False(t, ok)

	_, ok = FormatResult(nil)
	assert.False(t, ok)

	text, ok = FormatResult(object.NewInt(7))
	assert.True(t, ok)
	assert.Equal(t, "7", text)
}

// =============================================================================
// Script loading
// =============================================================================

func TestRunScript_LoadsFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "count.risor"), []byte(`len(calls("src/app.ts"))`), 0o644))

	rt := NewRuntime(newFakeSource(), dir)
	result, err := rt.RunScript(context.Background(), "count.risor", nil)
	require.NoError(t, err)

	text, ok := FormatResult(result)
	require.True(t, ok)
	assert.Equal(t, "2", text)
}

func TestRunScript_MissingFile(t *testing.T) {
	t.Parallel()
	rt := NewRuntime(nil, t.TempDir())

	_, err := rt.RunScript(context.Background(), "absent.risor", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunScript_CompileError(t *testing.T) {
	t.Parallel()
	rt := NewRuntime(nil, "")

	_, err := rt.RunSource(context.Background(), `x := (`, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<inline>")
}

func TestLoadScript_FromFS(t *testing.T) {
	t.Parallel()
	mapFS := fstest.MapFS{
		"reports/orphans.risor": &fstest.MapFile{Data: []byte(`files`)},
	}
	rt := NewRuntime(nil, "", WithRuntimeFS(mapFS))

	src, err := rt.LoadScript("/reports/orphans.risor")
	require.NoError(t, err)
	assert.Equal(t, "files", src)

	_, err = rt.LoadScript("missing.risor")
	require.Error(t, err)
}

func TestImport_LocalImporterSeesGlobals(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helpers.risor"), []byte(`
func def_count(path) {
	return len(defs(path))
}
`), 0o644))

	rt := NewRuntime(newFakeSource(), dir)
	runInline(t, rt, `
import helpers
n := helpers.def_count("src/app.ts")
assert(n == 2, 'expected 2, got {n}')
`)
}
