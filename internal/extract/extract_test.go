package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Definitions
// =============================================================================

func TestDefsAndCalls_Definitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"function declaration", "function foo() {}", []string{"foo"}},
		{"const arrow", "const bar = (x) => x + 1", []string{"bar"}},
		{"async function", "export async function load(ctx) { return 1 }", []string{"load"}},
		{"exported const arrow", "export const Page = ({ title }) => title", []string{"Page"}},
		{"dollar identifiers", "function $q(){}\nconst _x$ = () => 1", []string{"$q", "_x$"}},
		{"whitespace before paren", "function  spaced  (a) {}", []string{"spaced"}},
		{"typed params", "const add = (a: number, b: number) => a + b", []string{"add"}},
		{"duplicates collapse", "function a(){}\nfunction a(){}", []string{"a"}},
		{"nested definitions", "function outer() { function inner() {} const h = () => 0 }", []string{"h", "inner", "outer"}},
		{"comment contents count", "// function ghost() {}", []string{"ghost"}},

		// Forms the heuristic leaves alone.
		{"let arrow", "let x = () => 1", []string{}},
		{"async arrow", "const f = async () => 1", []string{}},
		{"bare param arrow", "const g = x => x", []string{}},
		{"destructured binding", "const { a, b } = (o) => o", []string{}},
		{"default export anonymous", "export default function () {}", []string{}},
		{"function expression", "const h = function () {}", []string{}},
		{"nested parens in params", "const d = (a = f()) => a", []string{}},
		{"keyword suffix", "myfunction foo() {}", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			defs, _ := DefsAndCalls(tt.text)
			assert.Equal(t, tt.want, defs.Sorted())
		})
	}
}

// =============================================================================
// Calls
// =============================================================================

func TestDefsAndCalls_NestedCalls(t *testing.T) {
	t.Parallel()

	_, calls := DefsAndCalls("foo(bar(1))")
	assert.True(t, calls.Has("foo"))
	assert.True(t, calls.Has("bar"))
	assert.Equal(t, 2, calls.Len())
}

func TestDefsAndCalls_CallsOverReport(t *testing.T) {
	t.Parallel()

	text := `function handler(req) {
  if(req.ok) { return send("done(") }
  // retry()
  obj.method(1)
}`
	defs, calls := DefsAndCalls(text)
	assert.Equal(t, []string{"handler"}, defs.Sorted())
	// Headers, keywords, string and comment contents, and member calls all count.
	assert.Equal(t, []string{"done", "handler", "if", "method", "retry", "send"}, calls.Sorted())
}

func TestDefsAndCalls_SpaceBeforeParenIsNotACall(t *testing.T) {
	t.Parallel()

	_, calls := DefsAndCalls("if (x) { run () }")
	assert.Empty(t, calls.Sorted())
}

func TestDefsAndCalls_Empty(t *testing.T) {
	t.Parallel()

	defs, calls := DefsAndCalls("")
	assert.Equal(t, 0, defs.Len())
	assert.Equal(t, 0, calls.Len())
}

func TestDefsAndCalls_Deterministic(t *testing.T) {
	t.Parallel()

	text := "const a = () => b(c(d()))\nfunction e(){ f() }"
	d1, c1 := DefsAndCalls(text)
	d2, c2 := DefsAndCalls(text)
	assert.Equal(t, d1.Sorted(), d2.Sorted())
	assert.Equal(t, c1.Sorted(), c2.Sorted())
}

// =============================================================================
// Imports
// =============================================================================

func TestImports(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"named import", `import { a } from "./mod";`, []string{"./mod"}},
		{"single quotes", `import React from 'react'`, []string{"react"}},
		{"re-export", `export * from "./types"`, []string{"./types"}},
		{"named re-export", `export { x as y } from '../lib/x'`, []string{"../lib/x"}},
		{"type import", `import type { Doc } from "convex/_generated/dataModel"`, []string{"convex/_generated/dataModel"}},
		{"leading whitespace", "    import b from \"b\"", []string{"b"}},
		{"crlf line endings", "import a from \"a\"\r\nimport b from \"b\"\r\n", []string{"a", "b"}},
		{"duplicates collapse", "import a from \"x\"\nimport { b } from \"x\"", []string{"x"}},

		// Unrecognized shapes.
		{"dynamic import mid-line", `const m = await import("./lazy")`, []string{}},
		{"dynamic import at line start", `import("./lazy").then(run)`, []string{}},
		{"side-effect import", `import "./styles.css"`, []string{}},
		{"require", `const fs = require("fs")`, []string{}},
		{"multi-line import", "import {\n  a,\n} from \"./multi\"", []string{}},
		{"not at line start", `foo(); import a from "a"`, []string{}},
		{"identifier prefix", `imports from "x"`, []string{}},
		{"empty specifier", `import a from ""`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Imports(tt.text).Sorted())
		})
	}
}

func TestImportLine(t *testing.T) {
	t.Parallel()

	spec, ok := ImportLine(`export { default } from "./Button";`)
	assert.True(t, ok)
	assert.Equal(t, "./Button", spec)

	_, ok = ImportLine(`export default Button`)
	assert.False(t, ok)
}

func TestSet(t *testing.T) {
	t.Parallel()

	s := NewSet("b", "a", "b")
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"a", "b"}, s.Sorted())

	var empty Set
	assert.NotNil(t, empty.Sorted())
	assert.Empty(t, empty.Sorted())
}
