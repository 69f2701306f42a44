// Package srcgraph builds an approximate symbol and import graph for
// JavaScript and TypeScript source trees. It does not parse: every fact is
// recovered by regular-expression matching over file text, which makes it
// fast and dependency-free at the cost of precision.
//
// # Pipeline
//
// A scan runs three steps, sequentially and one file at a time:
//
//  1. Discover: walk the target paths beneath a root and collect files with a
//     script-family extension (.js, .jsx, .ts, .tsx), pruning excluded
//     directories such as node_modules, hidden tool directories and hidden
//     files like .eslintrc.js.
//
//  2. Extract: read each file once (invalid UTF-8 is replaced, not rejected)
//     and collect its definitions, call sites, and import specifiers.
//
//  3. Report: render the per-file results in relative-path order, omitting
//     files that produced nothing.
//
// # Usage
//
//	e := srcgraph.New(srcgraph.WithLogger(logger))
//	g, err := e.Scan(".", []string{"src", "convex"})
//	if err != nil { ... }
//	err = srcgraph.WriteDefsReport(os.Stdout, g)
//
// # Precision
//
// Definitions are named function declarations ("function f(") and const
// bindings of parenthesized arrow functions ("const f = (...) =>"). Call
// sites are any identifier immediately followed by "(", so keywords,
// function headers, and text inside strings and comments are counted too.
// Imports are single-line import/export statements with a "from" clause;
// multi-line statements, side-effect imports, require() and dynamic import()
// are not seen. These limits are intentional: the graph is meant for human
// review, not for sound static analysis.
//
// # Failures
//
// A file that cannot be read does not stop a scan. Its [FileResult] carries
// the error, it contributes nothing to reports, and the remaining files are
// processed normally.
package srcgraph
