// Package extract recovers a rough symbol and import graph from script-family
// source text (JavaScript and TypeScript, plain and JSX/TSX variants) using
// regular expressions rather than a parser.
//
// The matching is deliberately lexical. Call extraction over-reports: every
// identifier directly followed by "(" counts, including function headers,
// keywords such as "if", and text inside strings and comments. Import
// extraction under-reports: only single-line import/export statements with a
// "from" clause are recognized. Both behaviors are part of the contract.
package extract

import (
	"regexp"
	"strings"
)

var (
	// function name(
	funcDeclRe = regexp.MustCompile(`\bfunction\s+([A-Za-z_$][\w$]*)\s*\(`)

	// const name = (params) =>
	arrowDeclRe = regexp.MustCompile(`\bconst\s+([A-Za-z_$][\w$]*)\s*=\s*\([^)]*\)\s*=>`)

	// name(
	callRe = regexp.MustCompile(`([A-Za-z_$][\w$]*)\(`)

	// import ... from "spec" / export ... from 'spec', anchored at line start.
	importRe = regexp.MustCompile(`^\s*(?:import|export)\b.*\bfrom\s*["']([^"']+)["']`)
)

// DefsAndCalls scans text for declared and invoked symbol names.
//
// Definitions are named function declarations and const bindings of
// parenthesized arrow functions. Destructured bindings, default-exported
// anonymous functions and single-parameter arrows without parentheses are
// not definitions.
func DefsAndCalls(text string) (defs, calls Set) {
	defs = make(Set)
	calls = make(Set)

	for _, re := range []*regexp.Regexp{funcDeclRe, arrowDeclRe} {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			defs.Add(m[1])
		}
	}
	for _, m := range callRe.FindAllStringSubmatch(text, -1) {
		calls.Add(m[1])
	}
	return defs, calls
}

// Imports returns the module specifiers referenced by single-line
// import/export-from statements in text. Each line is matched on its own, so
// statements spanning several lines, side-effect imports without "from", and
// dynamic import() calls contribute nothing.
func Imports(text string) Set {
	specs := make(Set)
	for _, line := range strings.Split(text, "\n") {
		if spec, ok := ImportLine(line); ok {
			specs.Add(spec)
		}
	}
	return specs
}

// ImportLine matches a single line against the import/export-from shape and
// returns the quoted module specifier.
func ImportLine(line string) (string, bool) {
	m := importRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
	if m == nil {
		return "", false
	}
	return m[1], true
}
