// Package audit cross-checks the text-pattern definition extractor against a
// real parser. It parses a file with tree-sitter, collects the function
// declarations and const arrow-function declarators the grammar sees, and
// reports where the two disagree. Extraction output is never changed.
package audit

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/srcgraph/internal/extract"
)

// definitionQuery matches the two declaration forms the extractor targets.
// The declaration keyword is checked in Go because let and const share a
// node type.
const definitionQuery = `
(function_declaration name: (identifier) @name)
(lexical_declaration
  (variable_declarator
    name: (identifier) @name
    value: (arrow_function))) @decl
`

// Finding describes the disagreement for one file. Both lists are sorted.
type Finding struct {
	Grammar string
	Missed  []string // found by the parser only
	Extra   []string // found by the extractor only
}

// Agrees reports whether the parser and the extractor found the same names.
func (f *Finding) Agrees() bool {
	return len(f.Missed) == 0 && len(f.Extra) == 0
}

// File audits one file's content against the extractor's definitions for it.
func File(ctx context.Context, path string, src []byte, heuristic extract.Set) (*Finding, error) {
	grammar, ok := GrammarForFile(path)
	if !ok {
		return nil, fmt.Errorf("audit: no grammar for %s", path)
	}
	parsed, err := Definitions(ctx, src, grammar)
	if err != nil {
		return nil, fmt.Errorf("audit: %s: %w", path, err)
	}
	missed, extra := Compare(parsed, heuristic)
	return &Finding{Grammar: grammar, Missed: missed, Extra: extra}, nil
}

// Definitions parses src with the named grammar and returns the names of
// function declarations and const declarators bound to arrow functions.
func Definitions(ctx context.Context, src []byte, grammar string) (extract.Set, error) {
	lang, ok := Language(grammar)
	if !ok {
		return nil, fmt.Errorf("unsupported grammar %q", grammar)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	q, err := sitter.NewQuery([]byte(definitionQuery), lang)
	if err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	defer q.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q, tree.RootNode())

	names := extract.NewSet()
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		var name string
		isConst := true
		for _, capture := range match.Captures {
			switch q.CaptureNameForId(capture.Index) {
			case "name":
				name = capture.Node.Content(src)
			case "decl":
				isConst = declarationKeyword(capture.Node, src) == "const"
			}
		}
		if name != "" && isConst {
			names.Add(name)
		}
	}
	return names, nil
}

func declarationKeyword(decl *sitter.Node, src []byte) string {
	if kind := decl.ChildByFieldName("kind"); kind != nil {
		return kind.Content(src)
	}
	if decl.ChildCount() > 0 {
		return decl.Child(0).Content(src)
	}
	return ""
}

// Compare returns the names only in parsed (missed) and only in heuristic
// (extra).
func Compare(parsed, heuristic extract.Set) (missed, extra []string) {
	missed = []string{}
	extra = []string{}
	for _, name := range parsed.Sorted() {
		if !heuristic.Has(name) {
			missed = append(missed, name)
		}
	}
	for _, name := range heuristic.Sorted() {
		if !parsed.Has(name) {
			extra = append(extra, name)
		}
	}
	return missed, extra
}
