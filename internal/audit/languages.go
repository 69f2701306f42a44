package audit

import (
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// extToGrammar maps the discoverable file extensions to grammar names.
var extToGrammar = map[string]string{
	".js":  "javascript",
	".jsx": "javascript",
	".ts":  "typescript",
	".tsx": "tsx",
}

// Lazily initialized on first call via sync.Once.
var (
	grammars     map[string]*sitter.Language
	grammarsOnce sync.Once
)

func initGrammars() {
	grammarsOnce.Do(func() {
		grammars = map[string]*sitter.Language{
			"javascript": javascript.GetLanguage(),
			"typescript": typescript.GetLanguage(),
			"tsx":        tsx.GetLanguage(),
		}
	})
}

// GrammarForFile returns the grammar name for a file path based on its
// extension. Returns ("", false) if the extension is not recognized.
func GrammarForFile(path string) (string, bool) {
	name, ok := extToGrammar[strings.ToLower(filepath.Ext(path))]
	return name, ok
}

// Language returns the tree-sitter Language for a grammar name.
func Language(name string) (*sitter.Language, bool) {
	initGrammars()
	l, ok := grammars[name]
	return l, ok
}
