package content

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/hcl"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

// Language returns the language name and tree-sitter grammar for a file
// path. ok is false for files without a known grammar.
func Language(path string) (name string, lang *sitter.Language, ok bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go", golang.GetLanguage(), true
	case ".py":
		return "python", python.GetLanguage(), true
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript", javascript.GetLanguage(), true
	case ".ts":
		return "typescript", typescript.GetLanguage(), true
	case ".tsx":
		return "tsx", tsx.GetLanguage(), true
	case ".css":
		return "css", css.GetLanguage(), true
	case ".html", ".htm":
		return "html", html.GetLanguage(), true
	case ".tf", ".hcl":
		return "hcl", hcl.GetLanguage(), true
	case ".rs":
		return "rust", rust.GetLanguage(), true
	case ".yaml", ".yml":
		return "yaml", yaml.GetLanguage(), true
	default:
		return "", nil, false
	}
}
