// Package content post-processes file bodies before they are written:
// formatting for languages with a canonical style and tree-sitter syntax
// checks that surface as warnings.
package content

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"mvdan.cc/gofumpt/format"
)

// Format returns body in canonical style for .go (gofumpt) and .hcl/.tf
// (hclwrite). Other files, and bodies that do not parse, are returned
// unchanged.
func Format(body []byte, path string) []byte {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		formatted, err := format.Source(body, format.Options{})
		if err != nil {
			return body
		}
		return formatted
	case ".hcl", ".tf":
		if _, diags := hclwrite.ParseConfig(body, path, hcl.InitialPos); diags.HasErrors() {
			return body
		}
		return hclwrite.Format(body)
	default:
		return body
	}
}
