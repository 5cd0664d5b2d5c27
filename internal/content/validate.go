package content

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ValidationError locates a syntax error in a file body.
type ValidationError struct {
	Path     string
	Language string
	Line     uint32 // 0-indexed
	Column   uint32 // 0-indexed
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line+1, e.Column+1, e.Message)
}

// Validate parses body with the grammar for path and returns a
// *ValidationError at the first ERROR or MISSING node. Empty bodies and
// files without a grammar pass.
func Validate(ctx context.Context, body []byte, path string) error {
	name, lang, ok := Language(path)
	if !ok || len(body) == 0 {
		return nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, body)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || !root.HasError() {
		return nil
	}

	verr := &ValidationError{Path: path, Language: name, Message: "syntax error"}
	if n := firstError(root); n != nil {
		verr.Line = n.StartPoint().Row
		verr.Column = n.StartPoint().Column
		if n.IsMissing() {
			verr.Message = fmt.Sprintf("missing %s", n.Type())
		}
	}
	return verr
}

// firstError does a depth-first search for the first ERROR or MISSING node.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if child.HasError() || child.IsError() || child.IsMissing() {
			if found := firstError(child); found != nil {
				return found
			}
		}
	}
	return nil
}
