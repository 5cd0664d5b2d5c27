package tree

import (
	"errors"
	"strings"
)

// ErrStop can be returned from a WalkFunc to end a walk early without error.
var ErrStop = errors.New("stop walk")

// Kind distinguishes directories from files.
type Kind uint8

const (
	File Kind = iota
	Dir
)

func (k Kind) String() string {
	if k == Dir {
		return "dir"
	}
	return "file"
}

// Node is one entry of a parsed structure.
// The Kind field explicitly declares whether this is a file or directory;
// only directories carry children.
type Node struct {
	Name string
	Kind Kind

	children []*Node
	index    map[string]int
}

// NewDir returns an empty directory node.
func NewDir(name string) *Node {
	return &Node{Name: name, Kind: Dir}
}

// NewFile returns a file node.
func NewFile(name string) *Node {
	return &Node{Name: name, Kind: File}
}

// NewRoot returns the unnamed directory that holds a parsed structure.
func NewRoot() *Node {
	return NewDir("")
}

func (n *Node) IsDir() bool { return n.Kind == Dir }

// Children returns the children in insertion order. The slice must not be
// modified by callers.
func (n *Node) Children() []*Node {
	return n.children
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// Child looks up a direct child by name.
func (n *Node) Child(name string) (*Node, bool) {
	if n.index == nil {
		return nil, false
	}
	i, ok := n.index[name]
	if !ok {
		return nil, false
	}
	return n.children[i], true
}

// Add inserts child under n and returns the node that now holds that name.
//
// Sibling names stay unique: adding a directory over an existing directory
// returns the existing one so later entries merge into it, any other
// collision replaces the previous entry in place (last write wins, original
// position kept). Add panics if n is a file.
func (n *Node) Add(child *Node) *Node {
	if !n.IsDir() {
		panic("tree: Add on file node " + n.Name)
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	if i, ok := n.index[child.Name]; ok {
		existing := n.children[i]
		if existing.IsDir() && child.IsDir() {
			return existing
		}
		n.children[i] = child
		return child
	}
	n.index[child.Name] = len(n.children)
	n.children = append(n.children, child)
	return child
}

// Lookup walks path (a sequence of names) from n.
func (n *Node) Lookup(path []string) (*Node, bool) {
	cur := n
	for _, name := range path {
		next, ok := cur.Child(name)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// IsEmpty reports whether a directory has no children.
func (n *Node) IsEmpty() bool {
	return len(n.children) == 0
}

// CountFiles returns the number of file nodes below n.
func CountFiles(n *Node) int {
	count := 0
	for _, c := range n.children {
		if c.IsDir() {
			count += CountFiles(c)
		} else {
			count++
		}
	}
	return count
}

// CountDirs returns the number of directory nodes below n, not counting n
// itself. For a parsed structure this includes top-level directories such
// as the "app" of an "app/" root line.
func CountDirs(n *Node) int {
	count := 0
	for _, c := range n.children {
		if c.IsDir() {
			count++
			count += CountDirs(c)
		}
	}
	return count
}

// WalkFunc is called for every node below the walk root, depth-first in
// insertion order. path holds the names from the walk root to node.
type WalkFunc func(path []string, node *Node) error

// Walk visits every node below root. Returning ErrStop ends the walk and
// Walk returns nil; any other error is returned as-is.
func Walk(root *Node, fn WalkFunc) error {
	err := walk(root, nil, fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func walk(n *Node, prefix []string, fn WalkFunc) error {
	for _, c := range n.children {
		path := append(prefix[:len(prefix):len(prefix)], c.Name)
		if err := fn(path, c); err != nil {
			return err
		}
		if c.IsDir() {
			if err := walk(c, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Join builds the forward-slash path used as an inline content key.
func Join(path []string) string {
	return strings.Join(path, "/")
}

// Paths lists every entry below root as a slash path, directories with a
// trailing slash, in walk order.
func Paths(root *Node) []string {
	var out []string
	_ = Walk(root, func(path []string, n *Node) error {
		p := Join(path)
		if n.IsDir() {
			p += "/"
		}
		out = append(out, p)
		return nil
	})
	return out
}
