package tree

import (
	"github.com/disiqueira/gotree/v3"
)

// Render draws the structure below root as a box-drawing tree. Directories
// are suffixed with "/" so the output can be fed back into the parser.
func Render(root *Node, label string) string {
	if label == "" {
		label = "."
	}
	t := gotree.New(label)
	addChildren(t, root)
	return t.Print()
}

func addChildren(t gotree.Tree, n *Node) {
	for _, c := range n.children {
		if c.IsDir() {
			addChildren(t.Add(c.Name+"/"), c)
			continue
		}
		t.Add(c.Name)
	}
}
