package generator

import (
	"github.com/agentic-research/treegen/api"
	"github.com/agentic-research/treegen/internal/tree"
)

// Structure describes plan as a document, with every file's content
// resolved the way Generate would resolve it.
func (g *Generator) Structure(plan *Plan) api.Structure {
	s := api.Structure{
		Version: api.SchemaVersion,
		Files:   plan.Totals.Files,
		Dirs:    plan.Totals.Dirs,
	}
	top := g.node(plan, plan.Root, nil)
	s.Nodes, s.Leaves = top.Children, top.Files
	return s
}

func (g *Generator) node(plan *Plan, n *tree.Node, path []string) api.Node {
	out := api.Node{Name: n.Name}
	for _, c := range n.Children() {
		p := append(path[:len(path):len(path)], c.Name)
		if c.IsDir() {
			out.Children = append(out.Children, g.node(plan, c, p))
			continue
		}
		out.Files = append(out.Files, g.leaf(plan, c.Name, tree.Join(p)))
	}
	return out
}

func (g *Generator) leaf(plan *Plan, name, rel string) api.Leaf {
	if body, ok := plan.Inline[rel]; ok {
		return api.Leaf{Name: name, Content: body, Source: "inline"}
	}
	if g.Templates != nil {
		if body, ok := g.Templates.Resolve(rel); ok {
			return api.Leaf{Name: name, Content: body, Source: "template"}
		}
	}
	return api.Leaf{Name: name}
}
