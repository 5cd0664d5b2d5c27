package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/treegen/api"
	"github.com/agentic-research/treegen/internal/templates"
)

func TestStructure(t *testing.T) {
	g := &Generator{Settings: api.DefaultSettings(), Templates: templates.Default(nil)}
	plan := g.Parse("app/\n├── page.tsx\n├── notes.txt\n```\nhello\n```\n└── lib/\n    └── data.bin\n")

	s := g.Structure(plan)
	assert.Equal(t, api.SchemaVersion, s.Version)
	assert.Equal(t, 3, s.Files)
	assert.Equal(t, 2, s.Dirs)
	assert.Empty(t, s.Leaves)

	require.Len(t, s.Nodes, 1)
	app := s.Nodes[0]
	assert.Equal(t, "app", app.Name)
	require.Len(t, app.Files, 2)

	assert.Equal(t, "page.tsx", app.Files[0].Name)
	assert.Equal(t, "template", app.Files[0].Source)
	assert.Contains(t, app.Files[0].Content, "export default function Page()")

	assert.Equal(t, api.Leaf{Name: "notes.txt", Content: "hello", Source: "inline"}, app.Files[1])

	require.Len(t, app.Children, 1)
	assert.Equal(t, "lib", app.Children[0].Name)
	assert.Equal(t, []api.Leaf{{Name: "data.bin"}}, app.Children[0].Files)
}
