package tree

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds:
//
//	app/
//	  page.tsx
//	  components/
//	    button.tsx
func sample() *Node {
	root := NewRoot()
	app := root.Add(NewDir("app"))
	app.Add(NewFile("page.tsx"))
	components := app.Add(NewDir("components"))
	components.Add(NewFile("button.tsx"))
	return root
}

func TestNode_AddKeepsInsertionOrder(t *testing.T) {
	root := NewRoot()
	root.Add(NewFile("b"))
	root.Add(NewFile("a"))
	root.Add(NewDir("c"))

	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestNode_AddMergesDirectories(t *testing.T) {
	root := NewRoot()
	first := root.Add(NewDir("src"))
	first.Add(NewFile("main.go"))

	second := root.Add(NewDir("src"))
	assert.Same(t, first, second)
	assert.Equal(t, 1, root.Len())
	_, ok := second.Child("main.go")
	assert.True(t, ok)
}

func TestNode_AddReplacesFileCollision(t *testing.T) {
	root := NewRoot()
	root.Add(NewFile("x"))
	root.Add(NewFile("y"))
	replaced := root.Add(NewDir("x"))

	assert.True(t, replaced.IsDir())
	assert.Equal(t, 2, root.Len())
	assert.Equal(t, "x", root.Children()[0].Name, "replacement keeps position")
	assert.True(t, root.Children()[0].IsDir())
}

func TestNode_AddOnFilePanics(t *testing.T) {
	f := NewFile("x")
	assert.Panics(t, func() { f.Add(NewFile("y")) })
}

func TestNode_Lookup(t *testing.T) {
	root := sample()

	n, ok := root.Lookup([]string{"app", "components", "button.tsx"})
	require.True(t, ok)
	assert.Equal(t, File, n.Kind)

	_, ok = root.Lookup([]string{"app", "missing"})
	assert.False(t, ok)

	self, ok := root.Lookup(nil)
	require.True(t, ok)
	assert.Same(t, root, self)
}

func TestCounts(t *testing.T) {
	root := sample()
	assert.Equal(t, 2, CountFiles(root))
	assert.Equal(t, 2, CountDirs(root), "app and components")

	empty := NewRoot()
	assert.Equal(t, 0, CountFiles(empty))
	assert.Equal(t, 0, CountDirs(empty))
}

func TestWalk_DepthFirstOrder(t *testing.T) {
	root := sample()
	assert.Equal(t, []string{
		"app/",
		"app/page.tsx",
		"app/components/",
		"app/components/button.tsx",
	}, Paths(root))
}

func TestWalk_PathsAreNotAliased(t *testing.T) {
	root := NewRoot()
	a := root.Add(NewDir("a"))
	a.Add(NewFile("x"))
	a.Add(NewFile("y"))

	var seen [][]string
	require.NoError(t, Walk(root, func(path []string, n *Node) error {
		seen = append(seen, path)
		return nil
	}))
	assert.Equal(t, [][]string{{"a"}, {"a", "x"}, {"a", "y"}}, seen)
}

func TestWalk_Stop(t *testing.T) {
	root := sample()
	visits := 0
	err := Walk(root, func(path []string, n *Node) error {
		visits++
		if visits == 2 {
			return ErrStop
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, visits)
}

func TestWalk_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := Walk(sample(), func(path []string, n *Node) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestRender(t *testing.T) {
	out := Render(sample(), "")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, ".", lines[0])
	assert.Contains(t, lines[1], "app/")
	assert.Contains(t, lines[4], "button.tsx")
}
