package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/agentic-research/treegen/internal/tree"
)

func defaults() Options {
	return Options{IgnoreBlankLines: true, ParseComments: true}
}

func TestParse_Example(t *testing.T) {
	input := "app/\n" +
		"├── page.tsx\n" +
		"├── components/\n" +
		"│   └── button.tsx\n"

	res := Parse(input, defaults())

	assert.Equal(t, []string{
		"app/",
		"app/page.tsx",
		"app/components/",
		"app/components/button.tsx",
	}, tree.Paths(res.Root))
	assert.Equal(t, 2, tree.CountFiles(res.Root))
	assert.Equal(t, 2, tree.CountDirs(res.Root), "directory count includes the root line")
	assert.Empty(t, res.Inline)
}

func TestParse_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \n\t\n"} {
		res := Parse(input, defaults())
		assert.True(t, res.Empty(), "%q", input)
		assert.Empty(t, res.Inline)
	}

	res := Parse("\n  \n", Options{})
	assert.True(t, res.Empty(), "blank input stays empty without ignoreBlankLines")
}

func TestParse_NoRootLine(t *testing.T) {
	input := "├── README.md\n" +
		"└── src/\n" +
		"    └── main.go\n"

	res := Parse(input, defaults())
	assert.Equal(t, []string{"README.md", "src/", "src/main.go"}, tree.Paths(res.Root))
}

func TestParse_CountsMatchLines(t *testing.T) {
	input := `project/
├── cmd/
│   └── main.go
├── internal/
│   ├── api/
│   │   ├── handler.go
│   │   └── routes.go
│   └── store/
│       ├── db.go
│       └── migrations/
│           └── 0001_init.sql
├── go.mod
└── README.md`

	res := Parse(input, defaults())
	assert.Equal(t, 7, tree.CountFiles(res.Root))
	assert.Equal(t, 6, tree.CountDirs(res.Root))

	n, ok := res.Root.Lookup([]string{"project", "internal", "store", "migrations", "0001_init.sql"})
	require.True(t, ok)
	assert.False(t, n.IsDir())
	_, ok = res.Root.Lookup([]string{"project", "README.md"})
	assert.True(t, ok)
}

func TestParse_DeepFourColumnNesting(t *testing.T) {
	input := `root/
├── a/
│   └── b/
│       └── c/
│           └── d/
│               └── leaf.txt
└── top.txt`

	res := Parse(input, defaults())
	_, ok := res.Root.Lookup([]string{"root", "a", "b", "c", "d", "leaf.txt"})
	assert.True(t, ok)
	_, ok = res.Root.Lookup([]string{"root", "top.txt"})
	assert.True(t, ok)
}

func TestParse_CompactThreeColumnNesting(t *testing.T) {
	input := "root/\n" +
		"├─ a/\n" +
		"│  ├─ b/\n" +
		"│  │  └─ deep.txt\n" +
		"│  └─ shallow.txt\n" +
		"└─ top.txt\n"

	res := Parse(input, defaults())
	assert.Equal(t, []string{
		"root/",
		"root/a/",
		"root/a/b/",
		"root/a/b/deep.txt",
		"root/a/shallow.txt",
		"root/top.txt",
	}, tree.Paths(res.Root))
}

func TestParse_StaleLevelsInvalidated(t *testing.T) {
	// x.ts sits at level 3 but its level 2 parent ("deep/") belongs to a
	// branch that "other/" closed; it must attach to other/, not deep/.
	input := "app/\n" +
		"├── first/\n" +
		"│   └── deep/\n" +
		"├── other/\n" +
		"│   │   └── x.ts\n"

	res := Parse(input, defaults())
	_, ok := res.Root.Lookup([]string{"app", "other", "x.ts"})
	assert.True(t, ok, "got %v", tree.Paths(res.Root))
	deep, ok := res.Root.Lookup([]string{"app", "first", "deep"})
	require.True(t, ok)
	assert.True(t, deep.IsEmpty())
}

func TestParse_SecondRootLineResetsLevels(t *testing.T) {
	input := "frontend/\n" +
		"└── src/\n" +
		"backend/\n" +
		"│   └── main.go\n"

	res := Parse(input, defaults())
	_, ok := res.Root.Lookup([]string{"backend", "main.go"})
	assert.True(t, ok, "got %v", tree.Paths(res.Root))
}

func TestParse_NestedRootLine(t *testing.T) {
	res := Parse("src/app/\n└── page.tsx\n", defaults())
	assert.Equal(t, []string{"src/", "src/app/", "src/app/page.tsx"}, tree.Paths(res.Root))
}

func TestParse_NameExtraction(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		want  string
		isDir bool
	}{
		{"plain file", "├── page.tsx", "page.tsx", false},
		{"directory", "├── components/", "components", true},
		{"trailing comment", "├── page.tsx // home page", "page.tsx", false},
		{"dir with comment", "└── lib/   // helpers", "lib", true},
		{"extra spaces", "├──    spaced.go   ", "spaced.go", false},
		{"short dash", "└─ short.go", "short.go", false},
		{"nbsp indentation", "│\u00a0\u00a0 └── nbsp.txt", "nbsp.txt", false},
		{"dotfile", "├── .env.local", ".env.local", false},
		{"brackets", "│   └── [id]/", "[id]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := decodeEntry(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.want, e.name())
			assert.Equal(t, tt.isDir, e.isDir)
		})
	}
}

func TestParse_Levels(t *testing.T) {
	tests := []struct {
		line  string
		level int
	}{
		{"├── a", 1},
		{"└── a", 1},
		{"│   ├── a", 2},
		{"    └── a", 2},
		{"│   │   └── a", 3},
		{"│       └── a", 3},
		{"│  └─ a", 2},
		{"\t└── a", 2},
		// Two-column renderings do not nest: the child lands on its
		// parent's level.
		{"└─ a", 1},
		{"│ └─ a", 1},
	}
	for _, tt := range tests {
		e, ok := decodeEntry(tt.line)
		require.True(t, ok, tt.line)
		assert.Equal(t, tt.level, e.level, tt.line)
	}
}

func TestParse_MalformedLinesSkipped(t *testing.T) {
	input := "app/\n" +
		"│\n" +
		"├── \n" +
		"├── ../escape.txt\n" +
		"│   just text\n" +
		"├── ok.txt\n"

	res := Parse(input, defaults())
	assert.Equal(t, []string{"app/", "app/ok.txt"}, tree.Paths(res.Root))
}

func TestParse_NonStructuralLinesIgnored(t *testing.T) {
	input := "Here is the layout:\n" +
		"app/\n" +
		"├── page.tsx\n" +
		"That's it.\n"

	res := Parse(input, defaults())
	assert.Equal(t, []string{"app/", "app/page.tsx"}, tree.Paths(res.Root))
}

func TestParse_Comments(t *testing.T) {
	input := "app/\n" +
		"# generated layout\n" +
		"// another comment\n" +
		"├── page.tsx\n"

	res := Parse(input, defaults())
	assert.Equal(t, []string{"app/", "app/page.tsx"}, tree.Paths(res.Root))

	// With comment parsing off the comment lines fall through as plain
	// text and are ignored anyway.
	res = Parse(input, Options{IgnoreBlankLines: true})
	assert.Equal(t, []string{"app/", "app/page.tsx"}, tree.Paths(res.Root))
}

func TestParse_InlineContent(t *testing.T) {
	input := "app/\n" +
		"├── page.tsx\n" +
		"```tsx\n" +
		"export default function Page() {\n" +
		"  return null;\n" +
		"}\n" +
		"```\n" +
		"├── components/\n" +
		"│   └── button.tsx\n" +
		"```\n" +
		"// ├── not/a/tree/line\n" +
		"\n" +
		"# not a comment here\n" +
		"```\n" +
		"└── layout.tsx\n"

	res := Parse(input, defaults())

	assert.Equal(t, "export default function Page() {\n  return null;\n}", res.Inline["app/page.tsx"])
	assert.Equal(t, "// ├── not/a/tree/line\n\n# not a comment here", res.Inline["app/components/button.tsx"])
	_, hasLayout := res.Inline["app/layout.tsx"]
	assert.False(t, hasLayout)

	assert.Equal(t, []string{
		"app/",
		"app/page.tsx",
		"app/components/",
		"app/components/button.tsx",
		"app/layout.tsx",
	}, tree.Paths(res.Root), "lines inside blocks must not become entries")
}

func TestParse_InlineEOFMarker(t *testing.T) {
	input := "├── notes.txt\n" +
		"```\n" +
		"hello\n" +
		"---EOF---\n" +
		"└── after.txt\n"

	res := Parse(input, defaults())
	assert.Equal(t, "hello", res.Inline["notes.txt"])
	_, ok := res.Root.Child("after.txt")
	assert.True(t, ok)
}

func TestParse_UnclosedFenceRunsToEnd(t *testing.T) {
	input := "├── a.txt\n" +
		"```\n" +
		"line one\n" +
		"├── looks/like/an/entry.txt"

	res := Parse(input, defaults())
	assert.Equal(t, "line one\n├── looks/like/an/entry.txt", res.Inline["a.txt"])
	assert.Equal(t, 1, res.Root.Len())
}

func TestParse_FenceOnlyAfterFiles(t *testing.T) {
	input := "├── dir/\n" +
		"```\n" +
		"│   └── inside.txt\n" +
		"```\n"

	res := Parse(input, defaults())
	assert.Empty(t, res.Inline)
	_, ok := res.Root.Lookup([]string{"dir", "inside.txt"})
	assert.True(t, ok)
}

func TestParse_FenceMustBeNextLine(t *testing.T) {
	input := "├── a.txt\n" +
		"\n" +
		"```\n" +
		"text\n" +
		"```\n"

	res := Parse(input, defaults())
	assert.Empty(t, res.Inline)
}

func TestParse_CRLF(t *testing.T) {
	input := "app/\r\n├── a.txt\r\n```\r\nx\r\ny\r\n```\r\n"
	res := Parse(input, defaults())
	assert.Equal(t, "x\ny", res.Inline["app/a.txt"])
}

func TestParse_InlineNameWithSlashes(t *testing.T) {
	input := "├── src/utils/strings.go\n" +
		"```\n" +
		"package utils\n" +
		"```\n"

	res := Parse(input, defaults())
	assert.Equal(t, "package utils", res.Inline["src/utils/strings.go"])
	assert.Equal(t, []string{"src/", "src/utils/", "src/utils/strings.go"}, tree.Paths(res.Root))
}

func TestParse_NFCNormalization(t *testing.T) {
	decomposed := "cafe\u0301.txt"
	composed := "caf\u00e9.txt"
	res := Parse("├── "+decomposed+"\n├── "+composed+"\n", defaults())
	assert.Equal(t, 1, res.Root.Len())
	_, ok := res.Root.Child(composed)
	assert.True(t, ok)
}

func TestParse_RenderRoundTrip(t *testing.T) {
	input := `app/
├── page.tsx
├── components/
│   ├── ui/
│   │   └── button.tsx
│   └── hero.tsx
└── lib/
    └── utils.ts`

	first := Parse(input, defaults())
	second := Parse(tree.Render(first.Root, ""), defaults())
	assert.Equal(t, tree.Paths(first.Root), tree.Paths(second.Root))
}

func TestParse_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts := defaults()
	opts.Logger = zap.New(core)

	Parse("app/\n├── a.txt\n│\n", opts)

	assert.Equal(t, 1, logs.FilterMessage("root directory").Len())
	entries := logs.FilterMessage("entry").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "app/a.txt", entries[0].ContextMap()["path"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["level"])
	assert.Equal(t, 1, logs.FilterMessage("skip malformed line").Len())
}

func FuzzParse(f *testing.F) {
	f.Add("app/\n├── a\n│   └── b/\n```\nx\n")
	f.Add("├── x\n```\n")
	f.Add("│   └── y /\n└──\n")
	f.Fuzz(func(t *testing.T, input string) {
		res := Parse(input, defaults())
		for key := range res.Inline {
			if key == "" {
				t.Fatal("empty inline key")
			}
		}
		for _, p := range tree.Paths(res.Root) {
			for _, seg := range strings.Split(strings.TrimSuffix(p, "/"), "/") {
				if seg == "" || seg == "." || seg == ".." {
					t.Fatalf("bad segment in %q", p)
				}
			}
		}
	})
}
