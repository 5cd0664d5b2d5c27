// Package parser turns an ASCII tree diagram into a tree.Node structure.
//
// The accepted notation is the one `tree` and most documentation use:
//
//	app/
//	├── page.tsx
//	├── components/
//	│   └── button.tsx
//	└── lib/
//	    └── utils.ts
//
// A file entry may be followed directly by a fenced block whose lines become
// that file's content. Parsing is best effort: lines that cannot be decoded
// are skipped and never reported as errors.
package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/agentic-research/treegen/internal/tree"
)

// Options controls line filtering and tracing.
type Options struct {
	// IgnoreBlankLines skips empty lines outside inline blocks.
	IgnoreBlankLines bool
	// ParseComments skips lines whose trimmed text starts with // or #.
	ParseComments bool
	// Logger receives a per-line debug trace. Nil disables tracing.
	Logger *zap.Logger
}

// Result is the outcome of a parse.
type Result struct {
	// Root is the unnamed directory holding every top-level entry.
	Root *tree.Node
	// Inline maps a root-relative slash path ("app/page.tsx") to the text
	// of the fenced block that followed the file entry.
	Inline map[string]string
}

// Empty reports whether nothing was parsed.
func (r *Result) Empty() bool {
	return r.Root.IsEmpty()
}

// Parse decodes text into a structure. It never fails: empty or
// unrecognizable input yields an empty root.
func Parse(text string, opts Options) *Result {
	p := &parseState{
		opts:   opts,
		log:    opts.Logger,
		root:   tree.NewRoot(),
		inline: make(map[string]string),
		levels: make(map[int][]string),
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return p.result()
	}
	p.run(strings.Split(text, "\n"))
	return p.result()
}

type parseState struct {
	opts   Options
	log    *zap.Logger
	root   *tree.Node
	inline map[string]string

	// levels maps an indentation level to the path of the directory last
	// registered there. Entries deeper than the most recent insertion are
	// removed so later lines cannot attach to a closed branch.
	levels map[int][]string
}

func (p *parseState) result() *Result {
	return &Result{Root: p.root, Inline: p.inline}
}

func (p *parseState) run(lines []string) {
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		if p.opts.IgnoreBlankLines && trimmed == "" {
			continue
		}
		if p.opts.ParseComments && isComment(trimmed) {
			p.log.Debug("skip comment", zap.Int("line", i+1))
			continue
		}

		if !isStructural(line) {
			if segments, ok := rootSegments(trimmed); ok {
				p.addRoot(segments, i)
			}
			continue
		}

		e, ok := decodeEntry(line)
		if !ok {
			p.log.Debug("skip malformed line", zap.Int("line", i+1), zap.String("text", line))
			continue
		}

		path := p.insert(e, i)
		if e.isDir {
			continue
		}
		if i+1 < len(lines) && isFenceOpen(lines[i+1]) {
			content, last := captureBlock(lines, i+1)
			key := tree.Join(path)
			p.inline[key] = content
			p.log.Debug("inline content",
				zap.String("path", key),
				zap.Int("from", i+2),
				zap.Int("to", last+1),
			)
			i = last
		}
	}
}

// addRoot handles a bare "app/" line: the directories hang off the
// structure root and become the level 0 parent.
func (p *parseState) addRoot(segments []string, lineNo int) {
	dir := p.root
	for _, s := range segments {
		dir = dir.Add(tree.NewDir(s))
	}
	p.levels = map[int][]string{0: segments}
	p.log.Debug("root directory",
		zap.Int("line", lineNo+1),
		zap.String("path", tree.Join(segments)),
	)
}

// insert attaches e under its resolved parent and returns the full path of
// the inserted node.
func (p *parseState) insert(e entry, lineNo int) []string {
	parentPath := p.parentFor(e.level)
	parent, ok := p.root.Lookup(parentPath)
	if !ok || !parent.IsDir() {
		// The recorded path was replaced by a file further down the input.
		parentPath = nil
		parent = p.root
	}

	path := append([]string(nil), parentPath...)
	dir := parent
	for _, s := range e.segments[:len(e.segments)-1] {
		dir = dir.Add(tree.NewDir(s))
		path = append(path, s)
	}
	path = append(path, e.name())

	if e.isDir {
		dir.Add(tree.NewDir(e.name()))
	} else {
		dir.Add(tree.NewFile(e.name()))
	}

	for level := range p.levels {
		if level > e.level {
			delete(p.levels, level)
		}
	}
	if e.isDir {
		p.levels[e.level] = path
	}

	p.log.Debug("entry",
		zap.Int("line", lineNo+1),
		zap.Int("level", e.level),
		zap.String("kind", kindOf(e)),
		zap.String("path", tree.Join(path)),
		zap.String("parent", tree.Join(parentPath)),
	)
	return path
}

// parentFor finds the nearest registered level below level. Nil means the
// structure root.
func (p *parseState) parentFor(level int) []string {
	for l := level - 1; l >= 0; l-- {
		if path, ok := p.levels[l]; ok {
			return path
		}
	}
	return nil
}

func kindOf(e entry) string {
	if e.isDir {
		return tree.Dir.String()
	}
	return tree.File.String()
}
