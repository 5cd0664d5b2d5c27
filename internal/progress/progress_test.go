package progress

import (
	"bytes"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/agentic-research/treegen/internal/materialize"
)

func TestLine(t *testing.T) {
	e := materialize.Event{Kind: materialize.FileCreated, Path: "app/page.tsx", Done: 1, Total: 4}
	assert.Equal(t, "[ 25%] created file: app/page.tsx", Line(e, 0))

	padded := Line(e, 40)
	assert.Equal(t, 40, runewidth.StringWidth(padded))
	assert.Contains(t, padded, "app/page.tsx")

	short := Line(e, 16)
	assert.Equal(t, 16, runewidth.StringWidth(short))
	assert.Contains(t, short, "…")
}

func TestLine_WideRunes(t *testing.T) {
	e := materialize.Event{Kind: materialize.DirCreated, Path: "文档/资料", Done: 2, Total: 2}
	l := Line(e, 30)
	assert.Equal(t, 30, runewidth.StringWidth(l))
	assert.Contains(t, l, "[100%]")
}

func TestPrinter_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Event(materialize.Event{Kind: materialize.DirCreated, Path: "app", Done: 1, Total: 2})
	p.Event(materialize.Event{Kind: materialize.FileSkipped, Path: "app/x", Done: 2, Total: 2})
	p.Done()

	assert.Equal(t, "created directory: app\nskipped existing file: app/x\n", buf.String())
}
