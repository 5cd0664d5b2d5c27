// Package progress prints materialization events to a terminal or a log
// stream.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/agentic-research/treegen/internal/materialize"
)

const defaultWidth = 80

// Printer renders events. On a terminal it redraws a single status line;
// elsewhere it prints one line per event.
type Printer struct {
	mu    sync.Mutex
	w     io.Writer
	tty   bool
	width int
	dirty bool
}

// New returns a Printer for w. Terminal detection only applies when w is an
// *os.File.
func New(w io.Writer) *Printer {
	p := &Printer{w: w, width: defaultWidth}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.tty = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			p.width = cols
		}
	}
	return p
}

// Event prints e. It matches materialize.Options.Progress.
func (p *Printer) Event(e materialize.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.tty {
		_, _ = fmt.Fprintln(p.w, e.String())
		return
	}
	_, _ = fmt.Fprint(p.w, "\r"+Line(e, p.width-1))
	p.dirty = true
}

// Done ends an in-place status line.
func (p *Printer) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dirty {
		_, _ = fmt.Fprintln(p.w)
		p.dirty = false
	}
}

// Line formats e as "[ 42%] created file: app/page.tsx", truncated or
// padded to exactly width display columns.
func Line(e materialize.Event, width int) string {
	s := fmt.Sprintf("[%3.0f%%] %s", e.Fraction()*100, e.String())
	if width <= 0 {
		return s
	}
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}
