// Package materialize writes a parsed structure to a filesystem.
//
// The walk is depth-first in diagram order, single-threaded, and checks for
// cancellation before every entry. Existing files are left alone unless the
// settings allow overwriting; nothing is ever deleted.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/agentic-research/treegen/api"
	"github.com/agentic-research/treegen/internal/content"
	"github.com/agentic-research/treegen/internal/templates"
	"github.com/agentic-research/treegen/internal/tree"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Options configure a Materializer.
type Options struct {
	Settings api.Settings

	// Inline maps base-relative paths to fenced block content from the
	// diagram. It takes precedence over Templates.
	Inline map[string]string

	// Templates supplies content for files without an inline block.
	// Nil means no templates.
	Templates templates.Resolver

	// Progress receives one event per created or skipped entry.
	Progress func(Event)

	// Cancelled is polled before every entry; returning true stops the walk.
	Cancelled func() bool

	// Pace is an optional pause after each entry so an interactive host can
	// repaint and react to cancellation between writes.
	Pace time.Duration

	Logger *zap.Logger
}

// Materializer writes structures into a billy.Filesystem rooted at the
// target base directory.
type Materializer struct {
	fs   billy.Filesystem
	opts Options
	log  *zap.Logger
}

// New returns a Materializer writing into fsys.
func New(fsys billy.Filesystem, opts Options) *Materializer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Materializer{fs: fsys, opts: opts, log: log}
}

// Run walks root and creates its entries. Cancellation through ctx or
// Options.Cancelled ends the walk early with a nil error and
// Report.Cancelled set. The first filesystem error aborts the walk; entries
// written before it stay on disk.
func (m *Materializer) Run(ctx context.Context, root *tree.Node) (*Report, error) {
	rep := newReport()
	total := Plan(root).Entries()

	err := tree.Walk(root, func(names []string, n *tree.Node) error {
		if m.cancelled(ctx) {
			rep.Cancelled = true
			return tree.ErrStop
		}

		rel := tree.Join(names)
		ord := rep.visit(rel)

		var kind EventKind
		var emit bool
		var err error
		if n.IsDir() {
			emit, err = m.dir(rel)
			kind = DirCreated
			if emit {
				rep.Dirs.Add(ord)
			}
		} else {
			kind, err = m.file(ctx, rel, rep)
			emit = err == nil
			if emit && kind == FileCreated {
				rep.Files.Add(ord)
			} else if emit {
				rep.Skipped.Add(ord)
			}
		}
		if err != nil {
			return err
		}

		if emit {
			m.log.Debug(kind.String(), zap.String("path", rel))
			if m.opts.Progress != nil {
				m.opts.Progress(Event{Kind: kind, Path: rel, Done: len(rep.Paths), Total: total})
			}
		}
		m.pace(ctx)
		return nil
	})
	return rep, err
}

func (m *Materializer) cancelled(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}
	return m.opts.Cancelled != nil && m.opts.Cancelled()
}

func (m *Materializer) pace(ctx context.Context) {
	if m.opts.Pace <= 0 {
		return
	}
	t := time.NewTimer(m.opts.Pace)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// dir creates rel when missing. created reports whether it did.
func (m *Materializer) dir(rel string) (created bool, err error) {
	info, err := m.fs.Stat(rel)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("create directory %s: a file with that name exists", rel)
	case !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("stat %s: %w", rel, err)
	}
	if err := m.fs.MkdirAll(rel, dirPerm); err != nil {
		return false, fmt.Errorf("create directory %s: %w", rel, err)
	}
	return true, nil
}

// file writes rel unless it exists and overwriting is disabled.
func (m *Materializer) file(ctx context.Context, rel string, rep *Report) (EventKind, error) {
	info, err := m.fs.Stat(rel)
	switch {
	case err == nil && info.IsDir():
		return 0, fmt.Errorf("write file %s: a directory with that name exists", rel)
	case err == nil && !m.opts.Settings.OverwriteExisting:
		return FileSkipped, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return 0, fmt.Errorf("stat %s: %w", rel, err)
	}

	body := []byte(m.resolve(rel))
	if m.opts.Settings.FormatContent {
		body = content.Format(body, rel)
	}
	if m.opts.Settings.ValidateContent {
		if verr := content.Validate(ctx, body, rel); verr != nil {
			m.log.Warn("content validation", zap.String("path", rel), zap.Error(verr))
			rep.Warnings = append(rep.Warnings, verr)
		}
	}

	if dir := path.Dir(rel); dir != "." {
		if err := m.fs.MkdirAll(dir, dirPerm); err != nil {
			return 0, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	if err := util.WriteFile(m.fs, rel, body, filePerm); err != nil {
		return 0, fmt.Errorf("write file %s: %w", rel, err)
	}
	return FileCreated, nil
}

// resolve picks the content for rel: inline block, then template, then
// empty.
func (m *Materializer) resolve(rel string) string {
	if body, ok := m.opts.Inline[rel]; ok {
		return body
	}
	if m.opts.Templates != nil {
		if body, ok := m.opts.Templates.Resolve(rel); ok {
			return body
		}
	}
	// Nothing resolved: the file is written empty whether or not
	// CreateEmptyFiles is set.
	return ""
}
