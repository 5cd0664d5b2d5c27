// Package generator ties parsing, materialization and run history together
// for the CLI and the MCP server.
package generator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/agentic-research/treegen/api"
	"github.com/agentic-research/treegen/internal/materialize"
	"github.com/agentic-research/treegen/internal/parser"
	"github.com/agentic-research/treegen/internal/store"
	"github.com/agentic-research/treegen/internal/templates"
	"github.com/agentic-research/treegen/internal/tree"
)

// EmptyMessage is shown when a diagram yields no entries.
const EmptyMessage = "No valid file structure detected. Check your file format."

// Generator holds what every run shares.
type Generator struct {
	Settings  api.Settings
	Templates templates.Resolver
	// History records runs when set.
	History *store.Store
	Logger  *zap.Logger
}

// Job is one generation request.
type Job struct {
	// Source names the input for the run log: a file path, "stdin" or
	// "scaffold:<name>".
	Source string
	Base   string

	Progress  func(materialize.Event)
	Cancelled func() bool
	Pace      time.Duration
}

// Plan is a parsed diagram ready to materialize.
type Plan struct {
	*parser.Result
	Totals materialize.Totals
}

// Prompt is the confirmation question shown before writing.
func (p *Plan) Prompt(base string) string {
	return fmt.Sprintf("Ready to create %d files and %d directories in %q. Proceed?",
		p.Totals.Files, p.Totals.Dirs, base)
}

// Preview renders the planned structure as a tree.
func (p *Plan) Preview(label string) string {
	return tree.Render(p.Root, label)
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// Parse reads a diagram with the generator's settings. The parser trace is
// emitted at debug level.
func (g *Generator) Parse(text string) *Plan {
	res := parser.Parse(text, parser.Options{
		IgnoreBlankLines: g.Settings.IgnoreBlankLines,
		ParseComments:    g.Settings.ParseComments,
		Logger:           g.logger().Named("parser"),
	})
	return &Plan{Result: res, Totals: materialize.Plan(res.Root)}
}

// Generate materializes plan under job.Base and records the run. The report
// is returned even when the run failed part way.
func (g *Generator) Generate(ctx context.Context, plan *Plan, job Job) (*materialize.Report, error) {
	started := time.Now()
	rep, err := materialize.ToDir(ctx, plan.Root, job.Base, materialize.Options{
		Settings:  g.Settings,
		Inline:    plan.Inline,
		Templates: g.Templates,
		Progress:  job.Progress,
		Cancelled: job.Cancelled,
		Pace:      job.Pace,
		Logger:    g.logger().Named("materialize"),
	})
	g.record(ctx, job, started, rep, err)
	return rep, err
}

func (g *Generator) record(ctx context.Context, job Job, started time.Time, rep *materialize.Report, runErr error) {
	if g.History == nil {
		return
	}
	run := store.Run{Base: job.Base, Source: job.Source, StartedAt: started}
	if rep != nil {
		run.Files, run.Dirs, run.Skipped = rep.Counts()
		run.Cancelled = rep.Cancelled
	}
	if runErr != nil {
		run.Err = runErr.Error()
	}
	// The run context may already be cancelled; the record still belongs in
	// history.
	if _, err := g.History.RecordRun(context.WithoutCancel(ctx), run); err != nil {
		g.logger().Warn("record run", zap.Error(err))
	}
}

// Summary describes a finished run in one line.
func Summary(rep *materialize.Report, base string) string {
	files, dirs, skipped := rep.Counts()
	verb := "Created"
	if rep.Cancelled {
		verb = "Cancelled after creating"
	}
	s := fmt.Sprintf("%s %d files and %d directories in %q", verb, files, dirs, base)
	if skipped > 0 {
		s += fmt.Sprintf(" (%d existing files skipped)", skipped)
	}
	return s + "."
}
