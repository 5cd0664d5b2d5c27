package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treegen/internal/generator"
	"github.com/agentic-research/treegen/internal/progress"
)

type generateFlags struct {
	base      string
	yes       bool
	overwrite bool
	dryRun    bool
	pace      time.Duration
}

var genOpts = generateFlags{base: "."}

func addGenerateFlags(c *cobra.Command) {
	c.Flags().StringVarP(&genOpts.base, "base", "b", ".", "Directory to create the structure in")
	c.Flags().BoolVarP(&genOpts.yes, "yes", "y", false, "Do not ask for confirmation")
	c.Flags().BoolVar(&genOpts.overwrite, "overwrite", false, "Replace existing files (overrides the overwrite_existing setting)")
	c.Flags().BoolVar(&genOpts.dryRun, "dry-run", false, "Print the planned structure and exit")
	c.Flags().DurationVar(&genOpts.pace, "pace", 0, "Pause between entries, e.g. 50ms")
}

var generateCmd = &cobra.Command{
	Use:   "generate [diagram|-]",
	Short: "Create the files and directories described by a tree diagram",
	Long: `Create the files and directories described by a tree diagram.

The diagram is read from the given file, or from stdin when the argument is
"-" or omitted. Reading from stdin requires --yes because the prompt cannot
share it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	text, source, err := readDiagram(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	return runDiagram(cmd, text, source)
}

// runDiagram parses text, confirms and materializes it. source names the
// input in run history.
func runDiagram(cmd *cobra.Command, text, source string) error {
	out := cmd.OutOrStdout()

	paths, settings, err := loadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("overwrite") {
		settings.OverwriteExisting = genOpts.overwrite
	}

	base, err := filepath.Abs(genOpts.base)
	if err != nil {
		return fmt.Errorf("resolve base: %w", err)
	}

	st, err := openStore(paths)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	gen := newGenerator(settings, st)

	plan := gen.Parse(text)
	if plan.Empty() {
		_, _ = fmt.Fprintln(out, generator.EmptyMessage)
		return nil
	}

	if genOpts.dryRun {
		printPlan(out, plan, base)
		return nil
	}

	if source == stdinSource && !genOpts.yes {
		return errStdinNeedsYes
	}
	ok, err := confirm(cmd.InOrStdin(), out, plan.Prompt(base), genOpts.yes)
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(out, "Aborted.")
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	printer := progress.New(out)
	rep, err := gen.Generate(ctx, plan, generator.Job{
		Source:   source,
		Base:     base,
		Progress: printer.Event,
		Pace:     genOpts.pace,
	})
	printer.Done()
	if err != nil {
		return err
	}

	for _, w := range rep.Warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", w)
	}
	_, _ = fmt.Fprintln(out, generator.Summary(rep, base))
	return nil
}

func printPlan(out io.Writer, plan *generator.Plan, base string) {
	_, _ = fmt.Fprint(out, plan.Preview(base))
	_, _ = fmt.Fprintf(out, "%d files, %d directories\n", plan.Totals.Files, plan.Totals.Dirs)
}
