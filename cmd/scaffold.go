package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treegen/internal/scaffold"
)

var scaffoldPrint bool

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold [name]",
	Short: "Generate one of the built-in Next.js project layouts",
	Long: `Generate one of the built-in Next.js project layouts.

Without a name the available scaffolds are listed. With --print the diagram
is written to stdout so it can be edited and passed to "treegen generate".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			var rows [][]string
			for _, sc := range scaffold.All() {
				rows = append(rows, []string{sc.Name, sc.Label, sc.Detail})
			}
			writeTable(out, []string{"NAME", "LABEL", "DESCRIPTION"}, rows)
			return nil
		}

		sc, err := scaffold.Lookup(args[0])
		if err != nil {
			return err
		}
		if scaffoldPrint {
			_, _ = fmt.Fprint(out, sc.Diagram)
			return nil
		}
		return runDiagram(cmd, sc.Diagram, "scaffold:"+sc.Name)
	},
}

func init() {
	scaffoldCmd.Flags().BoolVar(&scaffoldPrint, "print", false, "Print the diagram instead of generating it")
	addGenerateFlags(scaffoldCmd)
	rootCmd.AddCommand(scaffoldCmd)
}
