package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treegen/internal/templates"
)

var importSelector string

var importCmd = &cobra.Command{
	Use:   "import-templates FILE",
	Short: "Import user templates from a JSON or YAML file",
	Long: `Import user templates from a JSON or YAML file.

The file holds an object mapping file names ("page.tsx") or extensions (".ts")
to template bodies. When the object is nested inside a larger document, point
at it with --select, a JSONPath expression such as "$.treegen.templates".

JavaScript and TypeScript modules are not evaluated; convert them to JSON
first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := templates.ReadFile(args[0], importSelector)
		if err != nil {
			return err
		}

		paths, err := statePaths()
		if err != nil {
			return err
		}
		st, err := openStore(paths)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		if err := st.PutTemplates(cmd.Context(), entries); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d templates from %s.\n", len(entries), args[0])
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSelector, "select", "", "JSONPath selecting the template object")
	rootCmd.AddCommand(importCmd)
}
