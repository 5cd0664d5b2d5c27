package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treegen/internal/generator"
)

var previewJSON bool

var previewCmd = &cobra.Command{
	Use:   "preview [diagram|-]",
	Short: "Show how a diagram is understood without writing anything",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _, err := readDiagram(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		paths, settings, err := loadSettings()
		if err != nil {
			return err
		}

		gen := &generator.Generator{Settings: settings, Logger: logger}
		plan := gen.Parse(text)
		out := cmd.OutOrStdout()
		if plan.Empty() {
			_, _ = fmt.Fprintln(out, generator.EmptyMessage)
			return nil
		}

		if previewJSON {
			st, err := openStore(paths)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()
			gen = newGenerator(settings, st)

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(gen.Structure(plan))
		}

		printPlan(out, plan, "")

		if len(plan.Inline) > 0 {
			keys := make([]string, 0, len(plan.Inline))
			for k := range plan.Inline {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			_, _ = fmt.Fprintln(out, "inline content:")
			for _, k := range keys {
				lines := strings.Count(plan.Inline[k], "\n") + 1
				_, _ = fmt.Fprintf(out, "  %s (%d lines)\n", k, lines)
			}
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().BoolVar(&previewJSON, "json", false, "Print the structure with resolved file contents as JSON")
	rootCmd.AddCommand(previewCmd)
}
