package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent generation runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := statePaths()
		if err != nil {
			return err
		}
		st, err := openStore(paths)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		runs, err := st.Runs(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
			return nil
		}

		rows := make([][]string, 0, len(runs))
		for _, r := range runs {
			status := "ok"
			switch {
			case r.Err != "":
				status = "error: " + r.Err
			case r.Cancelled:
				status = "cancelled"
			}
			rows = append(rows, []string{
				r.StartedAt.Local().Format(time.DateTime),
				r.Source,
				strconv.Itoa(r.Files),
				strconv.Itoa(r.Dirs),
				strconv.Itoa(r.Skipped),
				r.Base,
				status,
			})
		}
		writeTable(cmd.OutOrStdout(),
			[]string{"STARTED", "SOURCE", "FILES", "DIRS", "SKIPPED", "BASE", "STATUS"}, rows)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
