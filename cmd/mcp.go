package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treegen/internal/mcpserver"
)

var mcpRoot string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the generator as MCP tools on stdio",
	Long: `Serve the generator as MCP tools on stdio.

Editors and agents can preview diagrams, generate them below --root and list
the built-in scaffolds. Generated paths never leave --root.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := filepath.Abs(mcpRoot)
		if err != nil {
			return fmt.Errorf("resolve root: %w", err)
		}
		paths, settings, err := loadSettings()
		if err != nil {
			return err
		}
		st, err := openStore(paths)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		logger.Info("serving MCP on stdio")
		return mcpserver.New(newGenerator(settings, st), root).ServeStdio(version)
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpRoot, "root", ".", "Directory generated structures are confined to")
	rootCmd.AddCommand(mcpCmd)
}
