package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agentic-research/treegen/internal/config"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var (
	homeDir string
	verbose bool
	logger  = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "State directory (default $TREEGEN_HOME or ~/.treegen)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log the parser trace and every write to stderr")
	addGenerateFlags(rootCmd)
}

var rootCmd = &cobra.Command{
	Use:   "treegen [diagram]",
	Short: "treegen: turn ASCII tree diagrams into files and directories",
	Long: `treegen reads a tree diagram such as

  app/
  ├── page.tsx
  └── components/
      └── button.tsx

and creates the directories and files it describes. Files get content from a
fenced block written right after their line, or from a template matched by
file name or extension.

Running "treegen FILE" is shorthand for "treegen generate FILE".`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runGenerate(cmd, args)
	},
}

// newLogger writes to stderr: development output with --verbose, warnings
// and errors only otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
