package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentic-research/treegen/api"
	"github.com/agentic-research/treegen/internal/config"
	"github.com/agentic-research/treegen/internal/templates"
)

var configureCmd = &cobra.Command{
	Use:     "configure",
	Aliases: []string{"config"},
	Short:   "Show or change generator settings and user templates",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, settings, err := loadSettings()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "# %s\n", paths.Config)
		for _, key := range api.Keys() {
			v, _ := settings.Get(key)
			_, _ = fmt.Fprintf(out, "%s = %t\n", key, v)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY true|false",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("value for %s: %w", args[0], err)
		}
		return updateSettings(cmd.OutOrStdout(), func(s api.Settings) (api.Settings, error) {
			return s.Set(args[0], v)
		})
	},
}

var configToggleCmd = &cobra.Command{
	Use:   "toggle KEY",
	Short: "Flip a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd.OutOrStdout(), func(s api.Settings) (api.Settings, error) {
			return s.Toggle(args[0])
		})
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateSettings(cmd.OutOrStdout(), func(s api.Settings) (api.Settings, error) {
			return s.Reset(), nil
		})
	},
}

// updateSettings applies fn to the settings stored in the config file.
// Environment overrides are not persisted.
func updateSettings(out io.Writer, fn func(api.Settings) (api.Settings, error)) error {
	paths, err := statePaths()
	if err != nil {
		return err
	}
	current, err := config.Load(paths.Config)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if err := config.Save(paths.Config, next); err != nil {
		return err
	}
	for _, key := range api.Keys() {
		was, _ := current.Get(key)
		now, _ := next.Get(key)
		if was != now {
			_, _ = fmt.Fprintf(out, "%s = %t\n", key, now)
		}
	}
	return nil
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage user templates",
}

var templateAddCmd = &cobra.Command{
	Use:   "add KEY [FILE|-]",
	Short: `Add or replace a template for a file name ("page.tsx") or extension (".ts")`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		if err := templates.ValidateKey(key); err != nil {
			return err
		}
		var body []byte
		var err error
		if len(args) == 1 || args[1] == "-" {
			body, err = io.ReadAll(cmd.InOrStdin())
		} else {
			body, err = os.ReadFile(args[1])
		}
		if err != nil {
			return fmt.Errorf("read template body: %w", err)
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

		if err := st.PutTemplates(cmd.Context(), map[string]string{key: string(body)}); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Template %s saved.\n", key)
		return nil
	},
}

var templateRmCmd = &cobra.Command{
	Use:   "rm KEY",
	Short: "Remove a user template",
	Args:  cobra.ExactArgs(1),
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

		if err := st.DeleteTemplate(cmd.Context(), args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Template %s removed.\n", args[0])
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user and built-in templates",
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

		user, err := st.Templates(cmd.Context())
		if err != nil {
			return err
		}
		builtin := templates.Builtin()

		var rows [][]string
		for _, key := range templates.NewCatalog(user).Keys() {
			origin := "user"
			if _, ok := builtin.Lookup(key); ok {
				origin = "user (overrides built-in)"
			}
			rows = append(rows, []string{key, origin})
		}
		for _, key := range builtin.Keys() {
			if _, ok := user[key]; !ok {
				rows = append(rows, []string{key, "built-in"})
			}
		}
		writeTable(cmd.OutOrStdout(), []string{"KEY", "SOURCE"}, rows)
		return nil
	},
}

func init() {
	templateCmd.AddCommand(templateAddCmd, templateRmCmd, templateListCmd)
	configureCmd.AddCommand(configShowCmd, configSetCmd, configToggleCmd, configResetCmd, templateCmd)
	rootCmd.AddCommand(configureCmd)
}
