package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/themesync/internal/cli/styles"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/ui/surface"
	"github.com/bnema/themesync/internal/ui/theme"
)

var setCmd = &cobra.Command{
	Use:       "set <light|dark|system>",
	Short:     "Set the declared preference",
	Long:      `Set and persist the declared preference. prefer-light, prefer-dark and default are accepted as aliases.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"light", "dark", "system"},
	RunE:      runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

// parsePreference maps user input to a preference.
func parsePreference(arg string) (entity.Preference, error) {
	p, ok := entity.ParsePreference(arg)
	if !ok {
		return "", fmt.Errorf("%w: %q (want light, dark or system)", theme.ErrInvalidPreference, arg)
	}
	return p, nil
}

func runSet(cmd *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	p, err := parsePreference(args[0])
	if err != nil {
		return err
	}

	m, err := app.NewManager(surface.NewDocument(entity.Viewport{}), nil)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.SetPreference(app.Ctx(), p, nil); err != nil {
		if errors.Is(err, theme.ErrLocked) {
			return fmt.Errorf("%w (forced_scheme = %q in %s)", err, m.State().Forced, app.ConfigManager.GetConfigFile())
		}
		return err
	}
	app.Loop.Drain(4)

	st := m.State()
	fmt.Fprintln(cmd.OutOrStdout(), styles.NewStateRenderer(styles.NewTheme(st.Resolved)).RenderState(st, app.Monitor.Source()))
	return nil
}
