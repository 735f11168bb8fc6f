package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/themesync/internal/cli/styles"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/ui/surface"
)

var getJSON bool

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the declared, ambient and resolved scheme",
	Args:  cobra.NoArgs,
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().BoolVar(&getJSON, "json", false, "print the state as JSON")
}

type stateJSON struct {
	Declared  entity.Preference   `json:"declared"`
	Resolved  entity.Scheme       `json:"resolved"`
	Ambient   entity.Scheme       `json:"ambient,omitempty"`
	Source    string              `json:"source,omitempty"`
	Available []entity.Preference `json:"available"`
	Forced    entity.Scheme       `json:"forced,omitempty"`
}

func runGet(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	m, err := app.NewManager(surface.NewDocument(entity.Viewport{}), nil)
	if err != nil {
		return err
	}
	defer m.Close()

	st := m.State()
	out := cmd.OutOrStdout()
	if getJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stateJSON{
			Declared:  st.Declared,
			Resolved:  st.Resolved,
			Ambient:   st.Ambient,
			Source:    app.Monitor.Source(),
			Available: st.Available,
			Forced:    st.Forced,
		})
	}

	fmt.Fprintln(out, styles.NewStateRenderer(app.Theme).RenderState(st, app.Monitor.Source()))
	return nil
}
