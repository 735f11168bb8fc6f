package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/themesync/internal/cli/model"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/ui/surface"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose the preference interactively",
	Args:  cobra.NoArgs,
	RunE:  runPick,
}

func init() {
	rootCmd.AddCommand(pickCmd)
}

func runPick(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	doc := surface.NewDocument(entity.Viewport{})
	m, err := app.NewManager(doc, surface.NewDocumentTransitions(doc, app.Loop))
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Mount(app.Ctx()); err != nil {
		return err
	}

	p := tea.NewProgram(model.NewPickerModel(app.Ctx(), m, app.Loop))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	return nil
}
