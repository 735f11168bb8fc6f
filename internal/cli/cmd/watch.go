package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/themesync/internal/cli/styles"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/infrastructure/config"
	"github.com/bnema/themesync/internal/logging"
	"github.com/bnema/themesync/internal/ui/surface"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the resolved scheme and print every change",
	Long: `Run the theme loop in the foreground. Ambient changes, config edits to
forced_scheme and preference changes made by other commands are printed as
they are applied.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	log := logging.FromContext(app.Ctx())

	ctx, stop := signal.NotifyContext(app.Ctx(), shutdownSignals...)
	defer stop()

	doc := surface.NewDocument(entity.Viewport{})
	m, err := app.NewManager(doc, surface.NewDocumentTransitions(doc, app.Loop))
	if err != nil {
		return err
	}
	defer m.Close()

	out := cmd.OutOrStdout()
	renderer := styles.NewStateRenderer(app.Theme)
	fmt.Fprintln(out, renderer.RenderChange(m.State()))

	m.OnChange(func(st entity.ThemeState) {
		fmt.Fprintln(out, styles.NewStateRenderer(styles.NewTheme(st.Resolved)).RenderChange(st))
	})

	if err := m.Mount(ctx); err != nil {
		return err
	}

	stopStore, err := app.WatchStore(m)
	if err != nil {
		log.Warn().Err(err).Msg("preference changes from other commands will not be seen")
	} else {
		defer stopStore()
	}

	app.ConfigManager.OnConfigChange(func(c *config.Config) {
		app.Loop.Post(func() { m.SetForced(ctx, c.Forced()) })
	})
	if err := app.ConfigManager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Loop.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Debug().Msg("watch stopping")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
