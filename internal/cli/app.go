// Package cli wires the command-line application.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/application/usecase"
	"github.com/bnema/themesync/internal/cli/styles"
	"github.com/bnema/themesync/internal/domain/build"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/infrastructure/colorscheme"
	"github.com/bnema/themesync/internal/infrastructure/config"
	"github.com/bnema/themesync/internal/infrastructure/cookie"
	"github.com/bnema/themesync/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/themesync/internal/infrastructure/webkit"
	"github.com/bnema/themesync/internal/logging"
	"github.com/bnema/themesync/internal/ui/mainloop"
	"github.com/bnema/themesync/internal/ui/theme"
)

const storeTaskKey = "store"

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	Loop    *mainloop.Loop
	Monitor *colorscheme.Monitor
	Store   *usecase.PreferenceStore
	// Cookies is the durable mirror of the resolved scheme, nil when the
	// secondary channel is disabled.
	Cookies *cookie.StoreMirror

	db  *sqlite.LazyDB
	ctx context.Context
}

// NewApp loads configuration and builds the application graph. Nothing
// touches the database until the first preference read.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level, zerolog.InfoLevel),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Output:     os.Stderr,
	})
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)
	app := &App{
		Config:        cfg,
		ConfigManager: mgr,
		Loop:          mainloop.New(),
		Monitor:       colorscheme.NewDefaultMonitor(ctx, cfg.Ambient.PreferEvents, cfg.Ambient.PollInterval),
		db:            db,
		ctx:           ctx,
	}

	kv := sqlite.NewPreferenceRepository(db)
	var mirror port.SchemeMirror
	if cfg.Appearance.SecondaryChannel.Enabled {
		app.Cookies, err = cookie.NewStoreMirror(kv, cfg.Appearance.SecondaryChannel.Origin)
		if err != nil {
			return nil, fmt.Errorf("secondary channel: %w", err)
		}
		mirror = app.Cookies
	}
	app.Store = usecase.NewPreferenceStore(kv, mirror)
	app.Theme = styles.NewTheme(app.Monitor.Current())

	return app, nil
}

// Ctx returns the application context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// NewManager creates a theme manager for surf. The terminal theme follows
// the manager's resolved scheme.
func (a *App) NewManager(surf port.RenderSurface, transitions port.TransitionCapability) (*theme.Manager, error) {
	m, err := theme.NewManager(a.ctx, theme.ConfigFrom(a.Config), theme.Deps{
		Store:       a.Store,
		Ambient:     a.Monitor,
		Surface:     surf,
		Transitions: transitions,
		Scheduler:   a.Loop,
	})
	if err != nil {
		return nil, err
	}
	a.Theme = styles.NewTheme(m.State().Resolved)
	return m, nil
}

// NewWebViewManager creates a theme manager driving a web view through eval,
// with view transitions run by the page.
func (a *App) NewWebViewManager(eval port.ScriptEvaluator, vp entity.Viewport) (*theme.Manager, *webkit.ScriptSurface, error) {
	surf := webkit.NewScriptSurface(a.ctx, eval, vp)
	m, err := a.NewManager(surf, webkit.NewScriptTransitions(surf, a.Loop))
	if err != nil {
		return nil, nil, err
	}
	return m, surf, nil
}

// Declared returns the stored preference, or the configured default.
func (a *App) Declared() entity.Preference {
	return a.Store.Load(a.ctx, a.Config.Appearance.StorageKey, a.Config.Preference())
}

// MirroredScheme returns the last scheme written to the secondary channel.
func (a *App) MirroredScheme() (entity.Scheme, bool) {
	if a.Cookies == nil {
		return "", false
	}
	return a.Cookies.Lookup(a.ctx, a.Config.Appearance.SecondaryChannel.Name)
}

// WatchStore reloads m whenever another process writes the preference
// database. Bursts of writes are merged into one reload on the loop. The
// returned function stops watching.
func (a *App) WatchStore(m *theme.Manager) (func(), error) {
	cfg := a.Config
	notifier := colorscheme.SelectNotifier(a.ctx, cfg.Ambient.PreferEvents, cfg.Ambient.PollInterval,
		sqlite.DatabaseFiles(cfg.Database.Path)...)

	reloads := mainloop.NewCoalescer(a.Loop.Post)
	err := notifier.Start(func() {
		reloads.Post(storeTaskKey, func() { m.Reload(a.ctx) })
	})
	if err != nil {
		return nil, fmt.Errorf("watch preference database: %w", err)
	}
	logging.FromContext(a.ctx).Debug().Str("notifier", notifier.Name()).Msg("watching preference database")

	return func() {
		_ = notifier.Stop()
		reloads.Destroy()
	}, nil
}

// Close releases resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
