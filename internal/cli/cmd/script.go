package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/themesync/internal/cli"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/infrastructure/config"
	"github.com/bnema/themesync/internal/infrastructure/cookie"
	"github.com/bnema/themesync/internal/infrastructure/webkit"
	"github.com/bnema/themesync/internal/ui/surface"
)

var (
	scriptCookie bool
	scriptMarkup bool
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the pre-paint bootstrap script for web pages",
	Long: `Print an inline script that sets the theme marker on <html> before the
first paint. It reads the stored preference from localStorage, falls back to
the mirror cookie when the secondary channel is enabled, and resolves
"system" through prefers-color-scheme.`,
	Args: cobra.NoArgs,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.Flags().BoolVar(&scriptCookie, "cookie", false, "also print the Set-Cookie header for the current scheme")
	scriptCmd.Flags().BoolVar(&scriptMarkup, "markup", false, "also print the <html> attributes for server rendering")
}

// bootstrapConfig maps the appearance settings onto the script options.
// declared becomes the fallback when the page has nothing stored, so a web
// view opened after "themesync set" paints the stored preference.
func bootstrapConfig(cfg *config.Config, declared entity.Preference) webkit.BootstrapConfig {
	app := cfg.Appearance
	if !declared.Valid() {
		declared = cfg.Preference()
	}
	bc := webkit.BootstrapConfig{
		StorageKey:      app.StorageKey,
		Default:         declared,
		ForcedScheme:    cfg.Forced(),
		AttributeMode:   app.PresentationMode == config.PresentationModeAttribute,
		Attribute:       app.Attribute,
		ColorSchemeHint: app.ColorSchemeHint,
	}
	if app.SecondaryChannel.Enabled {
		bc.CookieName = app.SecondaryChannel.Name
	}
	return bc
}

func runScript(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	script, err := webkit.BootstrapScript(bootstrapConfig(app.Config, app.Declared()))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, script)

	if scriptCookie || scriptMarkup {
		return printServerHints(cmd, app)
	}
	return nil
}

func printServerHints(cmd *cobra.Command, app *cli.App) error {
	m, err := app.NewManager(nil, nil)
	if err != nil {
		return err
	}
	defer m.Close()

	resolved := m.State().Resolved
	out := cmd.OutOrStdout()
	if scriptCookie {
		name := app.Config.Appearance.SecondaryChannel.Name
		c := cookie.New(name, resolved)
		if app.Cookies != nil {
			if stored, err := app.Cookies.Cookie(app.Ctx(), name); err == nil {
				c = stored
			}
		}
		fmt.Fprintf(out, "Set-Cookie: %s\n", c.String())
	}
	if scriptMarkup {
		attr := ""
		if app.Config.Appearance.PresentationMode == config.PresentationModeAttribute {
			attr = app.Config.Appearance.Attribute
			if attr == "" {
				attr = surface.DefaultAttribute
			}
		}
		fmt.Fprintf(out, "<html %s>\n", cookie.RootAttributes(resolved, attr, app.Config.Appearance.ColorSchemeHint))
	}
	return nil
}
