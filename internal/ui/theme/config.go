package theme

import (
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/infrastructure/config"
	"github.com/bnema/themesync/internal/ui/surface"
)

// Config is the controller's view of the appearance settings.
type Config struct {
	DefaultPreference   entity.Preference
	StorageKey          string
	Surface             surface.Config
	SuppressTransitions bool
	Forced              entity.Scheme

	SecondaryChannel bool
	SecondaryName    string

	AmbientTracking    bool
	AnimatedTransition bool
}

// DefaultConfig mirrors config.DefaultConfig.
func DefaultConfig() Config {
	return ConfigFrom(config.DefaultConfig())
}

// ConfigFrom converts the loaded configuration.
func ConfigFrom(cfg *config.Config) Config {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	app := cfg.Appearance

	mode := surface.ModeClass
	if app.PresentationMode == config.PresentationModeAttribute {
		mode = surface.ModeAttribute
	}

	return Config{
		DefaultPreference: cfg.Preference(),
		StorageKey:        app.StorageKey,
		Surface: surface.Config{
			Mode:            mode,
			Attribute:       app.Attribute,
			ColorSchemeHint: app.ColorSchemeHint,
		},
		SuppressTransitions: app.SuppressTransitions,
		Forced:              cfg.Forced(),
		SecondaryChannel:    app.SecondaryChannel.Enabled,
		SecondaryName:       app.SecondaryChannel.Name,
		AmbientTracking:     app.AmbientTracking,
		AnimatedTransition:  app.AnimatedTransition,
	}
}
