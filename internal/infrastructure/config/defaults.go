package config

import (
	"time"

	"github.com/bnema/themesync/internal/domain/entity"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	defaultStorageKey   = "theme"
	defaultCookieName   = "theme"
	defaultCookieOrigin = "http://localhost/"
	defaultAttribute    = "data-theme"
	defaultPollInterval = 5 * time.Second
	minPollInterval     = 100 * time.Millisecond
)

// DefaultConfig returns the configuration used when the file sets nothing.
func DefaultConfig() *Config {
	return &Config{
		Appearance: AppearanceConfig{
			DefaultPreference:   string(entity.PreferenceSystem),
			StorageKey:          defaultStorageKey,
			PresentationMode:    PresentationModeClass,
			Attribute:           defaultAttribute,
			ColorSchemeHint:     true,
			SuppressTransitions: true,
			ForcedScheme:        "",
			SecondaryChannel: SecondaryChannelConfig{
				Enabled: false,
				Name:    defaultCookieName,
				Origin:  defaultCookieOrigin,
			},
			AmbientTracking:    true,
			AnimatedTransition: true,
		},
		Ambient: AmbientConfig{
			PollInterval: defaultPollInterval,
			PreferEvents: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Preference returns the configured default preference.
func (c *Config) Preference() entity.Preference {
	if p, ok := entity.ParsePreference(c.Appearance.DefaultPreference); ok {
		return p
	}
	return entity.PreferenceSystem
}

// Forced returns the forced scheme, or "" when not forced.
func (c *Config) Forced() entity.Scheme {
	if s, ok := entity.ParseScheme(c.Appearance.ForcedScheme); ok {
		return s
	}
	return ""
}
