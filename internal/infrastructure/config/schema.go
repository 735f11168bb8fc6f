// Package config loads and watches the themesync configuration file.
package config

import "time"

// Config is the complete configuration.
type Config struct {
	Appearance AppearanceConfig `mapstructure:"appearance" yaml:"appearance" toml:"appearance"`
	Ambient    AmbientConfig    `mapstructure:"ambient" yaml:"ambient" toml:"ambient"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database" toml:"database"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging" toml:"logging"`
}

// PresentationMode selects how the resolved scheme is written on the surface root.
type PresentationMode string

const (
	PresentationModeClass     PresentationMode = "class"
	PresentationModeAttribute PresentationMode = "attribute"
)

// AppearanceConfig holds the theme state settings.
type AppearanceConfig struct {
	// DefaultPreference applies when nothing is stored: light, dark or system.
	// prefer-light, prefer-dark and default are accepted as aliases.
	DefaultPreference string `mapstructure:"default_preference" yaml:"default_preference" toml:"default_preference" jsonschema:"enum=light,enum=dark,enum=system,enum=prefer-light,enum=prefer-dark,enum=default"`
	// StorageKey names the persisted preference.
	StorageKey string `mapstructure:"storage_key" yaml:"storage_key" toml:"storage_key"`
	// PresentationMode is class or attribute.
	PresentationMode PresentationMode `mapstructure:"presentation_mode" yaml:"presentation_mode" toml:"presentation_mode" jsonschema:"enum=class,enum=attribute"`
	// Attribute is the root attribute written in attribute mode.
	Attribute string `mapstructure:"attribute" yaml:"attribute" toml:"attribute"`
	// ColorSchemeHint also sets the native color-scheme hint.
	ColorSchemeHint bool `mapstructure:"color_scheme_hint" yaml:"color_scheme_hint" toml:"color_scheme_hint"`
	// SuppressTransitions disables CSS transitions while the marker swaps.
	SuppressTransitions bool `mapstructure:"suppress_transitions" yaml:"suppress_transitions" toml:"suppress_transitions"`
	// ForcedScheme locks the resolved scheme. Empty means not forced.
	ForcedScheme string `mapstructure:"forced_scheme" yaml:"forced_scheme" toml:"forced_scheme" jsonschema:"enum=,enum=light,enum=dark"`
	// SecondaryChannel mirrors the resolved scheme into a cookie.
	SecondaryChannel SecondaryChannelConfig `mapstructure:"secondary_channel" yaml:"secondary_channel" toml:"secondary_channel"`
	// AmbientTracking lets the system preference follow live ambient changes.
	AmbientTracking bool `mapstructure:"ambient_tracking" yaml:"ambient_tracking" toml:"ambient_tracking"`
	// AnimatedTransition plays a view transition on user-initiated changes.
	AnimatedTransition bool `mapstructure:"animated_transition" yaml:"animated_transition" toml:"animated_transition"`
}

// SecondaryChannelConfig configures the mirror cookie.
type SecondaryChannelConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" toml:"enabled"`
	Name    string `mapstructure:"name" yaml:"name" toml:"name"`
	// Origin is the URL the cookie is scoped to.
	Origin string `mapstructure:"origin" yaml:"origin" toml:"origin"`
}

// AmbientConfig controls how the environment signal is tracked.
type AmbientConfig struct {
	// PollInterval is used when no file watch is possible.
	PollInterval time.Duration `mapstructure:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`
	// PreferEvents picks file notifications over polling when both work.
	PreferEvents bool `mapstructure:"prefer_events" yaml:"prefer_events" toml:"prefer_events"`
}

// DatabaseConfig holds the preference database location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path" toml:"path"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" jsonschema:"enum=console,enum=json"`
}
