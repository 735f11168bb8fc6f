package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/themesync/internal/domain/entity"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	dir       string
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager reading from the XDG config directory.
func NewManager() (*Manager, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	return NewManagerAt(configDir)
}

// NewManagerAt creates a manager reading config.toml from dir.
func NewManagerAt(dir string) (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("THEMESYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "THEMESYNC_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind THEMESYNC_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "THEMESYNC_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind THEMESYNC_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		dir:       dir,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load reads the configuration file and environment. A default file is
// written when none exists.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.build()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.configFile(), err)
	}
	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.dir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// build unmarshals, normalizes and validates the current viper state.
func (m *Manager) build() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(), err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (m *Manager) configFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(m.dir, "config.toml")
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	app := &config.Appearance

	if p, ok := entity.ParsePreference(app.DefaultPreference); ok {
		app.DefaultPreference = string(p)
	} else {
		app.DefaultPreference = string(entity.PreferenceSystem)
	}

	switch PresentationMode(strings.ToLower(string(app.PresentationMode))) {
	case PresentationModeAttribute:
		app.PresentationMode = PresentationModeAttribute
	default:
		app.PresentationMode = PresentationModeClass
	}

	app.Attribute = strings.TrimSpace(app.Attribute)
	if app.Attribute == "" {
		app.Attribute = defaultAttribute
	}
	app.StorageKey = strings.TrimSpace(app.StorageKey)

	app.ForcedScheme = strings.ToLower(strings.TrimSpace(app.ForcedScheme))
	if s, ok := entity.ParseScheme(app.ForcedScheme); ok {
		app.ForcedScheme = string(s)
	}

	app.SecondaryChannel.Name = strings.TrimSpace(app.SecondaryChannel.Name)
	if app.SecondaryChannel.Name == "" {
		app.SecondaryChannel.Name = defaultCookieName
	}
	if app.SecondaryChannel.Origin == "" {
		app.SecondaryChannel.Origin = defaultCookieOrigin
	}

	if config.Ambient.PollInterval <= 0 {
		config.Ambient.PollInterval = defaultPollInterval
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.configFile()
}

func (m *Manager) createDefaultConfig() error {
	if err := os.MkdirAll(m.dir, dirPerm); err != nil {
		return err
	}
	// Written from defaults only so environment overrides never end up in the file.
	w := viper.New()
	w.SetConfigType("toml")
	applyDefaults(w)
	if err := w.SafeWriteConfigAs(filepath.Join(m.dir, "config.toml")); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	applyDefaults(m.viper)
}

func applyDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	// Note: Database.Path is resolved in build(), no default needed
	setAppearanceDefaults(v, defaults)
	setAmbientDefaults(v, defaults)
	setLoggingDefaults(v, defaults)
}

func setAppearanceDefaults(v *viper.Viper, defaults *Config) {
	app := defaults.Appearance
	v.SetDefault("appearance.default_preference", app.DefaultPreference)
	v.SetDefault("appearance.storage_key", app.StorageKey)
	v.SetDefault("appearance.presentation_mode", string(app.PresentationMode))
	v.SetDefault("appearance.attribute", app.Attribute)
	v.SetDefault("appearance.color_scheme_hint", app.ColorSchemeHint)
	v.SetDefault("appearance.suppress_transitions", app.SuppressTransitions)
	v.SetDefault("appearance.forced_scheme", app.ForcedScheme)
	v.SetDefault("appearance.secondary_channel.enabled", app.SecondaryChannel.Enabled)
	v.SetDefault("appearance.secondary_channel.name", app.SecondaryChannel.Name)
	v.SetDefault("appearance.secondary_channel.origin", app.SecondaryChannel.Origin)
	v.SetDefault("appearance.ambient_tracking", app.AmbientTracking)
	v.SetDefault("appearance.animated_transition", app.AnimatedTransition)
}

func setAmbientDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("ambient.poll_interval", defaults.Ambient.PollInterval.String())
	v.SetDefault("ambient.prefer_events", defaults.Ambient.PreferEvents)
}

func setLoggingDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}
