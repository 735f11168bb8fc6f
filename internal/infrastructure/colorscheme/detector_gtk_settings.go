package colorscheme

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

const (
	detectorNameGtkSettings = "gtk-settings"
	priorityGtkSettings     = 50

	gtkPreferDarkKey = "gtk-application-prefer-dark-theme"
)

// GtkSettingsDetector reads gtk-application-prefer-dark-theme from the
// user's GTK settings.ini files. The first file that sets the key wins.
type GtkSettingsDetector struct {
	paths []string
}

// NewGtkSettingsDetector creates a detector over the given settings.ini paths.
// With no paths, DefaultGtkSettingsPaths is used.
func NewGtkSettingsDetector(paths ...string) *GtkSettingsDetector {
	if len(paths) == 0 {
		paths = DefaultGtkSettingsPaths()
	}
	return &GtkSettingsDetector{paths: paths}
}

// DefaultGtkSettingsPaths returns the GTK 4 and GTK 3 settings files under
// $XDG_CONFIG_HOME (or ~/.config).
func DefaultGtkSettingsPaths() []string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		configHome = filepath.Join(home, ".config")
	}
	return []string{
		filepath.Join(configHome, "gtk-4.0", "settings.ini"),
		filepath.Join(configHome, "gtk-3.0", "settings.ini"),
	}
}

// Paths returns the files this detector reads. File watchers use it.
func (d *GtkSettingsDetector) Paths() []string {
	return d.paths
}

// Name implements port.ColorSchemeDetector.
func (*GtkSettingsDetector) Name() string {
	return detectorNameGtkSettings
}

// Priority implements port.ColorSchemeDetector.
func (*GtkSettingsDetector) Priority() int {
	return priorityGtkSettings
}

// Available implements port.ColorSchemeDetector.
func (d *GtkSettingsDetector) Available() bool {
	for _, p := range d.paths {
		if _, err := os.Stat(p); err == nil {
			return true
		}
	}
	return false
}

// Detect implements port.ColorSchemeDetector.
func (d *GtkSettingsDetector) Detect() (prefersDark, ok bool) {
	for _, p := range d.paths {
		if prefersDark, ok := readPreferDark(p); ok {
			return prefersDark, true
		}
	}
	return false, false
}

func readPreferDark(path string) (prefersDark, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return false, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "[") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(key) != gtkPreferDarkKey {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes":
			return true, true
		case "0", "false", "no":
			return false, true
		}
	}
	return false, false
}
