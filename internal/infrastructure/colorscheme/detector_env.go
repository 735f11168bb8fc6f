package colorscheme

import (
	"os"
	"strings"
)

const (
	detectorNameEnv = "GTK_THEME"
	priorityEnv     = 20
)

// EnvDetector detects color scheme from GTK_THEME environment variable.
// This is useful when users explicitly set their theme via environment.
type EnvDetector struct {
	lookup func(string) string
}

// NewEnvDetector creates a new environment variable-based detector.
func NewEnvDetector() *EnvDetector {
	return &EnvDetector{lookup: os.Getenv}
}

// Name implements port.ColorSchemeDetector.
func (*EnvDetector) Name() string {
	return detectorNameEnv
}

// Priority implements port.ColorSchemeDetector.
func (*EnvDetector) Priority() int {
	return priorityEnv
}

// Available implements port.ColorSchemeDetector.
// Returns true if GTK_THEME environment variable is set.
func (d *EnvDetector) Available() bool {
	return d.lookup(detectorNameEnv) != ""
}

// Detect implements port.ColorSchemeDetector.
// A theme name such as "Adwaita:dark" or "Nordic-Darker" prefers dark.
func (d *EnvDetector) Detect() (prefersDark, ok bool) {
	gtkTheme := d.lookup(detectorNameEnv)
	if gtkTheme == "" {
		return false, false
	}
	return strings.Contains(strings.ToLower(gtkTheme), "dark"), true
}
