package colorscheme

import (
	"os/exec"
	"strings"
)

const (
	detectorNameGsettings = "gsettings"
	priorityGsettings     = 10
)

// GsettingsDetector detects color scheme from GNOME gsettings.
type GsettingsDetector struct {
	lookPath func(string) (string, error)
	output   func(name string, args ...string) ([]byte, error)
}

// NewGsettingsDetector creates a new gsettings-based detector.
func NewGsettingsDetector() *GsettingsDetector {
	return &GsettingsDetector{
		lookPath: exec.LookPath,
		output: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
	}
}

// Name implements port.ColorSchemeDetector.
func (*GsettingsDetector) Name() string {
	return detectorNameGsettings
}

// Priority implements port.ColorSchemeDetector.
func (*GsettingsDetector) Priority() int {
	return priorityGsettings
}

// Available implements port.ColorSchemeDetector.
// Returns true if gsettings command is available.
func (d *GsettingsDetector) Available() bool {
	_, err := d.lookPath("gsettings")
	return err == nil
}

// Detect implements port.ColorSchemeDetector.
// Queries org.gnome.desktop.interface color-scheme.
func (d *GsettingsDetector) Detect() (prefersDark, ok bool) {
	output, err := d.output("gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err != nil {
		return false, false
	}
	return parseGsettingsColorScheme(string(output))
}

// parseGsettingsColorScheme parses output like "'prefer-dark'\n".
func parseGsettingsColorScheme(raw string) (prefersDark, ok bool) {
	result := strings.Trim(strings.TrimSpace(raw), "'\"")

	switch result {
	case "prefer-dark":
		return true, true
	case "prefer-light":
		return false, true
	default:
		// "default" defers to the desktop, which gsettings cannot resolve
		return false, false
	}
}
