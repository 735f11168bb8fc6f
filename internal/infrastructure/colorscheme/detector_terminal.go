package colorscheme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

const (
	detectorNameTerminal = "terminal"
	priorityTerminal     = 100
)

// TerminalDetector asks the controlling terminal for its background color.
// Only usable when stdout is a terminal.
type TerminalDetector struct {
	isTerminal        func() bool
	hasDarkBackground func() bool
}

// NewTerminalDetector creates a detector backed by lipgloss background detection.
func NewTerminalDetector() *TerminalDetector {
	return &TerminalDetector{
		isTerminal:        stdoutIsTerminal,
		hasDarkBackground: lipgloss.HasDarkBackground,
	}
}

func stdoutIsTerminal() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Name implements port.ColorSchemeDetector.
func (*TerminalDetector) Name() string {
	return detectorNameTerminal
}

// Priority implements port.ColorSchemeDetector.
func (*TerminalDetector) Priority() int {
	return priorityTerminal
}

// Available implements port.ColorSchemeDetector.
func (d *TerminalDetector) Available() bool {
	return d.isTerminal()
}

// Detect implements port.ColorSchemeDetector.
func (d *TerminalDetector) Detect() (prefersDark, ok bool) {
	if !d.isTerminal() {
		return false, false
	}
	return d.hasDarkBackground(), true
}
