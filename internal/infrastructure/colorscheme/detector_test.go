package colorscheme

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGsettingsColorScheme(t *testing.T) {
	tests := []struct {
		raw      string
		wantDark bool
		wantOk   bool
	}{
		{raw: "'prefer-dark'\n", wantDark: true, wantOk: true},
		{raw: "'prefer-light'\n", wantDark: false, wantOk: true},
		{raw: "'default'\n", wantOk: false},
		{raw: "", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.raw), func(t *testing.T) {
			dark, ok := parseGsettingsColorScheme(tt.raw)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantDark, dark)
		})
	}
}

func TestGsettingsDetector_CommandFailure(t *testing.T) {
	d := &GsettingsDetector{
		lookPath: func(string) (string, error) { return "", errors.New("not found") },
		output: func(string, ...string) ([]byte, error) {
			return nil, errors.New("exit status 1")
		},
	}

	assert.False(t, d.Available())
	_, ok := d.Detect()
	assert.False(t, ok)
}

func TestGsettingsDetector_Detect(t *testing.T) {
	d := &GsettingsDetector{
		lookPath: func(string) (string, error) { return "/usr/bin/gsettings", nil },
		output: func(name string, args ...string) ([]byte, error) {
			assert.Equal(t, "gsettings", name)
			assert.Equal(t, []string{"get", "org.gnome.desktop.interface", "color-scheme"}, args)
			return []byte("'prefer-dark'\n"), nil
		},
	}

	assert.True(t, d.Available())
	dark, ok := d.Detect()
	assert.True(t, ok)
	assert.True(t, dark)
}

func TestEnvDetector(t *testing.T) {
	env := map[string]string{}
	d := &EnvDetector{lookup: func(k string) string { return env[k] }}

	assert.False(t, d.Available())

	env["GTK_THEME"] = "Adwaita:dark"
	dark, ok := d.Detect()
	assert.True(t, d.Available())
	assert.True(t, ok)
	assert.True(t, dark)

	env["GTK_THEME"] = "Adwaita"
	dark, ok = d.Detect()
	assert.True(t, ok)
	assert.False(t, dark)
}

func TestGtkSettingsDetector(t *testing.T) {
	dir := t.TempDir()
	gtk4 := filepath.Join(dir, "gtk-4.0", "settings.ini")
	gtk3 := filepath.Join(dir, "gtk-3.0", "settings.ini")
	require.NoError(t, os.MkdirAll(filepath.Dir(gtk3), 0o750))
	require.NoError(t, os.WriteFile(gtk3, []byte("[Settings]\n# comment\ngtk-application-prefer-dark-theme = 1\n"), 0o600))

	d := NewGtkSettingsDetector(gtk4, gtk3)
	assert.Equal(t, []string{gtk4, gtk3}, d.Paths())
	assert.True(t, d.Available())

	dark, ok := d.Detect()
	assert.True(t, ok)
	assert.True(t, dark)

	// gtk-4.0 takes precedence once it sets the key.
	require.NoError(t, os.MkdirAll(filepath.Dir(gtk4), 0o750))
	require.NoError(t, os.WriteFile(gtk4, []byte("[Settings]\ngtk-application-prefer-dark-theme=false\n"), 0o600))
	dark, ok = d.Detect()
	assert.True(t, ok)
	assert.False(t, dark)
}

func TestGtkSettingsDetector_MissingFiles(t *testing.T) {
	d := NewGtkSettingsDetector(filepath.Join(t.TempDir(), "missing.ini"))
	assert.False(t, d.Available())
	_, ok := d.Detect()
	assert.False(t, ok)
}

func TestTerminalDetector(t *testing.T) {
	d := &TerminalDetector{
		isTerminal:        func() bool { return false },
		hasDarkBackground: func() bool { return true },
	}
	assert.False(t, d.Available())
	_, ok := d.Detect()
	assert.False(t, ok)

	d.isTerminal = func() bool { return true }
	dark, ok := d.Detect()
	assert.True(t, ok)
	assert.True(t, dark)
}
