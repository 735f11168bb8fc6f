package webkit

import (
	"fmt"
	"strings"

	"github.com/bnema/themesync/internal/domain/entity"
)

// BootstrapConfig describes the pre-paint script.
type BootstrapConfig struct {
	StorageKey string
	// CookieName is read when local storage holds nothing. Empty disables it.
	CookieName      string
	Default         entity.Preference
	ForcedScheme    entity.Scheme
	AttributeMode   bool
	Attribute       string
	ColorSchemeHint bool
}

const bootstrapScript = `(function() {
  var root = document.documentElement;
  var key = %[1]s, cookieName = %[2]s, fallback = %[3]s, forced = %[4]s;
  var value = null;
  try {
    value = window.localStorage.getItem(key);
  } catch (e) {}
  if (!value && cookieName) {
    var parts = String(document.cookie || '').split(';');
    for (var i = 0; i < parts.length; i++) {
      var kv = parts[i].replace(/^\s+/, '');
      if (kv.indexOf(cookieName + '=') === 0) {
        value = kv.substring(cookieName.length + 1);
        break;
      }
    }
  }
  if (value !== 'light' && value !== 'dark' && value !== 'system') value = fallback;
  var scheme = forced;
  if (!scheme) {
    scheme = value;
    if (value === 'system') {
      var dark = false;
      try {
        dark = !!(window.matchMedia && window.matchMedia('(prefers-color-scheme: dark)').matches);
      } catch (e) {}
      scheme = dark ? 'dark' : 'light';
    }
  }
%[5]s})();`

// BootstrapScript renders the inline script that sets the marker before the
// first paint. The script is compiled once to catch syntax errors.
func BootstrapScript(cfg BootstrapConfig) (string, error) {
	if cfg.StorageKey == "" {
		return "", fmt.Errorf("bootstrap script: storage key is empty")
	}
	def := cfg.Default
	if !def.Valid() {
		def = entity.PreferenceSystem
	}
	forced := ""
	if cfg.ForcedScheme.Valid() {
		forced = string(cfg.ForcedScheme)
	}

	var apply strings.Builder
	if cfg.AttributeMode {
		attr := cfg.Attribute
		if attr == "" {
			attr = "data-theme"
		}
		fmt.Fprintf(&apply, "  root.setAttribute(%s, scheme);\n", jsString(attr))
	} else {
		apply.WriteString("  root.classList.remove('light', 'dark');\n  root.classList.add(scheme);\n")
	}
	if cfg.ColorSchemeHint {
		apply.WriteString("  root.style.colorScheme = scheme;\n")
	}

	script := fmt.Sprintf(bootstrapScript,
		jsString(cfg.StorageKey),
		jsString(cfg.CookieName),
		jsString(string(def)),
		jsString(forced),
		apply.String(),
	)
	if err := Validate("bootstrap.js", script); err != nil {
		return "", err
	}
	return script, nil
}
