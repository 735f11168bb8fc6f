// Package entity defines domain entities for theme state.
package entity

import "strings"

// Scheme is the binary light/dark value applied to a render surface.
// The zero value means the scheme is not known yet.
type Scheme string

const (
	SchemeLight Scheme = "light"
	SchemeDark  Scheme = "dark"
)

// SchemeFallback is used whenever no ambient signal can be read.
const SchemeFallback = SchemeLight

// Valid reports whether s is light or dark.
func (s Scheme) Valid() bool {
	return s == SchemeLight || s == SchemeDark
}

// IsDark returns true for the dark scheme.
func (s Scheme) IsDark() bool {
	return s == SchemeDark
}

// Opposite returns the other binary scheme. Unknown schemes map to dark.
func (s Scheme) Opposite() Scheme {
	if s == SchemeDark {
		return SchemeLight
	}
	return SchemeDark
}

// SchemeFromDark converts a prefers-dark flag into a Scheme.
func SchemeFromDark(prefersDark bool) Scheme {
	if prefersDark {
		return SchemeDark
	}
	return SchemeLight
}

// ParseScheme parses a binary scheme. Empty or unknown input returns ok=false.
func ParseScheme(s string) (Scheme, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "prefer-light":
		return SchemeLight, true
	case "dark", "prefer-dark":
		return SchemeDark, true
	default:
		return "", false
	}
}

// Preference is the user's declared display-mode intent.
type Preference string

const (
	PreferenceLight  Preference = "light"
	PreferenceDark   Preference = "dark"
	PreferenceSystem Preference = "system" // follow the ambient signal
)

// AvailablePreferences returns the preferences a consumer can offer, in display order.
func AvailablePreferences() []Preference {
	return []Preference{PreferenceLight, PreferenceDark, PreferenceSystem}
}

// Valid reports whether p is a member of the enumeration.
func (p Preference) Valid() bool {
	switch p {
	case PreferenceLight, PreferenceDark, PreferenceSystem:
		return true
	}
	return false
}

// FollowsAmbient returns true when p defers to the ambient signal.
func (p Preference) FollowsAmbient() bool {
	return p == PreferenceSystem
}

// Scheme returns the binary scheme a light or dark preference names.
// ok is false for the system preference.
func (p Preference) Scheme() (Scheme, bool) {
	switch p {
	case PreferenceLight:
		return SchemeLight, true
	case PreferenceDark:
		return SchemeDark, true
	}
	return "", false
}

// ParsePreference parses a serialized preference.
// The desktop config aliases ("prefer-dark", "prefer-light", "default") are accepted.
func ParsePreference(s string) (Preference, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "prefer-light":
		return PreferenceLight, true
	case "dark", "prefer-dark":
		return PreferenceDark, true
	case "system", "default":
		return PreferenceSystem, true
	default:
		return "", false
	}
}

// Point is a 2-D coordinate in viewport pixels.
type Point struct {
	X, Y float64
}

// Viewport is the size of the visible render area in pixels.
type Viewport struct {
	Width, Height float64
}

// ThemeState is the consumer-facing snapshot of theme state.
type ThemeState struct {
	Declared  Preference
	Resolved  Scheme
	Ambient   Scheme // empty when the ambient signal has not been read
	Available []Preference
	Forced    Scheme // empty when no override is configured
}

// Locked returns true when a forced scheme overrides the declared preference.
func (s ThemeState) Locked() bool {
	return s.Forced.Valid()
}
