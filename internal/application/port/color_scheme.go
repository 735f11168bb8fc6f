package port

import "github.com/bnema/themesync/internal/domain/entity"

// ColorSchemeDetector detects the environment's color scheme preference.
// Multiple detectors can be registered with different priorities.
type ColorSchemeDetector interface {
	// Name returns a human-readable name for this detector.
	Name() string

	// Priority returns the detector's priority.
	// Higher values = higher priority (checked first).
	// Recommended ranges:
	//   - 100+: Runtime detectors (terminal query, desktop settings files)
	//   -  10+: Fallback detectors (gsettings, env vars)
	Priority() int

	// Available returns true if this detector can be used.
	Available() bool

	// Detect returns the detected preference and whether detection succeeded.
	Detect() (prefersDark bool, ok bool)
}

// ChangeNotifier is the registration mechanism the host environment exposes
// for ambient changes. Implementations only signal that something may have
// changed; the monitor re-reads its detectors on every signal.
type ChangeNotifier interface {
	// Name identifies the mechanism in logs ("fsnotify", "poll").
	Name() string

	// Start begins delivering signals to onSignal. Calling Start on a
	// running notifier is an error.
	Start(onSignal func()) error

	// Stop ends delivery. Stop is idempotent.
	Stop() error
}

// Subscription is a live registration with an AmbientMonitor.
type Subscription interface {
	// ID is unique per monitor.
	ID() uint64
}

// AmbientMonitor exposes the ambient light/dark signal.
type AmbientMonitor interface {
	// Current returns the ambient scheme, or the light fallback when no
	// environment capability exists.
	Current() entity.Scheme

	// Subscribe registers onChange. Exactly one underlying environment
	// registration is active while at least one subscriber exists.
	Subscribe(onChange func(entity.Scheme)) Subscription

	// Unsubscribe removes a subscription. Unknown or already removed
	// handles are ignored.
	Unsubscribe(sub Subscription)
}
