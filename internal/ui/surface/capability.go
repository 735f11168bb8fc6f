package surface

import "github.com/bnema/themesync/internal/application/port"

// Unsupported is the capability of environments without view transitions.
type Unsupported struct{}

// Name implements port.TransitionCapability.
func (Unsupported) Name() string { return "unsupported" }

// Start implements port.TransitionCapability.
func (Unsupported) Start(func()) (port.ViewTransition, bool) { return nil, false }

// SelectTransitions picks the capability once at initialization. native is
// the environment's implementation, or nil when it has none.
func SelectTransitions(enabled bool, native port.TransitionCapability) port.TransitionCapability {
	if !enabled || native == nil {
		return Unsupported{}
	}
	return native
}

var _ port.TransitionCapability = Unsupported{}
