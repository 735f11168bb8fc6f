package port

import (
	"time"

	"github.com/bnema/themesync/internal/domain/entity"
)

// RenderSurface is the root of the render tree whose presentation marker
// reflects the resolved scheme.
type RenderSurface interface {
	// Attached reports whether the surface still exists. Every operation on
	// a detached surface is a no-op.
	Attached() bool

	// RemoveClass and AddClass edit the root class list.
	RemoveClass(names ...string)
	AddClass(name string)

	// SetAttribute sets a root attribute value.
	SetAttribute(name, value string)

	// SetColorScheme sets the native widget rendering hint.
	SetColorScheme(scheme entity.Scheme)

	// InsertStyle installs a global style rule under id.
	InsertStyle(id, css string)
	// RemoveStyle removes the rule installed under id.
	RemoveStyle(id string)
	// HasStyle reports whether a rule is installed under id.
	HasStyle(id string) bool

	// ForceStyleRecalc forces a synchronous style recomputation.
	ForceStyleRecalc()

	// Viewport returns the visible area size.
	Viewport() entity.Viewport
}

// RevealAnimation describes a clip-path animation on a transition pseudo-element.
type RevealAnimation struct {
	ClipPath      [2]string
	Duration      time.Duration
	Easing        string
	PseudoElement string
}

// ViewTransition is one in-flight native transition.
// Callbacks are continuations; nothing blocks waiting on them.
type ViewTransition interface {
	// OnReady runs fn once the new snapshot is captured and the update
	// callback has run.
	OnReady(fn func())
	// OnFinished runs fn when the transition completes or is skipped.
	OnFinished(fn func())
	// Animate drives an animation on the transition's pseudo-elements.
	Animate(anim RevealAnimation)
	// Skip aborts the visual effect. The update still applies.
	Skip()
}

// TransitionCapability is selected once at initialization.
type TransitionCapability interface {
	// Name is "native" or "unsupported".
	Name() string
	// Start captures the current surface and runs update inside a
	// transition. ok is false when transitions are unsupported, in which
	// case update has not been called.
	Start(update func()) (vt ViewTransition, ok bool)
}

// Cancel cancels a scheduled callback. Calling it more than once is safe.
type Cancel func()

// Scheduler defers work to the next tick of the UI event loop.
type Scheduler interface {
	// Post queues fn on the loop. Safe from any goroutine.
	Post(fn func())
	// Defer runs fn on the next tick, at most once.
	Defer(fn func()) Cancel
}

// ScriptEvaluator runs JavaScript inside a web view.
type ScriptEvaluator interface {
	EvaluateScript(script string) error
}
