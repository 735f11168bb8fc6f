// Package surface applies the resolved scheme to a render surface.
//
// The Applier is the only writer of the surface's presentation marker. It
// supports an instant swap with transition effects suppressed for one tick,
// and an animated swap through a native view transition with an optional
// circular reveal from a pointer coordinate.
package surface

import (
	"context"
	"time"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/domain/service"
	"github.com/bnema/themesync/internal/logging"
)

// Mode selects how the marker is written on the surface root.
type Mode string

const (
	ModeClass     Mode = "class"
	ModeAttribute Mode = "attribute"
)

// DefaultAttribute is the marker attribute used in attribute mode.
const DefaultAttribute = "data-theme"

const (
	// SuppressStyleID identifies the temporary no-transition rule.
	SuppressStyleID = "themesync-suppress-transitions"
	suppressCSS     = "*,*::before,*::after{-webkit-transition:none!important;transition:none!important;" +
		"transition-duration:0s!important;animation-duration:0s!important;animation-delay:0s!important}"

	RevealDuration      = 500 * time.Millisecond
	RevealEasing        = "ease-in-out"
	RevealPseudoElement = "::view-transition-new(root)"
)

// Config controls marker placement.
type Config struct {
	Mode            Mode
	Attribute       string
	ColorSchemeHint bool
}

// Options control a single Apply call.
type Options struct {
	// Origin anchors the circular reveal. Nil plays the default cross-fade.
	Origin *entity.Point
	// SuppressTransitions zeroes transition/animation durations around the swap.
	SuppressTransitions bool
	// Animated requests a native view transition.
	Animated bool
}

// transitionToken represents one in-flight animated change.
type transitionToken struct {
	id         uint64
	superseded bool
}

// Applier writes the presentation marker. It is not safe for concurrent use;
// every call comes from the controller's loop.
type Applier struct {
	surface     port.RenderSurface
	transitions port.TransitionCapability
	scheduler   port.Scheduler
	cfg         Config

	target    entity.Scheme
	applied   entity.Scheme
	mutations int

	inflight  *transitionToken
	nextToken uint64
	cleanup   port.Cancel
	closed    bool
}

// NewApplier creates an applier. A nil surface makes every call a no-op.
// A nil transitions capability is treated as Unsupported.
func NewApplier(surface port.RenderSurface, transitions port.TransitionCapability, scheduler port.Scheduler, cfg Config) *Applier {
	if scheduler == nil {
		panic("surface.NewApplier: scheduler cannot be nil")
	}
	if transitions == nil {
		transitions = Unsupported{}
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeClass
	}
	if cfg.Mode == ModeAttribute && cfg.Attribute == "" {
		cfg.Attribute = DefaultAttribute
	}
	return &Applier{
		surface:     surface,
		transitions: transitions,
		scheduler:   scheduler,
		cfg:         cfg,
	}
}

// Applied returns the last scheme written to the surface.
func (a *Applier) Applied() entity.Scheme { return a.applied }

// Mutations returns how many marker writes have happened.
func (a *Applier) Mutations() int { return a.mutations }

// InFlight reports whether an animated transition is active.
func (a *Applier) InFlight() bool { return a.inflight != nil }

// Capability returns the name of the selected transition capability.
func (a *Applier) Capability() string { return a.transitions.Name() }

func (a *Applier) attached() bool {
	return a.surface != nil && a.surface.Attached()
}

// Apply writes resolved to the surface.
func (a *Applier) Apply(ctx context.Context, resolved entity.Scheme, opts Options) {
	log := logging.FromContext(ctx)

	if a.closed || !resolved.Valid() || !a.attached() {
		return
	}
	a.target = resolved

	if opts.Animated {
		if a.applyAnimated(ctx, opts.Origin) {
			return
		}
		log.Debug().Str("capability", a.transitions.Name()).Msg("view transitions unavailable, swapping instantly")
	}

	a.applyInstant(opts.SuppressTransitions)
}

func (a *Applier) applyInstant(suppress bool) {
	if suppress {
		a.installSuppression()
	}
	a.mutate()
	if suppress {
		a.scheduleSuppressionRemoval()
	}
}

// installSuppression adds the no-transition rule and forces a style
// recalculation so it is in effect before the marker changes.
func (a *Applier) installSuppression() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
	a.surface.InsertStyle(SuppressStyleID, suppressCSS)
	a.surface.ForceStyleRecalc()
}

// scheduleSuppressionRemoval removes the rule on the next tick, after the
// new state has been painted.
func (a *Applier) scheduleSuppressionRemoval() {
	a.cleanup = a.scheduler.Defer(func() {
		a.cleanup = nil
		a.removeSuppression()
	})
}

func (a *Applier) removeSuppression() {
	if !a.attached() || !a.surface.HasStyle(SuppressStyleID) {
		return
	}
	a.surface.ForceStyleRecalc()
	a.surface.RemoveStyle(SuppressStyleID)
}

// applyAnimated starts a native transition. Returns false when the
// capability is unsupported and nothing was changed.
func (a *Applier) applyAnimated(ctx context.Context, origin *entity.Point) bool {
	a.nextToken++
	token := &transitionToken{id: a.nextToken}

	// The update writes the latest target, not the one captured here, so a
	// superseded transition can never restore an older scheme.
	vt, ok := a.transitions.Start(func() {
		if !a.closed && a.attached() {
			a.mutate()
		}
	})
	if !ok {
		return false
	}

	if prev := a.inflight; prev != nil {
		prev.superseded = true
		logging.FromContext(ctx).Debug().Uint64("token", prev.id).Msg("transition superseded")
	}
	a.inflight = token

	var at entity.Point
	if origin != nil {
		at = *origin
	}
	vt.OnReady(func() {
		if token.superseded || origin == nil || !a.attached() {
			return
		}
		radius := service.RevealRadius(at, a.surface.Viewport())
		vt.Animate(port.RevealAnimation{
			ClipPath:      service.RevealKeyframes(at, radius),
			Duration:      RevealDuration,
			Easing:        RevealEasing,
			PseudoElement: RevealPseudoElement,
		})
	})
	vt.OnFinished(func() {
		if a.inflight == token {
			a.inflight = nil
		}
	})
	return true
}

// mutate clears the previous marker and writes the current target.
func (a *Applier) mutate() {
	scheme := a.target
	switch a.cfg.Mode {
	case ModeAttribute:
		a.surface.SetAttribute(a.cfg.Attribute, string(scheme))
	default:
		a.surface.RemoveClass(string(entity.SchemeLight), string(entity.SchemeDark))
		a.surface.AddClass(string(scheme))
	}
	if a.cfg.ColorSchemeHint {
		a.surface.SetColorScheme(scheme)
	}
	a.applied = scheme
	a.mutations++
}

// Close cancels the pending suppression removal and, when the surface is
// still attached, removes the rule right away. Updates of transitions that
// already started no longer touch the surface.
func (a *Applier) Close() {
	a.closed = true
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
		a.removeSuppression()
	}
	if a.inflight != nil {
		a.inflight.superseded = true
		a.inflight = nil
	}
}
