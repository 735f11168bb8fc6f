// Package theme is the controller that keeps the declared preference, the
// ambient signal and the render surface in sync.
package theme

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/application/usecase"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/domain/service"
	"github.com/bnema/themesync/internal/logging"
	"github.com/bnema/themesync/internal/ui/mainloop"
	"github.com/bnema/themesync/internal/ui/surface"
)

var (
	// ErrLocked is returned by SetPreference while a forced scheme is configured.
	ErrLocked = errors.New("theme: preference is locked by a forced scheme")
	// ErrInvalidPreference is returned for values outside light, dark and system.
	ErrInvalidPreference = errors.New("theme: invalid preference")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("theme: manager closed")
)

const ambientTaskKey = "ambient"

// stateKey is the comparable part of a ThemeState.
type stateKey struct {
	declared entity.Preference
	ambient  entity.Scheme
	resolved entity.Scheme
	forced   entity.Scheme
}

// Deps are the collaborators of a Manager.
type Deps struct {
	Store *usecase.PreferenceStore
	// Ambient may be nil when the environment has no ambient signal.
	Ambient port.AmbientMonitor
	// Surface may be nil before a render surface exists.
	Surface port.RenderSurface
	// Transitions is the native capability, or nil.
	Transitions port.TransitionCapability
	Scheduler   port.Scheduler
}

// Manager owns the theme state of one render surface. Methods other than
// State and OnChange must be called from the scheduler's loop.
type Manager struct {
	ctx       context.Context
	cfg       Config
	store     *usecase.PreferenceStore
	ambient   port.AmbientMonitor
	applier   *surface.Applier
	coalescer *mainloop.Coalescer

	mu        sync.RWMutex
	declared  entity.Preference
	ambientV  entity.Scheme
	resolved  entity.Scheme
	forced    entity.Scheme
	listeners map[uint64]func(entity.ThemeState)
	nextID    uint64
	notified  stateKey

	sub     port.Subscription
	mounted bool
	closed  bool
}

// NewManager performs the first phase of initialization: it loads the
// declared preference, reads the ambient signal once and applies the
// resolved scheme without animation.
func NewManager(ctx context.Context, cfg Config, deps Deps) (*Manager, error) {
	if deps.Scheduler == nil {
		return nil, fmt.Errorf("theme: scheduler is required")
	}
	if cfg.StorageKey == "" {
		return nil, fmt.Errorf("theme: storage key is required")
	}
	if !cfg.DefaultPreference.Valid() {
		cfg.DefaultPreference = entity.PreferenceSystem
	}
	if !cfg.Forced.Valid() {
		cfg.Forced = ""
	}
	store := deps.Store
	if store == nil {
		store = usecase.NewPreferenceStore(nil, nil)
	}

	ctx = logging.WithComponent(ctx, "theme")
	ctx = logging.WithStorageKey(ctx, cfg.StorageKey)

	m := &Manager{
		ctx:       ctx,
		cfg:       cfg,
		store:     store,
		ambient:   deps.Ambient,
		applier:   surface.NewApplier(deps.Surface, surface.SelectTransitions(cfg.AnimatedTransition, deps.Transitions), deps.Scheduler, cfg.Surface),
		coalescer: mainloop.NewCoalescer(deps.Scheduler.Post),
		forced:    cfg.Forced,
		listeners: make(map[uint64]func(entity.ThemeState)),
	}

	declared := store.Load(ctx, cfg.StorageKey, cfg.DefaultPreference)
	var ambient entity.Scheme
	if m.ambient != nil {
		ambient = m.ambient.Current()
	}
	resolved := service.ResolveScheme(declared, ambient, m.forced)

	m.mu.Lock()
	m.declared = declared
	m.ambientV = ambient
	m.resolved = resolved
	m.notified = m.keyLocked()
	m.mu.Unlock()

	m.applier.Apply(ctx, resolved, surface.Options{SuppressTransitions: cfg.SuppressTransitions})
	m.mirror(ctx, resolved)

	logging.FromContext(ctx).Debug().
		Str("declared", string(declared)).
		Str("ambient", string(ambient)).
		Str("resolved", string(resolved)).
		Str("forced", string(m.forced)).
		Str("transitions", m.applier.Capability()).
		Msg("theme manager initialized")

	return m, nil
}

// Mount performs the second phase: the surface is confirmed mounted, so the
// manager starts tracking the ambient signal and accepts animated changes.
func (m *Manager) Mount(ctx context.Context) error {
	if m.closed {
		return ErrClosed
	}
	if m.mounted {
		return nil
	}
	m.mounted = true

	if m.ambient != nil {
		m.updateAmbient(ctx, m.ambient.Current())
	}
	m.syncSubscription()
	return nil
}

// Mounted reports whether Mount has run.
func (m *Manager) Mounted() bool { return m.mounted }

// State returns a snapshot of the theme state. Safe from any goroutine.
// Ambient is the last value the manager observed: it is refreshed on Mount,
// on every tracked change and whenever the declared preference switches to
// system, but not while the preference is binary or the manager unmounted.
func (m *Manager) State() entity.ThemeState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stateLocked()
}

func (m *Manager) keyLocked() stateKey {
	return stateKey{declared: m.declared, ambient: m.ambientV, resolved: m.resolved, forced: m.forced}
}

func (m *Manager) stateLocked() entity.ThemeState {
	return entity.ThemeState{
		Declared:  m.declared,
		Resolved:  m.resolved,
		Ambient:   m.ambientV,
		Available: entity.AvailablePreferences(),
		Forced:    m.forced,
	}
}

// SetPreference changes the declared preference. origin anchors the
// circular reveal when animated transitions are enabled; nil cross-fades.
func (m *Manager) SetPreference(ctx context.Context, p entity.Preference, origin *entity.Point) error {
	if m.closed {
		return ErrClosed
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPreference, string(p))
	}

	m.mu.Lock()
	if m.forced.Valid() {
		m.mu.Unlock()
		return ErrLocked
	}
	if p == m.declared {
		m.mu.Unlock()
		return nil
	}
	m.declared = p
	m.mu.Unlock()

	m.store.Save(ctx, m.cfg.StorageKey, p)

	m.syncSubscription()
	if p.FollowsAmbient() && m.ambient != nil {
		m.mu.Lock()
		m.ambientV = m.ambient.Current()
		m.mu.Unlock()
	}

	m.resolve(ctx, surface.Options{
		Origin:              origin,
		SuppressTransitions: m.cfg.SuppressTransitions,
		Animated:            m.mounted && m.cfg.AnimatedTransition,
	})
	return nil
}

// Reload re-reads the declared preference from storage, picking up values
// written by another process. Storage is never written.
func (m *Manager) Reload(ctx context.Context) {
	if m.closed {
		return
	}
	p := m.store.Load(ctx, m.cfg.StorageKey, m.cfg.DefaultPreference)

	m.mu.Lock()
	if p == m.declared {
		m.mu.Unlock()
		return
	}
	m.declared = p
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("declared", string(p)).Msg("stored preference changed")

	m.syncSubscription()
	if p.FollowsAmbient() && m.ambient != nil {
		m.mu.Lock()
		m.ambientV = m.ambient.Current()
		m.mu.Unlock()
	}
	m.resolve(ctx, surface.Options{
		SuppressTransitions: m.cfg.SuppressTransitions,
		Animated:            m.mounted && m.cfg.AnimatedTransition,
	})
}

// SetForced installs or clears the forced scheme. An invalid scheme clears it.
func (m *Manager) SetForced(ctx context.Context, forced entity.Scheme) {
	if m.closed {
		return
	}
	if !forced.Valid() {
		forced = ""
	}

	m.mu.Lock()
	if forced == m.forced {
		m.mu.Unlock()
		return
	}
	m.forced = forced
	m.mu.Unlock()

	m.syncSubscription()
	if m.ambient != nil && m.sub != nil {
		m.mu.Lock()
		m.ambientV = m.ambient.Current()
		m.mu.Unlock()
	}
	m.resolve(ctx, surface.Options{SuppressTransitions: m.cfg.SuppressTransitions})
}

// OnChange registers fn for state changes. The returned function removes it.
func (m *Manager) OnChange(fn func(entity.ThemeState)) func() {
	if fn == nil {
		return func() {}
	}
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// Applier exposes the surface applier, for inspection.
func (m *Manager) Applier() *surface.Applier { return m.applier }

// Tracking reports whether the manager holds an ambient subscription.
func (m *Manager) Tracking() bool { return m.sub != nil }

// Close releases the ambient subscription and pending work. It is idempotent.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	if m.sub != nil {
		m.ambient.Unsubscribe(m.sub)
		m.sub = nil
	}
	m.coalescer.Destroy()
	m.applier.Close()

	m.mu.Lock()
	clear(m.listeners)
	m.mu.Unlock()
	return nil
}

// syncSubscription holds an ambient subscription exactly while the resolved
// scheme depends on it.
func (m *Manager) syncSubscription() {
	m.mu.RLock()
	want := m.mounted && !m.closed && m.cfg.AmbientTracking && m.ambient != nil &&
		m.declared.FollowsAmbient() && !m.forced.Valid()
	m.mu.RUnlock()

	switch {
	case want && m.sub == nil:
		m.sub = m.ambient.Subscribe(m.postAmbient)
		logging.FromContext(m.ctx).Debug().Msg("tracking ambient scheme")
	case !want && m.sub != nil:
		m.ambient.Unsubscribe(m.sub)
		m.sub = nil
		logging.FromContext(m.ctx).Debug().Msg("stopped tracking ambient scheme")
	}
}

// postAmbient runs on the notifier's goroutine. Bursts are merged so only
// the latest value reaches the loop.
func (m *Manager) postAmbient(scheme entity.Scheme) {
	m.coalescer.Post(ambientTaskKey, func() {
		if m.closed {
			return
		}
		m.updateAmbient(m.ctx, scheme)
	})
}

func (m *Manager) updateAmbient(ctx context.Context, scheme entity.Scheme) {
	if !scheme.Valid() {
		return
	}
	m.mu.Lock()
	if scheme == m.ambientV {
		m.mu.Unlock()
		return
	}
	m.ambientV = scheme
	m.mu.Unlock()

	m.resolve(ctx, surface.Options{SuppressTransitions: m.cfg.SuppressTransitions})
}

// resolve recomputes the resolved scheme and applies it when it changed.
// Listeners hear about any change of the state, including declared-only ones.
func (m *Manager) resolve(ctx context.Context, opts surface.Options) {
	m.mu.Lock()
	next := service.ResolveScheme(m.declared, m.ambientV, m.forced)
	changed := next != m.resolved
	m.resolved = next
	state := m.stateLocked()
	key := m.keyLocked()
	notify := key != m.notified
	m.notified = key
	listeners := make([]func(entity.ThemeState), 0, len(m.listeners))
	ids := make([]uint64, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, m.listeners[id])
	}
	m.mu.Unlock()

	if changed {
		logging.FromContext(ctx).Debug().
			Str("declared", string(state.Declared)).
			Str("ambient", string(state.Ambient)).
			Str("resolved", string(next)).
			Msg("resolved scheme changed")
		m.applier.Apply(ctx, next, opts)
		m.mirror(ctx, next)
	}

	if !notify {
		return
	}
	for _, fn := range listeners {
		fn(state)
	}
}

func (m *Manager) mirror(ctx context.Context, scheme entity.Scheme) {
	if !m.cfg.SecondaryChannel {
		return
	}
	m.store.Mirror(ctx, m.cfg.SecondaryName, scheme)
}
