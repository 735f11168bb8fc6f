// Package colorscheme tracks the environment's ambient light/dark signal.
package colorscheme

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/logging"
)

// subscription wraps a callback to enable pointer comparison for removal.
type subscription struct {
	id uint64
	fn func(entity.Scheme)
}

func (s *subscription) ID() uint64 { return s.id }

// Monitor implements port.AmbientMonitor over a priority-ordered detector
// chain. Logical subscribers fan out from a single notifier registration
// that is started by the first subscriber and stopped with the last.
type Monitor struct {
	ctx       context.Context
	mu        sync.Mutex
	lifecycle sync.Mutex
	detectors []port.ColorSchemeDetector
	notifier  port.ChangeNotifier
	subs      []*subscription
	nextID    uint64
	last      entity.Scheme
	listening bool
}

// NewMonitor creates a monitor. notifier may be nil, in which case the
// monitor supports Current but never reports changes.
func NewMonitor(ctx context.Context, notifier port.ChangeNotifier, detectors ...port.ColorSchemeDetector) *Monitor {
	m := &Monitor{
		ctx:      logging.WithComponent(ctx, "ambient"),
		notifier: notifier,
	}
	for _, d := range detectors {
		m.RegisterDetector(d)
	}
	return m
}

// RegisterDetector adds a detector. Safe to call at any time.
func (m *Monitor) RegisterDetector(detector port.ColorSchemeDetector) {
	if detector == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detectors = append(m.detectors, detector)
	sort.SliceStable(m.detectors, func(i, j int) bool {
		return m.detectors[i].Priority() > m.detectors[j].Priority()
	})
}

// Current implements port.AmbientMonitor.
func (m *Monitor) Current() entity.Scheme {
	m.mu.Lock()
	detectors := make([]port.ColorSchemeDetector, len(m.detectors))
	copy(detectors, m.detectors)
	m.mu.Unlock()

	scheme, _ := detect(detectors)
	return scheme
}

// Source returns the name of the detector that currently answers, or
// "fallback" when none does.
func (m *Monitor) Source() string {
	m.mu.Lock()
	detectors := make([]port.ColorSchemeDetector, len(m.detectors))
	copy(detectors, m.detectors)
	m.mu.Unlock()

	_, source := detect(detectors)
	return source
}

// detect queries detectors in priority order and falls back to light.
func detect(detectors []port.ColorSchemeDetector) (entity.Scheme, string) {
	for _, detector := range detectors {
		if !detector.Available() {
			continue
		}
		if prefersDark, ok := detector.Detect(); ok {
			return entity.SchemeFromDark(prefersDark), detector.Name()
		}
	}
	return entity.SchemeFallback, "fallback"
}

// Subscribe implements port.AmbientMonitor.
func (m *Monitor) Subscribe(onChange func(entity.Scheme)) port.Subscription {
	m.mu.Lock()
	m.nextID++
	sub := &subscription{id: m.nextID, fn: onChange}
	m.subs = append(m.subs, sub)
	m.mu.Unlock()

	m.syncNotifier()
	return sub
}

// syncNotifier starts or stops the notifier so that it runs exactly while
// there are subscribers. lifecycle is held across Start and Stop, and the
// subscriber count is read after it is acquired.
func (m *Monitor) syncNotifier() {
	if m.notifier == nil {
		return
	}
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	log := logging.FromContext(m.ctx)

	m.mu.Lock()
	want := len(m.subs) > 0
	listening := m.listening
	if want && !listening {
		m.last = m.currentLocked()
	}
	m.mu.Unlock()

	switch {
	case want && !listening:
		if err := m.notifier.Start(m.handleSignal); err != nil {
			// The environment cannot report changes; Current keeps working.
			log.Debug().Err(err).Str("notifier", m.notifier.Name()).Msg("ambient change notifications unavailable")
			return
		}
		m.setListening(true)
		log.Debug().Str("notifier", m.notifier.Name()).Msg("ambient subscription started")
	case !want && listening:
		m.setListening(false)
		if err := m.notifier.Stop(); err != nil {
			log.Debug().Err(err).Msg("failed to stop ambient notifier")
		}
		log.Debug().Msg("ambient subscription stopped")
	}
}

func (m *Monitor) setListening(v bool) {
	m.mu.Lock()
	m.listening = v
	m.mu.Unlock()
}

func (m *Monitor) currentLocked() entity.Scheme {
	scheme, _ := detect(m.detectors)
	return scheme
}

// Unsubscribe implements port.AmbientMonitor.
func (m *Monitor) Unsubscribe(handle port.Subscription) {
	if handle == nil {
		return
	}
	m.mu.Lock()
	for i, sub := range m.subs {
		if sub.id == handle.ID() {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.syncNotifier()
}

// Subscribers returns the number of logical subscribers.
func (m *Monitor) Subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

// Listening reports whether the underlying notifier is registered.
func (m *Monitor) Listening() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listening
}

// Refresh re-reads the detectors and notifies subscribers if the ambient
// scheme changed since the last read.
func (m *Monitor) Refresh() entity.Scheme {
	m.mu.Lock()
	scheme := m.currentLocked()
	if scheme == m.last {
		m.mu.Unlock()
		return scheme
	}
	m.last = scheme
	// Copy subscribers to avoid holding lock during callback invocation
	subs := make([]*subscription, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	logging.FromContext(m.ctx).Debug().Str("scheme", string(scheme)).Msg("ambient scheme changed")
	for _, sub := range subs {
		sub.fn(scheme)
	}
	return scheme
}

func (m *Monitor) handleSignal() {
	m.Refresh()
}

var _ port.AmbientMonitor = (*Monitor)(nil)
