package colorscheme

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDetector implements port.ColorSchemeDetector for testing.
type mockDetector struct {
	mu          sync.Mutex
	name        string
	priority    int
	available   bool
	prefersDark bool
	detectOk    bool
}

func (m *mockDetector) Name() string    { return m.name }
func (m *mockDetector) Priority() int   { return m.priority }
func (m *mockDetector) Available() bool { return m.available }
func (m *mockDetector) Detect() (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefersDark, m.detectOk
}

func (m *mockDetector) setDark(dark bool) {
	m.mu.Lock()
	m.prefersDark = dark
	m.mu.Unlock()
}

// fakeNotifier records registrations and lets tests fire signals.
type fakeNotifier struct {
	starts   int
	stops    int
	startErr error
	onSignal func()
}

func (f *fakeNotifier) Name() string { return "fake" }

func (f *fakeNotifier) Start(onSignal func()) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.starts++
	f.onSignal = onSignal
	return nil
}

func (f *fakeNotifier) Stop() error {
	f.stops++
	f.onSignal = nil
	return nil
}

func (f *fakeNotifier) fire() {
	if f.onSignal != nil {
		f.onSignal()
	}
}

func TestMonitor_DetectorPriority(t *testing.T) {
	low := &mockDetector{name: "low", priority: 10, available: true, prefersDark: true, detectOk: true}
	high := &mockDetector{name: "high", priority: 100, available: true, prefersDark: false, detectOk: true}

	// Register low first, high second (order shouldn't matter)
	m := NewMonitor(context.Background(), nil, low, high)

	assert.Equal(t, entity.SchemeLight, m.Current())
	assert.Equal(t, "high", m.Source())
}

func TestMonitor_SkipsUnavailableAndFailedDetectors(t *testing.T) {
	m := NewMonitor(context.Background(), nil,
		&mockDetector{name: "unavailable", priority: 100, available: false, detectOk: true},
		&mockDetector{name: "failing", priority: 50, available: true, detectOk: false},
		&mockDetector{name: "working", priority: 10, available: true, prefersDark: true, detectOk: true},
	)

	assert.Equal(t, entity.SchemeDark, m.Current())
	assert.Equal(t, "working", m.Source())
}

func TestMonitor_FallbackIsLight(t *testing.T) {
	m := NewMonitor(context.Background(), nil)

	assert.Equal(t, entity.SchemeLight, m.Current())
	assert.Equal(t, "fallback", m.Source())
}

func TestMonitor_SingleRegistrationForManySubscribers(t *testing.T) {
	notifier := &fakeNotifier{}
	m := NewMonitor(context.Background(), notifier,
		&mockDetector{name: "d", priority: 1, available: true, detectOk: true})

	a := m.Subscribe(func(entity.Scheme) {})
	b := m.Subscribe(func(entity.Scheme) {})
	assert.Equal(t, 1, notifier.starts)
	assert.Equal(t, 2, m.Subscribers())
	assert.NotEqual(t, a.ID(), b.ID())

	m.Unsubscribe(a)
	assert.Equal(t, 0, notifier.stops)
	assert.True(t, m.Listening())

	m.Unsubscribe(b)
	assert.Equal(t, 1, notifier.stops)
	assert.False(t, m.Listening())

	// Unknown or repeated handles are ignored.
	m.Unsubscribe(b)
	m.Unsubscribe(nil)
	assert.Equal(t, 1, notifier.stops)
}

func TestMonitor_NotifiesOnlyOnChange(t *testing.T) {
	notifier := &fakeNotifier{}
	detector := &mockDetector{name: "d", priority: 1, available: true, detectOk: true}
	m := NewMonitor(context.Background(), notifier, detector)

	var got []entity.Scheme
	m.Subscribe(func(s entity.Scheme) { got = append(got, s) })

	notifier.fire()
	assert.Empty(t, got, "unchanged ambient must not notify")

	detector.setDark(true)
	notifier.fire()
	notifier.fire()
	assert.Equal(t, []entity.Scheme{entity.SchemeDark}, got)

	detector.setDark(false)
	notifier.fire()
	assert.Equal(t, []entity.Scheme{entity.SchemeDark, entity.SchemeLight}, got)
}

func TestMonitor_UnsubscribedCallbackNotCalled(t *testing.T) {
	notifier := &fakeNotifier{}
	detector := &mockDetector{name: "d", priority: 1, available: true, detectOk: true}
	m := NewMonitor(context.Background(), notifier, detector)

	calls := 0
	keep := m.Subscribe(func(entity.Scheme) {})
	drop := m.Subscribe(func(entity.Scheme) { calls++ })
	m.Unsubscribe(drop)

	detector.setDark(true)
	notifier.fire()
	assert.Equal(t, 0, calls)
	m.Unsubscribe(keep)
}

func TestMonitor_NotifierStartFailureDegrades(t *testing.T) {
	notifier := &fakeNotifier{startErr: errors.New("no inotify")}
	detector := &mockDetector{name: "d", priority: 1, available: true, prefersDark: true, detectOk: true}
	m := NewMonitor(context.Background(), notifier, detector)

	sub := m.Subscribe(func(entity.Scheme) {})
	require.NotNil(t, sub)
	assert.False(t, m.Listening())
	assert.Equal(t, entity.SchemeDark, m.Current())
}

// gatedNotifier blocks in Start until release is closed.
type gatedNotifier struct {
	mu      sync.Mutex
	entered chan struct{}
	release chan struct{}
	running bool
	starts  int
}

func newGatedNotifier() *gatedNotifier {
	return &gatedNotifier{entered: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gatedNotifier) Name() string { return "gated" }

func (g *gatedNotifier) Start(func()) error {
	select {
	case g.entered <- struct{}{}:
	default:
	}
	<-g.release

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return errors.New("already started")
	}
	g.running = true
	g.starts++
	return nil
}

func (g *gatedNotifier) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = false
	return nil
}

func (g *gatedNotifier) isRunning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

func TestMonitor_UnsubscribeDuringSlowStart(t *testing.T) {
	n := newGatedNotifier()
	m := NewMonitor(context.Background(), n)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		m.Subscribe(func(entity.Scheme) {})
	}()
	<-n.entered

	go func() {
		defer wg.Done()
		m.Unsubscribe(m.Subscribe(func(entity.Scheme) {}))
	}()
	go func() {
		defer wg.Done()
		m.Unsubscribe(&subscription{id: 1})
	}()

	// The first subscriber is gone and the second is waiting on the lifecycle.
	require.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return len(m.subs) == 1 && m.subs[0].id == 2
	}, time.Second, time.Millisecond)
	close(n.release)
	wg.Wait()

	assert.Equal(t, 0, m.Subscribers())
	assert.False(t, m.Listening())
	assert.False(t, n.isRunning(), "notifier must stop with the last subscriber")

	// A later subscriber restarts the notifier.
	sub := m.Subscribe(func(entity.Scheme) {})
	assert.True(t, m.Listening())
	assert.True(t, n.isRunning())
	m.Unsubscribe(sub)
	assert.False(t, n.isRunning())
}

func TestMonitor_ConcurrentAccess(_ *testing.T) {
	notifier := &fakeNotifier{}
	m := NewMonitor(context.Background(), notifier,
		&mockDetector{name: "d", priority: 1, available: true, detectOk: true})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				m.Current()
				m.Refresh()
			}
			m.RegisterDetector(&mockDetector{name: "concurrent", priority: id, available: true, detectOk: true})
		}(i)
	}
	wg.Wait()
}

func TestMonitor_ImplementsInterface(t *testing.T) {
	var _ port.AmbientMonitor = NewMonitor(context.Background(), nil)
}
