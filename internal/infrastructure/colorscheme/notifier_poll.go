package colorscheme

import (
	"errors"
	"sync"
	"time"
)

// DefaultPollInterval is how often the legacy listener re-reads detectors.
const DefaultPollInterval = 5 * time.Second

// PollNotifier is the legacy listener-based registration: it signals on a
// fixed interval and lets the monitor decide whether anything changed.
type PollNotifier struct {
	interval time.Duration
	mu       sync.Mutex
	stop     chan struct{}
	done     chan struct{}
}

// NewPollNotifier creates a notifier firing every interval.
func NewPollNotifier(interval time.Duration) *PollNotifier {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollNotifier{interval: interval}
}

// Name implements port.ChangeNotifier.
func (*PollNotifier) Name() string { return "poll" }

// Start implements port.ChangeNotifier.
func (n *PollNotifier) Start(onSignal func()) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stop != nil {
		return errors.New("poll notifier already started")
	}
	n.stop = make(chan struct{})
	n.done = make(chan struct{})
	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				onSignal()
			}
		}
	}(n.stop, n.done)
	return nil
}

// Stop implements port.ChangeNotifier.
func (n *PollNotifier) Stop() error {
	n.mu.Lock()
	stop, done := n.stop, n.done
	n.stop, n.done = nil, nil
	n.mu.Unlock()

	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return nil
}
