package surface

import (
	"github.com/bnema/themesync/internal/application/port"
)

// DocumentTransitions is a native view-transition capability for Document.
// It follows the browser lifecycle on the scheduler: the update callback
// runs on the next loop task, "ready" fires right after it, and "finished"
// fires on the following tick. Starting a new transition skips the active one.
type DocumentTransitions struct {
	doc       *Document
	scheduler port.Scheduler
	active    *DocumentTransition
	started   []*DocumentTransition
}

// NewDocumentTransitions creates the capability.
func NewDocumentTransitions(doc *Document, scheduler port.Scheduler) *DocumentTransitions {
	return &DocumentTransitions{doc: doc, scheduler: scheduler}
}

// Name implements port.TransitionCapability.
func (*DocumentTransitions) Name() string { return "native" }

// Start implements port.TransitionCapability.
func (c *DocumentTransitions) Start(update func()) (port.ViewTransition, bool) {
	if prev := c.active; prev != nil {
		prev.skip()
	}

	t := &DocumentTransition{owner: c, update: update, old: c.doc.snapshot()}
	c.active = t
	c.started = append(c.started, t)

	c.scheduler.Post(func() {
		if t.skipped {
			return
		}
		t.runUpdate()
		t.markReady()
		c.scheduler.Defer(t.finish)
	})
	return t, true
}

// Transitions returns every transition started so far.
func (c *DocumentTransitions) Transitions() []*DocumentTransition {
	return c.started
}

// DocumentTransition is one transition started on a Document.
type DocumentTransition struct {
	owner      *DocumentTransitions
	update     func()
	updated    bool
	ready      bool
	finished   bool
	skipped    bool
	old        Snapshot
	onReady    []func()
	onFinished []func()
	animations []port.RevealAnimation
}

func (t *DocumentTransition) runUpdate() {
	if t.updated {
		return
	}
	t.updated = true
	if t.update != nil {
		t.update()
	}
}

func (t *DocumentTransition) markReady() {
	t.ready = true
	callbacks := t.onReady
	t.onReady = nil
	for _, fn := range callbacks {
		fn()
	}
}

func (t *DocumentTransition) finish() {
	if t.finished {
		return
	}
	t.finished = true
	if t.owner.active == t {
		t.owner.active = nil
	}
	callbacks := t.onFinished
	t.onFinished = nil
	for _, fn := range callbacks {
		fn()
	}
}

// skip aborts the visual effect. The update still runs so the DOM change
// is never lost; "ready" never fires for a transition skipped before it.
func (t *DocumentTransition) skip() {
	if t.finished {
		return
	}
	t.skipped = true
	t.runUpdate()
	t.onReady = nil
	t.finish()
}

// OnReady implements port.ViewTransition.
func (t *DocumentTransition) OnReady(fn func()) {
	if t.skipped {
		return
	}
	if t.ready {
		fn()
		return
	}
	t.onReady = append(t.onReady, fn)
}

// OnFinished implements port.ViewTransition.
func (t *DocumentTransition) OnFinished(fn func()) {
	if t.finished {
		fn()
		return
	}
	t.onFinished = append(t.onFinished, fn)
}

// Animate implements port.ViewTransition.
func (t *DocumentTransition) Animate(anim port.RevealAnimation) {
	if t.skipped || t.finished {
		return
	}
	t.animations = append(t.animations, anim)
}

// Skip implements port.ViewTransition.
func (t *DocumentTransition) Skip() { t.skip() }

// Animations returns the animations driven on this transition.
func (t *DocumentTransition) Animations() []port.RevealAnimation { return t.animations }

// Skipped reports whether the transition was aborted.
func (t *DocumentTransition) Skipped() bool { return t.skipped }

// Old returns the pre-mutation snapshot.
func (t *DocumentTransition) Old() Snapshot { return t.old }

var _ port.TransitionCapability = (*DocumentTransitions)(nil)
