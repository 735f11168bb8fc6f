package webkit

import (
	"fmt"
	"strings"

	"github.com/bnema/themesync/internal/application/port"
)

const (
	startTransitionScript = `(function() {
  var update = function() {
%[2]s
  };
  if (typeof document.startViewTransition !== 'function') {
    update();
    return;
  }
  window.__themesyncTransition = { id: %[1]d, t: document.startViewTransition(update) };
})();`

	animateTransitionScript = `(function() {
  var vt = window.__themesyncTransition;
  if (!vt || vt.id !== %[1]d) return;
  vt.t.ready.then(function() {
    document.documentElement.animate(
      { clipPath: [%[2]s, %[3]s] },
      { duration: %[4]d, easing: %[5]s, pseudoElement: %[6]s }
    );
  });
})();`

	skipTransitionScript = `(function() {
  var vt = window.__themesyncTransition;
  if (vt && vt.id === %d) vt.t.skipTransition();
})();`
)

// ScriptTransitions is the native view-transition capability of a web view.
// The update runs inside document.startViewTransition, and reveal animations
// chain on the page transition's ready promise. Pages without the API apply
// the update directly. The Go-side lifecycle runs on the scheduler: ready
// follows the start script on the same task, finished comes a tick later.
type ScriptTransitions struct {
	surface   *ScriptSurface
	scheduler port.Scheduler
	active    *ScriptTransition
	nextID    int
}

// NewScriptTransitions creates the capability for surface.
func NewScriptTransitions(surface *ScriptSurface, scheduler port.Scheduler) *ScriptTransitions {
	return &ScriptTransitions{surface: surface, scheduler: scheduler}
}

// Name implements port.TransitionCapability.
func (*ScriptTransitions) Name() string { return "native" }

// Start implements port.TransitionCapability.
func (c *ScriptTransitions) Start(update func()) (port.ViewTransition, bool) {
	if c.surface == nil || !c.surface.Attached() {
		return nil, false
	}
	if prev := c.active; prev != nil {
		prev.Skip()
	}

	c.nextID++
	t := &ScriptTransition{id: c.nextID, owner: c, update: update}
	c.active = t

	c.scheduler.Post(func() {
		if t.skipped {
			return
		}
		t.begin()
		t.markReady()
		c.scheduler.Defer(t.finish)
	})
	return t, true
}

// ScriptTransition is one transition started in the page.
type ScriptTransition struct {
	id         int
	owner      *ScriptTransitions
	update     func()
	started    bool
	ready      bool
	finished   bool
	skipped    bool
	onReady    []func()
	onFinished []func()
	animations []port.RevealAnimation
}

func (t *ScriptTransition) runUpdate() {
	if t.update != nil {
		t.update()
		t.update = nil
	}
}

func (t *ScriptTransition) begin() {
	body := t.owner.surface.collect(t.runUpdate)
	t.started = true
	t.owner.surface.run(fmt.Sprintf(startTransitionScript, t.id, indent(body)))
}

func (t *ScriptTransition) markReady() {
	t.ready = true
	callbacks := t.onReady
	t.onReady = nil
	for _, fn := range callbacks {
		fn()
	}
}

func (t *ScriptTransition) finish() {
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

// OnReady implements port.ViewTransition.
func (t *ScriptTransition) OnReady(fn func()) {
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
func (t *ScriptTransition) OnFinished(fn func()) {
	if t.finished {
		fn()
		return
	}
	t.onFinished = append(t.onFinished, fn)
}

// Animate implements port.ViewTransition.
func (t *ScriptTransition) Animate(anim port.RevealAnimation) {
	if t.skipped || t.finished || !t.started {
		return
	}
	t.animations = append(t.animations, anim)
	t.owner.surface.run(fmt.Sprintf(animateTransitionScript,
		t.id,
		jsString(anim.ClipPath[0]),
		jsString(anim.ClipPath[1]),
		anim.Duration.Milliseconds(),
		jsString(anim.Easing),
		jsString(anim.PseudoElement),
	))
}

// Skip implements port.ViewTransition. An update that has not reached the
// page yet is applied directly.
func (t *ScriptTransition) Skip() {
	if t.skipped || t.finished {
		return
	}
	t.skipped = true
	if t.started {
		t.owner.surface.run(fmt.Sprintf(skipTransitionScript, t.id))
	} else {
		t.runUpdate()
	}
	t.finish()
}

// Animations returns the reveal animations sent to the page.
func (t *ScriptTransition) Animations() []port.RevealAnimation { return t.animations }

// Skipped reports whether the transition was skipped.
func (t *ScriptTransition) Skipped() bool { return t.skipped }

func indent(body string) string {
	if body == "" {
		return ""
	}
	return "    " + strings.ReplaceAll(body, "\n", "\n    ")
}

var (
	_ port.TransitionCapability = (*ScriptTransitions)(nil)
	_ port.ViewTransition       = (*ScriptTransition)(nil)
)
