package webkit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/domain/entity"
	"github.com/bnema/themesync/internal/logging"
)

const (
	removeClassScript = `document.documentElement.classList.remove(%s);`
	addClassScript    = `document.documentElement.classList.add(%s);`
	setAttrScript     = `document.documentElement.setAttribute(%s, %s);`
	colorSchemeScript = `document.documentElement.style.colorScheme = %s;`
	recalcScript      = `void window.getComputedStyle(document.documentElement).color;`

	insertStyleScript = `(function() {
  var s = document.getElementById(%[1]s);
  if (!s) {
    s = document.createElement('style');
    s.id = %[1]s;
    (document.head || document.documentElement).appendChild(s);
  }
  s.textContent = %[2]s;
})();`

	removeStyleScript = `(function() {
  var s = document.getElementById(%s);
  if (s && s.parentNode) s.parentNode.removeChild(s);
})();`
)

// ScriptSurface is a render surface backed by a web view. Every mutation is
// sent to the evaluator as a script. Installed style ids are tracked locally
// so HasStyle never round-trips.
type ScriptSurface struct {
	eval   port.ScriptEvaluator
	logger zerolog.Logger

	mu       sync.Mutex
	styles   map[string]struct{}
	viewport entity.Viewport
	detached bool
	failures int
	captured *[]string
}

// NewScriptSurface creates a surface over eval. A nil evaluator yields a
// detached surface.
func NewScriptSurface(ctx context.Context, eval port.ScriptEvaluator, vp entity.Viewport) *ScriptSurface {
	return &ScriptSurface{
		eval:     eval,
		logger:   logging.FromContext(ctx).With().Str("surface", "webview").Logger(),
		styles:   make(map[string]struct{}),
		viewport: vp,
		detached: eval == nil,
	}
}

func (s *ScriptSurface) run(script string) {
	s.mu.Lock()
	detached := s.detached
	if !detached && s.captured != nil {
		*s.captured = append(*s.captured, script)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	if detached {
		return
	}
	if err := s.eval.EvaluateScript(script); err != nil {
		s.mu.Lock()
		s.failures++
		s.mu.Unlock()
		s.logger.Debug().Err(err).Msg("script evaluation failed")
	}
}

// collect runs fn and returns the scripts it produced instead of sending
// them, so they can be wrapped in a single page-side callback.
func (s *ScriptSurface) collect(fn func()) string {
	var scripts []string
	s.mu.Lock()
	s.captured = &scripts
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.captured = nil
		s.mu.Unlock()
	}()
	fn()
	return strings.Join(scripts, "\n")
}

// Attached implements port.RenderSurface.
func (s *ScriptSurface) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.detached
}

// Detach marks the web view as gone.
func (s *ScriptSurface) Detach() {
	s.mu.Lock()
	s.detached = true
	s.mu.Unlock()
}

// Failures returns how many scripts the web view rejected.
func (s *ScriptSurface) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// RemoveClass implements port.RenderSurface.
func (s *ScriptSurface) RemoveClass(names ...string) {
	if len(names) == 0 {
		return
	}
	args := jsString(names[0])
	for _, n := range names[1:] {
		args += ", " + jsString(n)
	}
	s.run(fmt.Sprintf(removeClassScript, args))
}

// AddClass implements port.RenderSurface.
func (s *ScriptSurface) AddClass(name string) {
	s.run(fmt.Sprintf(addClassScript, jsString(name)))
}

// SetAttribute implements port.RenderSurface.
func (s *ScriptSurface) SetAttribute(name, value string) {
	s.run(fmt.Sprintf(setAttrScript, jsString(name), jsString(value)))
}

// SetColorScheme implements port.RenderSurface.
func (s *ScriptSurface) SetColorScheme(scheme entity.Scheme) {
	s.run(fmt.Sprintf(colorSchemeScript, jsString(string(scheme))))
}

// InsertStyle implements port.RenderSurface.
func (s *ScriptSurface) InsertStyle(id, css string) {
	if !s.Attached() {
		return
	}
	s.run(fmt.Sprintf(insertStyleScript, jsString(id), jsString(css)))
	s.mu.Lock()
	s.styles[id] = struct{}{}
	s.mu.Unlock()
}

// RemoveStyle implements port.RenderSurface.
func (s *ScriptSurface) RemoveStyle(id string) {
	s.run(fmt.Sprintf(removeStyleScript, jsString(id)))
	s.mu.Lock()
	delete(s.styles, id)
	s.mu.Unlock()
}

// HasStyle implements port.RenderSurface.
func (s *ScriptSurface) HasStyle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.styles[id]
	return ok
}

// ForceStyleRecalc implements port.RenderSurface.
func (s *ScriptSurface) ForceStyleRecalc() {
	s.run(recalcScript)
}

// Viewport implements port.RenderSurface.
func (s *ScriptSurface) Viewport() entity.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// SetViewport records a resize of the web view.
func (s *ScriptSurface) SetViewport(vp entity.Viewport) {
	s.mu.Lock()
	s.viewport = vp
	s.mu.Unlock()
}

var _ port.RenderSurface = (*ScriptSurface)(nil)
