package surface

import (
	"slices"
	"sort"
	"sync"

	"github.com/bnema/themesync/internal/application/port"
	"github.com/bnema/themesync/internal/domain/entity"
)

// Mutation records one marker write together with the style rules that were
// installed when it happened.
type Mutation struct {
	Kind   string // "class-add", "class-remove", "attribute", "color-scheme"
	Name   string
	Value  string
	Styles []string
}

// Document is an in-process render surface: a root element with a class
// list, attributes, a color-scheme hint and global style rules. It backs
// headless sessions and records every mutation.
type Document struct {
	mu          sync.Mutex
	classes     []string
	attrs       map[string]string
	colorScheme entity.Scheme
	styles      map[string]string
	recalcs     int
	viewport    entity.Viewport
	detached    bool
	log         []Mutation
}

// NewDocument creates an attached document with the given viewport.
func NewDocument(vp entity.Viewport) *Document {
	return &Document{
		attrs:    make(map[string]string),
		styles:   make(map[string]string),
		viewport: vp,
	}
}

// Attached implements port.RenderSurface.
func (d *Document) Attached() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.detached
}

// Detach tears the document down. Later operations are ignored.
func (d *Document) Detach() {
	d.mu.Lock()
	d.detached = true
	d.mu.Unlock()
}

func (d *Document) recordLocked(kind, name, value string) {
	d.log = append(d.log, Mutation{Kind: kind, Name: name, Value: value, Styles: d.styleIDsLocked()})
}

// RemoveClass implements port.RenderSurface.
func (d *Document) RemoveClass(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detached {
		return
	}
	for _, name := range names {
		if i := slices.Index(d.classes, name); i >= 0 {
			d.classes = slices.Delete(d.classes, i, i+1)
			d.recordLocked("class-remove", name, "")
		}
	}
}

// AddClass implements port.RenderSurface.
func (d *Document) AddClass(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detached || slices.Contains(d.classes, name) {
		return
	}
	d.classes = append(d.classes, name)
	d.recordLocked("class-add", name, "")
}

// SetAttribute implements port.RenderSurface.
func (d *Document) SetAttribute(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detached {
		return
	}
	d.attrs[name] = value
	d.recordLocked("attribute", name, value)
}

// SetColorScheme implements port.RenderSurface.
func (d *Document) SetColorScheme(scheme entity.Scheme) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detached {
		return
	}
	d.colorScheme = scheme
	d.recordLocked("color-scheme", "color-scheme", string(scheme))
}

// InsertStyle implements port.RenderSurface.
func (d *Document) InsertStyle(id, css string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.detached {
		return
	}
	d.styles[id] = css
}

// RemoveStyle implements port.RenderSurface.
func (d *Document) RemoveStyle(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.styles, id)
}

// HasStyle implements port.RenderSurface.
func (d *Document) HasStyle(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.styles[id]
	return ok
}

// ForceStyleRecalc implements port.RenderSurface.
func (d *Document) ForceStyleRecalc() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.detached {
		d.recalcs++
	}
}

// Viewport implements port.RenderSurface.
func (d *Document) Viewport() entity.Viewport {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.viewport
}

// SetViewport resizes the document.
func (d *Document) SetViewport(vp entity.Viewport) {
	d.mu.Lock()
	d.viewport = vp
	d.mu.Unlock()
}

// Classes returns the root class list.
func (d *Document) Classes() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.classes)
}

// Attribute returns a root attribute.
func (d *Document) Attribute(name string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.attrs[name]
	return v, ok
}

// ColorScheme returns the rendering hint.
func (d *Document) ColorScheme() entity.Scheme {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.colorScheme
}

// Styles returns the installed style rule ids, sorted.
func (d *Document) Styles() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.styleIDsLocked()
}

func (d *Document) styleIDsLocked() []string {
	ids := make([]string, 0, len(d.styles))
	for id := range d.styles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Recalcs returns how many forced style recalculations happened.
func (d *Document) Recalcs() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.recalcs
}

// Mutations returns the recorded mutation log.
func (d *Document) Mutations() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.log)
}

// Snapshot is the captured marker state of a document.
type Snapshot struct {
	Classes []string
	Attrs   map[string]string
}

func (d *Document) snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	attrs := make(map[string]string, len(d.attrs))
	for k, v := range d.attrs {
		attrs[k] = v
	}
	return Snapshot{Classes: slices.Clone(d.classes), Attrs: attrs}
}

var _ port.RenderSurface = (*Document)(nil)
