package mainloop

import "sync"

// Coalescer collapses repeated posts under one key into a single loop task.
// While a key's task is queued, later posts only swap the callback that task
// will run, so a burst of ambient notifications costs one tick.
type Coalescer struct {
	mu     sync.Mutex
	slots  map[string]*slot
	post   func(func())
	closed bool
	merged uint64
}

// slot is the queued task of one key.
type slot struct {
	fn func()
}

// NewCoalescer schedules through post, usually Loop.Post.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{slots: make(map[string]*slot), post: post}
}

// Post queues fn under key, or replaces the callback of the task already
// queued for key.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if s, ok := c.slots[key]; ok {
		s.fn = fn
		c.merged++
		c.mu.Unlock()
		return
	}
	s := &slot{fn: fn}
	c.slots[key] = s
	c.mu.Unlock()

	c.post(func() { c.fire(key, s) })
}

func (c *Coalescer) fire(key string, s *slot) {
	c.mu.Lock()
	if c.slots[key] == s {
		delete(c.slots, key)
	}
	fn, closed := s.fn, c.closed
	c.mu.Unlock()

	if !closed {
		fn()
	}
}

// Pending reports whether a task is queued for key.
func (c *Coalescer) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.slots[key]
	return ok
}

// Merged counts posts absorbed into an already queued task.
func (c *Coalescer) Merged() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.merged
}

// Destroy drops queued work. Later posts are ignored.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.closed = true
	clear(c.slots)
	c.mu.Unlock()
}
