package chart

import (
	"html/template"
	"sync"
)

// Slot is the stable identifier of a chart region.
type Slot string

const (
	SlotCategory       Slot = "categoryChart"
	SlotTrend          Slot = "trendChart"
	SlotFamily         Slot = "familyChart"
	SlotFamilyCategory Slot = "familyCategoryChart"
	SlotCardCategory   Slot = "cardCategoryChart"
)

// Slots lists every chart slot.
func Slots() []Slot {
	return []Slot{SlotCategory, SlotTrend, SlotFamily, SlotFamilyCategory, SlotCardCategory}
}

// Chart is a live chart handle. It must be disposed before its slot is
// reused; Registry does that.
type Chart struct {
	id   uint64
	slot Slot
	kind Kind
	svg  template.HTML

	mu       sync.Mutex
	disposed bool
}

func (c *Chart) ID() uint64         { return c.id }
func (c *Chart) Slot() Slot         { return c.slot }
func (c *Chart) Kind() Kind         { return c.kind }
func (c *Chart) SVG() template.HTML { return c.svg }

// Dispose releases the chart. Calling it more than once is harmless.
func (c *Chart) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.mu.Unlock()
}

// Disposed reports whether Dispose has run.
func (c *Chart) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Registry owns the chart handles, at most one live chart per slot.
type Registry struct {
	mu      sync.Mutex
	nextID  uint64
	live    map[Slot]*Chart
	created int
	freed   int
}

func NewRegistry() *Registry {
	return &Registry{live: make(map[Slot]*Chart)}
}

// Replace disposes the chart currently in slot, then builds and registers
// its successor. The previous chart is released even when build or drawing
// fails, leaving the slot empty.
func (r *Registry) Replace(slot Slot, build func() (Config, error)) (*Chart, error) {
	r.Release(slot)

	cfg, err := build()
	if err != nil {
		return nil, err
	}
	svg, err := Render(cfg)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if prev := r.live[slot]; prev != nil {
		// Another Replace raced in between; keep one live chart.
		r.disposeLocked(prev)
	}
	r.nextID++
	c := &Chart{id: r.nextID, slot: slot, kind: cfg.Kind, svg: svg}
	r.live[slot] = c
	r.created++
	return c, nil
}

// Release disposes the chart in slot, if any.
func (r *Registry) Release(slot Slot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev := r.live[slot]; prev != nil {
		r.disposeLocked(prev)
	}
}

func (r *Registry) disposeLocked(c *Chart) {
	delete(r.live, c.slot)
	r.freed++
	c.Dispose()
}

// Get returns the live chart in slot.
func (r *Registry) Get(slot Slot) (*Chart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.live[slot]
	return c, ok
}

// Live counts charts created and not yet disposed.
func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created - r.freed
}

// Close disposes every live chart.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.live {
		r.disposeLocked(c)
	}
}
