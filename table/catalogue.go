package table

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pinball/physics"
)

// ColliderMeta is the gameplay meaning of one collider
type ColliderMeta struct {
	Tag      Tag
	ID       string
	Group    int // Owning target group, drop bank or flipper index
	Index    int // Position within the group
	Lane     LaneKind
	Position mgl64.Vec3 // World position of the element center
	Score    int
	Boost    float64
	Impulse  float64
	Nudge    mgl64.Vec3 // Outlane save impulse
}

// Catalogue indexes collider handles to their metadata
// Built once per table; read-only afterwards
type Catalogue struct {
	meta  map[physics.ColliderHandle]ColliderMeta
	order []physics.ColliderHandle
}

func NewCatalogue() *Catalogue {
	return &Catalogue{meta: make(map[physics.ColliderHandle]ColliderMeta)}
}

// Add records meta for h, replacing earlier metadata
func (c *Catalogue) Add(h physics.ColliderHandle, m ColliderMeta) {
	if _, ok := c.meta[h]; !ok {
		c.order = append(c.order, h)
	}
	c.meta[h] = m
}

// Lookup returns the metadata for h; untracked handles report false
func (c *Catalogue) Lookup(h physics.ColliderHandle) (ColliderMeta, bool) {
	m, ok := c.meta[h]
	return m, ok
}

// Each visits entries in insertion order
func (c *Catalogue) Each(fn func(h physics.ColliderHandle, m ColliderMeta)) {
	for _, h := range c.order {
		fn(h, c.meta[h])
	}
}

// Find returns the first collider with the given tag and id
func (c *Catalogue) Find(tag Tag, id string) (physics.ColliderHandle, bool) {
	for _, h := range c.order {
		if m := c.meta[h]; m.Tag == tag && m.ID == id {
			return h, true
		}
	}
	return 0, false
}

func (c *Catalogue) Len() int {
	return len(c.order)
}
