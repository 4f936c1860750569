// Package jitter generates the small random pointer offsets applied on each jiggle.
package jitter

import (
	"math/rand"
	"sync"
)

// MaxOffset bounds the per-axis offset in pixels. Small enough to go unnoticed,
// large enough for the OS to register the move.
const MaxOffset = 5

// Generator produces bounded, non-zero pointer offsets.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	max int
}

// NewGenerator creates a generator with offsets in [-MaxOffset, MaxOffset].
func NewGenerator(rnd *rand.Rand) *Generator {
	return NewGeneratorWithMax(rnd, MaxOffset)
}

// NewGeneratorWithMax creates a generator with offsets in [-limit, limit].
// A limit below 1 is raised to 1.
func NewGeneratorWithMax(rnd *rand.Rand, limit int) *Generator {
	if limit < 1 {
		limit = 1
	}
	return &Generator{rnd: rnd, max: limit}
}

// Max returns the per-axis bound.
func (g *Generator) Max() int {
	return g.max
}

// Offset returns a (dx, dy) pair with |dx|, |dy| <= Max() that is never (0, 0).
func (g *Generator) Offset() (dx, dy int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	span := 2*g.max + 1
	for {
		dx = g.rnd.Intn(span) - g.max
		dy = g.rnd.Intn(span) - g.max
		if dx != 0 || dy != 0 {
			return dx, dy
		}
	}
}
