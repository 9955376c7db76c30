// Package object implements the playfield entities and the managers that
// move them, fire shots and resolve collisions each frame.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/ufo-intercept/internal/input"
	"github.com/tomz197/ufo-intercept/internal/stats"
)

// Field is the playfield size in logical units.
type Field struct {
	Width  float64
	Height float64
}

// DefaultField is the logical playfield every layout is designed for.
var DefaultField = Field{Width: 600, Height: 600}

// Controls is the input the simulation samples each frame.
type Controls interface {
	Direction() input.Direction
	IsFiring() bool
}

// Sounder plays sound effects.
type Sounder interface {
	PlayShotSound()
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Delta    float64       // Elapsed seconds since the previous frame; scales all motion
	PlayTime time.Duration // Accumulated running time; drives cooldowns and idle timers
	Input    Controls
	Stats    *stats.Ledger
	Rand     *rand.Rand
	Sound    Sounder
}

// compact removes hit sprites from s in place, preserving order, and
// returns the kept slice together with the number removed.
func compact(s []*Sprite) ([]*Sprite, int) {
	kept := s[:0]
	for _, sp := range s {
		if !sp.IsHit() {
			kept = append(kept, sp)
		}
	}
	removed := len(s) - len(kept)
	clear(s[len(kept):])
	return kept, removed
}
