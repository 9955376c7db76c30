package object

import (
	"time"

	"github.com/tomz197/ufo-intercept/internal/physics"
	"github.com/tomz197/ufo-intercept/internal/stats"
)

// Scoring.
const (
	EnemyPoints     = 100
	BonusPoints     = 500
	EnemyShotPoints = 50
)

// SwarmStep is how far the swarm moves vertically when it reverses.
const SwarmStep = 15.0

// Bonus ship geometry and timing.
const (
	BonusSize     = 50.0
	BonusY        = 25.0
	BonusInterval = 10 * time.Second
)

// Bounds limits the swarm's movement.
type Bounds struct {
	Top, Right, Bottom, Left float64
}

// DefaultBounds confines the swarm above the shields.
var DefaultBounds = Bounds{Top: 100, Right: 575, Bottom: 475, Left: 25}

// SwarmLayout describes the starting grid of enemies.
type SwarmLayout struct {
	Cols    int
	Rows    int
	OriginX float64
	OriginY float64
	Pitch   float64 // Distance between neighbouring enemies
	Size    float64 // Enemy width and height
}

// DefaultSwarmLayout is a 7 by 4 grid.
var DefaultSwarmLayout = SwarmLayout{Cols: 7, Rows: 4, OriginX: 20, OriginY: 60, Pitch: 50, Size: 40}

// rowVariant returns the variant drawn for a grid row.
func rowVariant(row int) Variant {
	switch row {
	case 0:
		return VariantC
	case 1:
		return VariantB
	default:
		return VariantA
	}
}

// Swarm is the enemy formation plus the bonus ship.
type Swarm struct {
	enemies []*Sprite
	layout  SwarmLayout
	bounds  Bounds
	field   Field
	speed   float64

	horizontal int // -1 left, +1 right
	vertical   int // -1 up, +1 down

	bonus          *Sprite
	bonusDirection int
	bonusSince     time.Duration
	bonusArmed     bool
}

// NewSwarm creates an empty swarm. Call Create to populate it.
func NewSwarm(field Field, layout SwarmLayout, bounds Bounds) *Swarm {
	return &Swarm{field: field, layout: layout, bounds: bounds, horizontal: 1, vertical: 1}
}

// Create replaces all enemies with a fresh grid, resets direction and sets
// the speed for the level. Enemies are ordered column by column.
func (s *Swarm) Create(level int) {
	l := s.layout
	clear(s.enemies)
	s.enemies = s.enemies[:0]
	for c := 0; c < l.Cols; c++ {
		for r := 0; r < l.Rows; r++ {
			e := NewSprite(l.OriginX+float64(c)*l.Pitch, l.OriginY+float64(r)*l.Pitch, l.Size, l.Size)
			e.Variant = rowVariant(r)
			s.enemies = append(s.enemies, e)
		}
	}
	s.horizontal = 1
	s.vertical = 1
	s.speed = SwarmSpeed(len(s.enemies), level)
}

// Enemies returns the surviving enemies. The slice must not be modified.
func (s *Swarm) Enemies() []*Sprite {
	return s.enemies
}

// Count returns the number of surviving enemies.
func (s *Swarm) Count() int {
	return len(s.enemies)
}

// Speed returns the current horizontal speed.
func (s *Swarm) Speed() float64 {
	return s.speed
}

// Bonus returns the active bonus ship or nil.
func (s *Swarm) Bonus() *Sprite {
	return s.bonus
}

// Extent returns the bounding box of all surviving enemies.
func (s *Swarm) Extent() physics.Extent {
	var ext physics.Extent
	for _, e := range s.enemies {
		ext.Include(e.Bounds())
	}
	return ext
}

// LowestEdge returns the bottom of the lowest enemy.
// ok is false when the swarm is empty.
func (s *Swarm) LowestEdge() (bottom float64, ok bool) {
	ext := s.Extent()
	return ext.MaxBottom, ext.Valid
}

// Update moves the formation and the bonus ship, then removes destroyed
// enemies and credits them.
func (s *Swarm) Update(ctx UpdateContext) {
	level := ctx.Stats.Level()
	s.updateFormation(s.speed*ctx.Delta, level, ctx.Stats)
	s.updateBonus(MaxSpeed(level)/2*ctx.Delta, ctx)
}

func (s *Swarm) updateFormation(dx float64, level int, ledger *stats.Ledger) {
	ext := s.Extent()
	step := 0.0
	if ext.Valid {
		if s.horizontal > 0 && ext.MaxRight > s.bounds.Right {
			s.horizontal = -1
			step = SwarmStep
		}
		if s.horizontal < 0 && ext.MinLeft < s.bounds.Left {
			s.horizontal = 1
			step = SwarmStep
		}
		if s.vertical > 0 && ext.MaxBottom > s.bounds.Bottom {
			s.vertical = -1
		}
		if s.vertical < 0 && ext.MinTop < s.bounds.Top {
			s.vertical = 1
		}
	}

	mx := dx * float64(s.horizontal)
	my := step * float64(s.vertical)
	for _, e := range s.enemies {
		e.Update(e.Left()+mx, e.Top()+my, e.IsHit())
	}

	var removed int
	s.enemies, removed = compact(s.enemies)
	if removed == 0 {
		return
	}
	for range removed {
		ledger.AddScore(EnemyPoints)
		ledger.Credit(stats.CountEnemiesDestroyed)
	}
	s.speed = SwarmSpeed(len(s.enemies), level)
}

func (s *Swarm) updateBonus(dx float64, ctx UpdateContext) {
	if !s.bonusArmed {
		s.bonusArmed = true
		s.bonusSince = ctx.PlayTime
		return
	}
	if ctx.PlayTime-s.bonusSince < BonusInterval {
		return
	}

	if s.bonus == nil {
		s.bonusDirection = 1
		x := -BonusSize
		if ctx.Rand.Float64() > 0.5 {
			s.bonusDirection = -1
			x = s.field.Width
		}
		s.bonus = NewSprite(x, BonusY, BonusSize, BonusSize)
	}

	b := s.bonus
	gone := (s.bonusDirection < 0 && b.Right() < 0) ||
		(s.bonusDirection > 0 && b.Left() > s.field.Width)
	b.Update(b.Left()+dx*float64(s.bonusDirection), b.Top(), b.IsHit() || gone)
	if !b.IsHit() {
		return
	}

	if gone {
		ctx.Stats.Credit(stats.CountBonusesMissed)
	} else {
		ctx.Stats.AddScore(BonusPoints)
		ctx.Stats.Credit(stats.CountBonusesDestroyed)
	}
	s.bonus = nil
	s.bonusSince = ctx.PlayTime
}

// ResetBonus drops any active bonus ship and disarms the idle timer.
func (s *Swarm) ResetBonus() {
	s.bonus = nil
	s.bonusArmed = false
	s.bonusSince = 0
}

// CheckCollision marks the bonus ship or the first enemy overlapping shot.
// The shot itself is not modified.
func (s *Swarm) CheckCollision(shot *Sprite) bool {
	if s.bonus != nil && s.bonus.TestAndMark(shot) {
		return true
	}
	if s.Extent().Excludes(shot.Bounds()) {
		return false
	}
	for _, e := range s.enemies {
		if e.TestAndMark(shot) {
			return true
		}
	}
	return false
}
