package object

import "github.com/tomz197/ufo-intercept/internal/physics"

// Variant selects how an enemy is drawn. It has no gameplay meaning.
type Variant int

const (
	VariantA Variant = iota
	VariantB
	VariantC
)

// Sprite is a rectangle entity with a hit flag.
// Width and height are fixed at creation; edges are derived from position.
type Sprite struct {
	x, y          float64
	width, height float64
	hit           bool

	Variant Variant // Animation variant (enemies only)
}

// NewSprite creates a sprite at (x, y) with the given size.
func NewSprite(x, y, width, height float64) *Sprite {
	return &Sprite{x: x, y: y, width: width, height: height}
}

// Update overwrites the position and hit flag. Callers enforce bounds.
func (s *Sprite) Update(x, y float64, hit bool) {
	s.x = x
	s.y = y
	s.hit = hit
}

// Top returns the y of the upper edge.
func (s *Sprite) Top() float64 { return s.y }

// Bottom returns the y of the lower edge.
func (s *Sprite) Bottom() float64 { return s.y + s.height }

// Left returns the x of the left edge.
func (s *Sprite) Left() float64 { return s.x }

// Right returns the x of the right edge.
func (s *Sprite) Right() float64 { return s.x + s.width }

// Width returns the horizontal extent.
func (s *Sprite) Width() float64 { return s.width }

// Height returns the vertical extent.
func (s *Sprite) Height() float64 { return s.height }

// IsHit reports whether the sprite was hit.
func (s *Sprite) IsHit() bool { return s.hit }

// Hit marks the sprite as hit.
func (s *Sprite) Hit() {
	s.hit = true
}

// Bounds returns the sprite rectangle.
func (s *Sprite) Bounds() physics.Rect {
	return physics.Rect{X: s.x, Y: s.y, W: s.width, H: s.height}
}

// Collides reports whether s and other overlap. Touching counts.
func (s *Sprite) Collides(other *Sprite) bool {
	return physics.Overlaps(s.Bounds(), other.Bounds())
}

// TestAndMark reports whether s and other overlap and, if so, marks s as hit.
// other is never modified.
func (s *Sprite) TestAndMark(other *Sprite) bool {
	if !s.Collides(other) {
		return false
	}
	s.hit = true
	return true
}
