// Package physics provides axis-aligned collision geometry.
package physics

// Rect is an axis-aligned rectangle in playfield units.
// X and Y are the top-left corner; W and H are the extent.
type Rect struct {
	X, Y float64
	W, H float64
}

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 {
	return r.Y
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 {
	return r.X
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Overlaps reports whether a and b intersect. Rectangles that only touch
// along an edge count as overlapping.
func Overlaps(a, b Rect) bool {
	if b.Bottom() < a.Top() {
		return false
	}
	if b.Top() > a.Bottom() {
		return false
	}
	if b.Left() > a.Right() {
		return false
	}
	if b.Right() < a.Left() {
		return false
	}
	return true
}

// Extent is the bounding box of a group of rectangles.
// Valid is false for an empty group.
type Extent struct {
	MinLeft   float64
	MaxRight  float64
	MinTop    float64
	MaxBottom float64
	Valid     bool
}

// Include grows the extent to cover r.
func (e *Extent) Include(r Rect) {
	if !e.Valid {
		*e = Extent{MinLeft: r.Left(), MaxRight: r.Right(), MinTop: r.Top(), MaxBottom: r.Bottom(), Valid: true}
		return
	}
	e.MinLeft = min(e.MinLeft, r.Left())
	e.MaxRight = max(e.MaxRight, r.Right())
	e.MinTop = min(e.MinTop, r.Top())
	e.MaxBottom = max(e.MaxBottom, r.Bottom())
}

// Excludes reports whether r lies entirely outside the extent.
// An empty extent excludes everything.
func (e Extent) Excludes(r Rect) bool {
	if !e.Valid {
		return true
	}
	return e.MaxBottom < r.Top() ||
		e.MinTop > r.Bottom() ||
		e.MinLeft > r.Right() ||
		e.MaxRight < r.Left()
}
