package object

import "github.com/tomz197/ufo-intercept/internal/input"

// PlayerSpeed is the ship's horizontal speed in units per second.
const PlayerSpeed = 100.0

// Player is the ship controlled by the user.
type Player struct {
	Ship  *Sprite
	Speed float64
	field Field
}

// NewPlayer creates a ship sized and positioned for the field.
func NewPlayer(field Field) *Player {
	p := &Player{Speed: PlayerSpeed, field: field}
	p.Reposition()
	return p
}

// Reposition recreates the ship at its starting position, bottom centre.
func (p *Player) Reposition() {
	size := p.field.Width / 12
	p.Ship = NewSprite(p.field.Width/2-size/2, p.field.Height-size*2, size, size)
}

// TopCenter returns the middle of the ship's top edge, where player shots
// are centred.
func (p *Player) TopCenter() (float64, float64) {
	return p.Ship.Left() + p.Ship.Width()/2, p.Ship.Top()
}

// Update moves the ship by the held direction and settles hits.
// A ship pressing against a field edge is left untouched for the frame,
// including any pending hit.
func (p *Player) Update(ctx UpdateContext) {
	dir := ctx.Input.Direction()
	ship := p.Ship
	if dir == input.DirectionLeft && ship.Left() <= 0 {
		return
	}
	if dir == input.DirectionRight && ship.Right() >= p.field.Width {
		return
	}

	x := ship.Left() + p.Speed*ctx.Delta*float64(dir)
	if ship.IsHit() {
		ctx.Stats.LoseLife()
	}
	ship.Update(x, ship.Top(), ctx.Stats.Lives() < 1)
}
