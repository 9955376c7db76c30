package object

// ShieldLayout describes the shield groups protecting the ship.
type ShieldLayout struct {
	GroupX    []float64 // Left edge of each group
	Top       float64
	Rows      int
	Cols      int
	BlockSize float64
}

// DefaultShieldLayout is four groups of 5 by 3 blocks.
var DefaultShieldLayout = ShieldLayout{
	GroupX:    []float64{100, 215, 330, 445},
	Top:       445,
	Rows:      3,
	Cols:      5,
	BlockSize: 10,
}

// CreateShields replaces all shield blocks with a fresh set.
func (m *ShotManager) CreateShields() {
	l := m.shieldLayout
	clear(m.shields)
	m.shields = m.shields[:0]
	for _, gx := range l.GroupX {
		for r := 0; r < l.Rows; r++ {
			for c := 0; c < l.Cols; c++ {
				x := gx + float64(c)*l.BlockSize
				y := l.Top + float64(r)*l.BlockSize
				m.shields = append(m.shields, NewSprite(x, y, l.BlockSize, l.BlockSize))
			}
		}
	}
}

// UpdateShields removes broken blocks. Once the swarm's lowest edge passes
// the top of the shields, blocks touched by the lowest enemies break too.
func (m *ShotManager) UpdateShields(swarm *Swarm) {
	if len(m.shields) == 0 {
		return
	}

	var low []*Sprite
	if bottom, ok := swarm.LowestEdge(); ok && bottom > m.shieldLayout.Top {
		for _, e := range swarm.Enemies() {
			if e.Bottom() >= bottom {
				low = append(low, e)
			}
		}
	}

	for _, sh := range m.shields {
		for _, e := range low {
			if sh.TestAndMark(e) {
				break
			}
		}
	}
	m.shields, _ = compact(m.shields)
}
