package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/ufo-intercept/internal/stats"
)

// Shot geometry and speeds.
const (
	ShotWidth       = 5.0
	ShotHeight      = 15.0
	PlayerShotSpeed = 400.0
	EnemyShotSpeed  = 300.0
)

// FireCooldown is the minimum play time between player shots.
const FireCooldown = 750 * time.Millisecond

// ShotManager owns player shots, enemy shots and shields.
type ShotManager struct {
	playerShots []*Sprite
	enemyShots  []*Sprite
	shields     []*Sprite

	field        Field
	shieldLayout ShieldLayout

	lastShot    time.Duration
	lastVolley  time.Duration
	volleyArmed bool
}

// NewShotManager creates a manager with no shots and no shields.
func NewShotManager(field Field, layout ShieldLayout) *ShotManager {
	return &ShotManager{field: field, shieldLayout: layout}
}

// PlayerShots returns the live player shots.
func (m *ShotManager) PlayerShots() []*Sprite { return m.playerShots }

// EnemyShots returns the live enemy shots.
func (m *ShotManager) EnemyShots() []*Sprite { return m.enemyShots }

// Shields returns the remaining shield blocks.
func (m *ShotManager) Shields() []*Sprite { return m.shields }

// RemoveShots discards every shot in flight.
func (m *ShotManager) RemoveShots() {
	clear(m.playerShots)
	clear(m.enemyShots)
	m.playerShots = m.playerShots[:0]
	m.enemyShots = m.enemyShots[:0]
}

// ResetTimers restarts the fire cooldown and disarms the enemy volley timer.
func (m *ShotManager) ResetTimers() {
	m.lastShot = 0
	m.lastVolley = 0
	m.volleyArmed = false
}

// Update runs one frame of shot handling: player shots, player fire,
// enemy fire, enemy shots and finally shields.
func (m *ShotManager) Update(ctx UpdateContext, player *Player, swarm *Swarm) {
	m.UpdatePlayerShots(ctx, swarm)
	m.Fire(ctx, player)
	m.FireEnemies(ctx, swarm)
	m.UpdateEnemyShots(ctx, player.Ship)
	m.UpdateShields(swarm)
}

// Fire launches a player shot from the ship's top centre when fire is held
// and the cooldown has elapsed.
func (m *ShotManager) Fire(ctx UpdateContext, player *Player) {
	if !ctx.Input.IsFiring() || m.lastShot+FireCooldown >= ctx.PlayTime {
		return
	}
	x, y := player.TopCenter()
	x -= ShotWidth / 2
	m.playerShots = append(m.playerShots, NewSprite(x, y, ShotWidth, ShotHeight))
	m.lastShot = ctx.PlayTime
	ctx.Stats.Credit(stats.CountShotsFired)
	if ctx.Sound != nil {
		ctx.Sound.PlayShotSound()
	}
}

// UpdatePlayerShots moves player shots up and resolves their hits in order:
// shields, then the swarm, then enemy shots.
func (m *ShotManager) UpdatePlayerShots(ctx UpdateContext, swarm *Swarm) {
	dy := PlayerShotSpeed * ctx.Delta
	for _, shot := range m.playerShots {
		gone := shot.Top() < 0
		hit := m.hitShield(shot, ctx.Stats) || swarm.CheckCollision(shot) || m.hitEnemyShot(shot, ctx.Stats)
		shot.Update(shot.Left(), shot.Top()-dy, hit || gone)
	}
	m.playerShots, _ = compact(m.playerShots)
}

// hitShield breaks at most one shield block overlapping shot.
func (m *ShotManager) hitShield(shot *Sprite, ledger *stats.Ledger) bool {
	for _, sh := range m.shields {
		if shot.TestAndMark(sh) {
			sh.Hit()
			ledger.Credit(stats.CountShieldsDestroyed)
			return true
		}
	}
	return false
}

// hitEnemyShot marks the first enemy shot overlapping shot.
func (m *ShotManager) hitEnemyShot(shot *Sprite, ledger *stats.Ledger) bool {
	for _, es := range m.enemyShots {
		if es.TestAndMark(shot) {
			ledger.AddScore(EnemyShotPoints)
			ledger.Credit(stats.CountShotsHit)
			return true
		}
	}
	return false
}

// FireEnemies launches a volley from random enemies once the level's fire
// interval has elapsed. The timer arms on the first call.
func (m *ShotManager) FireEnemies(ctx UpdateContext, swarm *Swarm) {
	if !m.volleyArmed {
		m.volleyArmed = true
		m.lastVolley = ctx.PlayTime
	}
	level := ctx.Stats.Level()
	if m.lastVolley+EnemyFireRate(level) > ctx.PlayTime {
		return
	}

	enemies := swarm.Enemies()
	n := min(ShotsPerVolley(level), len(enemies))
	for _, i := range pickShooters(ctx.Rand, len(enemies)-1, n) {
		e := enemies[i]
		x := centredShotX(e)
		m.enemyShots = append(m.enemyShots, NewSprite(x, e.Bottom(), ShotWidth, ShotHeight))
	}
	m.lastVolley = ctx.PlayTime
}

// centredShotX returns the left edge that centres a shot on s.
func centredShotX(s *Sprite) float64 {
	return s.Left() + (s.Width()-ShotWidth)/2
}

// pickShooters draws n indices in [0, limit) and drops duplicates, keeping
// the order of first appearance. A limit below one always yields index 0,
// so the last enemy in the list never fires while others survive.
func pickShooters(rng *rand.Rand, limit, n int) []int {
	ids := make([]int, 0, n)
	for range n {
		id := 0
		if limit > 0 {
			id = int(rng.Float64() * float64(limit))
		}
		dup := false
		for _, seen := range ids {
			if seen == id {
				dup = true
				break
			}
		}
		if !dup {
			ids = append(ids, id)
		}
	}
	return ids
}

// UpdateEnemyShots moves enemy shots down. Shots break every shield they
// touch and mark the ship when they reach it.
func (m *ShotManager) UpdateEnemyShots(ctx UpdateContext, ship *Sprite) {
	dy := EnemyShotSpeed * ctx.Delta
	for _, shot := range m.enemyShots {
		gone := shot.Top() > m.field.Height
		for _, sh := range m.shields {
			if shot.TestAndMark(sh) {
				sh.Hit()
			}
		}
		hit := shot.IsHit() || ship.TestAndMark(shot)
		shot.Update(shot.Left(), shot.Top()+dy, hit || gone)
	}
	m.enemyShots, _ = compact(m.enemyShots)
}
