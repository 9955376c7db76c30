package object

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/tomz197/ufo-intercept/internal/input"
	"github.com/tomz197/ufo-intercept/internal/stats"
)

type countingSound struct{ plays int }

func (c *countingSound) PlayShotSound() { c.plays++ }

func newTestContext() (UpdateContext, *input.State) {
	state := &input.State{}
	return UpdateContext{
		Delta: 0,
		Input: state,
		Stats: stats.NewLedger(nil),
		Rand:  rand.New(rand.NewSource(1)),
		Sound: &countingSound{},
	}, state
}

func TestSpriteTestAndMark(t *testing.T) {
	a := NewSprite(0, 0, 10, 10)
	b := NewSprite(10, 10, 5, 5)
	c := NewSprite(30, 30, 5, 5)

	if a.TestAndMark(c) {
		t.Fatal("expected no overlap with distant sprite")
	}
	if a.IsHit() {
		t.Fatal("sprite marked without overlap")
	}
	if !a.TestAndMark(b) {
		t.Fatal("expected touching sprites to overlap")
	}
	if !a.IsHit() {
		t.Error("expected receiver to be marked")
	}
	if b.IsHit() {
		t.Error("argument must not be marked")
	}
}

func TestSwarmSpeed(t *testing.T) {
	tests := []struct {
		count, level int
		want         float64
	}{
		{28, 1, 30},
		{16, 1, 90},
		{15, 1, 100},
		{2, 1, 230},
		{1, 1, 500},
		{1, 3, 700},
		{10, 3, 250},
	}
	for _, tt := range tests {
		if got := SwarmSpeed(tt.count, tt.level); got != tt.want {
			t.Errorf("SwarmSpeed(%d, %d) = %v, want %v", tt.count, tt.level, got, tt.want)
		}
	}
}

func TestEnemyFireRate(t *testing.T) {
	if got := EnemyFireRate(1); got != 3500*time.Millisecond {
		t.Errorf("level 1: got %v", got)
	}
	if got := EnemyFireRate(2); got != 1750*time.Millisecond {
		t.Errorf("level 2: got %v", got)
	}
	if got := ShotsPerVolley(3); got != 3 {
		t.Errorf("expected 3 shots per volley, got %d", got)
	}
}

func TestSwarmCreate(t *testing.T) {
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)
	s.Create(1)

	if s.Count() != 28 {
		t.Fatalf("expected 28 enemies, got %d", s.Count())
	}
	first := s.Enemies()[0]
	if first.Left() != 20 || first.Top() != 60 || first.Width() != 40 {
		t.Errorf("unexpected first enemy %+v", first.Bounds())
	}
	last := s.Enemies()[27]
	if last.Left() != 320 || last.Top() != 210 {
		t.Errorf("unexpected last enemy %+v", last.Bounds())
	}
	wantVariants := []Variant{VariantC, VariantB, VariantA, VariantA}
	for i, want := range wantVariants {
		if got := s.Enemies()[i].Variant; got != want {
			t.Errorf("row %d: variant %d, want %d", i, got, want)
		}
	}
	if s.Speed() != 30 {
		t.Errorf("expected speed 30, got %v", s.Speed())
	}

	s.Create(1)
	if s.Count() != 28 {
		t.Errorf("Create must replace enemies, got %d", s.Count())
	}
}

func TestSwarmRemovesDestroyedEnemy(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, SwarmLayout{Cols: 4, Rows: 4, OriginX: 20, OriginY: 60, Pitch: 50, Size: 40}, DefaultBounds)
	s.Create(1)
	if s.Speed() != 90 {
		t.Fatalf("expected speed 90 for 16 enemies, got %v", s.Speed())
	}

	bottomLeft := s.Enemies()[3]
	shot := NewSprite(bottomLeft.Left()+10, bottomLeft.Top()+10, ShotWidth, ShotHeight)
	if !s.CheckCollision(shot) {
		t.Fatal("expected shot to hit bottom-left enemy")
	}
	if shot.IsHit() {
		t.Error("CheckCollision must not mark the shot")
	}

	s.Update(ctx)

	if s.Count() != 15 {
		t.Errorf("expected 15 enemies, got %d", s.Count())
	}
	if ctx.Stats.Score() != EnemyPoints {
		t.Errorf("expected score %d, got %d", EnemyPoints, ctx.Stats.Score())
	}
	if _, err := ctx.Stats.Get(stats.EnemiesDestroyed); err == nil {
		t.Error("enemies destroyed must not be readable")
	}
	if s.Speed() != 100 {
		t.Errorf("expected speed 100 for 15 enemies, got %v", s.Speed())
	}
	for _, e := range s.Enemies() {
		if e == bottomLeft {
			t.Error("destroyed enemy still present")
		}
	}
}

func TestSwarmReversesAtBound(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, SwarmLayout{Cols: 1, Rows: 1, OriginX: 540, OriginY: 200, Pitch: 50, Size: 40}, DefaultBounds)
	s.Create(1)
	ctx.Delta = 0.01
	s.Update(ctx)

	e := s.Enemies()[0]
	if e.Top() != 200+SwarmStep {
		t.Errorf("expected swarm to step down, top %v", e.Top())
	}
	if e.Left() >= 540 {
		t.Errorf("expected swarm to move left, left %v", e.Left())
	}
}

func TestSwarmFastRejectOutsideExtent(t *testing.T) {
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)
	s.Create(1)
	shot := NewSprite(500, 500, ShotWidth, ShotHeight)
	if s.CheckCollision(shot) {
		t.Error("shot outside the swarm must not collide")
	}
	for _, e := range s.Enemies() {
		if e.IsHit() {
			t.Fatal("no enemy should be marked")
		}
	}
}

func TestBonusSpawnsAndIsMissed(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)

	s.Update(ctx) // arms the idle timer
	ctx.PlayTime = BonusInterval - time.Millisecond
	s.Update(ctx)
	if s.Bonus() != nil {
		t.Fatal("bonus spawned before the idle interval")
	}

	ctx.PlayTime = BonusInterval
	s.Update(ctx)
	b := s.Bonus()
	if b == nil {
		t.Fatal("expected bonus to spawn")
	}
	if b.Left() != -BonusSize && b.Left() != DefaultField.Width {
		t.Errorf("bonus must start at a field edge, left %v", b.Left())
	}
	if b.Top() != BonusY {
		t.Errorf("expected bonus at y %v, got %v", BonusY, b.Top())
	}

	ctx.Delta = 0.5
	for i := 0; i < 100 && s.Bonus() != nil; i++ {
		ctx.PlayTime += 500 * time.Millisecond
		s.Update(ctx)
	}
	if s.Bonus() != nil {
		t.Fatal("bonus never left the field")
	}
	if n := ctx.Stats.Score(); n != 0 {
		t.Errorf("missed bonus must not score, got %d", n)
	}
	missed := s.bonusSince
	if missed != ctx.PlayTime {
		t.Errorf("expected idle timer restarted at %v, got %v", ctx.PlayTime, missed)
	}
}

func TestBonusDestroyed(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)
	s.Update(ctx)
	ctx.PlayTime = BonusInterval
	s.Update(ctx)
	b := s.Bonus()
	if b == nil {
		t.Fatal("expected bonus")
	}

	// Move it into the field and shoot it.
	b.Update(300, b.Top(), false)
	shot := NewSprite(310, b.Top()+10, ShotWidth, ShotHeight)
	if !s.CheckCollision(shot) {
		t.Fatal("expected shot to hit the bonus")
	}
	s.Update(ctx)
	if s.Bonus() != nil {
		t.Error("destroyed bonus must be cleared")
	}
	if ctx.Stats.Score() != BonusPoints {
		t.Errorf("expected score %d, got %d", BonusPoints, ctx.Stats.Score())
	}
}

func TestResetBonus(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)
	s.Update(ctx)
	ctx.PlayTime = BonusInterval
	s.Update(ctx)
	s.ResetBonus()
	if s.Bonus() != nil {
		t.Fatal("expected no bonus after reset")
	}
	s.Update(ctx) // re-arms at the current play time
	ctx.PlayTime += BonusInterval - time.Millisecond
	s.Update(ctx)
	if s.Bonus() != nil {
		t.Error("bonus spawned before a full interval after reset")
	}
}

func TestPlayerStartsBottomCentre(t *testing.T) {
	p := NewPlayer(DefaultField)
	if p.Ship.Width() != 50 || p.Ship.Left() != 275 || p.Ship.Top() != 500 {
		t.Errorf("unexpected ship %+v", p.Ship.Bounds())
	}
	x, y := p.TopCenter()
	if x != 300 || y != 500 {
		t.Errorf("expected top centre (300, 500), got (%v, %v)", x, y)
	}
}

func TestPlayerMoves(t *testing.T) {
	ctx, state := newTestContext()
	p := NewPlayer(DefaultField)
	ctx.Delta = 0.5

	state.Press(input.KeyRight)
	p.Update(ctx)
	if p.Ship.Left() != 325 {
		t.Errorf("expected ship at 325, got %v", p.Ship.Left())
	}

	state.Press(input.KeyLeft)
	p.Update(ctx)
	if p.Ship.Left() != 325 {
		t.Errorf("both directions held must stop the ship, got %v", p.Ship.Left())
	}
}

func TestPlayerAtEdgeSkipsUpdate(t *testing.T) {
	ctx, state := newTestContext()
	p := NewPlayer(DefaultField)
	p.Ship.Update(0, p.Ship.Top(), true)

	state.Press(input.KeyLeft)
	p.Update(ctx)
	if ctx.Stats.Lives() != stats.InitialLives {
		t.Errorf("life must not be lost while pushing against the edge, lives %d", ctx.Stats.Lives())
	}

	state.Release(input.KeyLeft)
	p.Update(ctx)
	if ctx.Stats.Lives() != stats.InitialLives-1 {
		t.Errorf("expected one life lost, lives %d", ctx.Stats.Lives())
	}
	if p.Ship.IsHit() {
		t.Error("ship with lives left must be cleared after the hit settles")
	}
}

func TestLastLifeLeavesShipHit(t *testing.T) {
	ctx, _ := newTestContext()
	ctx.Stats.LoseLife()
	ctx.Stats.LoseLife()
	p := NewPlayer(DefaultField)
	m := NewShotManager(DefaultField, DefaultShieldLayout)

	x, _ := p.TopCenter()
	m.enemyShots = append(m.enemyShots, NewSprite(x, p.Ship.Top()+1, ShotWidth, ShotHeight))
	m.UpdateEnemyShots(ctx, p.Ship)
	if !p.Ship.IsHit() {
		t.Fatal("expected enemy shot to mark the ship")
	}
	if len(m.EnemyShots()) != 0 {
		t.Error("enemy shot must be removed after hitting the ship")
	}

	p.Update(ctx)
	if ctx.Stats.Lives() != 0 {
		t.Errorf("expected 0 lives, got %d", ctx.Stats.Lives())
	}
	if !p.Ship.IsHit() {
		t.Error("ship must stay hit with no lives left")
	}
}

func TestFireCooldown(t *testing.T) {
	ctx, state := newTestContext()
	p := NewPlayer(DefaultField)
	m := NewShotManager(DefaultField, DefaultShieldLayout)
	state.Press(input.KeyFire)

	steps := []struct {
		at   time.Duration
		want int
	}{
		{FireCooldown, 0},
		{FireCooldown + time.Millisecond, 1},
		{1200 * time.Millisecond, 1},
		{1600 * time.Millisecond, 2},
	}
	for _, step := range steps {
		ctx.PlayTime = step.at
		m.Fire(ctx, p)
		if got := len(m.PlayerShots()); got != step.want {
			t.Errorf("at %v: expected %d shots, got %d", step.at, step.want, got)
		}
	}
	first := m.PlayerShots()[0]
	if first.Left() != 297.5 || first.Top() != 500 {
		t.Errorf("expected shot centred at (297.5, 500), got (%v, %v)", first.Left(), first.Top())
	}
	if got := ctx.Sound.(*countingSound).plays; got != 2 {
		t.Errorf("expected 2 shot sounds, got %d", got)
	}

	state.Release(input.KeyFire)
	ctx.PlayTime = 5 * time.Second
	m.Fire(ctx, p)
	if len(m.PlayerShots()) != 2 {
		t.Error("must not fire without the fire key")
	}
}

func TestShotAbsorbedByShield(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)
	m := NewShotManager(DefaultField, DefaultShieldLayout)
	m.CreateShields()
	if len(m.Shields()) != 60 {
		t.Fatalf("expected 60 shield blocks, got %d", len(m.Shields()))
	}

	// Straddles two columns and three rows of the first group.
	m.playerShots = append(m.playerShots, NewSprite(107, 450, ShotWidth, ShotHeight))
	m.UpdatePlayerShots(ctx, s)
	m.UpdateShields(s)

	if len(m.Shields()) != 59 {
		t.Errorf("expected exactly one block removed, got %d left", len(m.Shields()))
	}
	if len(m.PlayerShots()) != 0 {
		t.Error("absorbed shot must be removed")
	}
	if n, _ := ctx.Stats.Get(stats.Score); n != 0 {
		t.Errorf("shield hit must not score, got %d", n)
	}
}

func TestCreateShieldsReplaces(t *testing.T) {
	m := NewShotManager(DefaultField, DefaultShieldLayout)
	m.CreateShields()
	m.CreateShields()
	if len(m.Shields()) != 60 {
		t.Errorf("expected 60 blocks after recreating, got %d", len(m.Shields()))
	}
}

func TestPlayerShotHitsEnemyShot(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)
	m := NewShotManager(DefaultField, DefaultShieldLayout)

	m.enemyShots = append(m.enemyShots, NewSprite(400, 300, ShotWidth, ShotHeight))
	m.playerShots = append(m.playerShots, NewSprite(402, 310, ShotWidth, ShotHeight))
	m.UpdatePlayerShots(ctx, s)

	if len(m.PlayerShots()) != 0 {
		t.Error("player shot must be removed")
	}
	if ctx.Stats.Score() != EnemyShotPoints {
		t.Errorf("expected score %d, got %d", EnemyShotPoints, ctx.Stats.Score())
	}

	m.UpdateEnemyShots(ctx, NewSprite(0, 0, 1, 1))
	if len(m.EnemyShots()) != 0 {
		t.Error("enemy shot must be removed")
	}
}

func TestShotsLeaveField(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)
	m := NewShotManager(DefaultField, DefaultShieldLayout)
	m.playerShots = append(m.playerShots, NewSprite(400, -1, ShotWidth, ShotHeight))
	m.enemyShots = append(m.enemyShots, NewSprite(400, 601, ShotWidth, ShotHeight))
	epoch := time.Unix(0, 0)
	before := ctx.Stats.Summary(epoch)

	m.UpdatePlayerShots(ctx, s)
	m.UpdateEnemyShots(ctx, NewSprite(0, 0, 1, 1))
	if len(m.PlayerShots()) != 0 || len(m.EnemyShots()) != 0 {
		t.Error("out of bounds shots must be removed")
	}
	if ctx.Stats.Score() != 0 || ctx.Stats.Lives() != stats.InitialLives {
		t.Errorf("expected untouched score and lives, got %d and %d", ctx.Stats.Score(), ctx.Stats.Lives())
	}
	if after := ctx.Stats.Summary(epoch); !slices.Equal(before, after) {
		t.Errorf("expected counters unchanged, got %q", after)
	}
}

func TestEnemyShotBreaksShields(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)
	m := NewShotManager(DefaultField, DefaultShieldLayout)
	m.CreateShields()

	// Covers x 107..112 and y 445..460: two columns, two rows.
	m.enemyShots = append(m.enemyShots, NewSprite(107, 445, ShotWidth, ShotHeight))
	m.UpdateEnemyShots(ctx, NewSprite(0, 0, 1, 1))
	if len(m.EnemyShots()) != 0 {
		t.Error("enemy shot must be removed after hitting shields")
	}

	m.UpdateShields(s)
	if got := len(m.Shields()); got != 60-4 {
		t.Errorf("expected 4 blocks broken, %d left", got)
	}
	if ctx.Stats.Score() != 0 {
		t.Errorf("enemy shots must not score, got %d", ctx.Stats.Score())
	}
}

func TestEnemyVolley(t *testing.T) {
	ctx, _ := newTestContext()
	s := NewSwarm(DefaultField, DefaultSwarmLayout, DefaultBounds)
	s.Create(1)
	m := NewShotManager(DefaultField, DefaultShieldLayout)

	ctx.PlayTime = time.Second
	m.FireEnemies(ctx, s)
	if len(m.EnemyShots()) != 0 {
		t.Fatal("first call only arms the timer")
	}
	ctx.PlayTime += EnemyFireRate(1) - time.Millisecond
	m.FireEnemies(ctx, s)
	if len(m.EnemyShots()) != 0 {
		t.Fatal("volley fired early")
	}
	ctx.PlayTime += time.Millisecond
	m.FireEnemies(ctx, s)
	if len(m.EnemyShots()) != 1 {
		t.Fatalf("expected one shot at level 1, got %d", len(m.EnemyShots()))
	}
	shot := m.EnemyShots()[0]
	if shot.Width() != ShotWidth || shot.Height() != ShotHeight {
		t.Errorf("unexpected shot size %+v", shot.Bounds())
	}

	// The same seed picks the same shooter.
	ids := pickShooters(rand.New(rand.NewSource(1)), s.Count()-1, 1)
	e := s.Enemies()[ids[0]]
	if want := e.Left() + 17.5; shot.Left() != want || shot.Top() != e.Bottom() {
		t.Errorf("expected shot at (%v, %v), got (%v, %v)", want, e.Bottom(), shot.Left(), shot.Top())
	}
}

func TestPickShooters(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	if got := pickShooters(rng, 0, 3); len(got) != 1 || got[0] != 0 {
		t.Errorf("limit 0 must collapse to [0], got %v", got)
	}
	got := pickShooters(rng, 5, 50)
	seen := map[int]bool{}
	for _, id := range got {
		if id < 0 || id >= 5 {
			t.Errorf("index %d out of range", id)
		}
		if seen[id] {
			t.Errorf("duplicate index %d", id)
		}
		seen[id] = true
	}
}

func TestLowSwarmBreaksShields(t *testing.T) {
	s := NewSwarm(DefaultField, SwarmLayout{Cols: 1, Rows: 1, OriginX: 95, OriginY: 420, Pitch: 50, Size: 40}, DefaultBounds)
	s.Create(1)
	m := NewShotManager(DefaultField, DefaultShieldLayout)
	m.CreateShields()

	m.UpdateShields(s)
	// Enemy spans x 95..135 and y 420..460: four columns, two rows.
	if got := len(m.Shields()); got != 60-8 {
		t.Errorf("expected 8 blocks broken, %d left", got)
	}
}
