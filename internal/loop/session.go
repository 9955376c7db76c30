package loop

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/ufo-intercept/internal/input"
	"github.com/tomz197/ufo-intercept/internal/loop/config"
	"github.com/tomz197/ufo-intercept/internal/object"
	"github.com/tomz197/ufo-intercept/internal/physics"
	"github.com/tomz197/ufo-intercept/internal/stats"
)

// GameState is the phase of a session.
type GameState int

const (
	GameStatePaused  GameState = iota // Waiting for fire
	GameStateRunning                  // Simulation advancing
	GameStateEnded                    // Lives depleted, summary shown
	GameStateExit                     // Quit requested; becomes a fresh Paused session
)

func (s GameState) String() string {
	switch s {
	case GameStatePaused:
		return "paused"
	case GameStateRunning:
		return "running"
	case GameStateEnded:
		return "ended"
	case GameStateExit:
		return "exit"
	}
	return fmt.Sprintf("GameState(%d)", int(s))
}

// Renderer draws frames and messages.
type Renderer interface {
	Clear() error
	DrawFrame(f Frame) error
	ShowMessage(lines []string, fontSize int) error
}

// Audio plays sound effects. Initialize is called on the first start.
type Audio interface {
	Initialize()
	PlayShotSound()
}

// HighScores reads and records the best score.
type HighScores interface {
	HighScore() int
	SetHighScore(score int)
}

// Enemy is an enemy rectangle with its animation variant.
type Enemy struct {
	physics.Rect
	Variant object.Variant
}

// Frame is a read-only snapshot handed to the Renderer.
type Frame struct {
	At       time.Time
	PlayTime time.Duration // Animation phase source

	Player      physics.Rect
	Enemies     []Enemy
	Bonus       physics.Rect
	HasBonus    bool
	PlayerShots []physics.Rect
	EnemyShots  []physics.Rect
	Shields     []physics.Rect

	Score     int
	Lives     int
	Level     int
	HighScore int
}

var startMessage = []string{
	"ARROWS TO MOVE",
	"SPACE TO FIRE",
	"P TO PAUSE",
	"",
	"- * -",
	"",
	"FIRE TO START",
}

// SessionOptions configures a Session. Renderer is required.
type SessionOptions struct {
	Renderer   Renderer
	Audio      Audio
	HighScores HighScores
	Rand       *rand.Rand
	Logger     *zap.Logger
}

// Session owns one game: the entities, the stat ledger and the state machine.
// All methods must be called from a single goroutine.
type Session struct {
	state    GameState
	input    *input.State
	stats    *stats.Ledger
	player   *object.Player
	swarm    *object.Swarm
	shots    *object.ShotManager
	renderer Renderer
	audio    Audio
	scores   HighScores
	rng      *rand.Rand
	log      *zap.Logger

	lastFrame  time.Time
	audioReady bool
	frame      Frame
}

// NewSession creates a session. Call Start before the first Step.
func NewSession(opts SessionOptions) *Session {
	if opts.Audio == nil {
		opts.Audio = nopAudio{}
	}
	if opts.HighScores == nil {
		opts.HighScores = &MemoryHighScores{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	field := object.Field{Width: config.FieldWidth, Height: config.FieldHeight}
	s := &Session{
		input:    &input.State{},
		stats:    stats.NewLedger(opts.HighScores),
		player:   object.NewPlayer(field),
		swarm:    object.NewSwarm(field, object.DefaultSwarmLayout, object.DefaultBounds),
		shots:    object.NewShotManager(field, object.DefaultShieldLayout),
		renderer: opts.Renderer,
		audio:    opts.Audio,
		scores:   opts.HighScores,
		rng:      opts.Rand,
		log:      opts.Logger,
	}
	s.stats.OnReset(s.swarm.ResetBonus)
	s.stats.OnReset(s.shots.ResetTimers)
	s.stats.OnReset(s.player.Reposition)
	return s
}

// State returns the current game state.
func (s *Session) State() GameState { return s.state }

// Input returns the key state the session samples each frame.
func (s *Session) Input() *input.State { return s.input }

// Stats returns the session's ledger.
func (s *Session) Stats() *stats.Ledger { return s.stats }

// Swarm returns the enemy swarm.
func (s *Session) Swarm() *object.Swarm { return s.swarm }

// Player returns the player ship.
func (s *Session) Player() *object.Player { return s.player }

// Shots returns the shot and shield manager.
func (s *Session) Shots() *object.ShotManager { return s.shots }

// Start resets the session to a fresh game waiting for fire and shows the
// start message.
func (s *Session) Start(now time.Time) error {
	s.stats.Reset()
	s.swarm.Create(s.stats.Level())
	s.shots.CreateShields()
	s.shots.RemoveShots()
	s.state = GameStatePaused
	s.lastFrame = now
	s.log.Debug("session started")

	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	if err := s.renderer.ShowMessage(startMessage, config.StartFontSize); err != nil {
		return fmt.Errorf("start message: %w", err)
	}
	return nil
}

// Step runs one frame at now.
func (s *Session) Step(now time.Time) error {
	delta := now.Sub(s.lastFrame).Seconds()
	s.lastFrame = now

	if s.state != GameStateRunning && s.input.IsQuitting() {
		s.state = GameStateExit
	}

	if s.state == GameStateRunning && s.swarm.Count() == 0 {
		s.levelUp()
	}

	if s.state == GameStatePaused && s.input.IsFiring() {
		if !s.audioReady {
			s.audio.Initialize()
			s.audioReady = true
		}
		s.stats.Begin(now)
		s.state = GameStateRunning
	}

	if s.state == GameStateRunning && s.input.IsPausing() {
		s.stats.End(now)
		s.state = GameStatePaused
		if err := s.renderer.ShowMessage([]string{"PAUSED"}, config.DefaultFontSize); err != nil {
			return fmt.Errorf("pause message: %w", err)
		}
	}

	if s.state == GameStateRunning && s.stats.Lives() < 1 {
		if err := s.end(now); err != nil {
			return err
		}
	}

	if s.state == GameStateRunning {
		s.update(now, delta)
		if err := s.renderer.DrawFrame(s.snapshot(now)); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}
	}

	if s.state == GameStateExit {
		return s.Start(now)
	}
	return nil
}

func (s *Session) levelUp() {
	s.shots.RemoveShots()
	s.stats.NextLevel()
	s.swarm.Create(s.stats.Level())
	s.shots.CreateShields()
	s.log.Info("level up", zap.Int("level", s.stats.Level()), zap.Int("score", s.stats.Score()))
}

func (s *Session) end(now time.Time) error {
	s.stats.End(now)
	s.state = GameStateEnded

	summary := s.stats.Summary(now)
	s.log.Info("game over",
		zap.Int("score", s.stats.Score()),
		zap.Int("level", s.stats.Level()),
		zap.Duration("played", s.stats.PlayTime(now)),
	)

	lines := make([]string, 0, len(summary)+8)
	lines = append(lines, "GAME OVER", "", "- * -", "")
	lines = append(lines, summary...)
	lines = append(lines, "", "- * -", "", "PRESS Q TO QUIT")
	if err := s.renderer.ShowMessage(lines, config.SummaryFontSize); err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	return nil
}

// update advances the simulation by delta seconds.
func (s *Session) update(now time.Time, delta float64) {
	ctx := object.UpdateContext{
		Delta:    delta,
		PlayTime: s.stats.PlayTime(now),
		Input:    s.input,
		Stats:    s.stats,
		Rand:     s.rng,
		Sound:    s.audio,
	}
	s.player.Update(ctx)
	s.swarm.Update(ctx)
	s.shots.Update(ctx, s.player, s.swarm)
}

// snapshot fills the reused frame from the current entities.
func (s *Session) snapshot(now time.Time) Frame {
	f := &s.frame
	f.At = now
	f.PlayTime = s.stats.PlayTime(now)
	f.Player = s.player.Ship.Bounds()

	f.Enemies = f.Enemies[:0]
	for _, e := range s.swarm.Enemies() {
		f.Enemies = append(f.Enemies, Enemy{Rect: e.Bounds(), Variant: e.Variant})
	}
	f.HasBonus = false
	if b := s.swarm.Bonus(); b != nil {
		f.Bonus = b.Bounds()
		f.HasBonus = true
	}
	f.PlayerShots = appendBounds(f.PlayerShots[:0], s.shots.PlayerShots())
	f.EnemyShots = appendBounds(f.EnemyShots[:0], s.shots.EnemyShots())
	f.Shields = appendBounds(f.Shields[:0], s.shots.Shields())

	f.Score = s.stats.Score()
	f.Lives = s.stats.Lives()
	f.Level = s.stats.Level()
	f.HighScore = s.scores.HighScore()
	return *f
}

func appendBounds(dst []physics.Rect, sprites []*object.Sprite) []physics.Rect {
	for _, sp := range sprites {
		dst = append(dst, sp.Bounds())
	}
	return dst
}

type nopAudio struct{}

func (nopAudio) Initialize()    {}
func (nopAudio) PlayShotSound() {}

// MemoryHighScores keeps the high score for the life of the process.
// It is safe for concurrent use.
type MemoryHighScores struct {
	mu   sync.Mutex
	best int
}

// HighScore returns the best score seen so far.
func (m *MemoryHighScores) HighScore() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best
}

// SetHighScore records score if it beats the current best.
func (m *MemoryHighScores) SetHighScore(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.best {
		m.best = score
	}
}
