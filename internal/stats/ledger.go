// Package stats holds the authoritative game counters and play-time accounting.
package stats

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies a counter in the ledger.
type Kind int

const (
	Lives Kind = iota
	Score
	Multiplier
	ShotsFired
	EnemiesDestroyed
	BonusesDestroyed
	BonusesMissed
	ShieldsDestroyed
	ShotsHit
	Level
	kindCount
)

// Starting values restored by Reset.
const (
	InitialLives      = 3
	InitialMultiplier = 1
	InitialLevel      = 1
)

// ErrInvalidStatOperation is returned when a counter is addressed with an
// operation it does not permit.
var ErrInvalidStatOperation = errors.New("invalid stat operation")

// ErrUnknownStat is returned for a kind outside the enumeration.
// It also matches ErrInvalidStatOperation.
var ErrUnknownStat = fmt.Errorf("%w: unknown stat", ErrInvalidStatOperation)

type capability uint8

const (
	canRead capability = 1 << iota
	canAdd
	canSubtract
)

var kinds = [kindCount]struct {
	name string
	caps capability
}{
	Lives:            {"lives", canRead | canSubtract},
	Score:            {"score", canRead | canAdd},
	Multiplier:       {"multiplier", 0},
	ShotsFired:       {"shots fired", canAdd},
	EnemiesDestroyed: {"enemies destroyed", canAdd},
	BonusesDestroyed: {"bonuses destroyed", canAdd},
	BonusesMissed:    {"bonuses missed", canAdd},
	ShieldsDestroyed: {"shields destroyed", canAdd},
	ShotsHit:         {"shots hit", canAdd},
	Level:            {"level", canRead | canAdd},
}

// String returns the counter name.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

func (k Kind) valid() bool {
	return k >= 0 && k < kindCount
}

// Readable reports whether Get accepts k.
func (k Kind) Readable() bool { return k.valid() && kinds[k].caps&canRead != 0 }

// Addable reports whether Add accepts k.
func (k Kind) Addable() bool { return k.valid() && kinds[k].caps&canAdd != 0 }

// Subtractable reports whether Subtract accepts k.
func (k Kind) Subtractable() bool { return k.valid() && kinds[k].caps&canSubtract != 0 }

// HighScoreSink receives every new score.
type HighScoreSink interface {
	SetHighScore(score int)
}

// Ledger is the set of game counters plus the play-time intervals.
// It is owned by a single session and is not safe for concurrent use.
type Ledger struct {
	counters  [kindCount]int
	intervals []interval
	sink      HighScoreSink
	onReset   []func()
}

// interval is one span of running play time.
type interval struct {
	start time.Time
	end   time.Time
	open  bool
}

// NewLedger creates a ledger at its starting values. sink may be nil.
func NewLedger(sink HighScoreSink) *Ledger {
	l := &Ledger{sink: sink}
	l.resetCounters()
	return l
}

// OnReset registers fn to run at the end of every Reset.
func (l *Ledger) OnReset(fn func()) {
	l.onReset = append(l.onReset, fn)
}

// Reset restores every counter to its starting value, clears the play-time
// ledger and then runs the registered reset hooks in order.
func (l *Ledger) Reset() {
	l.resetCounters()
	l.intervals = l.intervals[:0]
	for _, fn := range l.onReset {
		fn()
	}
}

func (l *Ledger) resetCounters() {
	l.counters = [kindCount]int{}
	l.counters[Lives] = InitialLives
	l.counters[Multiplier] = InitialMultiplier
	l.counters[Level] = InitialLevel
}

// Add increments an addable counter. A non-positive amount counts as 1.
func (l *Ledger) Add(kind Kind, amount int) error {
	if !kind.valid() {
		return fmt.Errorf("add %s: %w", kind, ErrUnknownStat)
	}
	if !kind.Addable() {
		return fmt.Errorf("add %s: %w", kind, ErrInvalidStatOperation)
	}
	l.add(kind, amount)
	return nil
}

// Subtract decrements a subtractable counter. A non-positive amount counts as 1.
func (l *Ledger) Subtract(kind Kind, amount int) error {
	if !kind.valid() {
		return fmt.Errorf("subtract %s: %w", kind, ErrUnknownStat)
	}
	if !kind.Subtractable() {
		return fmt.Errorf("subtract %s: %w", kind, ErrInvalidStatOperation)
	}
	if amount <= 0 {
		amount = 1
	}
	l.counters[kind] -= amount
	return nil
}

// Get returns a readable counter.
func (l *Ledger) Get(kind Kind) (int, error) {
	if !kind.valid() {
		return 0, fmt.Errorf("get %s: %w", kind, ErrUnknownStat)
	}
	if !kind.Readable() {
		return 0, fmt.Errorf("get %s: %w", kind, ErrInvalidStatOperation)
	}
	return l.counters[kind], nil
}

func (l *Ledger) add(kind Kind, amount int) {
	if amount <= 0 {
		amount = 1
	}
	l.counters[kind] += amount
	if kind == Score && l.sink != nil {
		l.sink.SetHighScore(l.counters[Score])
	}
}

// Counter is the subset of kinds the simulation credits one at a time.
type Counter Kind

const (
	CountShotsFired       = Counter(ShotsFired)
	CountEnemiesDestroyed = Counter(EnemiesDestroyed)
	CountBonusesDestroyed = Counter(BonusesDestroyed)
	CountBonusesMissed    = Counter(BonusesMissed)
	CountShieldsDestroyed = Counter(ShieldsDestroyed)
	CountShotsHit         = Counter(ShotsHit)
)

// Credit adds one to a tally counter.
func (l *Ledger) Credit(c Counter) {
	l.add(Kind(c), 1)
}

// AddScore adds points to the score and forwards it to the high-score sink.
func (l *Ledger) AddScore(points int) {
	l.add(Score, points)
}

// LoseLife removes one life.
func (l *Ledger) LoseLife() {
	l.counters[Lives]--
}

// NextLevel advances the level by one.
func (l *Ledger) NextLevel() {
	l.add(Level, 1)
}

// Lives returns the remaining lives.
func (l *Ledger) Lives() int { return l.counters[Lives] }

// Score returns the current score.
func (l *Ledger) Score() int { return l.counters[Score] }

// Level returns the current level.
func (l *Ledger) Level() int { return l.counters[Level] }

// Begin opens a play-time interval at t.
func (l *Ledger) Begin(t time.Time) {
	l.intervals = append(l.intervals, interval{start: t, open: true})
}

// End closes the most recent open interval at t. It is a no-op when no
// interval is open.
func (l *Ledger) End(t time.Time) {
	for i := len(l.intervals) - 1; i >= 0; i-- {
		if l.intervals[i].open {
			l.intervals[i].end = t
			l.intervals[i].open = false
			return
		}
	}
}

// PlayTime returns the accumulated running time as of now. Open intervals
// count up to now.
func (l *Ledger) PlayTime(now time.Time) time.Duration {
	var total time.Duration
	for _, iv := range l.intervals {
		end := iv.end
		if iv.open {
			end = now
		}
		total += end.Sub(iv.start)
	}
	return total
}
