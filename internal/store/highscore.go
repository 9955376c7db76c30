package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// HighScoreKey is the key the best score is persisted under.
const HighScoreKey = "highScore"

// HighScores caches the best score in memory and writes every improvement
// through to the store. It is safe for concurrent use by many sessions.
type HighScores struct {
	mu    sync.Mutex
	best  int
	store *Store
	log   *zap.Logger
}

// LoadHighScores reads the persisted best score. A missing or unparsable
// value starts at zero.
func LoadHighScores(ctx context.Context, s *Store, log *zap.Logger) (*HighScores, error) {
	if log == nil {
		log = zap.NewNop()
	}
	h := &HighScores{store: s, log: log}

	raw, ok, err := s.Get(ctx, HighScoreKey)
	if err != nil {
		return nil, fmt.Errorf("load high score: %w", err)
	}
	if ok {
		best, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("ignoring malformed high score", zap.String("value", raw))
		} else {
			h.best = best
		}
	}
	return h, nil
}

// HighScore returns the best score seen.
func (h *HighScores) HighScore() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.best
}

// SetHighScore records score if it beats the best. Store failures are
// logged; the in-memory value still advances.
func (h *HighScores) SetHighScore(score int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if score <= h.best {
		return
	}
	h.best = score
	if err := h.store.Set(context.Background(), HighScoreKey, strconv.Itoa(score)); err != nil {
		h.log.Error("persist high score", zap.Int("score", score), zap.Error(err))
	}
}
