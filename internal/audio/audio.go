// Package audio plays the game's synthesised sound effects through the
// system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// initSpeaker is replaced in tests.
var initSpeaker = func(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}

// playSpeaker is replaced in tests.
var playSpeaker = func(s beep.Streamer) {
	speaker.Play(s)
}

// Speaker plays effects on the default output device. Until Initialize
// succeeds every effect is silently dropped.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	failed      bool
	log         *zap.Logger
}

// NewSpeaker creates an uninitialised speaker.
func NewSpeaker(log *zap.Logger) *Speaker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Speaker{mixer: &beep.Mixer{}, log: log}
}

// Initialize opens the output device. It is safe to call more than once; a
// failure is logged and disables sound for the life of the speaker.
func (s *Speaker) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized || s.failed {
		return
	}
	if err := initSpeaker(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		s.failed = true
		s.log.Warn("audio unavailable, continuing without sound", zap.Error(err))
		return
	}
	playSpeaker(s.mixer)
	s.initialized = true
	s.log.Debug("audio initialised", zap.Int("sample_rate", int(sampleRate)))
}

// Enabled reports whether effects reach the device.
func (s *Speaker) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// PlayShotSound plays the laser "pew".
func (s *Speaker) PlayShotSound() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(NewShotGenerator(sampleRate))
	speaker.Unlock()
}

// Close stops all effects.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// Nop discards every effect. Hosts without a local speaker use it.
type Nop struct{}

func (Nop) Initialize()    {}
func (Nop) PlayShotSound() {}
