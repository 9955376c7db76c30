package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Shot sound envelope.
const (
	shotDuration  = 300 * time.Millisecond
	shotSweep     = 150 * time.Millisecond // pitch drop time
	shotStartFreq = 680.0
	shotEndFreq   = 140.0
	shotStartGain = 0.5
	shotEndGain   = 0.0001
)

// ShotGenerator is a sawtooth whose pitch drops exponentially over the
// first half of the sound while its volume decays exponentially to silence.
type ShotGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	phase float64
}

// NewShotGenerator creates a shot sound for the given sample rate.
func NewShotGenerator(sr beep.SampleRate) *ShotGenerator {
	return &ShotGenerator{sr: sr, total: sr.N(shotDuration)}
}

// expRamp interpolates exponentially from a to b as progress runs 0..1.
func expRamp(a, b, progress float64) float64 {
	progress = math.Min(math.Max(progress, 0), 1)
	return a * math.Pow(b/a, progress)
}

// frequency returns the pitch t into the sound.
func frequency(t time.Duration) float64 {
	return expRamp(shotStartFreq, shotEndFreq, float64(t)/float64(shotSweep))
}

// gain returns the volume t into the sound.
func gain(t time.Duration) float64 {
	return expRamp(shotStartGain, shotEndGain, float64(t)/float64(shotDuration))
}

// Stream fills samples until the sound ends.
func (g *ShotGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := g.sr.D(g.pos)
		g.phase += frequency(t) / float64(g.sr)
		g.phase -= math.Floor(g.phase)

		sample := (2*g.phase - 1) * gain(t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

// Err always returns nil.
func (g *ShotGenerator) Err() error {
	return nil
}
