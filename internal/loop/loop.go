// Package loop runs a game session: frame pacing, input polling, the game
// state machine and the terminal renderer.
package loop

import (
	"context"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/ufo-intercept/internal/draw"
	"github.com/tomz197/ufo-intercept/internal/input"
	"github.com/tomz197/ufo-intercept/internal/loop/config"
)

// Options configures Run.
type Options struct {
	FPS          int           // Target frame rate; defaults to config.DefaultFPS
	KeyHold      time.Duration // How long a key stays held after its last byte
	TermSizeFunc draw.TermSizeFunc
	Audio        Audio
	HighScores   HighScores
	Logger       *zap.Logger
	Rand         *rand.Rand
}

// Run plays sessions on the terminal behind r and w until Ctrl-C, end of
// input or ctx is done. Each iteration polls input, steps the session and
// sleeps to the target frame time.
func Run(ctx context.Context, r io.ByteReader, w io.Writer, opts Options) error {
	fps := opts.FPS
	if fps <= 0 {
		fps = config.DefaultFPS
	}
	frameTime := time.Second / time.Duration(fps)
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	draw.HideCursor(w)
	defer draw.ShowCursor(w)

	screen := NewScreen(w, opts.TermSizeFunc)
	session := NewSession(SessionOptions{
		Renderer:   screen,
		Audio:      opts.Audio,
		HighScores: opts.HighScores,
		Rand:       opts.Rand,
		Logger:     log,
	})
	stream := input.StartStream(r, opts.KeyHold)

	if err := session.Start(time.Now()); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			log.Debug("loop cancelled")
			break
		}
		frameStart := time.Now()

		sig := stream.Poll(frameStart, session.Input())
		if sig.Interrupt || sig.Closed {
			log.Debug("input ended", zap.Bool("interrupt", sig.Interrupt))
			break
		}

		if err := screen.Resize(); err != nil {
			return err
		}

		restarting := session.State() != GameStateRunning && session.Input().IsQuitting()
		if err := session.Step(frameStart); err != nil {
			return err
		}
		if restarting {
			// Keys held while quitting must not carry into the new session.
			stream.Reset()
			session.Input().ReleaseAll()
		}

		elapsed := time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}
