package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/ufo-intercept/internal/audio"
	"github.com/tomz197/ufo-intercept/internal/config"
	"github.com/tomz197/ufo-intercept/internal/logging"
	"github.com/tomz197/ufo-intercept/internal/loop"
	"github.com/tomz197/ufo-intercept/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	// Stdout is the game screen, so logs only go to a file.
	log := zap.NewNop()
	if cfg.Logging.File != "" {
		if log, err = logging.New(cfg.Logging); err != nil {
			return fmt.Errorf("logger: %w", err)
		}
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	opts := loop.Options{
		FPS:     cfg.Loop.FPS,
		KeyHold: cfg.Loop.KeyHold,
		Audio:   audio.Nop{},
		Logger:  log,
	}

	if cfg.Store.Path != "" {
		db, err := store.Open(ctx, cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		scores, err := store.LoadHighScores(ctx, db, log.Named("store"))
		if err != nil {
			return err
		}
		opts.HighScores = scores
	}

	if cfg.Audio.Enabled {
		speaker := audio.NewSpeaker(log.Named("audio"))
		defer speaker.Close()
		opts.Audio = speaker
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	log.Info("game started")
	if err := loop.Run(ctx, bufio.NewReader(os.Stdin), os.Stdout, opts); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}
