package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"

	"github.com/tomz197/ufo-intercept/internal/audio"
	"github.com/tomz197/ufo-intercept/internal/config"
	"github.com/tomz197/ufo-intercept/internal/draw"
	ufolog "github.com/tomz197/ufo-intercept/internal/logging"
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
	log, err := ufolog.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One high score shared by every connection.
	var scores loop.HighScores = &loop.MemoryHighScores{}
	if cfg.Store.Path != "" {
		db, err := store.Open(ctx, cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		hs, err := store.LoadHighScores(ctx, db, log.Named("store"))
		if err != nil {
			return err
		}
		scores = hs
	}

	addr := net.JoinHostPort(cfg.SSH.Host, strconv.Itoa(cfg.SSH.Port))
	h := &host{cfg: cfg, scores: scores, log: log}
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			h.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	errCh := make(chan error, 1)
	log.Info("starting ssh server", zap.String("addr", addr), zap.String("store", cfg.Store.Path))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// host runs one independent game per SSH session.
type host struct {
	cfg    *config.Config
	scores loop.HighScores
	log    *zap.Logger
}

func (h *host) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		log := h.log.With(zap.String("user", sess.User()), zap.String("remote", sess.RemoteAddr().String()))
		log.Info("session opened",
			zap.String("term", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height))

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		opts := loop.Options{
			FPS:          h.cfg.Loop.FPS,
			KeyHold:      h.cfg.Loop.KeyHold,
			TermSizeFunc: sizeTracker.getSize,
			Audio:        audio.Nop{}, // the server's speaker is not the player's
			HighScores:   h.scores,
			Logger:       log,
		}
		if err := loop.Run(sess.Context(), bufio.NewReader(sess), sess, opts); err != nil {
			log.Warn("game error", zap.Error(err))
		}

		log.Info("session closed")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
