package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/tomz197/ufo-intercept/internal/config"
)

func TestLevelFallback(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")})
	if err != nil {
		t.Fatal(err)
	}
	if !log.Core().Enabled(zapcore.InfoLevel) || log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected info level fallback")
	}
}

func TestWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ufo.log")
	log, err := New(config.LoggingConfig{Level: "debug", Format: "json", File: path})
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("level up")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"level up"`) {
		t.Errorf("expected json entry, got %q", data)
	}
}
