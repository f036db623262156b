package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
)

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestSetupFromFlags(t *testing.T) {
	cfg, err := Setup(flags(t,
		"--move-url=http://localhost:8000/play_step/",
		"--reset-url=http://localhost:8000/reset_game/",
		"--csrf-token=abc",
		"--model=minimax",
	))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	want := &Config{
		CSRFToken:      "abc",
		MoveURL:        "http://localhost:8000/play_step/",
		ResetURL:       "http://localhost:8000/reset_game/",
		Model:          "minimax",
		Models:         DefaultModels,
		RequestTimeout: 10 * time.Second,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
}

func TestSetupFromEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boardclient.yaml")
	body := "move_url: http://file/play_step/\nreset_url: http://file/reset_game/\nmodels: [random, stockfish]\nmodel: stockfish\nrequest_timeout: 3s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("BOARDCLIENT_RESET_URL", "http://env/reset_game/")

	cfg, err := Setup(flags(t, "--config="+path))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.MoveURL != "http://file/play_step/" || cfg.ResetURL != "http://env/reset_game/" {
		t.Fatalf("unexpected urls: %s %s", cfg.MoveURL, cfg.ResetURL)
	}
	if cfg.Model != "stockfish" || cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected model/timeout: %s %s", cfg.Model, cfg.RequestTimeout)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{ResetURL: "r", Model: "random"}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingURL) {
		t.Fatalf("expected ErrMissingURL, got %v", err)
	}
	cfg = Config{MoveURL: "m", ResetURL: "r", Model: "deep-blue"}
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
}

func TestModelChoice(t *testing.T) {
	m, err := NewModelChoice(DefaultModels, "random")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := m.Set("minimax"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if m.Model() != "minimax" {
		t.Fatalf("expected minimax, got %s", m.Model())
	}
	if err := m.Set("stockfish"); !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("expected ErrUnknownModel, got %v", err)
	}
	if m.Model() != "minimax" {
		t.Fatalf("refused set changed the model to %s", m.Model())
	}
}
