package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/appengine-ltd/last-shelter/internal/game"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HazardInterval != 3*time.Second || cfg.Difficulty != game.DifficultyNormal || !cfg.Sound {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.Balance != game.DefaultBalance() {
		t.Fatalf("expected default balance, got %+v", cfg.Balance)
	}
	if got := cfg.Settings(); got.AutoSaveIntervalMinutes != 5 || got.Difficulty != game.DifficultyNormal || !got.EnableSound {
		t.Fatalf("expected default game settings, got %+v", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := strings.Join([]string{
		"save_dir: /tmp/shelter",
		"narration_beat: 250ms",
		"difficulty: hard",
		"balance:",
		"  flee_chance: 0.25",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.NarrationBeat != 250*time.Millisecond || cfg.Difficulty != game.DifficultyHard {
		t.Fatalf("expected overrides applied, got beat=%s difficulty=%s", cfg.NarrationBeat, cfg.Difficulty)
	}
	if cfg.Balance.FleeChance != 0.25 || cfg.Balance.PlayerBaseDamage != 5 {
		t.Fatalf("expected partial balance merge, got %+v", cfg.Balance)
	}
	if cfg.DatabasePath() != filepath.Join("/tmp/shelter", "last-shelter.db") {
		t.Fatalf("expected database under save dir, got %s", cfg.DatabasePath())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"difficulty":     func(c *Config) { c.Difficulty = "nightmare" },
		"log level":      func(c *Config) { c.LogLevel = "chatty" },
		"beat":           func(c *Config) { c.NarrationBeat = -time.Second },
		"hazard":         func(c *Config) { c.HazardInterval = 0 },
		"flee chance":    func(c *Config) { c.Balance.FleeChance = 1.5 },
		"damage spread":  func(c *Config) { c.Balance.PlayerDamageSpread = 0 },
		"missing backup": func(c *Config) { c.BackupFile = "" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Seed = 77
	cfg.LogLevel = "debug"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", info.Mode().Perm())
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Seed != 77 || loaded.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected seed and level persisted, got %d/%s", loaded.Seed, loaded.SlogLevel())
	}
}
