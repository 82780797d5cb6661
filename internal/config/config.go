package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/last-shelter/internal/game"
)

const appDirName = "last-shelter"

type Config struct {
	SaveDir      string `yaml:"save_dir"`
	DatabaseFile string `yaml:"database_file"`
	BackupFile   string `yaml:"backup_file"`
	LogFile      string `yaml:"log_file"`
	LogLevel     string `yaml:"log_level"`

	// Seed 0 means seed from the clock.
	Seed int64 `yaml:"seed"`

	NarrationBeat    time.Duration `yaml:"narration_beat"`
	HazardInterval   time.Duration `yaml:"hazard_interval"`
	AutoSaveInterval time.Duration `yaml:"autosave_interval"`

	Difficulty game.Difficulty `yaml:"difficulty"`
	Sound      bool            `yaml:"sound"`

	Balance game.Balance `yaml:"balance"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	dir, err := DefaultDir()
	if err != nil {
		dir = "."
	}
	return Config{
		SaveDir:          dir,
		DatabaseFile:     "last-shelter.db",
		BackupFile:       "last-shelter-backup.json",
		LogFile:          "last-shelter.log",
		LogLevel:         "info",
		NarrationBeat:    time.Second,
		HazardInterval:   3 * time.Second,
		AutoSaveInterval: 5 * time.Minute,
		Difficulty:       game.DifficultyNormal,
		Sound:            true,
		Balance:          game.DefaultBalance(),
	}
}

func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if base == "" {
		return "", errors.New("config directory not found")
	}
	return filepath.Join(base, appDirName), nil
}

func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
// An empty path means DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path through a temp file so a crash never leaves a
// half-written config.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}

	cleanup = false
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.SaveDir == "" {
		errs = append(errs, errors.New("save_dir is required"))
	}
	if c.DatabaseFile == "" || c.BackupFile == "" {
		errs = append(errs, errors.New("database_file and backup_file are required"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.NarrationBeat < 0 {
		errs = append(errs, fmt.Errorf("narration_beat must not be negative, got %s", c.NarrationBeat))
	}
	if c.HazardInterval <= 0 {
		errs = append(errs, fmt.Errorf("hazard_interval must be positive, got %s", c.HazardInterval))
	}
	if c.AutoSaveInterval < 0 {
		errs = append(errs, fmt.Errorf("autosave_interval must not be negative, got %s", c.AutoSaveInterval))
	}
	if !c.Difficulty.Valid() {
		errs = append(errs, fmt.Errorf("unknown difficulty %q", c.Difficulty))
	}
	if err := validateBalance(c.Balance); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func validateBalance(b game.Balance) error {
	if b.PlayerDamageSpread <= 0 || b.EnemyDamageSpread <= 0 {
		return errors.New("balance: damage spreads must be positive")
	}
	if b.FleeChance < 0 || b.FleeChance > 1 || b.ApexBonusChance < 0 || b.ApexBonusChance > 1 {
		return errors.New("balance: chances must be within [0,1]")
	}
	if b.MinEnemyDamage < 0 || b.HazardDamage < 0 {
		return errors.New("balance: damage values must not be negative")
	}
	return nil
}

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.SaveDir, name)
}

func (c Config) DatabasePath() string { return c.resolve(c.DatabaseFile) }

func (c Config) BackupPath() string { return c.resolve(c.BackupFile) }

func (c Config) LogPath() string { return c.resolve(c.LogFile) }

// Settings is the in-game settings block every new game starts with.
func (c Config) Settings() game.Settings {
	return game.Settings{
		AutoSaveIntervalMinutes: int(c.AutoSaveInterval / time.Minute),
		Difficulty:              c.Difficulty,
		EnableSound:             c.Sound,
	}
}

// SlogLevel maps LogLevel onto slog; invalid values fall back to info.
func (c Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", raw)
	}
}
