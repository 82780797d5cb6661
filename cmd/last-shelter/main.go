package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/appengine-ltd/last-shelter/internal/config"
	"github.com/appengine-ltd/last-shelter/internal/content"
	"github.com/appengine-ltd/last-shelter/internal/game"
	"github.com/appengine-ltd/last-shelter/internal/parser"
	"github.com/appengine-ltd/last-shelter/internal/session"
	"github.com/appengine-ltd/last-shelter/internal/storage"
	"github.com/appengine-ltd/last-shelter/internal/ui"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		configPath  string
		seed        int64
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "path to config.yaml (default: user config dir)")
	flag.Int64Var(&seed, "seed", 0, "random seed, 0 for time based")
	flag.Parse()

	if showVersion {
		fmt.Printf("Last Shelter %s (%s) %s\n", version, commit, date)
		return
	}

	if err := run(configPath, seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := os.MkdirAll(cfg.SaveDir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	logger.Info("starting", "version", version, "seed", cfg.Seed)

	catalog, err := content.Load()
	if err != nil {
		return err
	}

	store, closeStore := openStore(cfg, logger)
	defer closeStore()

	engineOpts := []game.Option{game.WithBalance(cfg.Balance)}
	if cfg.Seed != 0 {
		engineOpts = append(engineOpts, game.WithRand(game.NewRand(cfg.Seed)))
	}
	notes := ui.NewNotifier(ui.DefaultNotifierBuffer)
	s, err := session.New(session.Options{
		Engine:         game.NewEngine(engineOpts...),
		Catalog:        catalog,
		Store:          store,
		Notifier:       notes,
		Logger:         logger,
		Pacer:          session.Pacer{Beat: cfg.NarrationBeat},
		HazardInterval: cfg.HazardInterval,
		Settings:       cfg.Settings(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := s.Load(ctx); err != nil {
		logger.Warn("continuing with a new game", "err", err)
	}

	saverCtx, stopSaver := context.WithCancel(ctx)
	saverDone := make(chan struct{})
	go func() {
		defer close(saverDone)
		session.NewAutoSaver(s, store, cfg.AutoSaveInterval, logger).Run(saverCtx)
	}()

	app := ui.NewApp(ui.AppConfig{
		Session: s,
		Parser:  parser.New(),
		Notes:   notes,
		Version: version,
	})
	runErr := app.Run(ctx)

	stopSaver()
	<-saverDone
	if !s.Snapshot().Finished() {
		if err := s.Save(context.Background()); err != nil {
			logger.Error("final save failed", "err", err)
		}
	}
	if dropped := notes.Dropped(); dropped > 0 {
		logger.Warn("notifications dropped", "count", dropped)
	}
	logger.Info("stopped")
	return runErr
}

// openStore pairs the sqlite slot with the JSON backup. When sqlite cannot
// be opened the backup file serves alone.
func openStore(cfg config.Config, logger *slog.Logger) (storage.Store, func()) {
	backup := storage.NewFileStore(cfg.BackupPath())
	db, err := storage.OpenSQLite(cfg.DatabasePath())
	if err != nil {
		logger.Warn("sqlite unavailable, using backup file only", "err", err)
		return backup, func() {}
	}
	return storage.NewFallbackStore(db, backup, logger), func() {
		if err := db.Close(); err != nil {
			logger.Warn("close database", "err", err)
		}
	}
}
