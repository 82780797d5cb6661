package storage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/appengine-ltd/last-shelter/internal/game"
)

// FallbackStore writes every save to a primary and a backup store and reads
// from the backup when the primary has nothing usable.
type FallbackStore struct {
	primary Store
	backup  Store
	logger  *slog.Logger
}

func NewFallbackStore(primary, backup Store, logger *slog.Logger) *FallbackStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FallbackStore{primary: primary, backup: backup, logger: logger}
}

// Save writes to both stores and reports failure if either write failed.
func (f *FallbackStore) Save(ctx context.Context, s game.Snapshot) error {
	primaryErr := f.primary.Save(ctx, s)
	if primaryErr != nil {
		f.logger.Warn("primary save failed", "err", primaryErr)
	}
	backupErr := f.backup.Save(ctx, s)
	if backupErr != nil {
		f.logger.Warn("backup save failed", "err", backupErr)
	}
	if primaryErr == nil && backupErr == nil {
		f.logger.Debug("game saved", "day", s.Player.GameDay)
	}
	return errors.Join(primaryErr, backupErr)
}

func (f *FallbackStore) Load(ctx context.Context) (game.Snapshot, bool, error) {
	s, ok, err := f.primary.Load(ctx)
	if err == nil && ok {
		return s, true, nil
	}
	if err != nil {
		f.logger.Warn("primary load failed, trying backup", "err", err)
	}

	s, ok, backupErr := f.backup.Load(ctx)
	if backupErr != nil {
		return game.Snapshot{}, false, errors.Join(err, backupErr)
	}
	if ok {
		f.logger.Info("loaded save from backup", "day", s.Player.GameDay)
	}
	return s, ok, nil
}

func (f *FallbackStore) Clear(ctx context.Context) error {
	return errors.Join(f.primary.Clear(ctx), f.backup.Clear(ctx))
}
