package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/appengine-ltd/last-shelter/internal/game"
	"github.com/appengine-ltd/last-shelter/internal/storage"
)

// AutoSaver periodically writes the published snapshot to a store.
type AutoSaver struct {
	source   func() *game.Snapshot
	store    storage.Store
	interval time.Duration
	logger   *slog.Logger
}

func NewAutoSaver(s *Session, store storage.Store, interval time.Duration, logger *slog.Logger) *AutoSaver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AutoSaver{source: s.current.Load, store: store, interval: interval, logger: logger}
}

// Run saves on every interval until ctx is done. Finished games and
// snapshots already written are skipped; every transition publishes a new
// pointer. A non-positive interval disables autosave.
func (a *AutoSaver) Run(ctx context.Context) {
	if a.interval <= 0 {
		return
	}
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	var last *game.Snapshot
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := a.source()
			if snap == last || snap.Finished() {
				continue
			}
			if err := a.store.Save(ctx, *snap); err != nil {
				a.logger.Warn("autosave failed", "err", err)
				continue
			}
			last = snap
			a.logger.Debug("autosaved", "day", snap.Player.GameDay)
		}
	}
}
