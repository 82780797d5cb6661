package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/appengine-ltd/last-shelter/internal/game"
)

// DefaultSlot is the id of the single save row.
const DefaultSlot = "last_shelter_save"

// SQLiteStore keeps the save slot as one row of a local SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	slot string
}

// OpenSQLite opens (creating if needed) the database at dbPath and ensures
// its schema exists.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows one writer; the autosaver and manual saves share it.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schemas: %w", err)
	}

	return &SQLiteStore{db: db, slot: DefaultSlot}, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			slot_id TEXT PRIMARY KEY,
			version TEXT NOT NULL,
			game_day INTEGER NOT NULL,
			saved_at DATETIME NOT NULL,
			payload TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_saves_saved_at ON saves(saved_at);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap game.Snapshot) error {
	raw, err := Encode(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saves (slot_id, version, game_day, saved_at, payload)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(slot_id) DO UPDATE SET
			version = excluded.version,
			game_day = excluded.game_day,
			saved_at = excluded.saved_at,
			payload = excluded.payload`,
		s.slot, snap.Version, snap.Player.GameDay, time.Now().UTC(), string(raw),
	)
	if err != nil {
		return fmt.Errorf("sqlite save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (game.Snapshot, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM saves WHERE slot_id = ?`, s.slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Snapshot{}, false, nil
	}
	if err != nil {
		return game.Snapshot{}, false, fmt.Errorf("sqlite load: %w", err)
	}
	snap, err := Decode([]byte(payload))
	if err != nil {
		return game.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot_id = ?`, s.slot); err != nil {
		return fmt.Errorf("sqlite clear: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
