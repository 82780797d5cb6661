package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/appengine-ltd/last-shelter/internal/game"
)

var savedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	engine := game.NewEngine(
		game.WithRand(game.NewRand(5)),
		game.WithClock(game.FixedClock(savedAt)),
		game.WithIDs(&game.SequentialIDs{}),
	)
	s := game.InitialSnapshot(savedAt)
	for i := 0; i < 4; i++ {
		s = engine.Transition(s, game.Tick{})
	}
	return engine.Transition(s, game.Eat{ItemID: "canned_food"})
}

func assertSameSave(t *testing.T, want, got game.Snapshot) {
	t.Helper()
	if got.Version != want.Version || !got.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("expected version/timestamp %s/%s, got %s/%s", want.Version, want.Timestamp, got.Version, got.Timestamp)
	}
	if got.Player.GameDay != want.Player.GameDay || got.Player.Quantity("canned_food") != want.Player.Quantity("canned_food") {
		t.Fatalf("expected day %d with %d cans, got day %d with %d", want.Player.GameDay, want.Player.Quantity("canned_food"), got.Player.GameDay, got.Player.Quantity("canned_food"))
	}
	if len(got.EventLog) != len(want.EventLog) || got.Statistics != want.Statistics {
		t.Fatalf("expected log and statistics preserved")
	}
}

func TestValidateRequiredFields(t *testing.T) {
	cases := map[string]string{
		"not json":          `{`,
		"missing version":   `{"timestamp":"2025-01-01T00:00:00Z","player_state":{},"shelter_state":{}}`,
		"empty version":     `{"version":"","timestamp":"2025-01-01T00:00:00Z","player_state":{},"shelter_state":{}}`,
		"null player":       `{"version":"1.0.0","timestamp":"2025-01-01T00:00:00Z","player_state":null,"shelter_state":{}}`,
		"missing shelter":   `{"version":"1.0.0","timestamp":"2025-01-01T00:00:00Z","player_state":{}}`,
		"missing timestamp": `{"version":"1.0.0","player_state":{},"shelter_state":{}}`,
	}
	for name, raw := range cases {
		if err := Validate([]byte(raw)); !errors.Is(err, ErrInvalidSnapshot) {
			t.Fatalf("%s: expected ErrInvalidSnapshot, got %v", name, err)
		}
	}

	ok := `{"version":"1.0.0","timestamp":"2025-01-01T00:00:00Z","player_state":{},"shelter_state":{}}`
	if err := Validate([]byte(ok)); err != nil {
		t.Fatalf("expected minimal snapshot to validate, got %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "saves", "backup.json"))

	if _, ok, err := store.Load(ctx); ok || err != nil {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	want := sampleSnapshot(t)
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	assertSameSave(t, want, got)

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("expected clearing twice to succeed, got %v", err)
	}
	if _, ok, _ := store.Load(ctx); ok {
		t.Fatalf("expected store empty after clear")
	}
}

func TestFileStoreRejectsCorruptSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	if err := os.WriteFile(path, []byte(`{"version":"1.0.0"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, ok, err := NewFileStore(path).Load(context.Background())
	if ok || !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expected invalid snapshot error, got ok=%v err=%v", ok, err)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "last-shelter.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Load(ctx); ok || err != nil {
		t.Fatalf("expected empty database, got ok=%v err=%v", ok, err)
	}

	first := sampleSnapshot(t)
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	engine := game.NewEngine(game.WithRand(game.NewRand(1)), game.WithClock(game.FixedClock(savedAt)))
	second := engine.Transition(first, game.Tick{})
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	assertSameSave(t, second, got)

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Load(ctx); ok {
		t.Fatalf("expected no save after clear")
	}
}

type brokenStore struct{ err error }

func (b brokenStore) Save(context.Context, game.Snapshot) error { return b.err }
func (b brokenStore) Load(context.Context) (game.Snapshot, bool, error) {
	return game.Snapshot{}, false, b.err
}
func (b brokenStore) Clear(context.Context) error { return b.err }

func TestFallbackStoreUsesBackup(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk on fire")
	backup := NewFileStore(filepath.Join(t.TempDir(), "backup.json"))
	store := NewFallbackStore(brokenStore{err: boom}, backup, nil)

	want := sampleSnapshot(t)
	if err := store.Save(ctx, want); !errors.Is(err, boom) {
		t.Fatalf("expected primary failure reported, got %v", err)
	}
	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("expected backup load to succeed, got ok=%v err=%v", ok, err)
	}
	assertSameSave(t, want, got)
}

func TestFallbackStorePrefersPrimary(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	primary := NewFileStore(filepath.Join(dir, "primary.json"))
	backup := NewFileStore(filepath.Join(dir, "backup.json"))
	store := NewFallbackStore(primary, backup, nil)

	older := sampleSnapshot(t)
	if err := backup.Save(ctx, older); err != nil {
		t.Fatalf("seed backup: %v", err)
	}
	engine := game.NewEngine(game.WithRand(game.NewRand(2)), game.WithClock(game.FixedClock(savedAt)))
	newer := engine.Transition(older, game.Tick{})
	if err := primary.Save(ctx, newer); err != nil {
		t.Fatalf("seed primary: %v", err)
	}

	got, ok, err := store.Load(ctx)
	if err != nil || !ok || got.Player.GameDay != newer.Player.GameDay {
		t.Fatalf("expected primary save (day %d), got day %d ok=%v err=%v", newer.Player.GameDay, got.Player.GameDay, ok, err)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Load(ctx); ok {
		t.Fatalf("expected both stores cleared")
	}
}
