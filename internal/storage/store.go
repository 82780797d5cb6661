package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/appengine-ltd/last-shelter/internal/game"
)

// ErrInvalidSnapshot is returned when stored data is missing required fields
// or cannot be decoded.
var ErrInvalidSnapshot = errors.New("storage: invalid snapshot")

// Store persists a single save slot.
type Store interface {
	Save(ctx context.Context, s game.Snapshot) error
	// Load returns ok=false with a nil error when nothing has been saved.
	Load(ctx context.Context) (s game.Snapshot, ok bool, err error)
	Clear(ctx context.Context) error
}

var requiredFields = []string{"version", "timestamp", "player_state", "shelter_state"}

// Validate checks that raw is a JSON object carrying every required top-level
// field with a usable value.
func Validate(raw []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	for _, name := range requiredFields {
		value, ok := fields[name]
		if !ok || string(value) == "null" {
			return fmt.Errorf("%w: missing %q", ErrInvalidSnapshot, name)
		}
	}
	var version string
	if err := json.Unmarshal(fields["version"], &version); err != nil || version == "" {
		return fmt.Errorf("%w: empty version", ErrInvalidSnapshot)
	}
	return nil
}

// Encode serialises a snapshot for storage.
func Encode(s game.Snapshot) ([]byte, error) {
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// Decode validates and decodes stored bytes.
func Decode(raw []byte) (game.Snapshot, error) {
	if err := Validate(raw); err != nil {
		return game.Snapshot{}, err
	}
	var s game.Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return game.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return s, nil
}
