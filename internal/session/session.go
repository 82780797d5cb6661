package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/appengine-ltd/last-shelter/internal/content"
	"github.com/appengine-ltd/last-shelter/internal/game"
	"github.com/appengine-ltd/last-shelter/internal/storage"
)

var (
	ErrGameOver           = errors.New("session: the game is over")
	ErrNotExploring       = errors.New("session: not on an expedition")
	ErrNoEncounter        = errors.New("session: no active encounter")
	ErrInCombat           = errors.New("session: cannot do that during a fight")
	ErrInsufficientEnergy = errors.New("session: not enough energy")
	ErrAreaLocked         = errors.New("session: area requires equipment you do not carry")
	ErrNotCarried         = errors.New("session: item not in inventory")
	ErrNotConsumable      = errors.New("session: item cannot be consumed")
	ErrNotEquippable      = errors.New("session: item cannot be equipped")
	ErrCannotCraft        = errors.New("session: recipe requirements not met")
	ErrShelterMaxed       = errors.New("session: shelter is already at its highest level")
	ErrMissingMaterials   = errors.New("session: missing materials")
	ErrNoHiddenPath       = errors.New("session: no hidden path discovered")
	ErrNoRadio            = errors.New("session: a signal radio is needed to call for rescue")
)

const DefaultHazardInterval = 3 * time.Second

type Options struct {
	Engine   *game.Engine
	Catalog  *content.Catalog
	Store    storage.Store
	Notifier game.Notifier
	Logger   *slog.Logger
	// IDs names encounters. Defaults to UUIDs.
	IDs            game.IDSource
	Pacer          Pacer
	HazardInterval time.Duration
	// Settings are applied to every new game.
	Settings game.Settings
}

// Session owns the live game: it applies one operation at a time and
// publishes the resulting snapshot for lock-free readers.
type Session struct {
	mu sync.Mutex

	engine         *game.Engine
	catalog        *content.Catalog
	store          storage.Store
	notifier       game.Notifier
	logger         *slog.Logger
	ids            game.IDSource
	pacer          Pacer
	hazardInterval time.Duration
	settings       game.Settings

	current atomic.Pointer[game.Snapshot]
	view    atomic.Pointer[Expedition]

	expedition *Expedition
	hazard     *game.HazardTimer
}

func New(opts Options) (*Session, error) {
	if opts.Engine == nil {
		return nil, errors.New("session: engine is required")
	}
	if opts.Catalog == nil {
		return nil, errors.New("session: catalog is required")
	}
	s := &Session{
		engine:         opts.Engine,
		catalog:        opts.Catalog,
		store:          opts.Store,
		notifier:       opts.Notifier,
		logger:         opts.Logger,
		ids:            opts.IDs,
		pacer:          opts.Pacer,
		hazardInterval: opts.HazardInterval,
		settings:       opts.Settings,
	}
	if s.notifier == nil {
		s.notifier = game.NopNotifier{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.ids == nil {
		s.ids = game.UUIDSource{}
	}
	if s.hazardInterval <= 0 {
		s.hazardInterval = DefaultHazardInterval
	}
	s.publish(s.newGame())
	return s, nil
}

// Snapshot returns the latest published state. Safe from any goroutine.
func (s *Session) Snapshot() game.Snapshot {
	return *s.current.Load()
}

// Expedition returns the active expedition, if any. Safe from any goroutine.
func (s *Session) Expedition() (Expedition, bool) {
	view := s.view.Load()
	if view == nil {
		return Expedition{}, false
	}
	return *view, true
}

func (s *Session) Catalog() *content.Catalog { return s.catalog }

func (s *Session) publish(snap game.Snapshot) {
	s.current.Store(&snap)
}

func (s *Session) apply(actions ...game.Action) game.Snapshot {
	snap := s.Snapshot()
	for _, a := range actions {
		snap = s.engine.Transition(snap, a)
	}
	s.publish(snap)
	return snap
}

func (s *Session) newGame() game.Snapshot {
	snap := s.engine.Transition(game.Snapshot{}, game.ResetGame{})
	return s.engine.Transition(snap, game.ConfigureSettings{Settings: s.settings})
}

// Dispatch applies a raw action and returns the new state.
func (s *Session) Dispatch(a game.Action) game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(a)
}

func (s *Session) playable() error {
	if s.Snapshot().Finished() {
		return ErrGameOver
	}
	return nil
}

func (s *Session) idle() error {
	if err := s.playable(); err != nil {
		return err
	}
	if s.expedition != nil && s.expedition.InCombat() {
		return ErrInCombat
	}
	return nil
}

func (s *Session) Eat(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idle(); err != nil {
		return err
	}
	item, ok := s.Snapshot().Player.Item(itemID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotCarried, itemID)
	}
	if !item.Type.Consumable() {
		return fmt.Errorf("%w: %s", ErrNotConsumable, item.Name)
	}
	s.apply(game.Eat{ItemID: itemID})
	s.notifier.Notify(game.Notification{Cue: game.CueItemUsed, Text: "Used " + item.Name + ".", ItemType: item.Type})
	return nil
}

// Rest recovers energy and health and lets a day pass.
func (s *Session) Rest() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idle(); err != nil {
		return err
	}
	snap := s.apply(game.Rest{}, game.Tick{})
	s.logger.Debug("rested", "day", snap.Player.GameDay)
	return nil
}

func (s *Session) Equip(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idle(); err != nil {
		return err
	}
	item, ok := s.Snapshot().Player.Item(itemID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotCarried, itemID)
	}
	if _, ok := game.SlotForType(item.Type); !ok {
		return fmt.Errorf("%w: %s", ErrNotEquippable, item.Name)
	}
	s.apply(game.EquipItem{ItemID: itemID})
	return nil
}

func (s *Session) Unequip(slot game.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idle(); err != nil {
		return err
	}
	if s.Snapshot().Player.Equipment.Slot(slot) == nil {
		return fmt.Errorf("%w: nothing in the %s slot", ErrNotCarried, slot)
	}
	s.apply(game.UnequipItem{Slot: slot})
	return nil
}

func (s *Session) Craft(recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idle(); err != nil {
		return err
	}
	recipe, err := s.catalog.Recipe(recipeID)
	if err != nil {
		return err
	}
	p := s.Snapshot().Player
	if p.ShelterLevel < recipe.ShelterLevelRequired {
		return fmt.Errorf("%w: %s needs shelter level %d", ErrCannotCraft, recipe.Name, recipe.ShelterLevelRequired)
	}
	if !game.CanCraft(p, recipe) {
		return fmt.Errorf("%w: %s", ErrMissingMaterials, describeMissing(game.MissingMaterials(p, recipe.Materials)))
	}
	snap := s.apply(game.Craft{Recipe: recipe})
	s.logger.Info("crafted", "recipe", recipe.ID, "day", snap.Player.GameDay)
	return nil
}

// UpgradeShelter pays the next tier's materials and raises the shelter.
func (s *Session) UpgradeShelter() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idle(); err != nil {
		return err
	}
	p := s.Snapshot().Player
	if p.ShelterLevel >= game.MaxShelterLevel {
		return ErrShelterMaxed
	}
	upgrade, err := s.catalog.ShelterUpgrade(p.ShelterLevel)
	if err != nil {
		return err
	}
	if !game.CanUpgradeShelter(p, upgrade.Materials) {
		return fmt.Errorf("%w: %s", ErrMissingMaterials, describeMissing(game.MissingMaterials(p, upgrade.Materials)))
	}
	actions := make([]game.Action, 0, len(upgrade.Materials)+1)
	for _, m := range upgrade.Materials {
		actions = append(actions, game.RemoveInventoryItem{ItemID: m.ItemID, Quantity: m.Quantity})
	}
	actions = append(actions, game.BuildShelter{})
	snap := s.apply(actions...)
	s.logger.Info("shelter upgraded", "level", snap.Player.ShelterLevel, "day", snap.Player.GameDay)
	return nil
}

// CallRescue signals for help with a crafted radio and wins the game.
func (s *Session) CallRescue() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idle(); err != nil {
		return err
	}
	if s.Snapshot().Player.Quantity("signal_radio") == 0 {
		return ErrNoRadio
	}
	s.apply(
		game.LogEvent{Message: "Your distress call is answered. Rescue is on the way.", Severity: game.SeveritySuccess},
		game.WinGame{Kind: game.VictorySOS},
	)
	s.notifier.Notify(game.Notification{Cue: game.CueVictory, Text: "Rescue is on the way."})
	s.logger.Info("game won", "victory", game.VictorySOS)
	return nil
}

// Save writes the current snapshot to the store.
func (s *Session) Save(ctx context.Context) error {
	if s.store == nil {
		return errors.New("session: no store configured")
	}
	snap := s.Snapshot()
	if err := s.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	s.logger.Info("game saved", "day", snap.Player.GameDay)
	return nil
}

// Load restores the stored game and repairs stale item entries against the
// catalog. It reports false when there was nothing to load. On error the
// session falls back to a fresh game.
func (s *Session) Load(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, errors.New("session: no store configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endExpedition()

	stored, ok, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("load failed, starting a new game", "err", err)
		s.publish(s.newGame())
		return false, fmt.Errorf("load game: %w", err)
	}
	if !ok {
		return false, nil
	}
	snap := s.engine.Transition(s.Snapshot(), game.LoadGame{Snapshot: stored})
	snap = s.engine.Transition(snap, game.RepairItems{Definitions: s.catalog.Definitions()})
	s.publish(snap)
	s.logger.Info("game loaded", "day", snap.Player.GameDay)
	return true, nil
}

// Reset abandons the current game and starts over.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endExpedition()
	s.publish(s.newGame())
	s.logger.Info("game reset")
}

func describeMissing(reqs []game.MaterialRequirement) string {
	out := ""
	for i, req := range reqs {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s x%d", req.ItemID, req.Quantity)
	}
	return out
}
