package game

import (
	"slices"
	"time"
)

// SnapshotVersion tags every snapshot handed to persistence.
const SnapshotVersion = "1.0.0"

// Stat bounds shared by hunger, comfort, health and energy.
const (
	StatMin = 0
	StatMax = 100
)

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyNormal   Difficulty = "normal"
	DifficultyHard     Difficulty = "hard"
	DifficultySurvival Difficulty = "survival"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultySurvival:
		return true
	default:
		return false
	}
}

type VictoryKind string

const (
	VictorySOS     VictoryKind = "sos"
	VictoryDeepSea VictoryKind = "deep_sea"
)

// Equipment holds at most one item per slot. Equipped items always carry quantity 1.
type Equipment struct {
	Weapon *InventoryItem `json:"weapon,omitempty"`
	Armor  *InventoryItem `json:"armor,omitempty"`
}

func (e Equipment) clone() Equipment {
	out := Equipment{}
	if e.Weapon != nil {
		w := e.Weapon.clone()
		out.Weapon = &w
	}
	if e.Armor != nil {
		a := e.Armor.clone()
		out.Armor = &a
	}
	return out
}

// Slot returns the item equipped in slot, or nil.
func (e Equipment) Slot(slot Slot) *InventoryItem {
	switch slot {
	case SlotWeapon:
		return e.Weapon
	case SlotArmor:
		return e.Armor
	default:
		return nil
	}
}

func (e *Equipment) set(slot Slot, item *InventoryItem) {
	switch slot {
	case SlotWeapon:
		e.Weapon = item
	case SlotArmor:
		e.Armor = item
	}
}

type PlayerState struct {
	Hunger       int             `json:"hunger"`
	Comfort      int             `json:"comfort"`
	Health       int             `json:"health"`
	Energy       int             `json:"energy"`
	Inventory    []InventoryItem `json:"inventory"`
	Equipment    Equipment       `json:"equipment"`
	ShelterLevel int             `json:"shelter_level"`
	Season       Season          `json:"current_season"`
	Temperature  int             `json:"current_temperature"`
	GameDay      int             `json:"game_day"`
}

// Item returns the ledger entry for id.
func (p PlayerState) Item(id string) (InventoryItem, bool) {
	for _, item := range p.Inventory {
		if item.ID == id && item.Quantity > 0 {
			return item.clone(), true
		}
	}
	return InventoryItem{}, false
}

// Quantity returns how many units of id the ledger holds.
func (p PlayerState) Quantity(id string) int {
	item, ok := p.Item(id)
	if !ok {
		return 0
	}
	return item.Quantity
}

type ShelterState struct {
	Level        int `json:"level"`
	WarmthBonus  int `json:"warmth_bonus"`
	MaxOccupancy int `json:"max_occupancy"`
}

type Settings struct {
	AutoSaveIntervalMinutes int        `json:"auto_save_interval"`
	Difficulty              Difficulty `json:"difficulty"`
	EnableSound             bool       `json:"enable_sound"`
}

type Statistics struct {
	TotalDaysSurvived     int `json:"total_days_survived"`
	ItemsCrafted          int `json:"items_crafted"`
	ExplorationsCompleted int `json:"explorations_completed"`
	ShelterUpgrades       int `json:"shelter_upgrades"`
	RareItemsFound        int `json:"rare_items_found"`
	EnemiesDefeated       int `json:"enemies_defeated"`
}

// Snapshot is the whole persisted game. Transitions never mutate a snapshot
// they are given; they return a new one.
type Snapshot struct {
	Version     string       `json:"version"`
	Timestamp   time.Time    `json:"timestamp"`
	Player      PlayerState  `json:"player_state"`
	Shelter     ShelterState `json:"shelter_state"`
	Settings    Settings     `json:"game_settings"`
	Statistics  Statistics   `json:"statistics"`
	EventLog    []LogEntry   `json:"event_logs"`
	IsGameOver  bool         `json:"is_game_over"`
	GameWon     bool         `json:"game_won"`
	VictoryKind VictoryKind  `json:"victory_kind,omitempty"`
}

// Finished reports whether no further play is possible.
func (s Snapshot) Finished() bool {
	return s.IsGameOver || s.GameWon
}

// Clone returns a deep copy that shares no slices or pointers with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Player.Inventory = cloneItems(s.Player.Inventory)
	out.Player.Equipment = s.Player.Equipment.clone()
	out.EventLog = slices.Clone(s.EventLog)
	return out
}

// InitialSnapshot is the canonical fresh game.
func InitialSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Version:   SnapshotVersion,
		Timestamp: now,
		Player: PlayerState{
			Hunger:      80,
			Comfort:     80,
			Health:      StatMax,
			Energy:      StatMax,
			Inventory:   []InventoryItem{},
			Season:      SeasonSpring,
			Temperature: 20,
			GameDay:     1,
		},
		Shelter: ShelterStateForLevel(0),
		Settings: Settings{
			AutoSaveIntervalMinutes: 5,
			Difficulty:              DifficultyNormal,
			EnableSound:             true,
		},
		EventLog: []LogEntry{},
	}
}

func clamp(number, min, max int) int {
	if number < min {
		return min
	}

	if number > max {
		return max
	}

	return number
}

func clampStat(value int) int {
	return clamp(value, StatMin, StatMax)
}

func clampPlayer(playerState *PlayerState) {
	playerState.Hunger = clampStat(playerState.Hunger)
	playerState.Comfort = clampStat(playerState.Comfort)
	playerState.Health = clampStat(playerState.Health)
	playerState.Energy = clampStat(playerState.Energy)
}
