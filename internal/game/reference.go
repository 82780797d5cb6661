package game

// Reference data consumed read-only by exploration and combat. The content
// package decodes these from its tables.

type StatusEffect string

const (
	StatusNone StatusEffect = ""
	// StatusAttached marks an enemy that clings to the player, blocks fleeing
	// and deals damage over time instead of taking turns.
	StatusAttached StatusEffect = "attached"
)

type LootEntry struct {
	ItemID      string  `json:"item_id" yaml:"item"`
	Probability float64 `json:"probability" yaml:"chance"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
}

type Enemy struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	MaxHP       int          `json:"max_hp" yaml:"max_hp"`
	Attack      int          `json:"attack" yaml:"attack"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Loot        []LootEntry  `json:"loot,omitempty" yaml:"loot,omitempty"`
	Status      StatusEffect `json:"status,omitempty" yaml:"status,omitempty"`
	// Apex enemies roll for the hidden path when defeated.
	Apex bool `json:"apex,omitempty" yaml:"apex,omitempty"`
}

type EventKind string

const (
	EventPositive EventKind = "positive"
	EventNegative EventKind = "negative"
	EventNeutral  EventKind = "neutral"
)

type OutcomeKind string

const (
	OutcomeItem        OutcomeKind = "item"
	OutcomeStatus      OutcomeKind = "status"
	OutcomeInformation OutcomeKind = "information"
)

// Outcome is one independent consequence of an exploration event.
type Outcome struct {
	Kind        OutcomeKind    `json:"kind" yaml:"kind"`
	Item        *InventoryItem `json:"item,omitempty" yaml:"-"`
	ItemID      string         `json:"item_id,omitempty" yaml:"item,omitempty"`
	Quantity    int            `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Stat        Stat           `json:"stat,omitempty" yaml:"stat,omitempty"`
	Delta       int            `json:"delta,omitempty" yaml:"delta,omitempty"`
	Probability float64        `json:"probability" yaml:"chance"`
	Message     string         `json:"message,omitempty" yaml:"message,omitempty"`
}

type Event struct {
	ID          string    `json:"id" yaml:"id"`
	Kind        EventKind `json:"kind" yaml:"kind"`
	Probability float64   `json:"probability" yaml:"weight"`
	Description string    `json:"description" yaml:"description"`
	EnemyID     string    `json:"enemy_id,omitempty" yaml:"enemy,omitempty"`
	Outcomes    []Outcome `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

type Area struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Description       string   `json:"description" yaml:"description"`
	RiskLevel         int      `json:"risk_level" yaml:"risk"`
	ResourcePotential int      `json:"resource_potential" yaml:"resources"`
	EnergyCost        int      `json:"energy_cost" yaml:"energy_cost"`
	TimeRequired      int      `json:"time_required" yaml:"hours"`
	RequiredItem      string   `json:"required_item,omitempty" yaml:"requires,omitempty"`
	Resources         []string `json:"resources,omitempty" yaml:"finds,omitempty"`
	Events            []Event  `json:"events" yaml:"events"`
}

// Accessible reports whether the player carries whatever the area requires.
func (a Area) Accessible(p PlayerState) bool {
	if a.RequiredItem == "" {
		return true
	}
	return p.Quantity(a.RequiredItem) > 0
}

type Recipe struct {
	ID                   string                `json:"id" yaml:"id"`
	Name                 string                `json:"name" yaml:"name"`
	Description          string                `json:"description,omitempty" yaml:"description,omitempty"`
	Result               InventoryItem         `json:"result" yaml:"-"`
	ResultID             string                `json:"result_id" yaml:"result"`
	ResultQuantity       int                   `json:"result_quantity" yaml:"quantity"`
	Materials            []MaterialRequirement `json:"materials" yaml:"materials"`
	CraftingTime         int                   `json:"crafting_time" yaml:"minutes"`
	ShelterLevelRequired int                   `json:"shelter_level_required" yaml:"shelter_level"`
}

// CanCraft reports whether the shelter is good enough and the ledger holds
// every material.
func CanCraft(p PlayerState, r Recipe) bool {
	if p.ShelterLevel < r.ShelterLevelRequired {
		return false
	}
	return HasMaterials(p, r.Materials)
}
