package game

// Action is one input to Engine.Transition.
type Action interface {
	isAction()
}

type Stat string

const (
	StatHunger  Stat = "hunger"
	StatComfort Stat = "comfort"
	StatHealth  Stat = "health"
	StatEnergy  Stat = "energy"
)

// Tick advances the game by one day.
type Tick struct{}

// Eat consumes one unit of a food, water or medicine item.
type Eat struct{ ItemID string }

type Rest struct{}

type AddInventoryItem struct{ Item InventoryItem }

type RemoveInventoryItem struct {
	ItemID   string
	Quantity int
}

type EquipItem struct{ ItemID string }

type UnequipItem struct{ Slot Slot }

// BuildShelter raises the shelter one level. Material costs are paid by the
// caller beforehand.
type BuildShelter struct{}

type WinGame struct{ Kind VictoryKind }

type LogEvent struct {
	Message  string
	Severity Severity
}

// LoadGame replaces the whole state with a stored snapshot.
type LoadGame struct{ Snapshot Snapshot }

type ResetGame struct{}

// UpdateStats adds Delta to one stat, clamped to [0, 100].
type UpdateStats struct {
	Stat  Stat
	Delta int
}

// Craft pays a recipe's materials and adds its result. Sufficiency is
// checked by the caller with CanCraft.
type Craft struct{ Recipe Recipe }

// RecordVictory books a won fight in the statistics.
type RecordVictory struct {
	EnemyID string
	Rare    bool
}

// RepairItems re-applies canonical definitions, keyed by item id, to ledger
// and equipment entries restored from older saves.
type RepairItems struct{ Definitions map[string]InventoryItem }

// ConfigureSettings replaces the game settings. Invalid difficulties are ignored.
type ConfigureSettings struct{ Settings Settings }

func (Tick) isAction()                {}
func (Eat) isAction()                 {}
func (Rest) isAction()                {}
func (AddInventoryItem) isAction()    {}
func (RemoveInventoryItem) isAction() {}
func (EquipItem) isAction()           {}
func (UnequipItem) isAction()         {}
func (BuildShelter) isAction()        {}
func (WinGame) isAction()             {}
func (LogEvent) isAction()            {}
func (LoadGame) isAction()            {}
func (ResetGame) isAction()           {}
func (UpdateStats) isAction()         {}
func (Craft) isAction()               {}
func (RecordVictory) isAction()       {}
func (RepairItems) isAction()         {}
func (ConfigureSettings) isAction()   {}
