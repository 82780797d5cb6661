package game

import (
	"fmt"
	"time"
)

// Engine applies actions to snapshots. It holds only its injected sources;
// all game state travels through Transition.
type Engine struct {
	rng     Rand
	clock   Clock
	ids     IDSource
	balance Balance
}

type Option func(*Engine)

func WithRand(rng Rand) Option { return func(e *Engine) { e.rng = rng } }

func WithClock(clock Clock) Option { return func(e *Engine) { e.clock = clock } }

func WithIDs(ids IDSource) Option { return func(e *Engine) { e.ids = ids } }

func WithBalance(b Balance) Option { return func(e *Engine) { e.balance = b } }

// NewEngine builds an engine. Without options it uses a time-seeded PCG
// source, the system clock and UUID log ids.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:   SystemClock{},
		ids:     UUIDSource{},
		balance: DefaultBalance(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(e.clock.Now().UnixNano())
	}
	return e
}

func (e *Engine) Balance() Balance { return e.balance }

func (e *Engine) Rand() Rand { return e.rng }

func (e *Engine) Now() time.Time { return e.clock.Now() }

// Transition returns the snapshot that results from applying a to s. s is
// never modified. Unknown actions return s unchanged.
func (e *Engine) Transition(s Snapshot, a Action) Snapshot {
	switch act := a.(type) {
	case Tick:
		return e.advanceDay(s)
	case Eat:
		return e.eat(s, act.ItemID)
	case Rest:
		return e.rest(s)
	case AddInventoryItem:
		return e.addItem(s, act.Item)
	case RemoveInventoryItem:
		next := s.Clone()
		next.Player.Inventory = RemoveItem(next.Player.Inventory, act.ItemID, act.Quantity)
		return next
	case EquipItem:
		return e.equip(s, act.ItemID)
	case UnequipItem:
		return e.unequip(s, act.Slot)
	case BuildShelter:
		return e.buildShelter(s)
	case WinGame:
		next := s.Clone()
		next.GameWon = true
		next.VictoryKind = act.Kind
		return next
	case LogEvent:
		next := s.Clone()
		next.EventLog = prependLog(next.EventLog, e.entry(next.Player.GameDay, act.Severity, act.Message))
		return next
	case LoadGame:
		return act.Snapshot.Clone()
	case ResetGame:
		return InitialSnapshot(e.clock.Now())
	case UpdateStats:
		return e.updateStats(s, act.Stat, act.Delta)
	case Craft:
		return e.craft(s, act.Recipe)
	case RecordVictory:
		next := s.Clone()
		next.Statistics.ExplorationsCompleted++
		next.Statistics.EnemiesDefeated++
		if act.Rare {
			next.Statistics.RareItemsFound++
		}
		return next
	case RepairItems:
		return repairItems(s, act.Definitions)
	case ConfigureSettings:
		if !act.Settings.Difficulty.Valid() || act.Settings == s.Settings {
			return s
		}
		next := s.Clone()
		next.Settings = act.Settings
		return next
	default:
		return s
	}
}

func (e *Engine) entry(day int, severity Severity, message string) LogEntry {
	return LogEntry{
		ID:        e.ids.NewID(),
		Timestamp: e.clock.Now(),
		Day:       day,
		Severity:  severity,
		Message:   message,
	}
}

func (e *Engine) log(s *Snapshot, severity Severity, message string) {
	s.EventLog = prependLog(s.EventLog, e.entry(s.Player.GameDay, severity, message))
}

func (e *Engine) eat(s Snapshot, id string) Snapshot {
	item, ok := s.Player.Item(id)
	if !ok {
		return s
	}
	next := s.Clone()
	p := &next.Player
	props := item.Props()
	p.Hunger += props.HungerRestore
	p.Comfort += props.ComfortBonus
	p.Health += props.HealthRestore
	clampPlayer(p)
	p.Inventory = RemoveItem(p.Inventory, id, 1)
	e.log(&next, SeveritySuccess, fmt.Sprintf("Used %s.", item.Name))
	return next
}

func (e *Engine) rest(s Snapshot) Snapshot {
	next := s.Clone()
	next.Player.Energy += e.balance.RestEnergy
	next.Player.Health += e.balance.RestHealth
	clampPlayer(&next.Player)
	e.log(&next, SeverityInfo, "You rested and recovered some strength.")
	return next
}

func (e *Engine) addItem(s Snapshot, item InventoryItem) Snapshot {
	if item.ID == "" || item.Quantity <= 0 {
		return s
	}
	next := s.Clone()
	next.Player.Inventory = AddItem(next.Player.Inventory, item)
	e.log(&next, SeveritySuccess, fmt.Sprintf("Obtained %s x%d.", displayName(item), item.Quantity))
	return next
}

func (e *Engine) equip(s Snapshot, id string) Snapshot {
	items, eq, ok := Equip(s.Player.Inventory, s.Player.Equipment, id)
	if !ok {
		return s
	}
	next := s.Clone()
	next.Player.Inventory = items
	next.Player.Equipment = eq
	name := id
	if slot, ok := slotHolding(eq, id); ok {
		name = displayName(*eq.Slot(slot))
	}
	e.log(&next, SeverityInfo, fmt.Sprintf("Equipped %s.", name))
	return next
}

func (e *Engine) unequip(s Snapshot, slot Slot) Snapshot {
	current := s.Player.Equipment.Slot(slot)
	items, eq, ok := Unequip(s.Player.Inventory, s.Player.Equipment, slot)
	if !ok {
		return s
	}
	next := s.Clone()
	next.Player.Inventory = items
	next.Player.Equipment = eq
	e.log(&next, SeverityInfo, fmt.Sprintf("Unequipped %s.", displayName(*current)))
	return next
}

func (e *Engine) buildShelter(s Snapshot) Snapshot {
	next := s.Clone()
	level := next.Player.ShelterLevel + 1
	next.Player.ShelterLevel = level
	next.Shelter = ShelterStateForLevel(level)
	next.Statistics.ShelterUpgrades++
	e.log(&next, SeveritySuccess, fmt.Sprintf("Shelter upgraded to level %d.", level))
	return next
}

func (e *Engine) updateStats(s Snapshot, stat Stat, delta int) Snapshot {
	next := s.Clone()
	p := &next.Player
	switch stat {
	case StatHunger:
		p.Hunger += delta
	case StatComfort:
		p.Comfort += delta
	case StatHealth:
		p.Health += delta
	case StatEnergy:
		p.Energy += delta
	default:
		return s
	}
	clampPlayer(p)
	if p.Health <= 0 {
		next.IsGameOver = true
	}
	return next
}

func (e *Engine) craft(s Snapshot, r Recipe) Snapshot {
	if r.Result.ID == "" {
		return s
	}
	next := s.Clone()
	p := &next.Player
	for _, m := range r.Materials {
		p.Inventory = RemoveItem(p.Inventory, m.ItemID, m.Quantity)
	}
	result := r.Result
	if result.Quantity <= 0 {
		result = result.WithQuantity(max(1, r.ResultQuantity))
	}
	p.Inventory = AddItem(p.Inventory, result)
	next.Statistics.ItemsCrafted++
	e.log(&next, SeveritySuccess, fmt.Sprintf("Crafted %s.", displayName(result)))
	return next
}

func repairItems(s Snapshot, defs map[string]InventoryItem) Snapshot {
	if len(defs) == 0 {
		return s
	}
	next := s.Clone()
	p := &next.Player
	for i, item := range p.Inventory {
		if def, ok := defs[item.ID]; ok {
			p.Inventory[i] = repairItem(item, def)
		}
	}
	for _, slot := range []Slot{SlotWeapon, SlotArmor} {
		current := p.Equipment.Slot(slot)
		if current == nil {
			continue
		}
		if def, ok := defs[current.ID]; ok {
			fixed := repairItem(*current, def)
			p.Equipment.set(slot, &fixed)
		}
	}
	return next
}

func repairItem(item, def InventoryItem) InventoryItem {
	out := item.clone()
	out.Type = def.Type
	if def.Name != "" {
		out.Name = def.Name
	}
	if def.Properties != nil {
		props := *def.Properties
		out.Properties = &props
	} else {
		out.Properties = nil
	}
	return out
}

func slotHolding(eq Equipment, id string) (Slot, bool) {
	for _, slot := range []Slot{SlotWeapon, SlotArmor} {
		if item := eq.Slot(slot); item != nil && item.ID == id {
			return slot, true
		}
	}
	return "", false
}

func displayName(item InventoryItem) string {
	if item.Name != "" {
		return item.Name
	}
	return item.ID
}
