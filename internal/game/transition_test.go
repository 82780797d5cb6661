package game

import (
	"reflect"
	"strings"
	"testing"
)

func TestTickAdvancesDayAndKeepsStatsInRange(t *testing.T) {
	engine := newTestEngine(t, 42)
	s := newTestSnapshot(t)

	for n := 1; n <= 120; n++ {
		s = engine.Transition(s, Tick{})
		if s.Player.GameDay != 1+n {
			t.Fatalf("expected day %d after %d ticks, got %d", 1+n, n, s.Player.GameDay)
		}
		assertStatsInRange(t, s.Player)
		if s.Statistics.TotalDaysSurvived != n {
			t.Fatalf("expected %d days survived, got %d", n, s.Statistics.TotalDaysSurvived)
		}
		if len(s.EventLog) > MaxLogEntries {
			t.Fatalf("expected log capped at %d, got %d", MaxLogEntries, len(s.EventLog))
		}
	}
	if !s.IsGameOver {
		t.Fatalf("expected starvation to end a run of 120 unfed days")
	}
}

func TestTickDoesNotMutatePrior(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)
	s.Player.GameDay = 2
	s.Player.Inventory = []InventoryItem{testItem("canned_food", ItemFood, 1, &ItemProperties{HungerRestore: 30})}
	before := s.Clone()

	_ = engine.Transition(s, Tick{})
	if !reflect.DeepEqual(before, s) {
		t.Fatalf("expected prior snapshot untouched by tick")
	}
}

func TestTickStarvingAndFreezingLosesFifteenHealth(t *testing.T) {
	balance := DefaultBalance()
	balance.ComfortBase = 0
	engine := NewEngine(WithRand(NewRand(3)), WithClock(FixedClock(testNow)), WithIDs(&SequentialIDs{}), WithBalance(balance))

	s := newTestSnapshot(t)
	s.Player.GameDay = 30
	s.Player.Hunger = 0
	s.Player.Comfort = 0
	s.Player.Health = 50

	next := engine.Transition(s, Tick{})
	if next.Player.Comfort != 0 || next.Player.Hunger != 0 {
		t.Fatalf("expected hunger and comfort at 0, got %d/%d", next.Player.Hunger, next.Player.Comfort)
	}
	if next.Player.Health != 35 {
		t.Fatalf("expected health 35, got %d", next.Player.Health)
	}
	if got := countSeverity(next.EventLog, SeverityDanger, SeverityWarning); got != 1 {
		t.Fatalf("expected exactly one diagnostic entry, got %d", got)
	}
}

func TestTickDeathLogsDangerOnlyAndIsSticky(t *testing.T) {
	engine := newTestEngine(t, 5)
	s := newTestSnapshot(t)
	s.Player.Hunger = 0
	s.Player.Health = 10

	next := engine.Transition(s, Tick{})
	if !next.IsGameOver || next.Player.Health != 0 {
		t.Fatalf("expected game over at 0 health, got over=%v health=%d", next.IsGameOver, next.Player.Health)
	}
	if next.EventLog[0].Severity != SeverityDanger || countSeverity(next.EventLog, SeverityWarning) != 0 {
		t.Fatalf("expected a single danger entry, got %+v", next.EventLog)
	}

	revived := engine.Transition(next, UpdateStats{Stat: StatHealth, Delta: 50})
	later := engine.Transition(revived, Tick{})
	if !later.IsGameOver {
		t.Fatalf("expected game over to stay set")
	}
}

func TestTickWarningPriority(t *testing.T) {
	engine := newTestEngine(t, 9)
	s := newTestSnapshot(t)
	s.Player.Hunger = 25

	next := engine.Transition(s, Tick{})
	if len(next.EventLog) != 1 || next.EventLog[0].Severity != SeverityWarning || !strings.Contains(next.EventLog[0].Message, "starving") {
		t.Fatalf("expected hunger warning, got %+v", next.EventLog)
	}
}

func TestTickSupplyDropEveryThirdDay(t *testing.T) {
	engine := newTestEngine(t, 11)
	s := newTestSnapshot(t)
	s.Player.GameDay = 2

	next := engine.Transition(s, Tick{})
	if got := next.Player.Quantity("canned_food"); got != 2 {
		t.Fatalf("expected 2 canned food on day 3, got %d", got)
	}
	if next.EventLog[0].Severity != SeveritySuccess {
		t.Fatalf("expected supply drop logged as success, got %+v", next.EventLog[0])
	}

	after := engine.Transition(next, Tick{})
	if got := after.Player.Quantity("canned_food"); got != 2 {
		t.Fatalf("expected no drop on day 4, got %d", got)
	}
}

func TestTickUsesEquippedClothingOnly(t *testing.T) {
	coat := testItem("coat", ItemClothing, 1, &ItemProperties{Warmth: 10})
	s := newTestSnapshot(t)
	s.Player.GameDay = 30
	s.Player.Inventory = []InventoryItem{coat}

	balance := DefaultBalance()
	balance.ComfortBase = 50
	engine := NewEngine(WithRand(NewRand(13)), WithClock(FixedClock(testNow)), WithIDs(&SequentialIDs{}), WithBalance(balance))

	carried := engine.Transition(s, Tick{})
	if carried.Player.Comfort != 30 {
		t.Fatalf("expected carried coat to give no warmth, got comfort %d", carried.Player.Comfort)
	}

	s = engine.Transition(s, EquipItem{ItemID: "coat"})
	worn := engine.Transition(s, Tick{})
	if worn.Player.Comfort != 40 {
		t.Fatalf("expected worn coat to add 10 warmth, got comfort %d", worn.Player.Comfort)
	}
}

func TestEatRestoresAndConsumes(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)
	s.Player.Hunger = 90
	s.Player.Health = 40
	s.Player.Inventory = []InventoryItem{
		testItem("shark_meat", ItemFood, 1, &ItemProperties{HungerRestore: 100, ComfortBonus: 50}),
		testItem("first_aid_kit", ItemMedicine, 2, &ItemProperties{HealthRestore: 50}),
	}

	s = engine.Transition(s, Eat{ItemID: "shark_meat"})
	if s.Player.Hunger != 100 || s.Player.Comfort != 100 {
		t.Fatalf("expected restores clamped at 100, got hunger=%d comfort=%d", s.Player.Hunger, s.Player.Comfort)
	}
	if s.Player.Quantity("shark_meat") != 0 || len(s.Player.Inventory) != 1 {
		t.Fatalf("expected consumed stack pruned, got %+v", s.Player.Inventory)
	}

	s = engine.Transition(s, Eat{ItemID: "first_aid_kit"})
	if s.Player.Health != 90 || s.Player.Quantity("first_aid_kit") != 1 {
		t.Fatalf("expected health 90 and one kit left, got %d/%d", s.Player.Health, s.Player.Quantity("first_aid_kit"))
	}
	if len(s.EventLog) != 2 {
		t.Fatalf("expected two consumption log entries, got %d", len(s.EventLog))
	}
}

func TestEatMissingItemIsNoop(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)
	next := engine.Transition(s, Eat{ItemID: "ghost"})
	if !reflect.DeepEqual(s, next) {
		t.Fatalf("expected eating a missing item to change nothing")
	}
}

func TestRestClamps(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)
	s.Player.Energy = 70
	s.Player.Health = 97

	s = engine.Transition(s, Rest{})
	if s.Player.Energy != 100 || s.Player.Health != 100 {
		t.Fatalf("expected energy and health clamped to 100, got %d/%d", s.Player.Energy, s.Player.Health)
	}
	if s.EventLog[0].Severity != SeverityInfo {
		t.Fatalf("expected rest logged as info, got %s", s.EventLog[0].Severity)
	}
}

func TestAddItemActionLogsAcquisition(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := engine.Transition(newTestSnapshot(t), AddInventoryItem{Item: testItem("wood", ItemMaterial, 3, nil)})
	if s.Player.Quantity("wood") != 3 || len(s.EventLog) != 1 {
		t.Fatalf("expected wood added and logged, got %+v / %d", s.Player.Inventory, len(s.EventLog))
	}
	s = engine.Transition(s, RemoveInventoryItem{ItemID: "wood", Quantity: 3})
	if s.Player.Quantity("wood") != 0 || len(s.EventLog) != 1 {
		t.Fatalf("expected removal unlogged and stack pruned")
	}
}

func TestBuildShelterKeepsTiersConsistent(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)
	for level := 1; level <= 3; level++ {
		s = engine.Transition(s, BuildShelter{})
		if s.Player.ShelterLevel != level || s.Shelter.Level != level {
			t.Fatalf("expected shelter level %d in both places, got %d/%d", level, s.Player.ShelterLevel, s.Shelter.Level)
		}
		if s.Shelter.WarmthBonus != ShelterWarmthBonus(level) {
			t.Fatalf("expected warmth bonus %d, got %d", ShelterWarmthBonus(level), s.Shelter.WarmthBonus)
		}
	}
	if s.Statistics.ShelterUpgrades != 3 {
		t.Fatalf("expected 3 upgrades counted, got %d", s.Statistics.ShelterUpgrades)
	}
}

func TestWinLogLoadReset(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)

	won := engine.Transition(s, WinGame{Kind: VictoryDeepSea})
	if !won.GameWon || won.VictoryKind != VictoryDeepSea {
		t.Fatalf("expected deep sea victory, got %+v", won)
	}

	logged := engine.Transition(s, LogEvent{Message: "hello", Severity: SeverityInfo})
	if len(logged.EventLog) != 1 || logged.EventLog[0].Day != s.Player.GameDay || logged.EventLog[0].ID == "" {
		t.Fatalf("expected tagged log entry, got %+v", logged.EventLog)
	}

	saved := engine.Transition(engine.Transition(s, Tick{}), Tick{})
	loaded := engine.Transition(s, LoadGame{Snapshot: saved})
	if !reflect.DeepEqual(saved, loaded) {
		t.Fatalf("expected load to adopt snapshot verbatim")
	}

	reset := engine.Transition(saved, ResetGame{})
	if !reflect.DeepEqual(reset, InitialSnapshot(testNow)) {
		t.Fatalf("expected reset to canonical initial snapshot")
	}
}

func TestUpdateStatsClampsAndEndsGame(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)

	s = engine.Transition(s, UpdateStats{Stat: StatEnergy, Delta: -500})
	if s.Player.Energy != 0 {
		t.Fatalf("expected energy clamped to 0, got %d", s.Player.Energy)
	}
	s = engine.Transition(s, UpdateStats{Stat: StatHealth, Delta: -100})
	if !s.IsGameOver {
		t.Fatalf("expected game over at zero health")
	}
}

func TestCraftConsumesMaterials(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)
	s.Player.Inventory = []InventoryItem{
		testItem("wood", ItemMaterial, 3, nil),
		testItem("stone", ItemMaterial, 2, nil),
	}
	axe := Recipe{
		ID:        "stone_axe",
		Result:    testItem("stone_axe", ItemTool, 1, &ItemProperties{AttackPower: 5}),
		Materials: []MaterialRequirement{{ItemID: "wood", Quantity: 2}, {ItemID: "stone", Quantity: 2}},
	}
	if !CanCraft(s.Player, axe) {
		t.Fatalf("expected recipe craftable")
	}

	s = engine.Transition(s, Craft{Recipe: axe})
	q := quantities(s.Player.Inventory)
	if q["wood"] != 1 || q["stone"] != 0 || q["stone_axe"] != 1 {
		t.Fatalf("expected materials spent and axe added, got %v", q)
	}
	if s.Statistics.ItemsCrafted != 1 {
		t.Fatalf("expected crafted count 1, got %d", s.Statistics.ItemsCrafted)
	}
	if CanCraft(s.Player, axe) {
		t.Fatalf("expected recipe no longer craftable")
	}
}

func TestRepairItemsFixesStaleEntries(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)
	s.Player.Inventory = []InventoryItem{{ID: "shark_meat", Name: "shark_meat", Type: ItemMaterial, Quantity: 4}}
	s.Player.Equipment.Weapon = &InventoryItem{ID: "stone_axe", Name: "stone_axe", Type: ItemMaterial, Quantity: 1}

	defs := map[string]InventoryItem{
		"shark_meat": {ID: "shark_meat", Name: "Shark Meat", Type: ItemFood, Properties: &ItemProperties{HungerRestore: 100}},
		"stone_axe":  {ID: "stone_axe", Name: "Stone Axe", Type: ItemTool, Properties: &ItemProperties{AttackPower: 5}},
	}
	fixed := engine.Transition(s, RepairItems{Definitions: defs})

	meat := fixed.Player.Inventory[0]
	if meat.Type != ItemFood || meat.Quantity != 4 || meat.Props().HungerRestore != 100 {
		t.Fatalf("expected meat repaired with quantity kept, got %+v", meat)
	}
	if fixed.Player.Equipment.Weapon.Type != ItemTool || s.Player.Equipment.Weapon.Type != ItemMaterial {
		t.Fatalf("expected equipped axe repaired without touching prior snapshot")
	}
}

func TestRecordVictoryCounts(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := engine.Transition(newTestSnapshot(t), RecordVictory{EnemyID: "shark", Rare: true})
	st := s.Statistics
	if st.EnemiesDefeated != 1 || st.ExplorationsCompleted != 1 || st.RareItemsFound != 1 {
		t.Fatalf("expected victory counted, got %+v", st)
	}
}

func TestConfigureSettingsRejectsUnknownDifficulty(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)
	want := Settings{AutoSaveIntervalMinutes: 10, Difficulty: DifficultyHard, EnableSound: false}
	next := engine.Transition(s, ConfigureSettings{Settings: want})
	if next.Settings != want || s.Settings.Difficulty != DifficultyNormal {
		t.Fatalf("expected settings replaced on a copy, got %+v", next.Settings)
	}
	bad := engine.Transition(next, ConfigureSettings{Settings: Settings{Difficulty: "impossible"}})
	if bad.Settings != want {
		t.Fatalf("expected invalid difficulty ignored, got %+v", bad.Settings)
	}
}

type unknownAction struct{ Tick }

func TestUnknownActionIsIdentity(t *testing.T) {
	engine := newTestEngine(t, 1)
	s := newTestSnapshot(t)
	if next := engine.Transition(s, unknownAction{}); !reflect.DeepEqual(s, next) {
		t.Fatalf("expected unknown action to return state unchanged")
	}
}

func TestTransitionsAreReproducibleForSameDraws(t *testing.T) {
	run := func() Snapshot {
		engine := newTestEngine(t, 77)
		s := newTestSnapshot(t)
		for i := 0; i < 30; i++ {
			s = engine.Transition(s, Tick{})
			if i%4 == 0 {
				s = engine.Transition(s, Eat{ItemID: "canned_food"})
			}
		}
		return s
	}
	if !reflect.DeepEqual(run(), run()) {
		t.Fatalf("expected identical results for identical seeds")
	}
}
