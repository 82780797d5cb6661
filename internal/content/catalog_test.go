package content

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/appengine-ltd/last-shelter/internal/game"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func TestEmbeddedTablesLoad(t *testing.T) {
	c := loadCatalog(t)
	if got := len(c.Enemies()); got != 11 {
		t.Fatalf("expected 11 enemies, got %d", got)
	}
	if got := len(c.Areas()); got != 4 {
		t.Fatalf("expected 4 areas, got %d", got)
	}
	if got := len(c.Recipes()); got != 6 {
		t.Fatalf("expected 6 recipes, got %d", got)
	}
}

func TestEnemyTable(t *testing.T) {
	c := loadCatalog(t)
	cases := []struct {
		id            string
		maxHP, attack int
	}{
		{"wild_dog", 50, 5},
		{"wolf", 80, 15},
		{"bear", 150, 20},
		{"rat_swarm", 30, 5},
		{"bandit", 100, 12},
		{"shark", 500, 40},
		{"urchin", 3, 0},
	}
	for _, tc := range cases {
		enemy, err := c.Enemy(tc.id)
		if err != nil {
			t.Fatalf("enemy %s: %v", tc.id, err)
		}
		if enemy.MaxHP != tc.maxHP || enemy.Attack != tc.attack {
			t.Fatalf("expected %s %d/%d, got %d/%d", tc.id, tc.maxHP, tc.attack, enemy.MaxHP, enemy.Attack)
		}
	}

	shark, _ := c.Enemy("shark")
	if !shark.Apex {
		t.Fatalf("expected shark to be the apex predator")
	}
	urchin, _ := c.Enemy("urchin")
	if urchin.Status != game.StatusAttached {
		t.Fatalf("expected urchin to attach, got %q", urchin.Status)
	}
}

func TestAreaOutcomesResolveToItems(t *testing.T) {
	c := loadCatalog(t)
	area, err := c.Area("ruins_outskirts")
	if err != nil {
		t.Fatalf("area: %v", err)
	}
	if area.EnergyCost != 20 || area.RiskLevel != 1 {
		t.Fatalf("expected ruins cost 20 risk 1, got %d/%d", area.EnergyCost, area.RiskLevel)
	}
	found := false
	for _, ev := range area.Events {
		if ev.ID != "find_canned_food" {
			continue
		}
		found = true
		item := ev.Outcomes[0].Item
		if item == nil || item.Quantity != 2 || item.Props().HungerRestore != 30 || item.Type != game.ItemFood {
			t.Fatalf("expected 2 resolved canned food, got %+v", item)
		}
	}
	if !found {
		t.Fatalf("expected find_canned_food event")
	}

	deep, _ := c.Area("deep_sea")
	if deep.RequiredItem != "diving_suit" {
		t.Fatalf("expected deep sea to require a diving suit, got %q", deep.RequiredItem)
	}
}

func TestLookupsReturnCopies(t *testing.T) {
	c := loadCatalog(t)
	area, _ := c.Area("ruins_outskirts")
	area.Events[0].Outcomes[0].Item.Quantity = 999
	area.Events[0].Probability = 42

	again, _ := c.Area("ruins_outskirts")
	if again.Events[0].Outcomes[0].Item.Quantity == 999 || again.Events[0].Probability == 42 {
		t.Fatalf("expected catalog area unaffected by caller mutation")
	}

	item, _ := c.Item("shark_meat")
	item.Properties.HungerRestore = 1
	fresh, _ := c.Item("shark_meat")
	if fresh.Props().HungerRestore != 100 {
		t.Fatalf("expected item definition unaffected, got %d", fresh.Props().HungerRestore)
	}
}

func TestUnknownIDsAreErrors(t *testing.T) {
	c := loadCatalog(t)
	checks := []error{}
	_, err := c.Item("unobtainium")
	checks = append(checks, err)
	_, err = c.Enemy("dragon")
	checks = append(checks, err)
	_, err = c.Area("moon")
	checks = append(checks, err)
	_, err = c.Recipe("laser")
	checks = append(checks, err)
	_, err = c.ShelterUpgrade(game.MaxShelterLevel)
	checks = append(checks, err)
	for i, err := range checks {
		if !errors.Is(err, ErrUnknownID) {
			t.Fatalf("expected ErrUnknownID for lookup %d, got %v", i, err)
		}
	}
}

func TestRecipesAndShelterUpgrades(t *testing.T) {
	c := loadCatalog(t)
	suit, err := c.Recipe("diving_suit")
	if err != nil {
		t.Fatalf("recipe: %v", err)
	}
	if suit.Result.Type != game.ItemClothing || suit.Result.Quantity != 1 || suit.ShelterLevelRequired != 1 {
		t.Fatalf("expected level 1 clothing result, got %+v", suit)
	}

	up, err := c.ShelterUpgrade(0)
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	want := map[string]int{"wood": 5, "stone": 2}
	for _, m := range up.Materials {
		if want[m.ItemID] != m.Quantity {
			t.Fatalf("expected level 0 upgrade %v, got %+v", want, up.Materials)
		}
	}
}

func TestLoadFSRejectsDanglingReferences(t *testing.T) {
	fsys := fstest.MapFS{
		"d/items.yaml":   {Data: []byte("items:\n  - {id: wood, name: Wood, type: material}\n")},
		"d/enemies.yaml": {Data: []byte("enemies:\n  - {id: rat, name: Rat, max_hp: 5, attack: 1, loot: [{item: cheese, chance: 1, quantity: 1}]}\n")},
		"d/areas.yaml":   {Data: []byte("areas: []\n")},
		"d/recipes.yaml": {Data: []byte("recipes: []\n")},
		"d/shelter.yaml": {Data: []byte("upgrades: []\n")},
	}
	if _, err := LoadFS(fsys, "d"); !errors.Is(err, ErrUnknownID) {
		t.Fatalf("expected dangling loot id to fail with ErrUnknownID, got %v", err)
	}
}

func TestLoadFSRejectsUnknownFields(t *testing.T) {
	fsys := fstest.MapFS{
		"d/items.yaml": {Data: []byte("items:\n  - {id: wood, name: Wood, type: material, weight: 3}\n")},
	}
	if _, err := LoadFS(fsys, "d"); err == nil {
		t.Fatalf("expected unknown yaml field to be rejected")
	}
}
