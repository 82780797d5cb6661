package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/last-shelter/internal/game"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ErrUnknownID is returned by lookups for ids the tables do not contain.
var ErrUnknownID = errors.New("content: unknown id")

// ShelterUpgrade lists the materials that raise the shelter from FromLevel.
type ShelterUpgrade struct {
	FromLevel int                        `yaml:"from_level"`
	Materials []game.MaterialRequirement `yaml:"materials"`
}

// Catalog is the immutable set of static tables. Lookups return copies.
type Catalog struct {
	items      map[string]game.InventoryItem
	itemOrder  []string
	enemies    map[string]game.Enemy
	enemyOrder []string
	areas      []game.Area
	recipes    []game.Recipe
	upgrades   map[int]ShelterUpgrade
}

type itemsFile struct {
	Items []game.InventoryItem `yaml:"items"`
}

type enemiesFile struct {
	Enemies []game.Enemy `yaml:"enemies"`
}

type areasFile struct {
	Areas []game.Area `yaml:"areas"`
}

type recipesFile struct {
	Recipes []game.Recipe `yaml:"recipes"`
}

type shelterFile struct {
	Upgrades []ShelterUpgrade `yaml:"upgrades"`
}

// Load decodes the embedded tables.
func Load() (*Catalog, error) {
	return LoadFS(dataFS, "data")
}

// LoadFS decodes items.yaml, enemies.yaml, areas.yaml, recipes.yaml and
// shelter.yaml from dir in fsys and checks every cross reference.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	var (
		items   itemsFile
		enemies enemiesFile
		areas   areasFile
		recipes recipesFile
		shelter shelterFile
	)
	files := []struct {
		name string
		out  any
	}{
		{"items.yaml", &items},
		{"enemies.yaml", &enemies},
		{"areas.yaml", &areas},
		{"recipes.yaml", &recipes},
		{"shelter.yaml", &shelter},
	}
	for _, f := range files {
		if err := decodeFile(fsys, path.Join(dir, f.name), f.out); err != nil {
			return nil, err
		}
	}

	c := &Catalog{
		items:    make(map[string]game.InventoryItem, len(items.Items)),
		enemies:  make(map[string]game.Enemy, len(enemies.Enemies)),
		upgrades: make(map[int]ShelterUpgrade, len(shelter.Upgrades)),
	}
	for _, item := range items.Items {
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("items.yaml: duplicate item %q", item.ID)
		}
		item.Quantity = 0
		c.items[item.ID] = item
		c.itemOrder = append(c.itemOrder, item.ID)
	}
	for _, enemy := range enemies.Enemies {
		if _, dup := c.enemies[enemy.ID]; dup {
			return nil, fmt.Errorf("enemies.yaml: duplicate enemy %q", enemy.ID)
		}
		for _, loot := range enemy.Loot {
			if _, ok := c.items[loot.ItemID]; !ok {
				return nil, fmt.Errorf("enemies.yaml: %s loot: %w: %q", enemy.ID, ErrUnknownID, loot.ItemID)
			}
		}
		c.enemies[enemy.ID] = enemy
		c.enemyOrder = append(c.enemyOrder, enemy.ID)
	}
	for _, area := range areas.Areas {
		resolved, err := c.resolveArea(area)
		if err != nil {
			return nil, fmt.Errorf("areas.yaml: %s: %w", area.ID, err)
		}
		c.areas = append(c.areas, resolved)
	}
	for _, recipe := range recipes.Recipes {
		result, err := c.Stack(recipe.ResultID, max(1, recipe.ResultQuantity))
		if err != nil {
			return nil, fmt.Errorf("recipes.yaml: %s: %w", recipe.ID, err)
		}
		recipe.Result = result
		if err := c.checkMaterials(recipe.Materials); err != nil {
			return nil, fmt.Errorf("recipes.yaml: %s: %w", recipe.ID, err)
		}
		c.recipes = append(c.recipes, recipe)
	}
	for _, up := range shelter.Upgrades {
		if err := c.checkMaterials(up.Materials); err != nil {
			return nil, fmt.Errorf("shelter.yaml: level %d: %w", up.FromLevel, err)
		}
		c.upgrades[up.FromLevel] = up
	}
	return c, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) resolveArea(area game.Area) (game.Area, error) {
	if area.RequiredItem != "" {
		if _, ok := c.items[area.RequiredItem]; !ok {
			return area, fmt.Errorf("required item: %w: %q", ErrUnknownID, area.RequiredItem)
		}
	}
	if len(area.Events) == 0 {
		return area, fmt.Errorf("no events")
	}
	for i, ev := range area.Events {
		if ev.EnemyID != "" {
			if _, ok := c.enemies[ev.EnemyID]; !ok {
				return area, fmt.Errorf("event %s: %w: enemy %q", ev.ID, ErrUnknownID, ev.EnemyID)
			}
		}
		for j, out := range ev.Outcomes {
			if out.Kind != game.OutcomeItem {
				continue
			}
			stack, err := c.Stack(out.ItemID, max(1, out.Quantity))
			if err != nil {
				return area, fmt.Errorf("event %s: %w", ev.ID, err)
			}
			area.Events[i].Outcomes[j].Item = &stack
		}
	}
	return area, nil
}

func (c *Catalog) checkMaterials(reqs []game.MaterialRequirement) error {
	for _, req := range reqs {
		if _, ok := c.items[req.ItemID]; !ok {
			return fmt.Errorf("material: %w: %q", ErrUnknownID, req.ItemID)
		}
	}
	return nil
}

// Item returns the definition of id with zero quantity.
func (c *Catalog) Item(id string) (game.InventoryItem, error) {
	item, ok := c.items[id]
	if !ok {
		return game.InventoryItem{}, fmt.Errorf("%w: item %q", ErrUnknownID, id)
	}
	return item.WithQuantity(0), nil
}

// Stack returns qty units of item id ready to add to a ledger.
func (c *Catalog) Stack(id string, qty int) (game.InventoryItem, error) {
	item, err := c.Item(id)
	if err != nil {
		return game.InventoryItem{}, err
	}
	return item.WithQuantity(qty), nil
}

// Items lists every item definition in table order.
func (c *Catalog) Items() []game.InventoryItem {
	out := make([]game.InventoryItem, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		out = append(out, c.items[id].WithQuantity(0))
	}
	return out
}

// Definitions maps item ids to their canonical definitions.
func (c *Catalog) Definitions() map[string]game.InventoryItem {
	out := make(map[string]game.InventoryItem, len(c.items))
	for id, item := range c.items {
		out[id] = item.WithQuantity(0)
	}
	return out
}

func (c *Catalog) Enemy(id string) (game.Enemy, error) {
	enemy, ok := c.enemies[id]
	if !ok {
		return game.Enemy{}, fmt.Errorf("%w: enemy %q", ErrUnknownID, id)
	}
	return cloneEnemy(enemy), nil
}

func (c *Catalog) Enemies() []game.Enemy {
	out := make([]game.Enemy, 0, len(c.enemyOrder))
	for _, id := range c.enemyOrder {
		out = append(out, cloneEnemy(c.enemies[id]))
	}
	return out
}

func (c *Catalog) Area(id string) (game.Area, error) {
	for _, area := range c.areas {
		if area.ID == id {
			return cloneArea(area), nil
		}
	}
	return game.Area{}, fmt.Errorf("%w: area %q", ErrUnknownID, id)
}

func (c *Catalog) Areas() []game.Area {
	out := make([]game.Area, 0, len(c.areas))
	for _, area := range c.areas {
		out = append(out, cloneArea(area))
	}
	return out
}

func (c *Catalog) Recipe(id string) (game.Recipe, error) {
	for _, r := range c.recipes {
		if r.ID == id {
			return cloneRecipe(r), nil
		}
	}
	return game.Recipe{}, fmt.Errorf("%w: recipe %q", ErrUnknownID, id)
}

func (c *Catalog) Recipes() []game.Recipe {
	out := make([]game.Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, cloneRecipe(r))
	}
	return out
}

// ShelterUpgrade returns the cost of leaving level. Levels at or past the
// top tier have no upgrade.
func (c *Catalog) ShelterUpgrade(level int) (ShelterUpgrade, error) {
	up, ok := c.upgrades[level]
	if !ok {
		return ShelterUpgrade{}, fmt.Errorf("%w: shelter upgrade from level %d", ErrUnknownID, level)
	}
	up.Materials = slices.Clone(up.Materials)
	return up, nil
}

func cloneEnemy(e game.Enemy) game.Enemy {
	e.Loot = slices.Clone(e.Loot)
	return e
}

func cloneRecipe(r game.Recipe) game.Recipe {
	r.Materials = slices.Clone(r.Materials)
	r.Result = r.Result.WithQuantity(r.Result.Quantity)
	return r
}

func cloneArea(a game.Area) game.Area {
	a.Resources = slices.Clone(a.Resources)
	events := make([]game.Event, len(a.Events))
	for i, ev := range a.Events {
		outcomes := make([]game.Outcome, len(ev.Outcomes))
		for j, out := range ev.Outcomes {
			if out.Item != nil {
				item := out.Item.WithQuantity(out.Item.Quantity)
				out.Item = &item
			}
			outcomes[j] = out
		}
		ev.Outcomes = outcomes
		events[i] = ev
	}
	a.Events = events
	return a
}
