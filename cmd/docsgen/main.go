package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/appengine-ltd/last-shelter/internal/content"
	"github.com/appengine-ltd/last-shelter/internal/game"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := flag.String("out", filepath.Join("docs", "reference", "catalogs"), "output directory")
	flag.Parse()

	catalog, err := content.Load()
	if err != nil {
		fatal(err)
	}
	if err := os.MkdirAll(*root, 0o755); err != nil {
		fatal(err)
	}

	files := []docFile{
		generateItemsDoc(catalog),
		generateEnemiesDoc(catalog),
		generateAreasDoc(catalog),
		generateRecipesDoc(catalog),
		generateShelterDoc(catalog),
	}
	for _, f := range files {
		path := filepath.Join(*root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			fatal(err)
		}
		fmt.Printf("wrote %s\n", path)
	}

	index := generateCatalogIndex(files)
	indexPath := filepath.Join(*root, "README.md")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		fatal(err)
	}
	fmt.Printf("wrote %s\n", indexPath)
}

func generateCatalogIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Data Catalogs\n\n")
	b.WriteString("Generated from `internal/content/data` using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateItemsDoc(c *content.Catalog) docFile {
	items := c.Items()
	sort.Slice(items, func(i, j int) bool {
		if items[i].Type != items[j].Type {
			return items[i].Type < items[j].Type
		}
		return items[i].ID < items[j].ID
	})

	var b strings.Builder
	b.WriteString("# Items\n\n")
	b.WriteString("Source: `internal/content/data/items.yaml`.\n\n")
	b.WriteString(fmt.Sprintf("Total items: **%d**.\n\n", len(items)))
	b.WriteString("| ID | Name | Type | Consumable | Properties |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, item := range items {
		b.WriteString("| ")
		b.WriteString(escape(item.ID))
		b.WriteString(" | ")
		b.WriteString(escape(item.Name))
		b.WriteString(" | ")
		b.WriteString(escape(string(item.Type)))
		b.WriteString(" | ")
		b.WriteString(yesNo(item.Type.Consumable()))
		b.WriteString(" | ")
		b.WriteString(escape(formatProperties(item.Props())))
		b.WriteString(" |\n")
	}
	return docFile{Name: "items.md", Title: "Items", Content: b.String()}
}

func generateEnemiesDoc(c *content.Catalog) docFile {
	enemies := c.Enemies()
	sort.Slice(enemies, func(i, j int) bool {
		if enemies[i].MaxHP != enemies[j].MaxHP {
			return enemies[i].MaxHP < enemies[j].MaxHP
		}
		return enemies[i].ID < enemies[j].ID
	})

	var b strings.Builder
	b.WriteString("# Enemies\n\n")
	b.WriteString("Source: `internal/content/data/enemies.yaml`.\n\n")
	b.WriteString("| ID | Name | HP | Attack | Status | Apex | Loot |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, e := range enemies {
		status := string(e.Status)
		if status == "" {
			status = "-"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %d | %s | %s | %s |\n",
			escape(e.ID), escape(e.Name), e.MaxHP, e.Attack, escape(status), yesNo(e.Apex), escape(formatLoot(e.Loot))))
	}
	return docFile{Name: "enemies.md", Title: "Enemies", Content: b.String()}
}

func generateAreasDoc(c *content.Catalog) docFile {
	var b strings.Builder
	b.WriteString("# Areas\n\n")
	b.WriteString("Source: `internal/content/data/areas.yaml`. Event weights are relative within an area.\n\n")
	for _, a := range c.Areas() {
		b.WriteString(fmt.Sprintf("## %s\n\n", a.Name))
		b.WriteString(escape(a.Description) + "\n\n")
		b.WriteString(fmt.Sprintf("- id: `%s`\n", a.ID))
		b.WriteString(fmt.Sprintf("- energy cost: %d, risk: %d, resources: %d\n", a.EnergyCost, a.RiskLevel, a.ResourcePotential))
		if a.RequiredItem != "" {
			b.WriteString(fmt.Sprintf("- requires: `%s`\n", a.RequiredItem))
		}
		b.WriteString("\n| Event | Kind | Weight | Enemy | Outcomes |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, e := range a.Events {
			enemy := e.EnemyID
			if enemy == "" {
				enemy = "-"
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				escape(e.ID), escape(string(e.Kind)), formatFloat(e.Probability), escape(enemy), escape(formatOutcomes(e.Outcomes))))
		}
		b.WriteString("\n")
	}
	return docFile{Name: "areas.md", Title: "Areas", Content: b.String()}
}

func generateRecipesDoc(c *content.Catalog) docFile {
	var b strings.Builder
	b.WriteString("# Recipes\n\n")
	b.WriteString("Source: `internal/content/data/recipes.yaml`.\n\n")
	b.WriteString("| ID | Result | Materials | Shelter Level | Minutes |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, r := range c.Recipes() {
		b.WriteString(fmt.Sprintf("| %s | %s x%d | %s | %d | %d |\n",
			escape(r.ID), escape(r.Result.Name), r.ResultQuantity, escape(formatMaterials(r.Materials)), r.ShelterLevelRequired, r.CraftingTime))
	}
	return docFile{Name: "recipes.md", Title: "Recipes", Content: b.String()}
}

func generateShelterDoc(c *content.Catalog) docFile {
	var b strings.Builder
	b.WriteString("# Shelter\n\n")
	b.WriteString("Source: `internal/content/data/shelter.yaml` and `internal/game/shelter.go`.\n\n")
	b.WriteString("| Level | Warmth Bonus | Max Occupancy | Upgrade Materials |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for level := 0; level <= game.MaxShelterLevel; level++ {
		state := game.ShelterStateForLevel(level)
		materials := "-"
		if upgrade, err := c.ShelterUpgrade(level); err == nil {
			materials = formatMaterials(upgrade.Materials)
		}
		b.WriteString(fmt.Sprintf("| %d | %d | %d | %s |\n", level, state.WarmthBonus, state.MaxOccupancy, escape(materials)))
	}
	return docFile{Name: "shelter.md", Title: "Shelter", Content: b.String()}
}

func formatProperties(p game.ItemProperties) string {
	parts := []string{}
	add := func(name string, v int) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", name, v))
		}
	}
	add("hunger", p.HungerRestore)
	add("comfort", p.ComfortBonus)
	add("health", p.HealthRestore)
	add("warmth", p.Warmth)
	add("attack", p.AttackPower)
	add("defense", p.DefensePower)
	add("durability", p.Durability)
	add("efficiency", p.Efficiency)
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func formatLoot(items []game.LootEntry) string {
	if len(items) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(items))
	for _, l := range items {
		parts = append(parts, fmt.Sprintf("%s x%d (%.0f%%)", l.ItemID, l.Quantity, l.Probability*100))
	}
	return strings.Join(parts, "; ")
}

func formatMaterials(items []game.MaterialRequirement) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, m := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", m.ItemID, m.Quantity))
	}
	return strings.Join(parts, ", ")
}

func formatOutcomes(items []game.Outcome) string {
	if len(items) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(items))
	for _, o := range items {
		switch o.Kind {
		case game.OutcomeItem:
			if o.Item != nil {
				parts = append(parts, fmt.Sprintf("%s x%d (%.0f%%)", o.Item.ID, o.Item.Quantity, o.Probability*100))
			}
		case game.OutcomeStatus:
			parts = append(parts, fmt.Sprintf("%s %+d (%.0f%%)", o.Stat, o.Delta, o.Probability*100))
		default:
			parts = append(parts, fmt.Sprintf("%s (%.0f%%)", o.Kind, o.Probability*100))
		}
	}
	return strings.Join(parts, "; ")
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
