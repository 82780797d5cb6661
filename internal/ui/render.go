package ui

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/last-shelter/internal/content"
	"github.com/appengine-ltd/last-shelter/internal/game"
	"github.com/appengine-ltd/last-shelter/internal/parser"
	"github.com/appengine-ltd/last-shelter/internal/session"
)

const barWidth = 10

func statBar(value int) string {
	filled := max(0, min(barWidth, (value*barWidth+game.StatMax/2)/game.StatMax))
	style := barFull
	if value < 30 {
		style = barLow
	}
	return style.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", barWidth-filled))
}

// renderStatus draws the side panel from the published snapshot.
func renderStatus(s *session.Session) string {
	snap := s.Snapshot()
	p := snap.Player
	var b strings.Builder

	b.WriteString(titleStyle.Render("DAY "+fmt.Sprint(p.GameDay)) + "\n")
	fmt.Fprintf(&b, "%s, %d°C\n\n", p.Season, p.Temperature)

	b.WriteString(titleStyle.Render("CONDITION") + "\n")
	for _, stat := range []struct {
		label string
		value int
	}{
		{"Health ", p.Health},
		{"Hunger ", p.Hunger},
		{"Comfort", p.Comfort},
		{"Energy ", p.Energy},
	} {
		fmt.Fprintf(&b, "%s %s %3d\n", labelStyle.Render(stat.label), statBar(stat.value), stat.value)
	}
	fmt.Fprintf(&b, "%s\n\n", mutedStyle.Render(string(game.ClassifyHunger(p.Hunger))))

	b.WriteString(titleStyle.Render("SHELTER") + "\n")
	fmt.Fprintf(&b, "Level %d, warmth +%d\n\n", p.ShelterLevel, snap.Shelter.WarmthBonus)

	b.WriteString(titleStyle.Render("GEAR") + "\n")
	for _, slot := range []game.Slot{game.SlotWeapon, game.SlotArmor} {
		name := "-"
		if item := p.Equipment.Slot(slot); item != nil {
			name = item.Name
		}
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-6s", slot)), name)
	}

	if x, ok := s.Expedition(); ok {
		b.WriteString("\n" + titleStyle.Render("OUT") + "\n")
		b.WriteString(x.Area.Name + "\n")
		if enc := x.Encounter; enc != nil && x.InCombat() {
			fmt.Fprintf(&b, "%s %s\n", dangerStyle.Render(enc.Enemy.Name), fmt.Sprintf("%d/%d", enc.EnemyHP, enc.Enemy.MaxHP))
			if enc.Attached() {
				b.WriteString(dangerStyle.Render("attached") + "\n")
			}
		}
		if x.HiddenPath {
			b.WriteString(victoryStyle.Render("tunnel found") + "\n")
		}
	}
	return b.String()
}

func helpLines(p *parser.Parser) []string {
	return []string{
		titleStyle.Render("COMMANDS"),
		"status, inventory, areas, recipes, shelter",
		"explore <area>, leave, rest, eat <item>",
		"attack, flee, tunnel",
		"equip <item>, unequip <weapon|armor>",
		"craft <recipe>, upgrade shelter, rescue",
		"save, load, reset, quit",
		mutedStyle.Render("Known verbs: " + strings.Join(p.Verbs(), ", ")),
	}
}

func statusLines(snap game.Snapshot) []string {
	p := snap.Player
	st := snap.Statistics
	return []string{
		titleStyle.Render(fmt.Sprintf("DAY %d", p.GameDay)),
		fmt.Sprintf("Health %d, hunger %d (%s), comfort %d, energy %d", p.Health, p.Hunger, game.ClassifyHunger(p.Hunger), p.Comfort, p.Energy),
		fmt.Sprintf("%s, %d°C. Shelter level %d.", p.Season, p.Temperature, p.ShelterLevel),
		mutedStyle.Render(fmt.Sprintf("Explorations %d, enemies defeated %d, items crafted %d, rare finds %d.",
			st.ExplorationsCompleted, st.EnemiesDefeated, st.ItemsCrafted, st.RareItemsFound)),
	}
}

func inventoryLines(p game.PlayerState) []string {
	if len(p.Inventory) == 0 {
		return []string{"Your pack is empty."}
	}
	lines := []string{titleStyle.Render("INVENTORY")}
	for _, item := range p.Inventory {
		lines = append(lines, fmt.Sprintf("- %s x%d %s", item.Name, item.Quantity, mutedStyle.Render(string(item.Type))))
	}
	return lines
}

func areaLines(c *content.Catalog, p game.PlayerState) []string {
	lines := []string{titleStyle.Render("AREAS")}
	for _, area := range c.Areas() {
		line := fmt.Sprintf("- %s: energy %d, risk %d", area.Name, area.EnergyCost, area.RiskLevel)
		if !area.Accessible(p) {
			line += mutedStyle.Render(fmt.Sprintf(" (needs %s)", itemName(c, area.RequiredItem)))
		}
		lines = append(lines, line)
	}
	return lines
}

func recipeLines(c *content.Catalog, p game.PlayerState) []string {
	lines := []string{titleStyle.Render("RECIPES")}
	for _, r := range c.Recipes() {
		mark := " "
		if game.CanCraft(p, r) {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s %s: %s", mark, r.Name, materialsText(c, r.Materials)))
		if r.ShelterLevelRequired > 0 {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("    needs shelter level %d", r.ShelterLevelRequired)))
		}
	}
	return lines
}

func shelterLines(c *content.Catalog, snap game.Snapshot) []string {
	level := snap.Player.ShelterLevel
	lines := []string{
		titleStyle.Render("SHELTER"),
		fmt.Sprintf("Level %d. Warmth +%d. Room for %d.", level, snap.Shelter.WarmthBonus, snap.Shelter.MaxOccupancy),
	}
	if level >= game.MaxShelterLevel {
		return append(lines, mutedStyle.Render("It cannot be improved further."))
	}
	upgrade, err := c.ShelterUpgrade(level)
	if err != nil {
		return lines
	}
	return append(lines, "Next level needs "+materialsText(c, upgrade.Materials)+".")
}

func materialsText(c *content.Catalog, reqs []game.MaterialRequirement) string {
	parts := make([]string, 0, len(reqs))
	for _, req := range reqs {
		parts = append(parts, fmt.Sprintf("%s x%d", itemName(c, req.ItemID), req.Quantity))
	}
	return strings.Join(parts, ", ")
}

func itemName(c *content.Catalog, id string) string {
	if item, err := c.Item(id); err == nil {
		return item.Name
	}
	return id
}
