package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/appengine-ltd/last-shelter/internal/content"
	"github.com/appengine-ltd/last-shelter/internal/game"
	"github.com/appengine-ltd/last-shelter/internal/parser"
	"github.com/appengine-ltd/last-shelter/internal/session"
)

func (m model) parseContext() parser.ParseContext {
	snap := m.session.Snapshot()
	catalog := m.session.Catalog()
	ctx := parser.ParseContext{LastEntity: m.lastEntity}
	for _, item := range snap.Player.Inventory {
		ctx.Inventory = append(ctx.Inventory, item.Name)
	}
	for _, slot := range []game.Slot{game.SlotWeapon, game.SlotArmor} {
		if item := snap.Player.Equipment.Slot(slot); item != nil {
			ctx.Equipped = append(ctx.Equipped, item.Name)
		}
	}
	for _, area := range catalog.Areas() {
		ctx.Areas = append(ctx.Areas, area.Name)
	}
	for _, recipe := range catalog.Recipes() {
		ctx.Recipes = append(ctx.Recipes, recipe.Name)
	}
	return ctx
}

// dispatch turns a resolved intent into output or a session operation.
// Queries render at once; anything that changes the game runs off the
// program loop and reports back with opDoneMsg.
func (m model) dispatch(intent parser.Intent) (tea.Model, tea.Cmd) {
	s := m.session
	snap := s.Snapshot()
	arg := ""
	if len(intent.Args) > 0 {
		arg = intent.Args[0]
	}

	switch intent.Verb {
	case "help":
		m.appendLines(helpLines(m.parser))
		return m, nil
	case "status":
		m.appendLines(statusLines(snap))
		return m, nil
	case "inventory":
		m.appendLines(inventoryLines(snap.Player))
		return m, nil
	case "areas":
		m.appendLines(areaLines(s.Catalog(), snap.Player))
		return m, nil
	case "recipes":
		m.appendLines(recipeLines(s.Catalog(), snap.Player))
		return m, nil
	case "shelter":
		m.appendLines(shelterLines(s.Catalog(), snap))
		return m, nil
	case "quit":
		return m.quit()

	case "eat":
		item, ok := findItem(snap.Player.Inventory, arg)
		if !ok {
			return m.reject("You don't have %q.", arg)
		}
		m.lastEntity = item.Name
		return m.run(intent.Verb, func(context.Context) (string, error) {
			return "", s.Eat(item.ID)
		})
	case "rest":
		return m.run(intent.Verb, func(context.Context) (string, error) {
			if err := s.Rest(); err != nil {
				return "", err
			}
			return fmt.Sprintf("You rest through the night. Day %d.", s.Snapshot().Player.GameDay), nil
		})
	case "explore":
		area, ok := findArea(s.Catalog(), arg)
		if !ok {
			return m.reject("There is no place called %q. Type areas for a list.", arg)
		}
		m.lastEntity = area.Name
		return m.run(intent.Verb, func(ctx context.Context) (string, error) {
			x, err := s.Explore(ctx, area.ID)
			if err != nil {
				return "", err
			}
			switch {
			case x.InCombat():
				return "Fight: attack or flee.", nil
			case s.Snapshot().Finished():
				return "", nil
			}
			return "Type leave to head back, or explore again.", nil
		})
	case "attack":
		return m.run(intent.Verb, func(ctx context.Context) (string, error) {
			_, err := s.Attack(ctx)
			return afterFight(s), err
		})
	case "flee":
		return m.run(intent.Verb, func(ctx context.Context) (string, error) {
			report, err := s.Flee(ctx)
			if err == nil && report.Rejected {
				return "", nil
			}
			return afterFight(s), err
		})
	case "leave":
		return m.run(intent.Verb, func(context.Context) (string, error) {
			return "You head back to the shelter.", s.Leave()
		})
	case "tunnel":
		return m.run(intent.Verb, func(context.Context) (string, error) {
			return "", s.EnterHiddenPath()
		})
	case "equip":
		item, ok := findItem(snap.Player.Inventory, arg)
		if !ok {
			return m.reject("You don't have %q.", arg)
		}
		m.lastEntity = item.Name
		return m.run(intent.Verb, func(context.Context) (string, error) {
			return "Equipped " + item.Name + ".", s.Equip(item.ID)
		})
	case "unequip":
		slot, ok := findSlot(snap.Player.Equipment, arg)
		if !ok {
			return m.reject("You have nothing like %q equipped.", arg)
		}
		return m.run(intent.Verb, func(context.Context) (string, error) {
			return fmt.Sprintf("Your %s goes back in the pack.", slot), s.Unequip(slot)
		})
	case "craft":
		recipe, ok := findRecipe(s.Catalog(), arg)
		if !ok {
			return m.reject("You don't know how to make %q. Type recipes for a list.", arg)
		}
		m.lastEntity = recipe.Name
		return m.run(intent.Verb, func(context.Context) (string, error) {
			return "Crafted " + recipe.Name + ".", s.Craft(recipe.ID)
		})
	case "upgrade":
		return m.run(intent.Verb, func(context.Context) (string, error) {
			if err := s.UpgradeShelter(); err != nil {
				return "", err
			}
			return fmt.Sprintf("The shelter is now level %d.", s.Snapshot().Player.ShelterLevel), nil
		})
	case "rescue":
		return m.run(intent.Verb, func(context.Context) (string, error) {
			return "", s.CallRescue()
		})
	case "save":
		return m.run(intent.Verb, func(ctx context.Context) (string, error) {
			return "Game saved.", s.Save(ctx)
		})
	case "load":
		return m.run(intent.Verb, func(ctx context.Context) (string, error) {
			ok, err := s.Load(ctx)
			switch {
			case err != nil:
				return "", err
			case !ok:
				return "There is no saved game.", nil
			}
			return fmt.Sprintf("Game loaded. Day %d.", s.Snapshot().Player.GameDay), nil
		})
	case "reset":
		return m.run(intent.Verb, func(context.Context) (string, error) {
			s.Reset()
			return "A new game begins. Day 1.", nil
		})
	}
	return m.reject("I don't know how to %s.", intent.Verb)
}

func (m model) run(verb string, op func(context.Context) (string, error)) (tea.Model, tea.Cmd) {
	m.busy = true
	ctx := m.ctx
	return m, func() tea.Msg {
		text, err := op(ctx)
		if err != nil {
			text = ""
		}
		return opDoneMsg{verb: verb, text: text, err: err}
	}
}

func (m model) reject(format string, args ...any) (tea.Model, tea.Cmd) {
	m.appendLine(warnStyle.Render(fmt.Sprintf(format, args...)))
	return m, nil
}

func (m *model) appendLines(lines []string) {
	for _, line := range lines {
		m.appendLine(line)
	}
}

func afterFight(s *session.Session) string {
	x, ok := s.Expedition()
	if !ok || x.Encounter == nil {
		return ""
	}
	switch {
	case x.InCombat():
		return fmt.Sprintf("%s HP %d/%d.", x.Encounter.Enemy.Name, x.Encounter.EnemyHP, x.Encounter.Enemy.MaxHP)
	case x.HiddenPath:
		return "A glowing tunnel opens in the seabed. Type tunnel to enter it."
	}
	return ""
}

// matches reports whether a parsed argument names an entity by display name
// or by id.
func matches(arg, name, id string) bool {
	n := parser.Normalise(arg)
	return n != "" && (n == parser.Normalise(name) || n == parser.Normalise(id))
}

func findItem(items []game.InventoryItem, arg string) (game.InventoryItem, bool) {
	for _, item := range items {
		if item.Quantity > 0 && matches(arg, item.Name, item.ID) {
			return item, true
		}
	}
	return game.InventoryItem{}, false
}

func findArea(c *content.Catalog, arg string) (game.Area, bool) {
	for _, area := range c.Areas() {
		if matches(arg, area.Name, area.ID) {
			return area, true
		}
	}
	return game.Area{}, false
}

func findRecipe(c *content.Catalog, arg string) (game.Recipe, bool) {
	for _, recipe := range c.Recipes() {
		if matches(arg, recipe.Name, recipe.ID) {
			return recipe, true
		}
	}
	return game.Recipe{}, false
}

// findSlot accepts a slot name or the name of the equipped item.
func findSlot(eq game.Equipment, arg string) (game.Slot, bool) {
	if slot, ok := game.ParseSlot(arg); ok {
		return slot, eq.Slot(slot) != nil
	}
	for _, slot := range []game.Slot{game.SlotWeapon, game.SlotArmor} {
		if item := eq.Slot(slot); item != nil && matches(arg, item.Name, item.ID) {
			return slot, true
		}
	}
	return "", false
}

func describeError(err error) string {
	switch {
	case errors.Is(err, session.ErrGameOver):
		return "The game is over. Type load, reset or quit."
	case errors.Is(err, session.ErrInCombat):
		return "Not while fighting. Attack or flee."
	case errors.Is(err, session.ErrNoEncounter):
		return "There is nothing to fight."
	case errors.Is(err, session.ErrNotExploring):
		return "You are already at the shelter."
	case errors.Is(err, context.Canceled):
		return "Interrupted."
	case errors.Is(err, content.ErrUnknownID):
		return "You don't know of such a thing."
	}
	msg := strings.TrimPrefix(err.Error(), "session: ")
	if msg == "" {
		return "Something went wrong."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
