// Command simulate plays the game headlessly with a fixed policy. The same
// seed always yields the same run, which makes it useful for balance checks.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/appengine-ltd/last-shelter/internal/config"
	"github.com/appengine-ltd/last-shelter/internal/content"
	"github.com/appengine-ltd/last-shelter/internal/game"
	"github.com/appengine-ltd/last-shelter/internal/session"
)

const maxStepsPerDay = 12

func main() {
	var (
		configPath string
		seed       int64
		days       int
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "optional config.yaml for balance and difficulty")
	flag.Int64Var(&seed, "seed", 1, "random seed")
	flag.IntVar(&days, "days", 30, "days to simulate")
	flag.BoolVar(&verbose, "v", false, "print narration and debug logs")
	flag.Parse()

	if err := run(configPath, seed, days, verbose); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, days int, verbose bool) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	catalog, err := content.Load()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	var notifier game.Notifier = game.NopNotifier{}
	if verbose {
		level = slog.LevelDebug
		notifier = game.NotifierFunc(func(n game.Notification) {
			if n.Text != "" {
				fmt.Println("   ", n.Text)
			}
		})
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	s, err := session.New(session.Options{
		Engine: game.NewEngine(
			game.WithRand(game.NewRand(seed)),
			game.WithClock(game.FixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))),
			game.WithIDs(&game.SequentialIDs{}),
			game.WithBalance(cfg.Balance),
		),
		Catalog:  catalog,
		Notifier: notifier,
		Logger:   logger,
		IDs:      &game.SequentialIDs{},
		// Hazard ticks run on wall time; keep them out of a deterministic run.
		HazardInterval: time.Hour,
		Settings:       cfg.Settings(),
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	bot := &player{s: s, catalog: catalog}
	for step := 0; step < days*maxStepsPerDay; step++ {
		snap := s.Snapshot()
		if snap.Finished() || snap.Player.GameDay > days {
			break
		}
		action, err := bot.step(ctx)
		if err != nil {
			logger.Debug("move refused, resting instead", "action", action, "err", err)
			if err := s.Rest(); err != nil && !errors.Is(err, session.ErrInCombat) && !errors.Is(err, session.ErrGameOver) {
				return fmt.Errorf("rest: %w", err)
			}
			action = "rest"
		}
		p := s.Snapshot().Player
		fmt.Printf("day %3d  %-28s hp %3d  hunger %3d  comfort %3d  energy %3d\n",
			p.GameDay, action, p.Health, p.Hunger, p.Comfort, p.Energy)
	}

	printSummary(s.Snapshot())
	return nil
}

type player struct {
	s       *session.Session
	catalog *content.Catalog
	next    int
}

// step makes one move and names it.
func (b *player) step(ctx context.Context) (string, error) {
	s := b.s
	p := s.Snapshot().Player

	if x, ok := s.Expedition(); ok {
		switch {
		case x.InCombat():
			if p.Health < 25 && !x.Encounter.Attached() {
				report, err := s.Flee(ctx)
				if err == nil && !report.Rejected {
					return "flee " + x.Encounter.Enemy.ID, nil
				}
			}
			_, err := s.Attack(ctx)
			return "attack " + x.Encounter.Enemy.ID, err
		case x.HiddenPath:
			return "tunnel", s.EnterHiddenPath()
		default:
			return "leave", s.Leave()
		}
	}

	if p.Quantity("signal_radio") > 0 {
		return "rescue", s.CallRescue()
	}
	if item, ok := bestFood(p, p.Health < 40); ok && (p.Hunger < 45 || p.Health < 40) {
		return "eat " + item.ID, s.Eat(item.ID)
	}
	for _, r := range b.catalog.Recipes() {
		if game.CanCraft(p, r) && p.Quantity(r.ResultID) == 0 {
			return "craft " + r.ID, s.Craft(r.ID)
		}
	}
	for _, item := range p.Inventory {
		slot, ok := game.SlotForType(item.Type)
		if ok && p.Equipment.Slot(slot) == nil {
			return "equip " + item.ID, s.Equip(item.ID)
		}
	}
	if upgrade, err := b.catalog.ShelterUpgrade(p.ShelterLevel); err == nil && game.CanUpgradeShelter(p, upgrade.Materials) {
		return "upgrade shelter", s.UpgradeShelter()
	}

	if area, ok := b.pickArea(p); ok {
		_, err := s.Explore(ctx, area.ID)
		return "explore " + area.ID, err
	}
	return "rest", s.Rest()
}

// pickArea cycles through the areas the player can enter and afford. The
// deep sea is only tried in good health.
func (b *player) pickArea(p game.PlayerState) (game.Area, bool) {
	if p.Health < 50 || p.Energy < 40 {
		return game.Area{}, false
	}
	areas := b.catalog.Areas()
	for range areas {
		area := areas[b.next%len(areas)]
		b.next++
		if !area.Accessible(p) || p.Energy < area.EnergyCost {
			continue
		}
		if area.RequiredItem != "" && p.Health < 70 {
			continue
		}
		return area, true
	}
	return game.Area{}, false
}

// bestFood picks the consumable that restores the most hunger, or health
// when healing is wanted.
func bestFood(p game.PlayerState, heal bool) (game.InventoryItem, bool) {
	var candidates []game.InventoryItem
	for _, item := range p.Inventory {
		if item.Type.Consumable() && item.Quantity > 0 {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return game.InventoryItem{}, false
	}
	value := func(item game.InventoryItem) int {
		if heal {
			return item.Props().HealthRestore
		}
		return item.Props().HungerRestore
	}
	return slices.MaxFunc(candidates, func(a, b game.InventoryItem) int { return value(a) - value(b) }), true
}

func printSummary(snap game.Snapshot) {
	st := snap.Statistics
	outcome := "still alive"
	switch {
	case snap.GameWon:
		outcome = "won (" + string(snap.VictoryKind) + ")"
	case snap.IsGameOver:
		outcome = "died"
	}
	fmt.Println()
	fmt.Printf("outcome:       %s on day %d\n", outcome, snap.Player.GameDay)
	fmt.Printf("days survived: %d\n", st.TotalDaysSurvived)
	fmt.Printf("explorations:  %d\n", st.ExplorationsCompleted)
	fmt.Printf("enemies:       %d defeated\n", st.EnemiesDefeated)
	fmt.Printf("crafted:       %d items\n", st.ItemsCrafted)
	fmt.Printf("shelter:       level %d (%d upgrades)\n", snap.Player.ShelterLevel, st.ShelterUpgrades)
	fmt.Printf("rare finds:    %d\n", st.RareItemsFound)
}
