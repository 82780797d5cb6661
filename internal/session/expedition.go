package session

import (
	"context"
	"fmt"

	"github.com/appengine-ltd/last-shelter/internal/game"
)

// Expedition is one trip into an area. Encounter is nil unless the chosen
// event was a fight.
type Expedition struct {
	Area       game.Area
	Event      game.Event
	Encounter  *game.Encounter
	HiddenPath bool
}

// InCombat reports whether a fight is still being resolved.
func (x Expedition) InCombat() bool {
	return x.Encounter != nil && !x.Encounter.Phase.Resolved()
}

// CanLeave reports whether the player may head back to the shelter.
func (x Expedition) CanLeave() bool { return !x.InCombat() }

func (s *Session) setExpedition(x *Expedition) {
	s.expedition = x
	if x == nil {
		s.view.Store(nil)
		return
	}
	view := *x
	if x.Encounter != nil {
		enc := *x.Encounter
		view.Encounter = &enc
	}
	s.view.Store(&view)
}

func (s *Session) stopHazard() {
	if s.hazard != nil {
		s.hazard.Stop()
		s.hazard = nil
	}
}

func (s *Session) endExpedition() {
	s.stopHazard()
	s.setExpedition(nil)
}

// Explore pays the area's energy cost, lets a day pass, then rolls one event
// from the area's table. ctx bounds the whole expedition: cancelling it
// interrupts the narration and stops any hazard timer started here.
func (s *Session) Explore(ctx context.Context, areaID string) (Expedition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idle(); err != nil {
		return Expedition{}, err
	}
	area, err := s.catalog.Area(areaID)
	if err != nil {
		return Expedition{}, err
	}
	p := s.Snapshot().Player
	if !area.Accessible(p) {
		return Expedition{}, fmt.Errorf("%w: %s needs %s", ErrAreaLocked, area.Name, area.RequiredItem)
	}
	if p.Energy < area.EnergyCost {
		return Expedition{}, fmt.Errorf("%w: %s costs %d, you have %d", ErrInsufficientEnergy, area.Name, area.EnergyCost, p.Energy)
	}

	s.endExpedition()
	snap := s.apply(game.UpdateStats{Stat: game.StatEnergy, Delta: -area.EnergyCost}, game.Tick{})
	x := &Expedition{Area: area}
	s.setExpedition(x)
	s.logger.Info("expedition started", "area", area.ID, "day", snap.Player.GameDay)
	if snap.Finished() {
		s.narrate("You did not live to reach " + area.Name + ".")
		return *x, nil
	}

	if err := s.tell(ctx, 1, "You set out for "+area.Name+"...", area.Description); err != nil {
		return s.abandon(err)
	}
	if err := s.tell(ctx, 1.5, "You search the surroundings..."); err != nil {
		return s.abandon(err)
	}

	event, err := game.SelectEvent(s.engine.Rand(), area.Events)
	if err != nil {
		s.endExpedition()
		return Expedition{}, fmt.Errorf("explore %s: %w", area.ID, err)
	}
	x.Event = event
	if err := s.tell(ctx, 1, "[event] "+event.Description); err != nil {
		return s.abandon(err)
	}

	if event.EnemyID != "" {
		if err := s.startEncounter(ctx, x, event.EnemyID); err != nil {
			s.endExpedition()
			return Expedition{}, err
		}
	} else {
		s.resolveOutcomes(event)
	}
	s.setExpedition(x)
	return *x, nil
}

func (s *Session) abandon(err error) (Expedition, error) {
	s.endExpedition()
	s.logger.Debug("expedition abandoned", "err", err)
	return Expedition{}, err
}

func (s *Session) startEncounter(ctx context.Context, x *Expedition, enemyID string) error {
	enemy, err := s.catalog.Enemy(enemyID)
	if err != nil {
		return err
	}
	enc := game.NewEncounter(s.ids.NewID(), enemy)
	x.Encounter = &enc
	s.notifier.Notify(game.Notification{Cue: game.CueCombatStart, Text: fmt.Sprintf("!!! A %s appears (HP %d) !!!", enemy.Name, enemy.MaxHP)})
	s.narrate(enemy.Description)
	if enc.Attached() {
		s.narrate(fmt.Sprintf("The %s latches onto you. Strike it to tear it off!", enemy.Name))
		s.hazard = game.StartHazard(ctx, enc.ID, s.hazardInterval)
	}
	s.logger.Info("encounter started", "enemy", enemy.ID, "encounter", enc.ID)
	return nil
}

func (s *Session) resolveOutcomes(event game.Event) {
	if len(event.Outcomes) == 0 {
		s.narrate("There seems to be nothing here.")
		return
	}
	rng := s.engine.Rand()
	for _, out := range event.Outcomes {
		if !game.Chance(rng, out.Probability) {
			continue
		}
		switch out.Kind {
		case game.OutcomeItem:
			if out.Item == nil {
				continue
			}
			s.apply(game.AddInventoryItem{Item: *out.Item})
			text := out.Message
			if text == "" {
				text = fmt.Sprintf("Found %s x%d.", out.Item.Name, out.Item.Quantity)
			}
			s.notifier.Notify(game.Notification{Cue: game.CueDiscovery, Text: "> " + text, ItemType: out.Item.Type})
		case game.OutcomeStatus:
			s.apply(game.UpdateStats{Stat: out.Stat, Delta: out.Delta})
			if out.Message != "" {
				s.narrate("> " + out.Message)
			}
		case game.OutcomeInformation:
			s.narrate("> " + out.Message)
		}
	}
}

// Attack strikes the current enemy.
func (s *Session) Attack(ctx context.Context) (game.TurnReport, error) {
	return s.combatMove(ctx, func(enc game.Encounter, p game.PlayerState) (game.Encounter, game.TurnReport) {
		return enc.Attack(p, s.engine.Rand(), s.engine.Balance())
	})
}

// Flee tries to run from the current enemy. A refused attempt comes back
// with Rejected set and changes nothing.
func (s *Session) Flee(ctx context.Context) (game.TurnReport, error) {
	return s.combatMove(ctx, func(enc game.Encounter, p game.PlayerState) (game.Encounter, game.TurnReport) {
		return enc.Flee(p, s.engine.Rand(), s.engine.Balance())
	})
}

func (s *Session) combatMove(ctx context.Context, move func(game.Encounter, game.PlayerState) (game.Encounter, game.TurnReport)) (game.TurnReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playable(); err != nil {
		return game.TurnReport{}, err
	}
	x := s.expedition
	if x == nil || !x.InCombat() {
		return game.TurnReport{}, ErrNoEncounter
	}
	enc, report := move(*x.Encounter, s.Snapshot().Player)
	report = s.settle(x, enc, report)
	// Narration follows the fully applied turn, so cancelling here loses
	// only pacing.
	if err := s.paceReport(ctx, report, 0.5); err != nil {
		return report, err
	}
	return report, nil
}

// HazardTicks exposes the running hazard timer. ok is false when no
// attached enemy is active.
func (s *Session) HazardTicks() (ticks <-chan string, done <-chan struct{}, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hazard == nil {
		return nil, nil, false
	}
	return s.hazard.C(), s.hazard.Done(), true
}

// ApplyHazardTick applies one round of damage for the encounter id delivered
// by the hazard timer. Ticks for an encounter that has ended are refused.
func (s *Session) ApplyHazardTick(encounterID string) (game.TurnReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	x := s.expedition
	if x == nil || x.Encounter == nil || x.Encounter.ID != encounterID || !x.Encounter.Attached() {
		return game.TurnReport{}, ErrNoEncounter
	}
	if err := s.playable(); err != nil {
		s.stopHazard()
		return game.TurnReport{}, err
	}
	enc, report := x.Encounter.HazardTick(s.Snapshot().Player, s.engine.Balance())
	report = s.settle(x, enc, report)
	_ = s.paceReport(context.Background(), report, 0)
	return report, nil
}

// settle applies a combat report to the snapshot and the expedition and
// returns the report with loot lines added.
func (s *Session) settle(x *Expedition, enc game.Encounter, report game.TurnReport) game.TurnReport {
	if report.Rejected {
		return report
	}
	s.apply(report.Actions...)
	for _, drop := range report.Drops {
		item, err := s.catalog.Stack(drop.ItemID, drop.Quantity)
		if err != nil {
			s.logger.Warn("dropping unknown loot", "item", drop.ItemID, "err", err)
			continue
		}
		s.apply(game.AddInventoryItem{Item: item})
		report.Lines = append(report.Lines, fmt.Sprintf("Obtained %s x%d.", item.Name, item.Quantity))
	}
	if report.HiddenPath {
		x.HiddenPath = true
	}
	if s.Snapshot().IsGameOver && !enc.Phase.Resolved() {
		enc.Phase = game.PhaseDefeat
	}
	x.Encounter = &enc
	if enc.Phase.Resolved() {
		s.stopHazard()
		s.logger.Info("encounter resolved", "enemy", enc.Enemy.ID, "phase", enc.Phase.String())
	}
	s.setExpedition(x)
	return report
}

// paceReport emits a report's cues, then its lines with beats between them.
func (s *Session) paceReport(ctx context.Context, report game.TurnReport, beats float64) error {
	for _, cue := range report.Cues {
		s.notifier.Notify(game.Notification{Cue: cue})
	}
	for i, line := range report.Lines {
		if i > 0 {
			if err := s.pacer.wait(ctx, beats); err != nil {
				return err
			}
		}
		s.narrate(line)
	}
	return nil
}

// Leave ends the expedition. It is refused while a fight is unresolved.
func (s *Session) Leave() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expedition == nil {
		return ErrNotExploring
	}
	if s.expedition.InCombat() {
		return ErrInCombat
	}
	s.endExpedition()
	return nil
}

// EnterHiddenPath takes the tunnel uncovered by an apex victory and wins
// the game.
func (s *Session) EnterHiddenPath() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.playable(); err != nil {
		return err
	}
	if s.expedition == nil || !s.expedition.HiddenPath {
		return ErrNoHiddenPath
	}
	s.endExpedition()
	s.apply(
		game.LogEvent{Message: "You follow the glowing tunnel to a safe haven beneath the sea.", Severity: game.SeveritySuccess},
		game.WinGame{Kind: game.VictoryDeepSea},
	)
	s.notifier.Notify(game.Notification{Cue: game.CueVictory, Text: "You escaped through the deep-sea tunnel."})
	s.logger.Info("game won", "victory", game.VictoryDeepSea)
	return nil
}

func (s *Session) narrate(text string) {
	if text == "" {
		return
	}
	s.notifier.Notify(game.Notification{Cue: game.CueNarration, Text: text})
}

// tell narrates lines, waiting beats before each one.
func (s *Session) tell(ctx context.Context, beats float64, lines ...string) error {
	for _, line := range lines {
		if err := s.pacer.wait(ctx, beats); err != nil {
			return err
		}
		s.narrate(line)
	}
	return nil
}
